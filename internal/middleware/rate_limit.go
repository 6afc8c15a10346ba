package middleware

import (
	"time"

	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles unauthenticated endpoints per client IP.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// TicketCheck limits attempts to unlock tickets, which would otherwise allow
// guessing ticket numbers and emails.
func (r *RateLimitMiddleware) TicketCheck() echo.MiddlewareFunc {
	access := r.server.Config.Access
	return r.limit("ticket_check", rate.Limit(access.CheckRate), access.CheckBurst)
}

func (r *RateLimitMiddleware) limit(endpoint string, limit rate.Limit, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Forbidden", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			GetLogger(c).Warn().
				Str("endpoint", endpoint).
				Str("identifier", identifier).
				Msg("rate limit exceeded")
			r.RecordRateLimitHit(endpoint)
			return errs.NewTooManyRequestsError("Too many requests, try again later")
		},
	})
}

// RecordRateLimitHit emits a RateLimitHit event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
