package validation

import (
	"context"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	// TagTicketNumber accepts a positive decimal ticket number.
	TagTicketNumber = "ticketnumber"

	// TagCaptcha accepts values the CaptchaVerifier approves.
	TagCaptcha = "captcha"
)

// ticketNumberRegex: no sign, no leading zero, at most 12 digits.
var ticketNumberRegex = regexp.MustCompile(`^[1-9][0-9]{0,11}$`)

// IsTicketNumber checks ticket number syntax only, not existence.
func IsTicketNumber(s string) bool {
	return ticketNumberRegex.MatchString(s)
}

func isTicketNumber(fl validator.FieldLevel) bool {
	return IsTicketNumber(fl.Field().String())
}

// CaptchaVerifier verifies a captcha response token for a client IP.
type CaptchaVerifier interface {
	Verify(ctx context.Context, response, remoteIP string) (bool, error)
}

func captchaRule(verifier CaptchaVerifier) validator.FuncCtx {
	return func(ctx context.Context, fl validator.FieldLevel) bool {
		if verifier == nil {
			return true
		}
		ok, err := verifier.Verify(ctx, fl.Field().String(), RemoteIPFromContext(ctx))
		// Verifiers log their own transport failures; an error is a rejection.
		return err == nil && ok
	}
}

type remoteIPKey struct{}

// WithRemoteIP stores the client IP used for captcha verification.
func WithRemoteIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, remoteIPKey{}, ip)
}

// RemoteIPFromContext returns the client IP stored by WithRemoteIP.
func RemoteIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(remoteIPKey{}).(string)
	return ip
}
