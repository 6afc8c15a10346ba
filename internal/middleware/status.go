package middleware

import (
	"net/http"

	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorStatus is the status the global error handler will answer err with,
// as far as it can be told before the error is mapped.
func ErrorStatus(err error) int {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	return http.StatusInternalServerError
}
