package errs

import "net/http"

// Error kinds of the ticket access flow. They are the values of
// HTTPError.Code that clients switch on.
const (
	CodeInvalidTicket  = "INVALID_TICKET"
	CodeInvalidEmail   = "INVALID_EMAIL"
	CodeInvalidCaptcha = "INVALID_CAPTCHA"
	CodeNoPermission   = "NO_PERMISSION"
)

// NewFieldError creates the 400 returned when a request field fails its rule.
func NewFieldError(code, field, message string) *HTTPError {
	return NewBadRequestError(message, true, &code, []FieldError{{Field: field, Error: message}}, nil)
}

// NewInvalidTicketError is returned for malformed or unknown ticket numbers.
func NewInvalidTicketError() *HTTPError {
	return NewFieldError(CodeInvalidTicket, "ticketNumber", "Invalid ticket number")
}

// NewInvalidEmailError is returned for a malformed email address.
func NewInvalidEmailError() *HTTPError {
	return NewFieldError(CodeInvalidEmail, "email", "Invalid email")
}

// NewInvalidCaptchaError is returned when the captcha proof is rejected.
func NewInvalidCaptchaError() *HTTPError {
	return NewFieldError(CodeInvalidCaptcha, "captcha", "Invalid captcha")
}

// NewNoPermissionError is the single authorization failure of the ticket flow.
//
// It deliberately carries no detail: a caller cannot tell "login is
// mandatory" apart from "email does not match the ticket".
func NewNoPermissionError() *HTTPError {
	return &HTTPError{
		Code:     CodeNoPermission,
		Message:  "No permission",
		Status:   http.StatusForbidden,
		Override: true,
	}
}
