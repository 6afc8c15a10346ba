package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Rule binds one request field to a validator tag and the error code
// returned when the tag fails.
type Rule struct {
	Field string
	Value any
	Tag   string
	Code  string
}

// Validatable is implemented by request payloads.
//
// Rules are evaluated in the returned order and evaluation stops at the
// first failure, so the order is observable by clients.
type Validatable interface {
	Rules() []Rule
}

// Validator evaluates request rules. It wraps a validator.Validate with the
// custom tags registered by New.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the `ticketnumber` and `captcha` tags.
// A nil verifier accepts every captcha value.
func New(captcha CaptchaVerifier) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation(TagTicketNumber, isTicketNumber)
	_ = v.RegisterValidationCtx(TagCaptcha, captchaRule(captcha))

	return &Validator{validate: v}
}

// Check runs the payload rules in order and returns the first failure as an
// *errs.HTTPError carrying the rule's code.
func (v *Validator) Check(ctx context.Context, payload Validatable) error {
	for _, rule := range payload.Rules() {
		err := v.validate.VarCtx(ctx, rule.Value, rule.Tag)
		if err == nil {
			continue
		}

		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
			// InvalidValidationError: a programming error, not bad input.
			return fmt.Errorf("validate %s: %w", rule.Field, err)
		}

		message := fieldMessage(validationErrors[0])
		if rule.Code == "" {
			fieldErrors := []errs.FieldError{{Field: rule.Field, Error: message}}
			return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
		}
		return errs.NewFieldError(rule.Code, rule.Field, rule.Field+" "+message)
	}

	return nil
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the request struct from the body.
//  2. The client IP is attached to the context for the captcha rule.
//  3. v.Check evaluates the payload rules in order.
//
// payload must be a pointer so c.Bind can populate it.
func BindAndValidate(c echo.Context, v *Validator, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	ctx := WithRemoteIP(c.Request().Context(), c.RealIP())
	return v.Check(ctx, payload)
}

// bindErrorMessage extracts the client-facing part of an echo bind error.
func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

// fieldMessage converts a validator error into a user-friendly message.
func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "email":
		return "must be a valid email address"

	case TagTicketNumber:
		return "must be a valid ticket number"

	case TagCaptcha:
		return "was rejected"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
		}
		return "failed " + strings.ToLower(err.Tag())
	}
}
