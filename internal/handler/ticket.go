package handler

import (
	"context"
	"strconv"

	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/deppfellow/ticketdesk/internal/service"
	"github.com/deppfellow/ticketdesk/internal/validation"
	"github.com/labstack/echo/v4"
)

type ticketChecker interface {
	CheckTicket(ctx context.Context, in service.CheckTicketInput) (*service.CheckTicketResult, error)
}

type TicketHandler struct {
	Handler
	tickets ticketChecker
}

func NewTicketHandler(s *server.Server, tickets ticketChecker) *TicketHandler {
	return &TicketHandler{
		Handler: NewHandler(s),
		tickets: tickets,
	}
}

// CheckTicketRequest is accepted as JSON or as a form post.
type CheckTicketRequest struct {
	TicketNumber validation.Value `json:"ticketNumber" form:"ticketNumber"`
	Email        string           `json:"email" form:"email"`
	Captcha      string           `json:"captcha" form:"captcha"`
}

// Rules are checked in order; the captcha goes last so a malformed request
// never costs a siteverify round trip.
func (r *CheckTicketRequest) Rules() []validation.Rule {
	return []validation.Rule{
		{Field: "ticketNumber", Value: r.TicketNumber.String(), Tag: "required," + validation.TagTicketNumber, Code: errs.CodeInvalidTicket},
		{Field: "email", Value: r.Email, Tag: "required,email", Code: errs.CodeInvalidEmail},
		{Field: "captcha", Value: r.Captcha, Tag: validation.TagCaptcha, Code: errs.CodeInvalidCaptcha},
	}
}

// CheckTicket exchanges a ticket number and its author's email for a
// ticket-scoped session token.
func (h *TicketHandler) CheckTicket(c echo.Context, req *CheckTicketRequest) (Response, error) {
	ticketNumber, err := strconv.ParseInt(req.TicketNumber.String(), 10, 64)
	if err != nil {
		return Response{}, errs.NewInvalidTicketError()
	}

	result, err := h.tickets.CheckTicket(c.Request().Context(), service.CheckTicketInput{
		TicketNumber: ticketNumber,
		Email:        req.Email,
	})
	if err != nil {
		return Response{}, err
	}

	return success(result), nil
}
