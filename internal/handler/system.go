package handler

import (
	"context"

	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/labstack/echo/v4"
)

type loginPolicySetter interface {
	SetLoginMandatory(ctx context.Context, mandatory bool) error
}

// SystemHandler serves the staff-only settings endpoints.
type SystemHandler struct {
	Handler
	system loginPolicySetter
}

func NewSystemHandler(s *server.Server, system loginPolicySetter) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
		system:  system,
	}
}

func (h *SystemHandler) EnableMandatoryLogin(c echo.Context, _ *EmptyRequest) (Response, error) {
	if err := h.system.SetLoginMandatory(c.Request().Context(), true); err != nil {
		return Response{}, err
	}
	return success(nil), nil
}

func (h *SystemHandler) DisableMandatoryLogin(c echo.Context, _ *EmptyRequest) (Response, error) {
	if err := h.system.SetLoginMandatory(c.Request().Context(), false); err != nil {
		return Response{}, err
	}
	return success(nil), nil
}
