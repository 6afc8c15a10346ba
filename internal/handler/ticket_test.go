package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/ticketdesk/internal/config"
	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/deppfellow/ticketdesk/internal/middleware"
	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/deppfellow/ticketdesk/internal/repository"
	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/deppfellow/ticketdesk/internal/service"
	"github.com/deppfellow/ticketdesk/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	ok    bool
	calls int
}

func (s *stubVerifier) Verify(context.Context, string, string) (bool, error) {
	s.calls++
	return s.ok, nil
}

type stubPolicy struct {
	mandatory bool
	calls     int
}

func (s *stubPolicy) IsLoginMandatory(context.Context) (bool, error) {
	s.calls++
	return s.mandatory, nil
}

type stubTickets struct {
	lookups int
}

func (s *stubTickets) GetByNumber(_ context.Context, ticketNumber int64) (*model.Ticket, error) {
	s.lookups++
	if ticketNumber != 123456 {
		return nil, nil
	}
	return &model.Ticket{ID: 1, TicketNumber: 123456, AuthorEmail: "ann@example.com"}, nil
}

type stubUsers struct{}

func (stubUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if email == "ann@example.com" {
		return &model.User{ID: 42, Email: email}, nil
	}
	return nil, nil
}

type ticketEnv struct {
	echo     *echo.Echo
	redis    *miniredis.Miniredis
	verifier *stubVerifier
	policy   *stubPolicy
	tickets  *stubTickets
}

func newTestServer(t *testing.T, verifier validation.CaptchaVerifier) *server.Server {
	t.Helper()
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Access:        config.DefaultAccessConfig(),
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:    &logger,
		Validator: validation.New(verifier),
	}
}

func newTicketEnv(t *testing.T) *ticketEnv {
	t.Helper()

	env := &ticketEnv{
		redis:    miniredis.RunT(t),
		verifier: &stubVerifier{ok: true},
		policy:   &stubPolicy{},
		tickets:  &stubTickets{},
	}

	client := redis.NewClient(&redis.Options{Addr: env.redis.Addr()})
	t.Cleanup(func() { client.Close() })

	s := newTestServer(t, env.verifier)
	svc := service.NewTicketService(s.Logger, env.policy, env.tickets, stubUsers{},
		repository.NewSessionStore(client, time.Hour), nil)
	h := NewTicketHandler(s, svc)

	env.echo = echo.New()
	env.echo.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	env.echo.POST("/ticket/check", Handle(h.Handler, h.CheckTicket, http.StatusOK))

	return env
}

func (env *ticketEnv) postJSON(t *testing.T, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ticket/check", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return env.serve(t, req)
}

func (env *ticketEnv) serve(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec.Code, body
}

func TestCheckTicketSuccess(t *testing.T) {
	env := newTicketEnv(t)

	status, body := env.postJSON(t, `{"ticketNumber": 123456, "email": "ann@example.com", "captcha": "token"}`)
	require.Equal(t, http.StatusOK, status, body)

	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]any)
	assert.Len(t, data["token"], 64)
	assert.Equal(t, float64(42), data["userId"])
	assert.Equal(t, float64(123456), data["ticketNumber"])

	assert.True(t, env.redis.Exists("session:"+data["token"].(string)))
}

func TestCheckTicketForm(t *testing.T) {
	env := newTicketEnv(t)

	form := url.Values{}
	form.Set("ticketNumber", "123456")
	form.Set("email", "ann@example.com")
	form.Set("captcha", "token")
	req := httptest.NewRequest(http.MethodPost, "/ticket/check", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	status, body := env.serve(t, req)
	assert.Equal(t, http.StatusOK, status, body)
}

func TestCheckTicketRejections(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		mandatory     bool
		captchaOK     bool
		wantStatus    int
		wantCode      string
		wantLookups   int
		wantCaptchas  int
		wantPolicyHit int
	}{
		{
			name:       "malformed ticket number",
			body:       `{"ticketNumber": "12ab", "email": "ann@example.com", "captcha": "token"}`,
			captchaOK:  true,
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeInvalidTicket,
		},
		{
			name:       "ticket number of the wrong JSON type",
			body:       `{"ticketNumber": [123456], "email": "ann@example.com", "captcha": "token"}`,
			captchaOK:  true,
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeInvalidTicket,
		},
		{
			name:       "everything malformed reports the ticket first",
			body:       `{"ticketNumber": -1, "email": "nope", "captcha": ""}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeInvalidTicket,
		},
		{
			name:       "malformed email",
			body:       `{"ticketNumber": 123456, "email": "ann@", "captcha": "token"}`,
			captchaOK:  true,
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeInvalidEmail,
		},
		{
			name:         "failing captcha",
			body:         `{"ticketNumber": 123456, "email": "ann@example.com", "captcha": "bad"}`,
			captchaOK:    false,
			wantStatus:   http.StatusBadRequest,
			wantCode:     errs.CodeInvalidCaptcha,
			wantCaptchas: 1,
		},
		{
			name:          "mandatory login",
			body:          `{"ticketNumber": 123456, "email": "ann@example.com", "captcha": "token"}`,
			mandatory:     true,
			captchaOK:     true,
			wantStatus:    http.StatusForbidden,
			wantCode:      errs.CodeNoPermission,
			wantCaptchas:  1,
			wantPolicyHit: 1,
		},
		{
			name:          "email differs by case",
			body:          `{"ticketNumber": 123456, "email": "ANN@example.com", "captcha": "token"}`,
			captchaOK:     true,
			wantStatus:    http.StatusForbidden,
			wantCode:      errs.CodeNoPermission,
			wantLookups:   1,
			wantCaptchas:  1,
			wantPolicyHit: 1,
		},
		{
			name:          "unknown ticket",
			body:          `{"ticketNumber": 999, "email": "ann@example.com", "captcha": "token"}`,
			captchaOK:     true,
			wantStatus:    http.StatusBadRequest,
			wantCode:      errs.CodeInvalidTicket,
			wantLookups:   1,
			wantCaptchas:  1,
			wantPolicyHit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTicketEnv(t)
			env.verifier.ok = tt.captchaOK
			env.policy.mandatory = tt.mandatory

			status, body := env.postJSON(t, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantLookups, env.tickets.lookups)
			assert.Equal(t, tt.wantCaptchas, env.verifier.calls)
			assert.Equal(t, tt.wantPolicyHit, env.policy.calls)
			assert.Empty(t, env.redis.Keys())
		})
	}
}

func TestCheckTicketFreshRequestPerCall(t *testing.T) {
	env := newTicketEnv(t)

	status, _ := env.postJSON(t, `{"ticketNumber": 123456, "email": "ann@example.com", "captcha": "token"}`)
	require.Equal(t, http.StatusOK, status)

	// Fields from the previous request must not leak into this one.
	status, body := env.postJSON(t, `{"email": "ann@example.com", "captcha": "token"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, errs.CodeInvalidTicket, body["code"])
}
