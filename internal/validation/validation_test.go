package validation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	ok       bool
	err      error
	calls    int
	remoteIP string
}

func (f *fakeVerifier) Verify(_ context.Context, _ string, remoteIP string) (bool, error) {
	f.calls++
	f.remoteIP = remoteIP
	return f.ok, f.err
}

type checkPayload struct {
	TicketNumber Value  `json:"ticketNumber" form:"ticketNumber"`
	Email        string `json:"email" form:"email"`
	Captcha      string `json:"captcha" form:"captcha"`
}

func (p *checkPayload) Rules() []Rule {
	return []Rule{
		{Field: "ticketNumber", Value: p.TicketNumber.String(), Tag: "required," + TagTicketNumber, Code: errs.CodeInvalidTicket},
		{Field: "email", Value: p.Email, Tag: "required,email", Code: errs.CodeInvalidEmail},
		{Field: "captcha", Value: p.Captcha, Tag: TagCaptcha, Code: errs.CodeInvalidCaptcha},
	}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr.Code
}

func TestIsTicketNumber(t *testing.T) {
	valid := []string{"1", "123456", "999999999999"}
	invalid := []string{"", "0", "012", "-5", "12a", "1.5", "1e3", "1000000000000", " 12"}

	for _, s := range valid {
		assert.True(t, IsTicketNumber(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsTicketNumber(s), s)
	}
}

func TestCheckStopsAtFirstFailingRule(t *testing.T) {
	tests := []struct {
		name         string
		payload      checkPayload
		captchaOK    bool
		wantCode     string
		wantVerified int
	}{
		{
			name:         "malformed ticket number wins over everything",
			payload:      checkPayload{TicketNumber: "abc", Email: "not-an-email", Captcha: "x"},
			wantCode:     errs.CodeInvalidTicket,
			wantVerified: 0,
		},
		{
			name:         "missing ticket number",
			payload:      checkPayload{Email: "ann@example.com", Captcha: "x"},
			captchaOK:    true,
			wantCode:     errs.CodeInvalidTicket,
			wantVerified: 0,
		},
		{
			name:         "malformed email before captcha",
			payload:      checkPayload{TicketNumber: "123", Email: "ann@", Captcha: "x"},
			wantCode:     errs.CodeInvalidEmail,
			wantVerified: 0,
		},
		{
			name:         "rejected captcha",
			payload:      checkPayload{TicketNumber: "123", Email: "ann@example.com", Captcha: "bad"},
			captchaOK:    false,
			wantCode:     errs.CodeInvalidCaptcha,
			wantVerified: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{ok: tt.captchaOK}
			v := New(verifier)

			err := v.Check(context.Background(), &tt.payload)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errorCode(t, err))
			assert.Equal(t, tt.wantVerified, verifier.calls)
		})
	}
}

func TestCheckPassesValidPayload(t *testing.T) {
	verifier := &fakeVerifier{ok: true}
	v := New(verifier)

	err := v.Check(context.Background(), &checkPayload{TicketNumber: "123456", Email: "ann@example.com", Captcha: "token"})
	assert.NoError(t, err)
	assert.Equal(t, 1, verifier.calls)
}

func TestCheckTreatsVerifierErrorAsRejection(t *testing.T) {
	v := New(&fakeVerifier{ok: true, err: errors.New("siteverify unreachable")})

	err := v.Check(context.Background(), &checkPayload{TicketNumber: "1", Email: "ann@example.com", Captcha: "token"})
	assert.Equal(t, errs.CodeInvalidCaptcha, errorCode(t, err))
}

func TestCheckWithoutVerifierAcceptsAnyCaptcha(t *testing.T) {
	v := New(nil)

	err := v.Check(context.Background(), &checkPayload{TicketNumber: "1", Email: "ann@example.com"})
	assert.NoError(t, err)
}

func TestValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want Value
	}{
		{`{"ticketNumber": 123456}`, "123456"},
		{`{"ticketNumber": "123456"}`, "123456"},
		{`{"ticketNumber": null}`, ""},
		{`{"ticketNumber": [1]}`, "[1]"},
		{`{"ticketNumber": true}`, "true"},
	}

	for _, tt := range tests {
		var p checkPayload
		require.NoError(t, json.Unmarshal([]byte(tt.body), &p), tt.body)
		assert.Equal(t, tt.want, p.TicketNumber, tt.body)
	}
}

func TestBindAndValidateForm(t *testing.T) {
	e := echo.New()
	form := url.Values{}
	form.Set("ticketNumber", "123456")
	form.Set("email", "ann@example.com")
	form.Set("captcha", "token")

	req := httptest.NewRequest(http.MethodPost, "/ticket/check", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	c := e.NewContext(req, httptest.NewRecorder())

	verifier := &fakeVerifier{ok: true}
	var p checkPayload
	require.NoError(t, BindAndValidate(c, New(verifier), &p))

	assert.Equal(t, Value("123456"), p.TicketNumber)
	assert.Equal(t, "203.0.113.7", verifier.remoteIP)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/ticket/check", strings.NewReader(`{"email": `))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var p checkPayload
	err := BindAndValidate(c, New(nil), &p)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, err))
}
