package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/ticketdesk/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, secret string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	return NewClient(config.CaptchaConfig{
		SecretKey: secret,
		VerifyURL: srv.URL,
		Timeout:   time.Second,
	}, &logger)
}

func TestVerifySendsFormAndAcceptsSuccess(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = map[string]string{
			"secret":   r.PostForm.Get("secret"),
			"response": r.PostForm.Get("response"),
			"remoteip": r.PostForm.Get("remoteip"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "hostname": "support.example.com"}`))
	}, "top-secret")

	ok, err := client.Verify(context.Background(), "token-123", "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{
		"secret":   "top-secret",
		"response": "token-123",
		"remoteip": "203.0.113.7",
	}, got)
}

func TestVerifyRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}, "top-secret")

	ok, err := client.Verify(context.Background(), "forged", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyEmptyResponseSkipsRoundTrip(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "top-secret")

	ok, err := client.Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)
}

func TestVerifyWithoutSecretAcceptsEverything(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	ok, err := client.Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, called)
}

func TestVerifyUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "top-secret")

	ok, err := client.Verify(context.Background(), "token", "")
	assert.Error(t, err)
	assert.False(t, ok)
}
