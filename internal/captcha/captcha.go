// Package captcha verifies reCAPTCHA response tokens against Google's
// siteverify endpoint.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deppfellow/ticketdesk/internal/config"
	"github.com/rs/zerolog"
)

// Client verifies captcha responses. A client without a secret accepts
// every response, matching deployments where reCAPTCHA is not configured.
type Client struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewClient builds a Client from the captcha config block.
func NewClient(cfg config.CaptchaConfig, logger *zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultCaptchaTimeout
	}
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = config.DefaultCaptchaVerifyURL
	}

	return &Client{
		secret:     cfg.SecretKey,
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// siteverifyResponse is the subset of Google's response we act on.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify reports whether response is a valid captcha solution for remoteIP.
//
// Transport and decoding failures are returned as errors; callers treat
// them as a failed verification.
func (c *Client) Verify(ctx context.Context, response, remoteIP string) (bool, error) {
	if c.secret == "" {
		return true, nil
	}
	if response == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", response)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("captcha siteverify request failed")
		return false, fmt.Errorf("siteverify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Msg("captcha siteverify returned non-200")
		return false, fmt.Errorf("siteverify status %d", resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error().Err(err).Msg("captcha siteverify response undecodable")
		return false, fmt.Errorf("decode siteverify response: %w", err)
	}

	if !result.Success {
		c.logger.Debug().
			Strs("error_codes", result.ErrorCodes).
			Str("remote_ip", remoteIP).
			Msg("captcha rejected")
	}

	return result.Success, nil
}
