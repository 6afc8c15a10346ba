// Package email sends transactional emails through Resend, rendering
// bodies from embedded HTML templates.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/ticketdesk/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// defaultFrom is used when integration.email_from is not configured.
const defaultFrom = "Ticketdesk <onboarding@resend.dev>"

// Client wraps the Resend client.
type Client struct {
	client    *resend.Client
	from      string
	templates *template.Template
	logger    *zerolog.Logger
}

// NewClient creates an email Client. Templates are parsed once up front.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}

	from := cfg.Integration.EmailFrom
	if from == "" {
		from = defaultFrom
	}

	var client *resend.Client
	if cfg.Integration.ResendAPIKey != "" {
		client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}

	return &Client{
		client:    client,
		from:      from,
		templates: templates,
		logger:    logger,
	}, nil
}

// Enabled reports whether a Resend API key is configured.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := c.templates.ExecuteTemplate(&body, string(templateName)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	if !c.Enabled() {
		return errors.New("email provider not configured")
	}

	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("template", string(templateName)).Msg("email sent")
	return nil
}
