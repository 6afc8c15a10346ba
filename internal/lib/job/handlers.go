package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/ticketdesk/internal/config"
	"github.com/deppfellow/ticketdesk/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers builds the dependencies the task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) error {
	client, err := email.NewClient(cfg, logger)
	if err != nil {
		return err
	}
	j.email = client
	return nil
}

// handleTicketAccessEmailTask sends the ticket access email. Returning an
// error makes Asynq retry the task.
func (j *JobService) handleTicketAccessEmailTask(ctx context.Context, t *asynq.Task) error {
	var p TicketAccessPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload never succeeds, so skip retries.
		return fmt.Errorf("failed to unmarshal ticket access payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", "ticket_access").
		Int64("ticket_number", p.TicketNumber).
		Logger()

	if j.email == nil || !j.email.Enabled() {
		logger.Warn().Msg("email provider not configured, dropping ticket access email")
		return nil
	}

	logger.Info().Msg("Processing ticket access email task")

	if err := j.email.SendTicketAccessEmail(p.To, p.TicketNumber); err != nil {
		logger.Error().Err(err).Msg("Failed to send ticket access email")
		return err
	}

	logger.Info().Msg("Successfully sent ticket access email")
	return nil
}
