package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskTicketAccess is the job type name stored in Redis.
	TaskTicketAccess = "email:ticket_access"
)

// TicketAccessPayload is the JSON payload of the ticket access email task.
type TicketAccessPayload struct {
	To           string `json:"to"`
	TicketNumber int64  `json:"ticket_number"`
}

// NewTicketAccessEmailTask constructs the Asynq task: up to 3 retries on the
// default queue, 30s per attempt.
func NewTicketAccessEmailTask(to string, ticketNumber int64) (*asynq.Task, error) {
	payload, err := json.Marshal(TicketAccessPayload{
		To:           to,
		TicketNumber: ticketNumber,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTicketAccess,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueTicketAccessEmail schedules the notification for a ticket author.
func (j *JobService) EnqueueTicketAccessEmail(ctx context.Context, to string, ticketNumber int64) error {
	task, err := NewTicketAccessEmailTask(to, ticketNumber)
	if err != nil {
		return fmt.Errorf("build ticket access task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue ticket access task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Int64("ticket_number", ticketNumber).
		Msg("ticket access email enqueued")
	return nil
}
