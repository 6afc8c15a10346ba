package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	enabled bool
	err     error
	sent    []TicketAccessPayload
}

func (f *fakeSender) Enabled() bool { return f.enabled }

func (f *fakeSender) SendTicketAccessEmail(to string, ticketNumber int64) error {
	f.sent = append(f.sent, TicketAccessPayload{To: to, TicketNumber: ticketNumber})
	return f.err
}

func newTestJobService(sender emailSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{email: sender, logger: &logger}
}

func TestHandleTicketAccessEmailTask(t *testing.T) {
	sender := &fakeSender{enabled: true}
	j := newTestJobService(sender)

	task, err := NewTicketAccessEmailTask("ann@example.com", 123456)
	require.NoError(t, err)
	assert.Equal(t, TaskTicketAccess, task.Type())

	require.NoError(t, j.handleTicketAccessEmailTask(context.Background(), task))
	assert.Equal(t, []TicketAccessPayload{{To: "ann@example.com", TicketNumber: 123456}}, sender.sent)
}

func TestHandleTicketAccessEmailTaskRetriesOnSendFailure(t *testing.T) {
	sender := &fakeSender{enabled: true, err: errors.New("resend down")}
	j := newTestJobService(sender)

	task, err := NewTicketAccessEmailTask("ann@example.com", 1)
	require.NoError(t, err)

	err = j.handleTicketAccessEmailTask(context.Background(), task)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleTicketAccessEmailTaskSkipsMalformedPayload(t *testing.T) {
	j := newTestJobService(&fakeSender{enabled: true})

	err := j.handleTicketAccessEmailTask(context.Background(), asynq.NewTask(TaskTicketAccess, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleTicketAccessEmailTaskWithoutProvider(t *testing.T) {
	sender := &fakeSender{enabled: false}
	j := newTestJobService(sender)

	task, err := NewTicketAccessEmailTask("ann@example.com", 1)
	require.NoError(t, err)

	assert.NoError(t, j.handleTicketAccessEmailTask(context.Background(), task))
	assert.Empty(t, sender.sent)
}
