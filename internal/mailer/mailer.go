package mailer

import (
	"context"

	"recruit-backend/internal/shared/telemetry"
)

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender dispatches outbound mail. Delivery is best-effort by contract:
// implementations log their own outcome and return nothing, so a failed send
// can never fail the operation that triggered it.
type Sender interface {
	Send(ctx context.Context, msg Message)
}

// LogSender is a Sender that only records the message. It stands in when no
// mail transport is configured.
type LogSender struct{}

// Send logs the message instead of delivering it.
func (LogSender) Send(ctx context.Context, msg Message) {
	telemetry.Info("mailer.log_only", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
}
