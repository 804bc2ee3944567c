package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"recruit-backend/internal/shared/telemetry"
)

// SESSender delivers mail through Amazon SES.
type SESSender struct {
	client *ses.Client
	from   string
}

// NewSESSender builds an SES-backed Sender.
func NewSESSender(ctx context.Context, region, from string) (*SESSender, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	return &SESSender{client: ses.NewFromConfig(cfg), from: from}, nil
}

// Send delivers the message, logging the outcome either way.
func (s *SESSender) Send(ctx context.Context, msg Message) {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Body)},
			},
		},
	})
	if err != nil {
		telemetry.Error("mailer.send_failed", map[string]any{
			"to":      msg.To,
			"subject": msg.Subject,
			"err":     err.Error(),
		})
		return
	}
	telemetry.Info("mailer.sent", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
}

var _ Sender = (*SESSender)(nil)
