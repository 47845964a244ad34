package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/go-profile/internal/config"
	"github.com/deppfellow/go-profile/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the notification emails of job handlers.
type Mailer interface {
	SendEmailChangedEmail(to, name string) error
}

// InitHandlers wires the Resend email client into the job handlers.
func (j *JobService) InitHandlers(config *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(config, logger)
}

// handleEmailChangedTask decodes the payload and sends the notification.
// Returning an error makes Asynq schedule a retry.
func (j *JobService) handleEmailChangedTask(ctx context.Context, t *asynq.Task) error {
	var p EmailChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal email changed payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.mailer == nil {
		return fmt.Errorf("job handlers not initialized")
	}

	j.logger.Info().
		Str("type", TaskEmailChanged).
		Str("to", p.To).
		Msg("Processing email changed task")

	if err := j.mailer.SendEmailChangedEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", TaskEmailChanged).
			Str("to", p.To).
			Err(err).
			Msg("Failed to send email changed notification")
		return err
	}

	j.logger.Info().
		Str("type", TaskEmailChanged).
		Str("to", p.To).
		Msg("Successfully sent email changed notification")

	return nil
}
