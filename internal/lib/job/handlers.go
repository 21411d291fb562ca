package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// WelcomeMailer sends the welcome e-mail. *email.Client implements it.
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", "welcome").
		Str("username", p.Username).
		Logger()

	if j.mailer == nil {
		logger.Debug().Msg("email disabled, dropping welcome email task")
		return nil
	}

	logger.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.Username); err != nil {
		logger.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	logger.Info().Msg("sent welcome email")
	return nil
}
