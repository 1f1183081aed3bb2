package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/product-catalog/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers initializes dependencies required by job handlers.
//
// Without a Resend key and a recipient, product events are only logged.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.notifier = newNotifier(cfg, logger)
	j.notifyTo = cfg.Integration.NotifyEmail

	if j.notifier == nil {
		logger.Info().Msg("email notifications disabled, product events will only be logged")
	}
}

// handleProductEventTask processes product:created, product:updated and product:deleted.
//
// Returning an error makes asynq mark the task failed and schedule a retry.
func (j *JobService) handleProductEventTask(ctx context.Context, t *asynq.Task) error {
	event := ProductEvent(t.Type())

	var p ProductEventPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed; skip retries.
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", event, err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", string(event)).
		Int64("product_id", p.ProductID).
		Logger()

	logger.Info().
		Str("name", p.Name).
		Time("occurred_at", p.OccurredAt).
		Msg("processing product event")

	if j.notifier == nil {
		return nil
	}

	if err := j.notifier.SendProductEventEmail(j.notifyTo, p.TemplateData(event)); err != nil {
		logger.Error().
			Err(err).
			Str("to", j.notifyTo).
			Msg("failed to send product event email")
		return err
	}

	logger.Info().
		Str("to", j.notifyTo).
		Msg("product event email sent")

	return nil
}
