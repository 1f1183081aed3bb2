// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/product-catalog/internal/config"
	"github.com/deppfellow/product-catalog/internal/lib/email"
	"github.com/deppfellow/product-catalog/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// EnqueueTimeout bounds how long a request may wait on Redis to enqueue an event.
const EnqueueTimeout = 2 * time.Second

// enqueuer is the subset of *asynq.Client used to publish tasks.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client enqueuer

	server *asynq.Server
	logger *zerolog.Logger

	// notifier and notifyTo are set by InitHandlers. A nil notifier means
	// events are only logged.
	notifier notifier
	notifyTo string
}

// notifier is implemented by *email.Client.
type notifier interface {
	SendProductEventEmail(to string, data map[string]string) error
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share:
//
//	critical: 6
//	default:  3
//	low:      1
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	concurrency := config.DefaultJobsConfig().Concurrency
	if cfg.Jobs != nil && cfg.Jobs.Concurrency > 0 {
		concurrency = cfg.Jobs.Concurrency
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker pool.
// asynq.Server.Start returns once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	for _, event := range []ProductEvent{TaskProductCreated, TaskProductUpdated, TaskProductDeleted} {
		mux.HandleFunc(string(event), j.handleProductEventTask)
	}

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// PublishProductEvent enqueues a product event.
//
// The enqueue runs on a context detached from ctx: a client that disconnects
// right after a successful write must not cancel its notification. It is
// still bounded by EnqueueTimeout.
func (j *JobService) PublishProductEvent(ctx context.Context, event ProductEvent, product *model.Product) error {
	task, err := NewProductEventTask(event, NewProductEventPayload(product, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", event, err)
	}

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), EnqueueTimeout)
	defer cancel()

	info, err := j.Client.EnqueueContext(enqueueCtx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", event, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("type", string(event)).
		Int64("product_id", product.ID).
		Msg("product event enqueued")

	return nil
}

// newNotifier returns the email client, or nil when notifications are not configured.
func newNotifier(cfg *config.Config, logger *zerolog.Logger) notifier {
	if cfg.Integration.ResendAPIKey == "" || cfg.Integration.NotifyEmail == "" {
		return nil
	}
	return email.NewClient(cfg, logger)
}
