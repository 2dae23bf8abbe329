// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API enqueues tasks through Client; the worker server started here
// processes them in the same process.
package job

import (
	"context"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	emails notifier
	logger *zerolog.Logger
}

// NewJobService connects both sides to redis.address.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		emails: email.NewClient(cfg, logger),
		logger: logger,
	}
}

// EnqueueAppointmentBooked queues a booking notification.
func (j *JobService) EnqueueAppointmentBooked(ctx context.Context, p AppointmentBookedPayload) error {
	task, err := NewAppointmentBookedTask(p)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued booking notification")
	return nil
}

// Start registers the task handlers and starts the workers. It returns
// once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskAppointmentBooked, j.handleAppointmentBookedTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop waits for running tasks and closes the client connection.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
