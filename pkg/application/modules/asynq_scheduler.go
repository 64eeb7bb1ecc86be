package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type AsynqScheduledTask struct {
	Cronspec string
	Task     *asynq.Task
}

type AsynqScheduler struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
	Location      string
}

func (s AsynqScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	tasks ...AsynqScheduledTask,
) error {
	redisConnection := asynq.RedisClientOpt{
		Addr:     s.RedisAddress,
		Username: s.RedisUsername,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	}

	scheduler := asynq.NewScheduler(redisConnection, &asynq.SchedulerOpts{
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger(ctx).Error("scheduler enqueue", slog.Any("error", err))
			}
		},
	})

	for _, t := range tasks {
		if _, err := scheduler.Register(t.Cronspec, t.Task); err != nil {
			return fmt.Errorf("scheduler.Register: %w", err)
		}
	}

	g.Go(func() error {
		go func() {
			<-ctx.Done()
			scheduler.Shutdown()
		}()

		logger(ctx).Info("asynq scheduler started", slog.String("redis-address", s.RedisAddress))

		if err := scheduler.Run(); err != nil {
			return fmt.Errorf("scheduler.Run: %w", err)
		}

		logger(ctx).Info("asynq scheduler stopped")

		return nil
	})

	return nil
}
