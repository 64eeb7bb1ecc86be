package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"crm_bot/internal/domain/entity"
	"crm_bot/internal/transport/webhook/view"
	"crm_bot/pkg/contextx"
	"crm_bot/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TaskDailyReminder — утренний дайджест задач в разрешённый чат.
const TaskDailyReminder = "reminder:daily"

func NewDailyReminderTask() *asynq.Task {
	return asynq.NewTask(TaskDailyReminder, nil)
}

type dealService interface {
	DueDeals(ctx context.Context) ([]entity.Deal, error)
}

type messageGateway interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Reminder шлёт по расписанию тот же список, что и /today, не дожидаясь
// запроса. Сбой не ретраится самим обработчиком: следующий запуск по крону
// пришлёт свежий список.
type Reminder struct {
	deals   dealService
	gateway messageGateway
	chatID  int64
}

func NewReminder(deals dealService, gateway messageGateway, chatID int64) *Reminder {
	return &Reminder{
		deals:   deals,
		gateway: gateway,
		chatID:  chatID,
	}
}

func (r *Reminder) Handle(ctx context.Context, _ *asynq.Task) error {
	deals, err := r.deals.DueDeals(ctx)
	if err != nil {
		return fmt.Errorf("deals.DueDeals: %w", err)
	}

	if err := r.gateway.SendText(ctx, r.chatID, view.TodayTasks(deals)); err != nil {
		return fmt.Errorf("gateway.SendText: %w", err)
	}

	metrics.RepliesSent.Inc()
	logger(ctx).Info("daily reminder sent", slog.Int("due-deals", len(deals)))

	return nil
}
