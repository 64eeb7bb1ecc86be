package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"crm_bot/internal/domain/entity"
	"crm_bot/internal/worker"
)

type fakeDeals struct {
	deals []entity.Deal
	err   error
}

func (f fakeDeals) DueDeals(context.Context) ([]entity.Deal, error) {
	return f.deals, f.err
}

type fakeGateway struct {
	chatIDs []int64
	texts   []string
	err     error
}

func (g *fakeGateway) SendText(_ context.Context, chatID int64, text string) error {
	g.chatIDs = append(g.chatIDs, chatID)
	g.texts = append(g.texts, text)

	return g.err
}

func TestReminderSendsDigest(t *testing.T) {
	rq := require.New(t)

	gateway := &fakeGateway{}
	reminder := worker.NewReminder(fakeDeals{deals: []entity.Deal{
		{ID: 3, Name: "Анна", Phone: "123"},
	}}, gateway, 1217838677)

	rq.NoError(reminder.Handle(context.Background(), worker.NewDailyReminderTask()))

	rq.Equal([]int64{1217838677}, gateway.chatIDs)
	rq.Len(gateway.texts, 1)
	rq.Contains(gateway.texts[0], "#3 Анна 123")
}

func TestReminderSendsEmptyDigest(t *testing.T) {
	rq := require.New(t)

	gateway := &fakeGateway{}
	reminder := worker.NewReminder(fakeDeals{}, gateway, 1217838677)

	rq.NoError(reminder.Handle(context.Background(), worker.NewDailyReminderTask()))
	rq.Equal([]string{"✅ Задач на сегодня нет"}, gateway.texts)
}

func TestReminderErrors(t *testing.T) {
	rq := require.New(t)

	t.Run("Store failure", func(*testing.T) {
		gateway := &fakeGateway{}
		reminder := worker.NewReminder(fakeDeals{err: errors.New("store unreachable")}, gateway, 1)

		rq.ErrorContains(reminder.Handle(context.Background(), worker.NewDailyReminderTask()), "store unreachable")
		rq.Empty(gateway.texts)
	})

	t.Run("Delivery failure", func(*testing.T) {
		gateway := &fakeGateway{err: errors.New("telegram: 502")}
		reminder := worker.NewReminder(fakeDeals{}, gateway, 1)

		rq.ErrorContains(reminder.Handle(context.Background(), worker.NewDailyReminderTask()), "telegram: 502")
	})
}
