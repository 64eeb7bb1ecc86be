package crm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crm_bot/internal/domain/entity"
	"crm_bot/internal/domain/service/crm"
)

type fakeStore struct {
	deals    []entity.Deal
	readErr  error
	appended []entity.Deal
}

func (s *fakeStore) ReadAll(context.Context) ([]entity.Deal, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}

	return s.deals, nil
}

func (s *fakeStore) Append(_ context.Context, deal entity.Deal) error {
	s.appended = append(s.appended, deal)
	s.deals = append(s.deals, deal)

	return nil
}

func fixedClock(value string) func() time.Time {
	return func() time.Time {
		parsed, err := time.Parse("02.01.2006 15:04", value)
		if err != nil {
			panic(err)
		}

		return parsed
	}
}

func TestReadMaxAllocator(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		ids    []int
		nextID int
	}{
		{
			name:   "Empty store starts at one",
			ids:    nil,
			nextID: 1,
		},
		{
			name:   "Sequential ids",
			ids:    []int{1, 2, 3},
			nextID: 4,
		},
		{
			name:   "Gaps do not matter, only the max does",
			ids:    []int{7, 2, 5},
			nextID: 8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			deals := make([]entity.Deal, 0, len(tc.ids))
			for _, id := range tc.ids {
				deals = append(deals, entity.Deal{ID: id})
			}

			id, err := crm.ReadMaxAllocator{}.NextID(context.Background(), deals)
			rq.NoError(err)
			rq.Equal(tc.nextID, id)
		})
	}
}

func TestCreateDealFirstRecord(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{}
	svc := crm.NewService(store, crm.ReadMaxAllocator{}).
		WithClock(fixedClock("15.03.2026 14:30"))

	deal, err := svc.CreateDeal(
		context.Background(),
		"Имя: Анна\nТелефон: 123\nНужно: сайт\nЦена: 1000",
	)
	rq.NoError(err)

	rq.Equal(1, deal.ID)
	rq.Equal("Анна", deal.Name)
	rq.Equal("123", deal.Phone)
	rq.Equal("сайт", deal.Need)
	rq.Equal("1000", deal.Price)
	rq.Equal("", deal.Comment)
	rq.Equal("15.03.2026", deal.CreatedDate)
	rq.Equal("16.03.2026", deal.DueDate)
	rq.Equal("Новая заявка", deal.Status)
	rq.Equal("Ручной ввод", deal.Source)

	rq.Len(store.appended, 1)
	rq.Equal(deal, store.appended[0])
}

func TestCreateDealAllocatesNextID(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{deals: []entity.Deal{{ID: 1}, {ID: 5}}}
	svc := crm.NewService(store, crm.ReadMaxAllocator{}).
		WithClock(fixedClock("15.03.2026 09:00"))

	deal, err := svc.CreateDeal(context.Background(), "Имя: Борис")
	rq.NoError(err)
	rq.Equal(6, deal.ID)
}

func TestCreateDealStoreFailure(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{readErr: errors.New("store unreachable")}
	svc := crm.NewService(store, crm.ReadMaxAllocator{})

	_, err := svc.CreateDeal(context.Background(), "Имя: Анна")
	rq.ErrorContains(err, "store unreachable")
	rq.Empty(store.appended)
}

func TestListDealsKeepsOrder(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{deals: []entity.Deal{{ID: 3}, {ID: 1}, {ID: 2}}}
	svc := crm.NewService(store, crm.ReadMaxAllocator{})

	deals, err := svc.ListDeals(context.Background())
	rq.NoError(err)
	rq.Equal([]entity.Deal{{ID: 3}, {ID: 1}, {ID: 2}}, deals)
}

func TestSelectDue(t *testing.T) {
	rq := require.New(t)

	today := fixedClock("15.03.2026 23:59")()

	deals := []entity.Deal{
		{ID: 1, DueDate: "15.03.2026"},
		{ID: 2, DueDate: "01.01.2026"},
		{ID: 3, DueDate: "16.03.2026"},
		{ID: 4, DueDate: "когда-нибудь"},
		{ID: 5, DueDate: ""},
		{ID: 6, DueDate: "2026-03-14"},
	}

	due := crm.SelectDue(deals, today)

	ids := make([]int, 0, len(due))
	for _, deal := range due {
		ids = append(ids, deal.ID)
	}

	// Сегодняшние и просроченные входят, будущие и нечитаемые — нет.
	// ISO-дата читается запасным форматом.
	rq.Equal([]int{1, 2, 6}, ids)
}

func TestDueDealsUsesServiceClock(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{deals: []entity.Deal{
		{ID: 1, DueDate: "14.03.2026"},
		{ID: 2, DueDate: "20.03.2026"},
	}}

	svc := crm.NewService(store, crm.ReadMaxAllocator{}).
		WithClock(fixedClock("15.03.2026 08:00"))

	due, err := svc.DueDeals(context.Background())
	rq.NoError(err)
	rq.Len(due, 1)
	rq.Equal(1, due[0].ID)
}
