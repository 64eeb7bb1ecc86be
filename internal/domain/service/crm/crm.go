package crm

import (
	"context"
	"fmt"
	"time"

	"crm_bot/internal/domain/entity"
)

// RecordStore — внешнее табличное хранилище сделок. Единственные операции —
// прочитать всё и дописать строку; порядок чтения совпадает с порядком
// добавления и служит порядком создания.
type RecordStore interface {
	ReadAll(ctx context.Context) ([]entity.Deal, error)
	Append(ctx context.Context, deal entity.Deal) error
}

// IDAllocator выдаёт номер для новой сделки. existing — все сделки,
// прочитанные непосредственно перед созданием.
type IDAllocator interface {
	NextID(ctx context.Context, existing []entity.Deal) (int, error)
}

type Service struct {
	store RecordStore
	ids   IDAllocator
	now   func() time.Time
}

func NewService(store RecordStore, ids IDAllocator) *Service {
	return &Service{
		store: store,
		ids:   ids,
		now:   time.Now,
	}
}

// WithClock подменяет источник времени в тестах.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateDeal разбирает поля из текста, выделяет номер и дописывает сделку.
//
// Чтение max(id) и запись не атомарны: два одновременных создания могут
// получить одинаковый номер. Это известное ограничение схемы read-then-append
// поверх внешней таблицы; штатный аллокатор его сознательно не прячет,
// сериализацию даёт только счётчик в Redis (см. persistence.RedisIDAllocator).
func (s *Service) CreateDeal(ctx context.Context, text string) (entity.Deal, error) {
	fields := ParseFields(text)

	existing, err := s.store.ReadAll(ctx)
	if err != nil {
		return entity.Deal{}, fmt.Errorf("store.ReadAll: %w", err)
	}

	id, err := s.ids.NextID(ctx, existing)
	if err != nil {
		return entity.Deal{}, fmt.Errorf("ids.NextID: %w", err)
	}

	deal := entity.NewDeal(id, s.now(), fields)

	if err := s.store.Append(ctx, deal); err != nil {
		return entity.Deal{}, fmt.Errorf("store.Append: %w", err)
	}

	return deal, nil
}

// ListDeals возвращает все сделки в порядке создания.
func (s *Service) ListDeals(ctx context.Context) ([]entity.Deal, error) {
	deals, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ReadAll: %w", err)
	}

	return deals, nil
}

// DueDeals возвращает сделки со сроком сегодня или раньше.
func (s *Service) DueDeals(ctx context.Context) ([]entity.Deal, error) {
	deals, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ReadAll: %w", err)
	}

	return SelectDue(deals, s.now()), nil
}

// SelectDue отбирает записи, чей срок наступил или прошёл. Время суток у обеих
// сторон отбрасывается. Записи без срока или с нечитаемой датой пропускаются.
func SelectDue(deals []entity.Deal, today time.Time) []entity.Deal {
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var due []entity.Deal

	for _, deal := range deals {
		d, ok := deal.Due()
		if !ok {
			continue
		}

		if !d.After(midnight) {
			due = append(due, deal)
		}
	}

	return due
}

// MaxID — наибольший номер среди прочитанных сделок, 0 для пустого набора.
func MaxID(deals []entity.Deal) int {
	maxID := 0

	for _, deal := range deals {
		if deal.ID > maxID {
			maxID = deal.ID
		}
	}

	return maxID
}

// ReadMaxAllocator — аллокатор по умолчанию: max(id)+1 по только что
// прочитанным записям, 1 для пустого хранилища.
type ReadMaxAllocator struct{}

func (ReadMaxAllocator) NextID(_ context.Context, existing []entity.Deal) (int, error) {
	return MaxID(existing) + 1, nil
}
