package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"crm_bot/internal/domain"
	"crm_bot/internal/domain/entity"
	"crm_bot/pkg/errcodes"
	"crm_bot/pkg/lox"
)

// DealRepository — альтернативный бэкенд хранилища сделок поверх Postgres.
// Семантика та же, что у листа: только чтение всего и дозапись в конец,
// строки не обновляются и не удаляются.
type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// ReadAll возвращает сделки в порядке дозаписи.
func (r *DealRepository) ReadAll(ctx context.Context) ([]entity.Deal, error) {
	query := `
		SELECT seq, deal_id, created_date, name, phone, need, price, status, due_date, comment, source
		FROM deals
		ORDER BY seq`

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to read deals")
	}

	return lox.Map(schemas, dealSchema.toDomain), nil
}

// Append дописывает сделку. Номер сделки намеренно не объявлен уникальным:
// выделение номера — забота аллокатора, хранилище повторяет поведение листа
// и принимает всё, что в него дописали.
func (r *DealRepository) Append(ctx context.Context, deal entity.Deal) error {
	query := `
		INSERT INTO deals (deal_id, created_date, name, phone, need, price, status, due_date, comment, source)
		VALUES (:deal_id, :created_date, :name, :phone, :need, :price, :status, :due_date, :comment, :source)`

	if _, err := r.db.NamedExecContext(ctx, query, fromDeal(deal)); err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to append deal")
	}

	return nil
}
