package persistence

import (
	"crm_bot/internal/domain/entity"
)

// dealSchema — представление таблицы deals в БД. Даты хранятся текстом в том
// же виде, что и в табличном хранилище, чтобы смена бэкенда не меняла формат
// данных. seq — порядок дозаписи, он же порядок создания.
type dealSchema struct {
	Seq         int64  `db:"seq"`
	DealID      int    `db:"deal_id"`
	CreatedDate string `db:"created_date"`
	Name        string `db:"name"`
	Phone       string `db:"phone"`
	Need        string `db:"need"`
	Price       string `db:"price"`
	Status      string `db:"status"`
	DueDate     string `db:"due_date"`
	Comment     string `db:"comment"`
	Source      string `db:"source"`
}

func fromDeal(deal entity.Deal) dealSchema {
	return dealSchema{
		DealID:      deal.ID,
		CreatedDate: deal.CreatedDate,
		Name:        deal.Name,
		Phone:       deal.Phone,
		Need:        deal.Need,
		Price:       deal.Price,
		Status:      deal.Status,
		DueDate:     deal.DueDate,
		Comment:     deal.Comment,
		Source:      deal.Source,
	}
}

func (s dealSchema) toDomain() entity.Deal {
	return entity.Deal{
		ID:          s.DealID,
		CreatedDate: s.CreatedDate,
		Name:        s.Name,
		Phone:       s.Phone,
		Need:        s.Need,
		Price:       s.Price,
		Status:      s.Status,
		DueDate:     s.DueDate,
		Comment:     s.Comment,
		Source:      s.Source,
	}
}
