package sheets

import (
	"strconv"

	"crm_bot/internal/domain/entity"
)

// Строка листа — 11 колонок A:K. Колонка F исторически пустует, но форму
// строки менять нельзя: таблицу читают люди и фильтры поверх неё.
const (
	colID = iota
	colCreatedDate
	colName
	colPhone
	colNeed
	colUnused
	colPrice
	colStatus
	colDueDate
	colComment
	colSource

	rowWidth = 11
)

func rowFromDeal(deal entity.Deal) []string {
	row := make([]string, rowWidth)

	row[colID] = strconv.Itoa(deal.ID)
	row[colCreatedDate] = deal.CreatedDate
	row[colName] = deal.Name
	row[colPhone] = deal.Phone
	row[colNeed] = deal.Need
	row[colPrice] = deal.Price
	row[colStatus] = deal.Status
	row[colDueDate] = deal.DueDate
	row[colComment] = deal.Comment
	row[colSource] = deal.Source

	return row
}

// dealFromRow разбирает строку листа. Строка без числового номера в первой
// колонке (шапка, мусор) — не сделка.
func dealFromRow(row []string) (entity.Deal, bool) {
	id, err := strconv.Atoi(cell(row, colID))
	if err != nil {
		return entity.Deal{}, false
	}

	return entity.Deal{
		ID:          id,
		CreatedDate: cell(row, colCreatedDate),
		Name:        cell(row, colName),
		Phone:       cell(row, colPhone),
		Need:        cell(row, colNeed),
		Price:       cell(row, colPrice),
		Status:      cell(row, colStatus),
		DueDate:     cell(row, colDueDate),
		Comment:     cell(row, colComment),
		Source:      cell(row, colSource),
	}, true
}

// Sheets опускает пустые ячейки в конце строки.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}

	return row[i]
}
