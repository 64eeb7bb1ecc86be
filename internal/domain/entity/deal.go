package entity

import "time"

const (
	// DateLayout — формат записи дат в хранилище. Читаем незападенным
	// вариантом: рука, поправившая ячейку, нулей не дописывает, а "2.1.2006"
	// принимает и "5.3.2026", и "05.03.2026". Запасной — ISO.
	DateLayout         = "02.01.2006"
	dateLayoutRead     = "2.1.2006"
	DateLayoutFallback = "2006-01-02"

	DefaultStatus = "Новая заявка"
	DefaultSource = "Ручной ввод"
)

// Deal — запись воронки продаж. После добавления в хранилище не изменяется и
// не удаляется, весь жизненный цикл append-only.
type Deal struct {
	ID          int
	CreatedDate string
	Name        string
	Phone       string
	Need        string
	Price       string
	Status      string
	DueDate     string
	Comment     string
	Source      string
}

// NewDeal собирает сделку с дефолтами: статус и источник фиксированные,
// срок — следующий календарный день после создания.
func NewDeal(id int, now time.Time, fields DealFields) Deal {
	return Deal{
		ID:          id,
		CreatedDate: now.Format(DateLayout),
		Name:        fields.Name,
		Phone:       fields.Phone,
		Need:        fields.Need,
		Price:       fields.Price,
		Status:      DefaultStatus,
		DueDate:     now.AddDate(0, 0, 1).Format(DateLayout),
		Comment:     fields.Comment,
		Source:      DefaultSource,
	}
}

// DealFields — свободные атрибуты, извлечённые из текста сообщения. Пустая
// строка — валидное значение любого поля.
type DealFields struct {
	Name    string
	Phone   string
	Need    string
	Price   string
	Comment string
}

// Due возвращает срок сделки, приведённый к полуночи. Сначала пробуем формат
// день.месяц.год, затем ISO. Непарсибельная или пустая дата — не ошибка,
// такая запись просто не попадает в задачи.
func (d Deal) Due() (time.Time, bool) {
	if d.DueDate == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{dateLayoutRead, DateLayoutFallback} {
		if due, err := time.Parse(layout, d.DueDate); err == nil {
			return due, true
		}
	}

	return time.Time{}, false
}
