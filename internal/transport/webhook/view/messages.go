package view

import (
	"fmt"
	"strings"

	"crm_bot/internal/domain/entity"
	"crm_bot/pkg/lox"
)

const StartMessage = "👋 Привет! CRM-бот ФС\n\n" +
	"Команды:\n" +
	"/list — все сделки\n" +
	"/today — задачи на сегодня\n\n" +
	"Для новой сделки:\n" +
	"Имя: ...\n" +
	"Телефон: ...\n" +
	"Нужно: ...\n" +
	"Цена: ...\n" +
	"Комментарий: ..."

const UnknownMessage = "Не понял. Напишите /start для списка команд"

const (
	noDealsMessage    = "Сделок пока нет"
	noTasksMessage    = "✅ Задач на сегодня нет"
	dealListHeader    = "📋 Все сделки:\n\n"
	todayTasksHeader  = "📅 На сегодня:\n\n"
	dealCreatedFormat = "✅ Сделка #%d создана!\n%s / %s\n%s / %s"
)

// DealCreated — подтверждение создания: номер, имя, телефон, потребность, цена.
func DealCreated(deal entity.Deal) string {
	return fmt.Sprintf(dealCreatedFormat, deal.ID, deal.Name, deal.Phone, deal.Need, deal.Price)
}

// DealList — по строке на сделку в порядке создания.
func DealList(deals []entity.Deal) string {
	if len(deals) == 0 {
		return noDealsMessage
	}

	lines := lox.Map(deals, func(deal entity.Deal) string {
		return fmt.Sprintf("#%d %s — %s", deal.ID, deal.Name, deal.Status)
	})

	return dealListHeader + strings.Join(lines, "\n")
}

// TodayTasks — сделки со сроком сегодня или раньше.
func TodayTasks(deals []entity.Deal) string {
	if len(deals) == 0 {
		return noTasksMessage
	}

	lines := lox.Map(deals, func(deal entity.Deal) string {
		return fmt.Sprintf("#%d %s %s", deal.ID, deal.Name, deal.Phone)
	})

	return todayTasksHeader + strings.Join(lines, "\n")
}
