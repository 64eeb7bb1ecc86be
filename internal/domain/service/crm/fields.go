package crm

import (
	"strings"

	"crm_bot/internal/domain/entity"
)

// Метки полей сделки в тексте сообщения, вместе с разделителем.
const (
	labelName    = "имя:"
	labelPhone   = "телефон:"
	labelNeed    = "нужно:"
	labelPrice   = "цена:"
	labelComment = "комментарий:"
)

// ParseFields извлекает поля сделки из текста построчно. Значение — всё после
// первого ":", без крайних пробелов. Метка сравнивается без учёта регистра.
// Строки без известной метки игнорируются; повторная метка перетирает
// предыдущее значение — это принятое упрощение формата, не баг.
func ParseFields(text string) entity.DealFields {
	var fields entity.DealFields

	for _, line := range strings.Split(text, "\n") {
		value := ""
		if i := strings.IndexByte(line, ':'); i >= 0 {
			value = strings.TrimSpace(line[i+1:])
		}

		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, labelName):
			fields.Name = value
		case strings.HasPrefix(lower, labelPhone):
			fields.Phone = value
		case strings.HasPrefix(lower, labelNeed):
			fields.Need = value
		case strings.HasPrefix(lower, labelPrice):
			fields.Price = value
		case strings.HasPrefix(lower, labelComment):
			fields.Comment = value
		}
	}

	return fields
}
