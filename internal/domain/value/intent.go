package value

import "strings"

// Intent — распознанное назначение входящего сообщения.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentStart
	IntentListDeals
	IntentTodayTasks
	IntentCreateDeal
)

func (i Intent) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentListDeals:
		return "list_deals"
	case IntentTodayTasks:
		return "today_tasks"
	case IntentCreateDeal:
		return "create_deal"
	default:
		return "unknown"
	}
}

// Метка, с которой начинается текст новой сделки.
const createDealLabel = "имя:"

// ClassifyIntent тотальна: любой текст попадает ровно в один интент.
// Команда распознаётся по первому токену (суффикс @botname отбрасывается)
// и всегда побеждает текст сделки, даже если дальше в сообщении есть "/".
func ClassifyIntent(text string) Intent {
	token := text
	if i := strings.IndexAny(token, " \t\n\r"); i >= 0 {
		token = token[:i]
	}

	if i := strings.IndexByte(token, '@'); i >= 0 {
		token = token[:i]
	}

	switch strings.ToLower(token) {
	case "/start":
		return IntentStart
	case "/list":
		return IntentListDeals
	case "/today":
		return IntentTodayTasks
	}

	if strings.HasPrefix(strings.ToLower(text), createDealLabel) {
		return IntentCreateDeal
	}

	return IntentUnknown
}
