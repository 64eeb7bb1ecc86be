package notifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"crm_bot/internal/domain"
	"crm_bot/pkg/contextx"
	"crm_bot/pkg/errcodes"
	"crm_bot/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TelegramBot доставляет текстовые ответы через Bot API. Клиент создаётся при
// первой отправке: процесс должен подниматься и отвечать на health-запросы и
// с пустым токеном, ошибка всплывёт при первом реальном ответе.
type TelegramBot struct {
	token string

	init    sync.Once
	bot     *telego.Bot
	initErr error
}

func NewTelegramBot(token string) *TelegramBot {
	return &TelegramBot{token: token}
}

func (b *TelegramBot) client() (*telego.Bot, error) {
	b.init.Do(func() {
		bot, err := telego.NewBot(b.token)
		if err != nil {
			b.initErr = domain.WrapError(err, errcodes.ConfigValueMissing, "BOT_TOKEN is not a valid bot token")
			return
		}

		b.bot = bot
	})

	return b.bot, b.initErr
}

// SendText отправляет текст в указанный чат. Ответ Telegram логируется, но не
// интерпретируется; неудачная доставка не повторяется.
func (b *TelegramBot) SendText(ctx context.Context, chatID int64, text string) error {
	bot, err := b.client()
	if err != nil {
		return err
	}

	sent, err := bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text))
	if err != nil {
		return domain.WrapError(err, errcodes.DeliveryFailed, "failed to deliver reply")
	}

	logger(ctx).Debug(
		"reply delivered",
		slog.Int64(logx.FieldChatID, chatID),
		slog.Int("message-id", sent.MessageID),
	)

	return nil
}
