package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mymmrac/telego"

	"crm_bot/internal/domain"
	"crm_bot/internal/domain/value"
	"crm_bot/internal/transport/webhook/view"
	"crm_bot/pkg/contextx"
	"crm_bot/pkg/errcodes"
	"crm_bot/pkg/httpx/reply"
	"crm_bot/pkg/httpx/req"
	"crm_bot/pkg/logx"
	"crm_bot/pkg/metrics"
	"crm_bot/pkg/rest"
)

const (
	skipNoMessage = "no message"
	skipWrongUser = "wrong user"
)

// postUpdate обрабатывает один апдейт от начала до конца. Транспорту всегда
// уходит 200: не-200 заставит Telegram доставлять апдейт повторно, и один
// сбойный апдейт превратится в шторм ретраев. Любой внутренний сбой попадает
// в ack, отправитель в этом случае ответа не получает.
func (s Server) postUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metrics.UpdatesReceived.Inc()

	var update telego.Update

	// Нечитаемое тело и тело без message неразличимы для бота: и то и другое
	// молча пропускаем.
	if err := req.Read(r, &update); err != nil || update.Message == nil {
		s.ackSkip(ctx, w, skipNoMessage)
		return
	}

	msg := update.Message

	senderID := ""
	if msg.From != nil {
		senderID = strconv.FormatInt(msg.From.ID, 10)
	}

	// Неавторизованный отправитель не получает ничего, даже отказа: бот не
	// выдаёт своё существование посторонним.
	if !s.guard.Authorize(senderID) {
		s.ackSkip(ctx, w, skipWrongUser)
		return
	}

	ctx = contextx.WithUserID(ctx, contextx.UserID(senderID))

	if err := s.handleMessage(ctx, msg.Chat.ID, msg.Text); err != nil {
		logger(ctx).Error("handleMessage", logx.Error(err), slog.String(logx.FieldErrorCode, errorCode(err)))
		metrics.HandlerFailures.Inc()

		reply.JSON(ctx, w, http.StatusOK, rest.Ack{OK: true, Error: err.Error()})

		return
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Ack{OK: true})
}

// errorCode достаёт доменный код для лога; у ошибок без кода ставим общий.
func errorCode(err error) string {
	if code, ok := domain.GetCode(err); ok {
		return code.String()
	}

	return errcodes.InternalServerError.String()
}

func (s Server) ackSkip(ctx context.Context, w http.ResponseWriter, reason string) {
	metrics.UpdatesSkipped.WithLabelValues(reason).Inc()
	reply.JSON(ctx, w, http.StatusOK, rest.Ack{OK: true, Skip: reason})
}

// handleMessage — маршрутизация по интенту. Сам роутер текста не порождает:
// каждая ветка готовит ответ и отдаёт его в шлюз доставки.
func (s Server) handleMessage(ctx context.Context, chatID int64, text string) error {
	intent := value.ClassifyIntent(text)

	logger(ctx).Info(
		"handling message",
		slog.String(logx.FieldIntent, intent.String()),
		slog.Int64(logx.FieldChatID, chatID),
	)

	replyText, err := s.buildReply(ctx, intent, text)
	if err != nil {
		return err
	}

	if err := s.gateway.SendText(ctx, chatID, replyText); err != nil {
		return fmt.Errorf("gateway.SendText: %w", err)
	}

	metrics.RepliesSent.Inc()

	return nil
}

func (s Server) buildReply(ctx context.Context, intent value.Intent, text string) (string, error) {
	switch intent {
	case value.IntentStart:
		return view.StartMessage, nil

	case value.IntentListDeals:
		deals, err := s.deals.ListDeals(ctx)
		if err != nil {
			return "", fmt.Errorf("deals.ListDeals: %w", err)
		}

		return view.DealList(deals), nil

	case value.IntentTodayTasks:
		deals, err := s.deals.DueDeals(ctx)
		if err != nil {
			return "", fmt.Errorf("deals.DueDeals: %w", err)
		}

		return view.TodayTasks(deals), nil

	case value.IntentCreateDeal:
		deal, err := s.deals.CreateDeal(ctx, text)
		if err != nil {
			return "", fmt.Errorf("deals.CreateDeal: %w", err)
		}

		metrics.DealsCreated.Inc()
		logger(ctx).Info("deal created", slog.Int(logx.FieldDealID, deal.ID))

		return view.DealCreated(deal), nil

	default:
		return view.UnknownMessage, nil
	}
}
