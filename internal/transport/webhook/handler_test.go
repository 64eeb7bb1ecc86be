package webhook_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"crm_bot/internal/config"
	"crm_bot/internal/domain/access"
	"crm_bot/internal/domain/entity"
	"crm_bot/internal/domain/service/crm"
	"crm_bot/internal/transport/webhook"
	"crm_bot/pkg/rest"
	"crm_bot/pkg/tests"
)

const allowedID = "1217838677"

type fakeStore struct {
	deals    []entity.Deal
	readErr  error
	reads    int
	appended []entity.Deal
}

func (s *fakeStore) ReadAll(context.Context) ([]entity.Deal, error) {
	s.reads++

	if s.readErr != nil {
		return nil, s.readErr
	}

	return s.deals, nil
}

func (s *fakeStore) Append(_ context.Context, deal entity.Deal) error {
	s.appended = append(s.appended, deal)
	return nil
}

type fakeGateway struct {
	chatIDs []int64
	texts   []string
}

func (g *fakeGateway) SendText(_ context.Context, chatID int64, text string) error {
	g.chatIDs = append(g.chatIDs, chatID)
	g.texts = append(g.texts, text)

	return nil
}

type env struct {
	store   *fakeStore
	gateway *fakeGateway
	client  tests.APIClient
}

func newEnv(t *testing.T, store *fakeStore) env {
	t.Helper()

	cfg := config.Config{}
	cfg.Bot.Token = "1234567890:test-token"
	cfg.Bot.ChatID = allowedID
	cfg.Sheets.SpreadsheetID = "sheet-id"
	cfg.Sheets.CredentialsJSON = `{}`

	gateway := &fakeGateway{}

	deals := crm.NewService(store, crm.ReadMaxAllocator{}).
		WithClock(func() time.Time {
			return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
		})

	server := webhook.NewServer(cfg, access.NewGuard(cfg.Bot.ChatID), deals, gateway)

	router := chi.NewRouter()
	server.RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return env{
		store:   store,
		gateway: gateway,
		client:  tests.NewAPIClient(httpServer.URL, nil),
	}
}

func update(fromID int64, text string) telego.Update {
	return telego.Update{
		UpdateID: 1,
		Message: &telego.Message{
			MessageID: 1,
			Chat:      telego.Chat{ID: 99, Type: telego.ChatTypePrivate},
			From:      &telego.User{ID: fromID},
			Text:      text,
		},
	}
}

func TestWebhookSkipsUpdateWithoutMessage(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, &fakeStore{})

	var ack rest.Ack

	resp, err := e.client.Post(context.Background(), "/webhook", nil, telego.Update{UpdateID: 1}, &ack, &ack)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.Ack{OK: true, Skip: "no message"}, ack)
	rq.Empty(e.gateway.texts)
	rq.Zero(e.store.reads)
}

func TestWebhookSkipsUnreadableBody(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, &fakeStore{})

	var ack rest.Ack

	resp, err := e.client.PostJSON(context.Background(), "/webhook", nil, "{broken", &ack, &ack)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.Ack{OK: true, Skip: "no message"}, ack)
	rq.Empty(e.gateway.texts)
}

func TestWebhookSkipsWrongUser(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, &fakeStore{})

	var ack rest.Ack

	resp, err := e.client.Post(context.Background(), "/webhook", nil, update(42, "/list"), &ack, &ack)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.Ack{OK: true, Skip: "wrong user"}, ack)
	rq.Empty(e.gateway.texts)
	rq.Zero(e.store.reads)
}

func TestWebhookCreateDealScenario(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, &fakeStore{})

	var ack rest.Ack

	resp, err := e.client.Post(
		context.Background(),
		"/webhook",
		nil,
		update(1217838677, "Имя: Анна\nТелефон: 123\nНужно: сайт\nЦена: 1000"),
		&ack,
		&ack,
	)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.Ack{OK: true}, ack)

	rq.Len(e.store.appended, 1)
	deal := e.store.appended[0]
	rq.Equal(1, deal.ID)
	rq.Equal("16.03.2026", deal.DueDate)
	rq.Equal("Новая заявка", deal.Status)

	rq.Equal([]int64{99}, e.gateway.chatIDs)
	rq.Len(e.gateway.texts, 1)
	rq.Contains(e.gateway.texts[0], "#1")
	rq.Contains(e.gateway.texts[0], "Анна")
	rq.Contains(e.gateway.texts[0], "123")
}

func TestWebhookListAndTodayReplies(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{deals: []entity.Deal{
		{ID: 1, Name: "Анна", Phone: "123", Status: "Новая заявка", DueDate: "14.03.2026"},
		{ID: 2, Name: "Борис", Phone: "456", Status: "Новая заявка", DueDate: "20.03.2026"},
	}}

	e := newEnv(t, store)

	var ack rest.Ack

	_, err := e.client.Post(context.Background(), "/webhook", nil, update(1217838677, "/list"), &ack, &ack)
	rq.NoError(err)
	rq.Equal(rest.Ack{OK: true}, ack)

	_, err = e.client.Post(context.Background(), "/webhook", nil, update(1217838677, "/today"), &ack, &ack)
	rq.NoError(err)
	rq.Equal(rest.Ack{OK: true}, ack)

	rq.Len(e.gateway.texts, 2)
	rq.Contains(e.gateway.texts[0], "#1 Анна — Новая заявка")
	rq.Contains(e.gateway.texts[0], "#2 Борис — Новая заявка")
	rq.Contains(e.gateway.texts[1], "#1 Анна 123")
	rq.NotContains(e.gateway.texts[1], "Борис")
}

func TestWebhookTodayWithoutTasksSendsExactlyOneReply(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, &fakeStore{})

	var ack rest.Ack

	_, err := e.client.Post(context.Background(), "/webhook", nil, update(1217838677, "/today"), &ack, &ack)
	rq.NoError(err)

	rq.Equal(rest.Ack{OK: true}, ack)
	rq.Equal([]string{"✅ Задач на сегодня нет"}, e.gateway.texts)
}

func TestWebhookStoreFailureAcknowledged(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, &fakeStore{readErr: errors.New("store unreachable")})

	var ack rest.Ack

	resp, err := e.client.Post(context.Background(), "/webhook", nil, update(1217838677, "/list"), &ack, &ack)
	rq.NoError(err)

	// Сбой коллаборатора не превращается в не-200: транспорт не должен
	// ретраить апдейт.
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(ack.OK)
	rq.Contains(ack.Error, "store unreachable")
	rq.Empty(e.gateway.texts)
}

func TestWebhookHealth(t *testing.T) {
	t.Run("All values set", func(t *testing.T) {
		rq := require.New(t)
		e := newEnv(t, &fakeStore{})

		var health rest.Health

		resp, err := e.client.Get(context.Background(), "/webhook", nil, &health, &health)
		rq.NoError(err)

		rq.Equal(http.StatusOK, resp.StatusCode)
		rq.Equal(rest.Health{
			Status: "running",
			Token:  "SET",
			Chat:   "SET",
			Sheet:  "SET",
			Creds:  "SET",
		}, health)
		rq.Zero(e.store.reads)
	})

	t.Run("All values missing", func(t *testing.T) {
		rq := require.New(t)
		store := &fakeStore{}
		gateway := &fakeGateway{}

		server := webhook.NewServer(
			config.Config{},
			access.NewGuard(""),
			crm.NewService(store, crm.ReadMaxAllocator{}),
			gateway,
		)

		router := chi.NewRouter()
		server.RegisterRoutes(router)

		httpServer := httptest.NewServer(router)
		defer httpServer.Close()

		var health rest.Health

		resp, err := tests.NewAPIClient(httpServer.URL, nil).
			Get(context.Background(), "/webhook", nil, &health, &health)
		rq.NoError(err)

		rq.Equal(http.StatusOK, resp.StatusCode)
		rq.Equal(rest.Health{
			Status: "running",
			Token:  "MISSING",
			Chat:   "MISSING",
			Sheet:  "MISSING",
			Creds:  "MISSING",
		}, health)
		rq.Zero(store.reads)
	})
}
