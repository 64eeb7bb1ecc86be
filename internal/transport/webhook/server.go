package webhook

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crm_bot/internal/config"
	"crm_bot/internal/domain/access"
	"crm_bot/internal/domain/entity"
	"crm_bot/pkg/contextx"
	"crm_bot/pkg/httpx/reply"
	"crm_bot/pkg/rest"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type dealService interface {
	CreateDeal(ctx context.Context, text string) (entity.Deal, error)
	ListDeals(ctx context.Context) ([]entity.Deal, error)
	DueDeals(ctx context.Context) ([]entity.Deal, error)
}

type messageGateway interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Server обслуживает единственный вебхук-эндпоинт: POST с апдейтом и GET со
// статусом конфигурации.
type Server struct {
	guard   access.Guard
	deals   dealService
	gateway messageGateway
	health  rest.Health
}

func NewServer(
	cfg config.Config,
	guard access.Guard,
	deals dealService,
	gateway messageGateway,
) Server {
	return Server{
		guard:   guard,
		deals:   deals,
		gateway: gateway,
		health:  newHealth(cfg),
	}
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/webhook", func(r chi.Router) {
		r.Get("/", s.getHealth)
		r.Post("/", s.postUpdate)
	})
}

// Статус считается один раз при старте: значения окружения после запуска не
// меняются, а эндпоинт не должен трогать коллабораторов.
func newHealth(cfg config.Config) rest.Health {
	return rest.Health{
		Status: "running",
		Token:  presence(cfg.Bot.Token),
		Chat:   presence(cfg.Bot.ChatID),
		Sheet:  presence(cfg.Sheets.SpreadsheetID),
		Creds:  presence(cfg.Sheets.CredentialsJSON),
	}
}

func presence(value string) string {
	if value == "" {
		return rest.ValueMissing
	}

	return rest.ValueSet
}

func (s Server) getHealth(w http.ResponseWriter, r *http.Request) {
	reply.JSON(r.Context(), w, http.StatusOK, s.health)
}
