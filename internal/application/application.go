package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"crm_bot/internal/config"
	"crm_bot/internal/domain/access"
	"crm_bot/internal/domain/service/crm"
	"crm_bot/internal/infrastructure/notifier"
	"crm_bot/internal/infrastructure/persistence"
	"crm_bot/internal/infrastructure/sheets"
	"crm_bot/internal/transport/webhook"
	"crm_bot/internal/worker"
	"crm_bot/pkg/application/connectors"
	"crm_bot/pkg/application/modules"
	"crm_bot/pkg/logx"
	"crm_bot/pkg/middlewarex"
)

const appName = "crm-bot"

func Run(ctx context.Context, log *slog.Logger, version string) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// 2. Record store
	store, closeStore, err := newRecordStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newRecordStore: %w", err)
	}

	if closeStore != nil {
		defer closeStore()
	}

	// 3. ID allocation
	ids, err := newIDAllocator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newIDAllocator: %w", err)
	}

	// 4. Domain service and delivery gateway
	deals := crm.NewService(store, ids)
	gateway := notifier.NewTelegramBot(cfg.Bot.Token)
	guard := access.NewGuard(cfg.Bot.ChatID)

	// 5. Webhook HTTP server
	webhookServer := webhook.NewServer(cfg, guard, deals, gateway)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.Recovery,
	)
	webhookServer.RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	// 6. Probe and metrics
	modules.ProbeServer{
		Name:          appName,
		Version:       version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Server.MetricsListenAddress,
	}.Run(ctx, g)

	// 7. Daily reminder
	if cfg.Reminder.Enabled {
		if err := runReminder(ctx, g, cfg, deals, gateway); err != nil {
			return fmt.Errorf("runReminder: %w", err)
		}
	}

	log.Info("application started", slog.String("store-backend", cfg.Store.Backend))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// newRecordStore выбирает бэкенд хранилища. Таблица — по умолчанию; её клиент
// ленивый, поэтому отсутствие SHEET_ID или ключа всплывёт при первом
// обращении, а не на старте.
func newRecordStore(ctx context.Context, cfg config.Config) (crm.RecordStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendSheets:
		return sheets.NewStore(cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsJSON), nil, nil

	case config.StoreBackendPostgres:
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		db := pg.Client(ctx)
		if err := db.PingContext(ctx); err != nil {
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}

		return persistence.NewDealRepository(db), func() { pg.Close(ctx) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newIDAllocator: по умолчанию max(id)+1 по только что прочитанным записям —
// с известной гонкой двух одновременных созданий; счётчик в Redis гонку
// закрывает.
func newIDAllocator(ctx context.Context, cfg config.Config) (crm.IDAllocator, error) {
	switch cfg.Store.IDAllocator {
	case config.IDAllocatorReadMax:
		return crm.ReadMaxAllocator{}, nil

	case config.IDAllocatorRedis:
		rd := &connectors.Redis{
			Address:        cfg.Redis.Address,
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DatabaseNumber: cfg.Redis.DB,
		}

		return persistence.NewRedisIDAllocator(rd.Client(ctx)), nil

	default:
		return nil, fmt.Errorf("unknown id allocator %q", cfg.Store.IDAllocator)
	}
}

func runReminder(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	deals *crm.Service,
	gateway *notifier.TelegramBot,
) error {
	chatID, err := strconv.ParseInt(cfg.Bot.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("CHAT_ID is not numeric: %w", err)
	}

	reminder := worker.NewReminder(deals, gateway, chatID)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g,
		modules.AsynqQueues{"default": 1},
		modules.AsynqHandler{Pattern: worker.TaskDailyReminder, Handle: reminder.Handle},
	)

	return modules.AsynqScheduler{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g, modules.AsynqScheduledTask{
		Cronspec: cfg.Reminder.Cronspec,
		Task:     worker.NewDailyReminderTask(),
	})
}
