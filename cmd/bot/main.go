package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/margianalogistics/logibot/internal/bot"
	"github.com/margianalogistics/logibot/internal/notify"
	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/internal/report"
	"github.com/margianalogistics/logibot/internal/scheduler"
	"github.com/margianalogistics/logibot/internal/subscription"
	"github.com/margianalogistics/logibot/internal/syncsvc"
	"github.com/margianalogistics/logibot/internal/transport/telegram"
	"github.com/margianalogistics/logibot/pkg/blob"
	"github.com/margianalogistics/logibot/pkg/config"
	"github.com/margianalogistics/logibot/pkg/httpserver"
	"github.com/margianalogistics/logibot/pkg/logger"
	"github.com/margianalogistics/logibot/pkg/pg"
	"github.com/margianalogistics/logibot/pkg/redis"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"logibot"`

	NotifyTick  time.Duration `env:"NOTIFY_TICK" envDefault:"5m"`
	NotifyLead  time.Duration `env:"NOTIFY_DEFAULT_LEAD" envDefault:"48h"`
	OrderCache  time.Duration `env:"ORDER_CACHE_TTL" envDefault:"2m"`
	ContactInfo string        `env:"CONTACT_INFO"`
	AdminChats  []string      `env:"ADMIN_CHAT_IDS"`

	DB       pg.Config
	Redis    redis.Config
	HTTP     httpserver.Config
	Blob     blob.Config
	Telegram telegram.Config
	Sync     syncsvc.Config
}

func main() {
	if err := run(); err != nil &&
		!errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Environment, cfg.ServiceName),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres.
	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Redis.
	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	// Blob storage for report archives.
	reportStore, err := newBlobStorage(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("init blob storage: %w", err)
	}

	// Domain wiring.
	orders := order.NewCachedStore(order.NewRepository(pool), rdb, cfg.OrderCache, log)
	subs := subscription.NewPGRegistry(pool)
	records := notify.NewPGStorage(pool)

	engine := notify.NewEngine(orders, subs, records,
		notify.WithDefaultLead(cfg.NotifyLead),
		notify.WithEngineLogger(log))

	tg, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("init telegram client: %w", err)
	}

	dispatcher := notify.NewDispatcher(tg, engine,
		notify.WithDispatcherLogger(log))

	archiver := report.NewArchiver(reportStore, report.WithArchiverLogger(log))

	chatBot := bot.New(orders, subs, archiver, tg,
		bot.WithDefaultLead(cfg.NotifyLead),
		bot.WithContacts(cfg.ContactInfo),
		bot.WithAdmins(cfg.AdminChats),
		bot.WithBotLogger(log),
		bot.WithHealthchecks(map[string]bot.Healthcheck{
			"postgres": pg.Healthcheck(pool),
			"redis":    redis.Healthcheck(rdb),
		}))

	// Notification loop: compute due reminders, then dispatch.
	notifyLoop, err := scheduler.New("notifications", cfg.NotifyTick,
		func(ctx context.Context) error {
			due, err := engine.ComputeDue(ctx, time.Now())
			if err != nil {
				return err
			}
			dispatcher.Dispatch(ctx, due)
			return nil
		},
		scheduler.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return notifyLoop.Run(ctx) })

	// Order sync runs only when the upstream API is configured.
	if cfg.Sync.Enabled() {
		importer := syncsvc.NewImporter(syncsvc.NewClient(cfg.Sync), orders,
			syncsvc.WithImporterLogger(log))
		syncLoop, err := scheduler.New("order-sync", cfg.Sync.Interval, importer.Run,
			scheduler.WithLogger(log))
		if err != nil {
			return err
		}
		g.Go(func() error { return syncLoop.Run(ctx) })
	} else {
		log.InfoContext(ctx, "order sync disabled, SYNC_API_URL not set")
	}

	// Telegram update loop.
	updates, stopPolling, err := tg.Updates(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("start telegram polling: %w", err)
	}
	g.Go(func() error {
		defer stopPolling()
		return chatBot.Run(ctx, updates)
	})

	// Health endpoints.
	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	router := healthRouter(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(rdb))
	g.Go(func() error {
		return srv.Run(ctx, router)
	})

	log.InfoContext(ctx, "service started",
		logger.Component(cfg.ServiceName))

	return g.Wait()
}

func newBlobStorage(ctx context.Context, cfg blob.Config) (blob.Storage, error) {
	if cfg.Backend == "s3" {
		return blob.NewS3Storage(ctx, cfg)
	}
	return blob.NewLocalStorage(cfg.LocalDir)
}

func healthRouter(ctx context.Context, log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health/live", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(ctx, log, checks...))
	return r
}
