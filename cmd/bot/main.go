package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/subosito/gotenv"

	"github.com/Spok95/catalog-bot/internal/bot"
	"github.com/Spok95/catalog-bot/internal/config"
	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/items"
	"github.com/Spok95/catalog-bot/internal/domain/media"
	"github.com/Spok95/catalog-bot/internal/domain/users"
	"github.com/Spok95/catalog-bot/internal/engine"
	"github.com/Spok95/catalog-bot/internal/infra/db"
	httpx "github.com/Spok95/catalog-bot/internal/infra/http"
	"github.com/Spok95/catalog-bot/internal/infra/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

// dialogStore хранилище сессий по dialog.backend. Второй результат закрывает клиента.
func dialogStore(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, log *slog.Logger) (dialog.Store, func(), error) {
	switch cfg.Dialog.Backend {
	case config.DialogPostgres:
		return dialog.NewRepo(pool, cfg.Dialog.TTL), func() {}, nil
	case config.DialogRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		log.Info("redis connected", "addr", cfg.Redis.Addr)
		return dialog.NewRedisStore(rdb, cfg.Dialog.TTL), func() { _ = rdb.Close() }, nil
	}
	mem := dialog.NewMemoryStore(cfg.Dialog.TTL)
	go mem.RunSweeper(ctx, time.Minute)
	return mem, func() {}, nil
}

func main() {
	// .env не обязателен
	_ = gotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/example.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	states, closeStates, err := dialogStore(ctx, cfg, pool, log)
	if err != nil {
		log.Error("dialog store init failed", "backend", cfg.Dialog.Backend, "err", err)
		return
	}
	defer closeStates()

	phone, _ := cfg.PhoneRegexp() // уже проверен в Validate
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn("unknown timezone, using UTC", "tz", cfg.App.Timezone, "err", err)
		loc = time.UTC
	}

	eng := engine.New(log,
		catalog.NewRepo(pool), items.NewRepo(pool), media.NewRepo(pool), inquiries.NewRepo(pool),
		states,
		engine.Options{PhonePattern: phone, SearchLimit: cfg.Catalog.SearchLimit, Location: loc},
	)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram authorized", "username", api.Self.UserName)

	b := bot.New(api, log, eng, users.NewRepo(pool), cfg.Telegram.AdminChatID, cfg.Telegram.Workers)
	eng.SetNotifier(b)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := b.Run(ctx, cfg.Telegram.Timeout); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("bot stopped", "err", err)
		}
	}()
	log.Info("bot started", "workers", cfg.Telegram.Workers, "dialog_backend", cfg.Dialog.Backend)

	<-ctx.Done()
	<-done
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
