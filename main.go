// Command hear-hear-bot is the entrypoint for the debate timer bot.
// It:
//   - Loads configuration and initializes structured logging.
//   - Optionally connects to Postgres for per-guild settings and runs
//     idempotent migrations (an empty DB_DSN selects the in-memory store).
//   - Connects to the Discord gateway and registers the timer command
//     vocabulary (slash and prefix forms).
//   - Exposes a minimal HTTP server with /healthz, /readyz, /status, /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM: every live timer receives a stop
// and gets a bounded window for its final render.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // G108: pprof endpoints enabled only when ENABLE_PPROF=1
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Taraldinn/hear-hear-bot-sub000/config"
	"github.com/Taraldinn/hear-hear-bot-sub000/db"
	"github.com/Taraldinn/hear-hear-bot-sub000/discord"
	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
	"github.com/Taraldinn/hear-hear-bot-sub000/server"
	"github.com/Taraldinn/hear-hear-bot-sub000/settings"
	"github.com/Taraldinn/hear-hear-bot-sub000/telemetry"
	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.ValidateDiscordReady(); err != nil {
		slog.Error("discord not configured", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("hear-hear-bot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Guild settings: Postgres when a DSN is configured, in-memory otherwise.
	defaultLang := locale.Parse(cfg.DefaultLanguage)
	var store settings.Store
	var database *sql.DB
	if cfg.DBDsn != "" {
		database, err = db.Connect(cfg.DBDsn)
		if err != nil {
			slog.Error("failed to open db", slog.Any("err", err))
			os.Exit(1)
		}
	}
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("failed to close database", slog.Any("err", err))
			}
		}()
		slog.Info("running database migrations", slog.String("component", "db_migrate"))
		if err := db.RunMigrations(database); err != nil {
			slog.Warn("versioned migrations failed, attempting embedded SQL fallback",
				slog.Any("err", err), slog.String("component", "db_migrate"))
			if err := db.Migrate(ctx, database); err != nil {
				slog.Error("failed to migrate db", slog.Any("err", err))
				os.Exit(1)
			}
		}
		store = settings.NewPostgres(database, defaultLang)
	} else {
		slog.Info("DB_DSN not set; guild settings held in memory")
		store = settings.NewMemory(defaultLang)
	}

	// Engine
	reg := timer.NewRegistry()

	// Discord binding (messenger wired after the surface exists)
	surfaceOpts := timer.Options{
		Clock:           timer.RealClock{},
		Lang:            store.Language,
		Logger:          slog.Default(),
		MinEditInterval: cfg.MinEditInterval,
		FinishMediaURL:  cfg.FinishMediaURL,
		ShutdownGrace:   cfg.ShutdownGrace,
		BaseContext:     ctx,
	}
	bot, err := discord.New(cfg, store, slog.Default())
	if err != nil {
		slog.Error("discord setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	surfaceOpts.Messenger = bot.OpenMessenger()
	surface := timer.NewSurface(reg, surfaceOpts)
	bot.SetSurface(surface)

	go func() {
		if err := bot.Run(ctx); err != nil {
			slog.Error("discord gateway exited with error", slog.Any("err", err))
			stop()
		}
	}()

	// Enable pprof profiling endpoints in debug mode (ENABLE_PPROF=1)
	if os.Getenv("ENABLE_PPROF") == "1" {
		pprofAddr := os.Getenv("PPROF_ADDR")
		if pprofAddr == "" {
			pprofAddr = "localhost:6060"
		}
		go func() {
			slog.Info("pprof profiling enabled", slog.String("addr", pprofAddr))
			srv := &http.Server{
				Addr:              pprofAddr,
				Handler:           nil, // default mux exposes /debug/pprof
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("pprof server error", slog.Any("err", err))
			}
		}()
	}

	// HTTP server (health/status/metrics)
	go func() {
		if err := server.Start(ctx, database, reg, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Block until shutdown signal, then give drivers their final render window.
	<-ctx.Done()
	slog.Info("shutting down")
	surface.Shutdown()
}
