package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/avirtanen/gymprogress/internal/advice"
	"github.com/avirtanen/gymprogress/internal/envstruct"
	"github.com/avirtanen/gymprogress/internal/errors"
	"github.com/avirtanen/gymprogress/internal/logging"
	"github.com/avirtanen/gymprogress/internal/sqlite"
	"github.com/avirtanen/gymprogress/internal/trainer"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	trainerService *trainer.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"GYMPROGRESS_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"GYMPROGRESS_SQLITE_URL" envDefault:"./gymprogress.sqlite3"`
	// OpenRouterAPIKey enables the AI coach when set.
	OpenRouterAPIKey string `env:"GYMPROGRESS_OPENROUTER_API_KEY" envDefault:""`
	// AdviceBaseURL overrides the OpenAI-compatible endpoint for the AI coach.
	AdviceBaseURL string `env:"GYMPROGRESS_ADVICE_BASE_URL" envDefault:""`
	// AdviceModel overrides the chat model used for the AI coach.
	AdviceModel string `env:"GYMPROGRESS_ADVICE_MODEL" envDefault:""`
	// SessionLifetimeHours controls how long the browser session lives.
	SessionLifetimeHours int `env:"GYMPROGRESS_SESSION_LIFETIME_HOURS" envDefault:"12"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"GYMPROGRESS_TEMPLATE_PATH" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var advisor trainer.Advisor
	if cfg.OpenRouterAPIKey != "" {
		advisor = advice.NewClient(cfg.OpenRouterAPIKey, cfg.AdviceBaseURL, cfg.AdviceModel, logger)
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db, cfg.SessionLifetimeHours),
		templateFS:     os.DirFS(htmlTemplatePath),
		trainerService: trainer.NewService(db, logger, advisor),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database, lifetimeHours int) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = time.Duration(lifetimeHours) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
