package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SAHU-01/VisaVerse/internal/envstruct"
	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/kb"
	"github.com/SAHU-01/VisaVerse/internal/logging"
	"github.com/SAHU-01/VisaVerse/internal/pprofserver"
	"github.com/SAHU-01/VisaVerse/internal/preferences"
	"github.com/SAHU-01/VisaVerse/internal/repositories"
	"github.com/SAHU-01/VisaVerse/internal/sqlite"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	store          *preferences.Store
	kbClient       *kb.Client
	history        *repositories.HistoryRepository
}

type config struct {
	// Addr is the address the server listens on. Use port 0 to let the OS
	// allocate a free port.
	Addr string `env:"VISAVERSE_ADDR" envDefault:"localhost:4000"`
	// PprofPort is the localhost pprof port. Empty disables pprof.
	PprofPort string `env:"VISAVERSE_PPROF_PORT" envDefault:":6060"`
	// SQLiteURL is the SQLite database path, ":memory:" for an in-memory database.
	SQLiteURL string `env:"VISAVERSE_SQLITE_URL" envDefault:"./visaverse.sqlite"`
	// KBURL is the knowledge-base answer endpoint. Fixed configuration,
	// never user-configurable at runtime.
	KBURL string `env:"VISAVERSE_KB_URL" envDefault:"https://crossborder-compliance-kb-backend.onrender.com/kb/answer"`
}

// run wires the application and starts the server. lookupEnv is injected so
// tests can provide their own environment.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse configuration")
	}

	if cfg.PprofPort != "" {
		// pprof listens on localhost so that it's not open to the world.
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", cfg.SQLiteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		store:          preferences.NewStore(repositories.NewPreferenceRepository(db, logger)),
		kbClient:       kb.NewClient(cfg.KBURL, logger),
		history:        repositories.NewHistoryRepository(db, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   true,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	// A missing .env file is fine, e.g. in production the environment is
	// provided by the platform.
	if err := godotenv.Load(); err != nil {
		logger.LogAttrs(ctx, slog.LevelDebug, "no .env file loaded")
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server error", errors.SlogError(err))
		os.Exit(1)
	}
}
