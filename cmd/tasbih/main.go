package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dkalonji/tasbih/internal/cli"
	"github.com/dkalonji/tasbih/internal/clock"
	"github.com/dkalonji/tasbih/internal/db"
	"github.com/dkalonji/tasbih/internal/notify"
	"github.com/dkalonji/tasbih/internal/repository"
	"github.com/dkalonji/tasbih/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tasbih/tasbih.db
	dbPath := os.Getenv("TASBIH_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tasbih", "tasbih.db")
	}

	loc, err := clock.LoadZone(os.Getenv("TASBIH_TZ"))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	// Open database
	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	stateRepo := repository.NewSQLiteAppStateRepo(database)

	uow := db.NewUnitOfWork(database)

	gateway := notify.NewExecGateway(notify.NewLogGateway(logger), logger)
	observer := newObserver()

	recitationSvc := service.NewRecitationService(service.RecitationDeps{
		Settings:    settingsRepo,
		Completions: completionRepo,
		Sessions:    sessionRepo,
		State:       stateRepo,
		UoW:         uow,
		Clock:       clock.NewZoneClock(loc),
		Gateway:     gateway,
		Cues:        service.BellCues{W: os.Stdout, Logger: logger},
		Observer:    observer,
		Logger:      logger,
	})

	app := &cli.App{
		Recitations: recitationSvc,
		Settings:    service.NewSettingsService(settingsRepo, recitationSvc, observer, logger),
		History:     service.NewHistoryService(sessionRepo),
		Intro:       service.NewIntroService(stateRepo),
		Gateway:     gateway,
		Logger:      logger,
	}

	// Detect interactive terminal for the full-screen counter.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// First launch ever gets the getting-started guide before anything else.
	firstLaunch, err := app.Intro.MarkLaunched(context.Background())
	if err != nil {
		logger.Warn("first-launch check failed", "error", err)
	} else if firstLaunch && app.IsInteractive() {
		guide := cli.NewRootCmd(app)
		guide.SetArgs([]string{"intro", "--again"})
		if err := guide.Execute(); err != nil {
			logger.Warn("showing guide failed", "error", err)
		}
		fmt.Println()
	}

	return cli.NewRootCmd(app).Execute()
}

func logLevel() slog.Level {
	if os.Getenv("TASBIH_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// newObserver keeps use-case telemetry off stderr unless debugging is on.
func newObserver() service.UseCaseObserver {
	if os.Getenv("TASBIH_DEBUG") != "" {
		return service.NewLogUseCaseObserver(os.Stderr)
	}
	return service.NoopUseCaseObserver{}
}
