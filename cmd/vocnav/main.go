package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/auth"
	"github.com/alexanderramin/vocnav/internal/calculator"
	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/checklist"
	"github.com/alexanderramin/vocnav/internal/cli"
	"github.com/alexanderramin/vocnav/internal/config"
	"github.com/alexanderramin/vocnav/internal/db"
	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/metrics"
	"github.com/alexanderramin/vocnav/internal/navigation"
	"github.com/alexanderramin/vocnav/internal/remote"
	"github.com/alexanderramin/vocnav/internal/service"
	"github.com/alexanderramin/vocnav/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	store := storage.NewAdapter(database, logger)

	plans, closeRemote, err := openRemote(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRemote()

	cat, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}

	// Observers
	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger)}
	var metricsObs *metrics.Observer
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metricsObs = metrics.NewObserver(reg)
		observers = append(observers, metricsObs)
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg, logger); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}
	observer := service.CombineObservers(observers...)

	shell, err := app.New(app.Deps{
		Plan: service.NewPlanManager(store, plans,
			checklist.NewTemplates(checklist.WithSiteLookup(cat.Website)),
			service.WithPlanLogger(logger), service.WithPlanObserver(observer)),
		Achievements: service.NewAchievementService(store,
			service.WithAchievementLogger(logger), service.WithAchievementObserver(observer)),
		Navigation: navigation.New(),
		Calculator: calculator.New(store, logger),
		Catalog:    cat,
		Store:      store,
	}, app.WithLogger(logger), app.WithWatchThreshold(cfg.WatchThreshold))
	if err != nil {
		return fmt.Errorf("wiring app: %w", err)
	}
	defer func() {
		if err := shell.Close(); err != nil {
			logger.Warn("closing app", zap.Error(err))
		}
	}()
	if metricsObs != nil {
		metricsObs.SetPlanItems(len(shell.Plan()))
		defer shell.OnPlanChange(func(items []domain.PlanItem) { metricsObs.SetPlanItems(len(items)) })()
	}

	a := &cli.App{Shell: shell, Logger: logger}
	if cfg.SessionsEnabled() {
		provider, err := auth.NewFileProvider(cfg.SessionFile, cfg.JWTSecret, logger)
		if err != nil {
			return fmt.Errorf("creating session provider: %w", err)
		}
		a.Provider = provider
		a.Sessions = &cli.FileSessions{Provider: provider, Path: cfg.SessionFile, Secret: cfg.JWTSecret, TTL: cfg.SessionTTL}
	} else {
		a.Sessions = cli.NewManualSessions("")
	}

	// Detect interactive terminal for the TUI entrypoint.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// openRemote connects the configured remote plan store. The returned close
// function is always safe to call.
func openRemote(ctx context.Context, cfg *config.Config, logger *zap.Logger) (remote.PlanService, func(), error) {
	switch cfg.Remote {
	case config.RemoteMemory:
		return remote.NewMemory(), func() {}, nil
	case config.RemotePostgres:
		pool, err := remote.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := remote.MigratePostgres(pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrating postgres: %w", err)
		}
		return remote.NewPostgres(pool, logger), pool.Close, nil
	case config.RemoteRedis:
		client, err := remote.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return remote.NewRedis(client, logger), func() { _ = client.Close() }, nil
	}
	return remote.Offline{}, func() {}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
