package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/assets"
	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/handlers"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/services/analyzer"
	"github.com/ternarybob/sentinel/internal/services/events"
	"github.com/ternarybob/sentinel/internal/services/feeds"
	"github.com/ternarybob/sentinel/internal/services/llm"
	"github.com/ternarybob/sentinel/internal/services/quotes"
	"github.com/ternarybob/sentinel/internal/services/relevance"
	"github.com/ternarybob/sentinel/internal/services/scheduler"
	"github.com/ternarybob/sentinel/internal/storage/badger"
	"github.com/ternarybob/sentinel/internal/triage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Event bus and monitored-asset catalog
	EventService interfaces.EventService
	Catalog      *assets.Catalog

	// LLM services (fast for triage, deep for analysis)
	LLMServices *llm.Services

	// Pipeline services
	FeedService      *feeds.Service
	AnalyzerService  *analyzer.Service
	QuoteEnricher    *quotes.Enricher
	SchedulerService *scheduler.Service

	// HTTP handlers
	ScanHandler    *handlers.ScanHandler
	AnalyzeHandler *handlers.AnalyzeHandler
	AssetsHandler  *handlers.AssetsHandler
	StatusHandler  *handlers.StatusHandler
	WSHandler      *handlers.WebSocketHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize database
	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Event service must exist before the WebSocket handler, which
	// subscribes to pipeline events for UI broadcast.
	app.EventService = events.NewService(app.Logger)
	app.WSHandler = handlers.NewWebSocketHandler(app.EventService, app.Logger, &app.Config.WebSocket)

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if err := app.SchedulerService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info().
		Int("assets", len(app.Catalog.AssetIDs())).
		Bool("scheduler_enabled", cfg.Scheduler.Enabled).
		Bool("quotes_enabled", app.QuoteEnricher != nil).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order.
func (a *App) initServices() error {
	llmServices, err := llm.NewServices(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM services: %w", err)
	}
	a.LLMServices = llmServices

	a.Catalog = assets.NewCatalog()

	// Triage pipeline: keyword funnel, then the fast model for the
	// headlines that survive it.
	matcher := triage.NewKeywordMatcher(triage.DefaultMatcherConfig())
	funnel := triage.NewFunnel(matcher)
	relevanceSvc := relevance.NewService(a.LLMServices.Fast, relevance.Config{
		Timeout:            a.Config.Triage.RelevanceTimeout,
		FlagScoreThreshold: a.Config.Triage.FlagScoreThreshold,
	}, a.Logger)

	sources, err := feeds.ResolveSources(a.Config.Feeds.SourcesFile)
	if err != nil {
		return fmt.Errorf("failed to load feed sources: %w", err)
	}
	a.Logger.Debug().Int("sources", len(sources)).Msg("Feed sources loaded")

	aggregator := feeds.NewAggregator(&a.Config.Feeds, a.Logger)
	discovery := feeds.NewDiscovery(a.LLMServices.Fast, &a.Config.Feeds, a.Logger)

	a.FeedService = feeds.NewService(
		sources,
		aggregator,
		discovery,
		funnel,
		relevanceSvc,
		a.Catalog,
		a.StorageManager.HeadlineStorage(),
		a.EventService,
		&a.Config.Feeds,
		&a.Config.Triage,
		a.Logger,
	)

	// Quote enrichment is optional; without an API key signals simply
	// carry no live prices.
	var enricher analyzer.QuoteEnricher
	if e := quotes.NewEnricher(&a.Config.Quotes, a.Logger); e != nil {
		a.QuoteEnricher = e
		enricher = e
	}

	a.AnalyzerService = analyzer.NewService(
		a.Catalog,
		a.LLMServices.Fast,
		a.LLMServices.Deep,
		a.StorageManager.SignalStorage(),
		a.EventService,
		enricher,
		&a.Config.Analysis,
		a.Logger,
	)

	a.SchedulerService = scheduler.NewService(&a.Config.Scheduler, a.runScheduledScan, a.Logger)

	return nil
}

// initHandlers wires the HTTP handlers to their services.
func (a *App) initHandlers() {
	a.ScanHandler = handlers.NewScanHandler(a.FeedService, &a.Config.Feeds, a.Logger)
	a.AnalyzeHandler = handlers.NewAnalyzeHandler(a.AnalyzerService, a.FeedService.State(), &a.Config.Triage, a.Logger)
	a.AssetsHandler = handlers.NewAssetsHandler(a.Catalog, a.StorageManager.SignalStorage(), a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.StorageManager, a.FeedService, a.SchedulerService, a.Logger)
}

// runScheduledScan is the cron entry point. A scan already running when
// the schedule fires is not an error; the tick is simply skipped.
func (a *App) runScheduledScan(ctx context.Context) error {
	_, err := a.FeedService.Scan(ctx, feeds.DefaultScanOptions(&a.Config.Feeds))
	if errors.Is(err, feeds.ErrScanInProgress) {
		a.Logger.Debug().Msg("Scheduled scan skipped, previous scan still running")
		return nil
	}
	return err
}

// Close shuts down all components in reverse dependency order.
func (a *App) Close() error {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.LLMServices != nil {
		if err := a.LLMServices.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM services")
		}
	}

	if a.EventService != nil {
		if err := a.EventService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
