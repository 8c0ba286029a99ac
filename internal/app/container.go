// Package app wires the application's components together.
package app

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/triage/internal/ranking/application/queries"
	"github.com/felixgeelhaar/triage/internal/ranking/application/services"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
	"github.com/felixgeelhaar/triage/pkg/config"
	"github.com/felixgeelhaar/triage/pkg/observability"
)

// Container holds the assembled application components.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics
	Health  *observability.HealthRegistry

	RankingService *services.RankingService
	AnalyzeHandler *queries.AnalyzeTasksHandler
	SuggestHandler *queries.SuggestTasksHandler
}

// NewContainer assembles the application from configuration.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	defaultStrategy, err := domain.ParseStrategy(cfg.DefaultStrategy)
	if err != nil {
		return nil, fmt.Errorf("invalid TRIAGE_DEFAULT_STRATEGY %q: %w", cfg.DefaultStrategy, err)
	}

	metrics := observability.NewInMemoryMetrics()

	serviceCfg := services.DefaultRankingServiceConfig()
	if cfg.MaxBatchSize > 0 {
		serviceCfg.MaxBatchSize = cfg.MaxBatchSize
	}
	if cfg.SuggestionLimit > 0 {
		serviceCfg.SuggestionLimit = cfg.SuggestionLimit
	}

	engine := services.NewStrategyEngine()
	service := services.NewRankingService(engine, serviceCfg)

	health := observability.NewHealthRegistry()
	health.Register("ranking", observability.Healthy("ranking engine ready"))

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Metrics:        metrics,
		Health:         health,
		RankingService: service,
		AnalyzeHandler: queries.NewAnalyzeTasksHandler(service, defaultStrategy, logger, metrics),
		SuggestHandler: queries.NewSuggestTasksHandler(service, defaultStrategy, logger, metrics),
	}, nil
}
