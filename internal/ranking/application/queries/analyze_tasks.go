// Package queries holds the read-side handlers for the ranking context.
package queries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/triage/internal/ranking/application/services"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
	"github.com/felixgeelhaar/triage/pkg/observability"
)

// AnalyzeTasksQuery carries one batch plus the requested strategy name.
// An empty strategy selects the configured default.
type AnalyzeTasksQuery struct {
	Tasks    []domain.Task
	Strategy string
}

// AnalyzeTasksHandler ranks a full batch of tasks.
type AnalyzeTasksHandler struct {
	service         *services.RankingService
	defaultStrategy domain.Strategy
	logger          *slog.Logger
	metrics         observability.Metrics
}

// NewAnalyzeTasksHandler creates the handler.
func NewAnalyzeTasksHandler(service *services.RankingService, defaultStrategy domain.Strategy, logger *slog.Logger, metrics observability.Metrics) *AnalyzeTasksHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &AnalyzeTasksHandler{
		service:         service,
		defaultStrategy: defaultStrategy,
		logger:          logger,
		metrics:         metrics,
	}
}

// Handle validates the strategy name and runs the ranking pipeline.
func (h *AnalyzeTasksHandler) Handle(ctx context.Context, query AnalyzeTasksQuery) (*services.AnalyzeResult, error) {
	strategy, err := resolveStrategy(query.Strategy, h.defaultStrategy)
	if err != nil {
		return nil, err
	}

	timer := observability.StartTimer("ranking.analyze").WithMetrics(h.metrics)
	result, err := h.service.Analyze(query.Tasks, strategy)
	timer.StopWithError(err)
	if err != nil {
		return nil, err
	}

	strategyTag := observability.T("strategy", strategy.String())
	h.metrics.Counter(observability.MetricBatchesAnalyzed, 1, strategyTag)
	h.metrics.Counter(observability.MetricTasksScored, int64(result.TotalTasks), strategyTag)
	if result.Warning != nil {
		h.metrics.Counter(observability.MetricCyclesDetected, 1)
	}

	h.logger.InfoContext(ctx, "batch analyzed",
		"strategy", strategy.String(),
		"total_tasks", result.TotalTasks,
		"cycles", result.Warning != nil,
	)
	return result, nil
}

func resolveStrategy(name string, fallback domain.Strategy) (domain.Strategy, error) {
	if name == "" {
		return fallback, nil
	}
	strategy, err := domain.ParseStrategy(name)
	if err != nil {
		return fallback, fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, name)
	}
	return strategy, nil
}
