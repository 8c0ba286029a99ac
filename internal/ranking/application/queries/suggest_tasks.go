package queries

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/triage/internal/ranking/application/services"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
	"github.com/felixgeelhaar/triage/pkg/observability"
)

// SuggestTasksQuery carries one batch plus the requested strategy name.
type SuggestTasksQuery struct {
	Tasks    []domain.Task
	Strategy string
}

// SuggestTasksHandler returns the top tasks to work on next.
type SuggestTasksHandler struct {
	service         *services.RankingService
	defaultStrategy domain.Strategy
	logger          *slog.Logger
	metrics         observability.Metrics
}

// NewSuggestTasksHandler creates the handler.
func NewSuggestTasksHandler(service *services.RankingService, defaultStrategy domain.Strategy, logger *slog.Logger, metrics observability.Metrics) *SuggestTasksHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &SuggestTasksHandler{
		service:         service,
		defaultStrategy: defaultStrategy,
		logger:          logger,
		metrics:         metrics,
	}
}

// Handle validates the strategy name and returns ranked suggestions.
func (h *SuggestTasksHandler) Handle(ctx context.Context, query SuggestTasksQuery) (*services.SuggestResult, error) {
	strategy, err := resolveStrategy(query.Strategy, h.defaultStrategy)
	if err != nil {
		return nil, err
	}

	timer := observability.StartTimer("ranking.suggest").WithMetrics(h.metrics)
	result, err := h.service.Suggest(query.Tasks, strategy)
	timer.StopWithError(err)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "suggestions computed",
		"strategy", strategy.String(),
		"suggestions", len(result.Suggestions),
	)
	return result, nil
}
