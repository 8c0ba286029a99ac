package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/felixgeelhaar/triage/internal/ranking/application/queries"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

// RankingHandler handles ranking API requests.
type RankingHandler struct {
	analyze *queries.AnalyzeTasksHandler
	suggest *queries.SuggestTasksHandler
	logger  *slog.Logger
}

// RankingHandlerConfig holds dependencies for the ranking handler.
type RankingHandlerConfig struct {
	Analyze *queries.AnalyzeTasksHandler
	Suggest *queries.SuggestTasksHandler
	Logger  *slog.Logger
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(cfg RankingHandlerConfig) *RankingHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &RankingHandler{
		analyze: cfg.Analyze,
		suggest: cfg.Suggest,
		logger:  cfg.Logger,
	}
}

// AnalyzeTasks handles POST /api/v1/tasks/analyze
func (h *RankingHandler) AnalyzeTasks(w http.ResponseWriter, r *http.Request) {
	req, tasks, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.analyze.Handle(r.Context(), queries.AnalyzeTasksQuery{
		Tasks:    tasks,
		Strategy: req.Strategy,
	})
	if err != nil {
		h.respondError(w, r, "analyze", err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponseFrom(result))
}

// SuggestTasks handles POST /api/v1/tasks/suggest
func (h *RankingHandler) SuggestTasks(w http.ResponseWriter, r *http.Request) {
	req, tasks, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.suggest.Handle(r.Context(), queries.SuggestTasksQuery{
		Tasks:    tasks,
		Strategy: req.Strategy,
	})
	if err != nil {
		h.respondError(w, r, "suggest", err)
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponseFrom(result))
}

func (h *RankingHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, []domain.Task, bool) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, nil, false
	}

	tasks, err := ToDomain(req.Tasks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, nil, false
	}
	return req, tasks, true
}

func (h *RankingHandler) respondError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if domain.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "ranking operation failed",
		"operation", operation,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "Failed to rank tasks")
}
