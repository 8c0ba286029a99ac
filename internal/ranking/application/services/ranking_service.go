package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

// RankingServiceConfig tunes batch limits and the suggestion slice.
type RankingServiceConfig struct {
	// MaxBatchSize caps the number of tasks per request. Zero means no cap.
	MaxBatchSize int
	// SuggestionLimit is the number of top tasks Suggest returns.
	SuggestionLimit int
	// Clock supplies "today" for due-date arithmetic. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultRankingServiceConfig returns production defaults.
func DefaultRankingServiceConfig() RankingServiceConfig {
	return RankingServiceConfig{
		MaxBatchSize:    1000,
		SuggestionLimit: 3,
	}
}

// CycleWarning reports tasks that participate in a dependency cycle.
// Cycles never abort scoring; they ride alongside a successful result.
type CycleWarning struct {
	Message string
	TaskIDs []int
}

// AnalyzeResult is the full ranked batch.
type AnalyzeResult struct {
	Tasks      []domain.ScoredTask
	Strategy   domain.Strategy
	TotalTasks int
	Warning    *CycleWarning
}

// Suggestion is one entry of the top-N slice returned by Suggest.
type Suggestion struct {
	Rank           int
	Task           domain.Task
	Score          float64
	WhyThisTask    string
	Recommendation string
}

// SuggestResult is the top-N subset with a summary message.
type SuggestResult struct {
	Message     string
	Strategy    domain.Strategy
	Suggestions []Suggestion
}

// RankingService orchestrates graph analysis and scoring over a task batch.
// It is stateless: every result is derived from the input batch alone.
type RankingService struct {
	engine *StrategyEngine
	config RankingServiceConfig
	clock  func() time.Time
}

// NewRankingService creates a service around the given engine.
func NewRankingService(engine *StrategyEngine, cfg RankingServiceConfig) *RankingService {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &RankingService{engine: engine, config: cfg, clock: clock}
}

// Analyze scores the whole batch and returns it sorted by descending score,
// ties keeping input order. Validation failures abort before any scoring.
func (s *RankingService) Analyze(tasks []domain.Task, strategy domain.Strategy) (*AnalyzeResult, error) {
	if err := s.validate(tasks, strategy); err != nil {
		return nil, err
	}

	today := domain.DueDateOf(s.clock())
	graph := domain.NewGraph(tasks)

	scored := make([]domain.ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		blocking := graph.BlockingCount(t.ID)
		score, explanation := s.engine.Score(t, blocking, strategy, today)
		scored = append(scored, domain.ScoredTask{
			Task:          t,
			Score:         score,
			Explanation:   explanation,
			BlockingCount: blocking,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	result := &AnalyzeResult{
		Tasks:      scored,
		Strategy:   strategy,
		TotalTasks: len(scored),
	}
	if cycleIDs := graph.CycleParticipants(); len(cycleIDs) > 0 {
		result.Warning = &CycleWarning{
			Message: "Some tasks have circular dependencies",
			TaskIDs: cycleIDs,
		}
	}
	return result, nil
}

// Suggest runs the Analyze pipeline and returns the top tasks with a rank
// and a recommendation phrase selected by score band.
func (s *RankingService) Suggest(tasks []domain.Task, strategy domain.Strategy) (*SuggestResult, error) {
	analyzed, err := s.Analyze(tasks, strategy)
	if err != nil {
		return nil, err
	}

	limit := s.config.SuggestionLimit
	if limit <= 0 {
		limit = 3
	}
	top := analyzed.Tasks
	if len(top) > limit {
		top = top[:limit]
	}

	suggestions := make([]Suggestion, 0, len(top))
	for i, st := range top {
		suggestions = append(suggestions, Suggestion{
			Rank:           i + 1,
			Task:           st.Task,
			Score:          st.Score,
			WhyThisTask:    st.Explanation,
			Recommendation: recommendationFor(st.Score, st.Title),
		})
	}

	return &SuggestResult{
		Message:     fmt.Sprintf("Top %d tasks to work on today (using %s strategy)", len(suggestions), strategy),
		Strategy:    strategy,
		Suggestions: suggestions,
	}, nil
}

func (s *RankingService) validate(tasks []domain.Task, strategy domain.Strategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, strategy.String())
	}
	if len(tasks) == 0 {
		return domain.ErrEmptyBatch
	}
	if s.config.MaxBatchSize > 0 && len(tasks) > s.config.MaxBatchSize {
		return fmt.Errorf("%w: %d tasks (limit %d)", domain.ErrBatchTooLarge, len(tasks), s.config.MaxBatchSize)
	}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// recommendationFor picks the recommendation phrase by score band.
func recommendationFor(score float64, title string) string {
	switch {
	case score >= 150:
		return fmt.Sprintf("High priority: start %q now.", title)
	case score >= 80:
		return fmt.Sprintf("Medium priority: schedule %q soon.", title)
	default:
		return fmt.Sprintf("Low priority: %q can be deferred.", title)
	}
}
