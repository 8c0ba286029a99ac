package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, time.August, 29, 10, 30, 0, 0, time.UTC)
}

func newTestService(cfg RankingServiceConfig) *RankingService {
	cfg.Clock = fixedClock
	return NewRankingService(NewStrategyEngine(), cfg)
}

func batchTask(id int, title string, dueOffset int, hours float64, importance int, deps ...int) domain.Task {
	return domain.Task{
		ID:             id,
		Title:          title,
		DueDate:        domain.NewDueDate(2026, time.August, 29+dueOffset),
		EstimatedHours: hours,
		Importance:     importance,
		Dependencies:   deps,
	}
}

func TestRankingService_Analyze(t *testing.T) {
	service := newTestService(DefaultRankingServiceConfig())

	t.Run("returns tasks sorted by descending score", func(t *testing.T) {
		result, err := service.Analyze([]domain.Task{
			batchTask(1, "far out", 30, 5, 1),
			batchTask(2, "overdue", -5, 0.5, 9),
			batchTask(3, "this week", 5, 2, 5),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)

		require.Len(t, result.Tasks, 3)
		assert.Equal(t, 2, result.Tasks[0].ID)
		assert.Equal(t, 3, result.Tasks[1].ID)
		assert.Equal(t, 1, result.Tasks[2].ID)
		assert.Equal(t, 3, result.TotalTasks)
		assert.Nil(t, result.Warning)

		for i := 1; i < len(result.Tasks); i++ {
			assert.GreaterOrEqual(t, result.Tasks[i-1].Score, result.Tasks[i].Score)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		result, err := service.Analyze([]domain.Task{
			batchTask(10, "first", 3, 5, 5),
			batchTask(20, "second", 3, 5, 5),
			batchTask(30, "third", 3, 5, 5),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)

		assert.Equal(t, []int{10, 20, 30}, []int{result.Tasks[0].ID, result.Tasks[1].ID, result.Tasks[2].ID})
	})

	t.Run("blocking counts feed the score", func(t *testing.T) {
		result, err := service.Analyze([]domain.Task{
			batchTask(1, "blocker", 10, 5, 1),
			batchTask(2, "dependent", 10, 5, 1, 1),
			batchTask(3, "dependent", 10, 5, 1, 1),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)

		// Task 1 unblocks two tasks: 8 + 2*20 vs 8 for the rest.
		assert.Equal(t, 1, result.Tasks[0].ID)
		assert.Equal(t, 48.0, result.Tasks[0].Score)
		assert.Equal(t, 2, result.Tasks[0].BlockingCount)
	})

	t.Run("cycles are reported but every task is still scored", func(t *testing.T) {
		result, err := service.Analyze([]domain.Task{
			batchTask(1, "a", 1, 1, 5, 2),
			batchTask(2, "b", 1, 1, 5, 3),
			batchTask(3, "c", 1, 1, 5, 1),
			batchTask(4, "outsider", 1, 1, 5),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)

		require.NotNil(t, result.Warning)
		assert.Equal(t, []int{1, 2, 3}, result.Warning.TaskIDs)
		assert.Contains(t, result.Warning.Message, "circular")
		assert.Len(t, result.Tasks, 4)
	})

	t.Run("empty batch is rejected before scoring", func(t *testing.T) {
		_, err := service.Analyze(nil, domain.StrategySmartBalance)
		assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	})

	t.Run("invalid strategy is rejected", func(t *testing.T) {
		_, err := service.Analyze([]domain.Task{batchTask(1, "x", 0, 1, 5)}, domain.Strategy(99))
		assert.ErrorIs(t, err, domain.ErrInvalidStrategy)
	})

	t.Run("one invalid task aborts the whole batch", func(t *testing.T) {
		_, err := service.Analyze([]domain.Task{
			batchTask(1, "fine", 0, 1, 5),
			batchTask(2, "broken", 0, 1, 99),
		}, domain.StrategySmartBalance)
		assert.ErrorIs(t, err, domain.ErrInvalidImportance)
	})

	t.Run("oversized batch is rejected", func(t *testing.T) {
		cfg := DefaultRankingServiceConfig()
		cfg.MaxBatchSize = 2
		small := newTestService(cfg)

		_, err := small.Analyze([]domain.Task{
			batchTask(1, "a", 0, 1, 5),
			batchTask(2, "b", 0, 1, 5),
			batchTask(3, "c", 0, 1, 5),
		}, domain.StrategySmartBalance)
		assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		tasks := []domain.Task{
			batchTask(1, "a", -2, 0.5, 7, 3),
			batchTask(2, "b", 0, 4, 9),
			batchTask(3, "c", 6, 1.5, 3, 2),
		}

		first, err := service.Analyze(tasks, domain.StrategyDeadlineDriven)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := service.Analyze(tasks, domain.StrategyDeadlineDriven)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

func TestRankingService_Suggest(t *testing.T) {
	service := newTestService(DefaultRankingServiceConfig())

	t.Run("returns at most three suggestions in rank order", func(t *testing.T) {
		result, err := service.Suggest([]domain.Task{
			batchTask(1, "a", 30, 5, 1),
			batchTask(2, "b", -5, 0.5, 9),
			batchTask(3, "c", 5, 2, 5),
			batchTask(4, "d", 0, 1, 8),
			batchTask(5, "e", 1, 3, 2),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)

		require.Len(t, result.Suggestions, 3)
		for i, s := range result.Suggestions {
			assert.Equal(t, i+1, s.Rank)
		}
		assert.GreaterOrEqual(t, result.Suggestions[0].Score, result.Suggestions[1].Score)
		assert.GreaterOrEqual(t, result.Suggestions[1].Score, result.Suggestions[2].Score)
		assert.Contains(t, result.Message, "smart_balance")
	})

	t.Run("suggestions match the top of the equivalent analyze call", func(t *testing.T) {
		tasks := []domain.Task{
			batchTask(1, "a", 2, 2, 6),
			batchTask(2, "b", -1, 1, 9),
			batchTask(3, "c", 8, 4, 4),
			batchTask(4, "d", 0, 0.5, 7),
		}

		analyzed, err := service.Analyze(tasks, domain.StrategyFastestWins)
		require.NoError(t, err)
		suggested, err := service.Suggest(tasks, domain.StrategyFastestWins)
		require.NoError(t, err)

		require.Len(t, suggested.Suggestions, 3)
		for i, s := range suggested.Suggestions {
			assert.Equal(t, analyzed.Tasks[i].ID, s.Task.ID)
			assert.Equal(t, analyzed.Tasks[i].Score, s.Score)
			assert.Equal(t, analyzed.Tasks[i].Explanation, s.WhyThisTask)
		}
	})

	t.Run("fewer tasks than the limit returns them all", func(t *testing.T) {
		result, err := service.Suggest([]domain.Task{
			batchTask(1, "only", 0, 1, 5),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)
		assert.Len(t, result.Suggestions, 1)
	})

	t.Run("recommendation phrase follows the score bands", func(t *testing.T) {
		result, err := service.Suggest([]domain.Task{
			batchTask(1, "urgent one", -3, 0.5, 10),
			batchTask(2, "middling one", 5, 3, 5),
			batchTask(3, "sleepy one", 30, 6, 2),
		}, domain.StrategySmartBalance)
		require.NoError(t, err)
		require.Len(t, result.Suggestions, 3)

		// Scores: 1 -> 100+3^1.5+80+25 = 210.2, 2 -> 50+40 = 90, 3 -> 16.
		assert.Contains(t, result.Suggestions[0].Recommendation, "High priority")
		assert.Contains(t, result.Suggestions[1].Recommendation, "Medium priority")
		assert.Contains(t, result.Suggestions[2].Recommendation, "Low priority")
		assert.Contains(t, result.Suggestions[0].Recommendation, "urgent one")
	})

	t.Run("propagates validation failures", func(t *testing.T) {
		_, err := service.Suggest(nil, domain.StrategySmartBalance)
		assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	})
}
