package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

// StrategyEngine computes a priority score and a human-readable explanation
// for one task. It is a pure function of the task's fields, its blocking
// count, and the reference date.
type StrategyEngine struct{}

// NewStrategyEngine creates a new engine.
func NewStrategyEngine() *StrategyEngine {
	return &StrategyEngine{}
}

// Score computes the priority score for the task under the given strategy.
// The score is rounded to one decimal; the explanation lists the factors
// that contributed and is advisory text only.
func (e *StrategyEngine) Score(task domain.Task, blockingCount int, strategy domain.Strategy, today domain.DueDate) (float64, string) {
	offset := task.DueDate.DaysUntil(today)

	urgency := urgencyScore(offset)
	importance := float64(task.Importance) * 8
	effort := effortBonus(task.EstimatedHours)
	dependency := float64(blockingCount) * 20

	var score float64
	switch strategy {
	case domain.StrategyFastestWins:
		score = urgency + importance + effort*10 + dependency
	case domain.StrategyHighImpact:
		// Importance re-weighted to x15 on the raw 1-10 rating.
		score = urgency + float64(task.Importance)*15 + effort + dependency
	case domain.StrategyDeadlineDriven:
		score = urgency*2 + importance + dependency
	default:
		score = urgency + importance + effort + dependency
	}

	reasons := []string{duePhrase(offset)}
	reasons = append(reasons, fmt.Sprintf("Importance: %d/10", task.Importance))
	if effort > 0 {
		reasons = append(reasons, effortPhrase(task.EstimatedHours))
	}
	if blockingCount > 0 {
		reasons = append(reasons, fmt.Sprintf("Unblocks %d task(s)", blockingCount))
	}

	return math.Round(score*10) / 10, strings.Join(reasons, " | ")
}

// urgencyScore maps a day offset to an urgency value. Overdue tasks grow
// without bound so staleness eventually dominates every other factor;
// everything beyond a week contributes nothing.
func urgencyScore(offset int) float64 {
	switch {
	case offset < 0:
		return 100 + math.Pow(float64(-offset), 1.5)
	case offset == 0:
		return 95
	case offset <= 2:
		return 80
	case offset <= 7:
		return 50
	default:
		return 0
	}
}

func effortBonus(hours float64) float64 {
	switch {
	case hours <= 1:
		return 25
	case hours <= 2:
		return 15
	default:
		return 0
	}
}

func duePhrase(offset int) string {
	switch {
	case offset < 0:
		return fmt.Sprintf("Overdue by %d day(s)", -offset)
	case offset == 0:
		return "Due today"
	case offset <= 2:
		return fmt.Sprintf("Due in %d day(s)", offset)
	case offset <= 7:
		return "Due this week"
	default:
		return fmt.Sprintf("Due in %d days", offset)
	}
}

func effortPhrase(hours float64) string {
	if hours <= 1 {
		return "Quick win (<=1h)"
	}
	return "Fast task (<=2h)"
}
