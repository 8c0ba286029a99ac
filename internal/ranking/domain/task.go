package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTitle        = errors.New("title is required")
	ErrInvalidImportance = errors.New("importance must be between 1 and 10")
	ErrInvalidHours      = errors.New("estimated hours must be non-negative")
)

// Task is one unit of work submitted for ranking. It is immutable for the
// duration of a request and never persisted.
type Task struct {
	ID             int
	Title          string
	DueDate        DueDate
	EstimatedHours float64
	Importance     int
	Dependencies   []int
}

// Validate checks the per-task field constraints.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task %d: %w", t.ID, ErrEmptyTitle)
	}
	if t.DueDate.IsZero() {
		return fmt.Errorf("task %d: %w", t.ID, ErrInvalidDueDate)
	}
	if t.Importance < 1 || t.Importance > 10 {
		return fmt.Errorf("task %d: %w, got %d", t.ID, ErrInvalidImportance, t.Importance)
	}
	if t.EstimatedHours < 0 {
		return fmt.Errorf("task %d: %w, got %g", t.ID, ErrInvalidHours, t.EstimatedHours)
	}
	return nil
}

// ScoredTask is a Task annotated with its computed priority. Derived per
// request and discarded at response time.
type ScoredTask struct {
	Task
	Score         float64
	Explanation   string
	BlockingCount int
}

// IsValidationError reports whether err stems from rejected input rather
// than an internal failure. Callers map these to request-level errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrInvalidImportance) ||
		errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrInvalidDueDate) ||
		errors.Is(err, ErrInvalidStrategy) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, ErrBatchTooLarge)
}

var (
	ErrEmptyBatch    = errors.New("task list must not be empty")
	ErrBatchTooLarge = errors.New("task list exceeds maximum batch size")
)
