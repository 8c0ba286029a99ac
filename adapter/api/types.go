package api

import (
	"fmt"

	"github.com/felixgeelhaar/triage/internal/ranking/application/services"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

// TaskInput is the wire representation of one task.
type TaskInput struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int   `json:"dependencies,omitempty"`
}

// AnalyzeRequest is the request body for both ranking operations.
type AnalyzeRequest struct {
	Tasks    []TaskInput `json:"tasks"`
	Strategy string      `json:"strategy,omitempty"`
}

// ScoredTaskOutput is one ranked task in the analyze response.
type ScoredTaskOutput struct {
	TaskInput
	PriorityScore float64 `json:"priority_score"`
	Explanation   string  `json:"explanation"`
}

// WarningsOutput reports dependency cycles alongside a successful result.
type WarningsOutput struct {
	Message              string `json:"message"`
	CircularDependencies []int  `json:"circular_dependencies"`
}

// AnalyzeResponse is the response body for the analyze operation.
type AnalyzeResponse struct {
	Tasks        []ScoredTaskOutput `json:"tasks"`
	StrategyUsed string             `json:"strategy_used"`
	TotalTasks   int                `json:"total_tasks"`
	Warnings     *WarningsOutput    `json:"warnings,omitempty"`
}

// SuggestionOutput is one entry in the suggest response.
type SuggestionOutput struct {
	Rank           int       `json:"rank"`
	Task           TaskInput `json:"task"`
	PriorityScore  float64   `json:"priority_score"`
	WhyThisTask    string    `json:"why_this_task"`
	Recommendation string    `json:"recommendation"`
}

// SuggestResponse is the response body for the suggest operation.
type SuggestResponse struct {
	Message      string             `json:"message"`
	StrategyUsed string             `json:"strategy_used"`
	Suggestions  []SuggestionOutput `json:"suggestions"`
}

// ToDomain converts wire tasks to domain tasks. Malformed due dates are
// rejected here; all other field constraints are enforced by the service.
func ToDomain(inputs []TaskInput) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(inputs))
	for _, in := range inputs {
		due, err := domain.ParseDueDate(in.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", in.ID, err)
		}
		tasks = append(tasks, domain.Task{
			ID:             in.ID,
			Title:          in.Title,
			DueDate:        due,
			EstimatedHours: in.EstimatedHours,
			Importance:     in.Importance,
			Dependencies:   in.Dependencies,
		})
	}
	return tasks, nil
}

func taskToWire(t domain.Task) TaskInput {
	return TaskInput{
		ID:             t.ID,
		Title:          t.Title,
		DueDate:        t.DueDate.String(),
		EstimatedHours: t.EstimatedHours,
		Importance:     t.Importance,
		Dependencies:   t.Dependencies,
	}
}

// AnalyzeResponseFrom converts a service result to the wire shape.
func AnalyzeResponseFrom(result *services.AnalyzeResult) AnalyzeResponse {
	resp := AnalyzeResponse{
		Tasks:        make([]ScoredTaskOutput, 0, len(result.Tasks)),
		StrategyUsed: result.Strategy.String(),
		TotalTasks:   result.TotalTasks,
	}
	for _, st := range result.Tasks {
		resp.Tasks = append(resp.Tasks, ScoredTaskOutput{
			TaskInput:     taskToWire(st.Task),
			PriorityScore: st.Score,
			Explanation:   st.Explanation,
		})
	}
	if result.Warning != nil {
		resp.Warnings = &WarningsOutput{
			Message:              result.Warning.Message,
			CircularDependencies: result.Warning.TaskIDs,
		}
	}
	return resp
}

// SuggestResponseFrom converts a service result to the wire shape.
func SuggestResponseFrom(result *services.SuggestResult) SuggestResponse {
	resp := SuggestResponse{
		Message:      result.Message,
		StrategyUsed: result.Strategy.String(),
		Suggestions:  make([]SuggestionOutput, 0, len(result.Suggestions)),
	}
	for _, s := range result.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SuggestionOutput{
			Rank:           s.Rank,
			Task:           taskToWire(s.Task),
			PriorityScore:  s.Score,
			WhyThisTask:    s.WhyThisTask,
			Recommendation: s.Recommendation,
		})
	}
	return resp
}
