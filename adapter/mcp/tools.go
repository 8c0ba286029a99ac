// Package mcp exposes the ranking operations as MCP tools.
package mcp

import (
	"context"
	"errors"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/internal/ranking/application/queries"
)

// ToolDependencies provides handlers for the MCP tools.
type ToolDependencies struct {
	Analyze *queries.AnalyzeTasksHandler
	Suggest *queries.SuggestTasksHandler
}

type rankInput struct {
	Tasks    []api.TaskInput `json:"tasks" jsonschema:"required"`
	Strategy string          `json:"strategy,omitempty"`
}

// RegisterTools registers the ranking tools on the server.
func RegisterTools(srv *mcpgo.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.Analyze == nil || deps.Suggest == nil {
		return errors.New("ranking handlers are required")
	}

	srv.Tool("service.health").
		Description("Check ranking service health").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{"status": "ok"}, nil
		})

	srv.Tool("tasks.analyze").
		Description("Rank a batch of tasks by priority under the chosen strategy").
		Handler(func(ctx context.Context, input rankInput) (api.AnalyzeResponse, error) {
			tasks, err := api.ToDomain(input.Tasks)
			if err != nil {
				return api.AnalyzeResponse{}, err
			}
			result, err := deps.Analyze.Handle(ctx, queries.AnalyzeTasksQuery{
				Tasks:    tasks,
				Strategy: input.Strategy,
			})
			if err != nil {
				return api.AnalyzeResponse{}, err
			}
			return api.AnalyzeResponseFrom(result), nil
		})

	srv.Tool("tasks.suggest").
		Description("Suggest the top tasks to work on next").
		Handler(func(ctx context.Context, input rankInput) (api.SuggestResponse, error) {
			tasks, err := api.ToDomain(input.Tasks)
			if err != nil {
				return api.SuggestResponse{}, err
			}
			result, err := deps.Suggest.Handle(ctx, queries.SuggestTasksQuery{
				Tasks:    tasks,
				Strategy: input.Strategy,
			})
			if err != nil {
				return api.SuggestResponse{}, err
			}
			return api.SuggestResponseFrom(result), nil
		})

	return nil
}
