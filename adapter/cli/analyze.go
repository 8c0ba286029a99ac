package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/internal/ranking/application/queries"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

var (
	analyzeFile     string
	analyzeStrategy string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank a batch of tasks from a JSON file",
	Long: `Rank a batch of tasks by computed priority.

The input file holds the same JSON body the HTTP API accepts:
  {"tasks": [{"id": 1, "title": "...", "due_date": "2026-09-01",
              "estimated_hours": 1.5, "importance": 7,
              "dependencies": [2]}, ...],
   "strategy": "smart_balance"}

Examples:
  triage analyze --file tasks.json
  triage analyze --file tasks.json --strategy deadline_driven
  triage analyze --file tasks.json --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		req, tasks, err := loadBatch(analyzeFile, analyzeStrategy)
		if err != nil {
			return err
		}

		result, err := app.AnalyzeHandler.Handle(cmd.Context(), queries.AnalyzeTasksQuery{
			Tasks:    tasks,
			Strategy: req.Strategy,
		})
		if err != nil {
			return err
		}

		resp := api.AnalyzeResponseFrom(result)
		if analyzeJSON {
			return printJSON(resp)
		}

		fmt.Printf("Ranked %d task(s) using %s strategy:\n\n", resp.TotalTasks, resp.StrategyUsed)
		for i, t := range resp.Tasks {
			fmt.Printf("%2d. [%6.1f] %s\n      %s\n", i+1, t.PriorityScore, t.Title, t.Explanation)
		}
		if resp.Warnings != nil {
			fmt.Printf("\nWarning: %s: %v\n", resp.Warnings.Message, resp.Warnings.CircularDependencies)
		}
		return nil
	},
}

func loadBatch(path, strategyFlag string) (api.AnalyzeRequest, []domain.Task, error) {
	var req api.AnalyzeRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if strategyFlag != "" {
		req.Strategy = strategyFlag
	}
	tasks, err := api.ToDomain(req.Tasks)
	if err != nil {
		return req, nil, err
	}
	return req, tasks, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "JSON file with the task batch (required)")
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "scoring strategy, one of: "+strings.Join(domain.StrategyNames(), ", "))
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw JSON response")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}
