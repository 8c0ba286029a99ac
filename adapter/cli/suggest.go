package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/internal/ranking/application/queries"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
)

var (
	suggestFile     string
	suggestStrategy string
	suggestJSON     bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest the top tasks to work on next",
	Long: `Rank a batch of tasks and print the top suggestions with a
recommendation for each. Takes the same input file as analyze.

Examples:
  triage suggest --file tasks.json
  triage suggest --file tasks.json --strategy fastest_wins`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		req, tasks, err := loadBatch(suggestFile, suggestStrategy)
		if err != nil {
			return err
		}

		result, err := app.SuggestHandler.Handle(cmd.Context(), queries.SuggestTasksQuery{
			Tasks:    tasks,
			Strategy: req.Strategy,
		})
		if err != nil {
			return err
		}

		resp := api.SuggestResponseFrom(result)
		if suggestJSON {
			return printJSON(resp)
		}

		fmt.Println(resp.Message)
		fmt.Println()
		for _, s := range resp.Suggestions {
			fmt.Printf("%d. [%6.1f] %s\n   Why: %s\n   %s\n", s.Rank, s.PriorityScore, s.Task.Title, s.WhyThisTask, s.Recommendation)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestFile, "file", "f", "", "JSON file with the task batch (required)")
	suggestCmd.Flags().StringVarP(&suggestStrategy, "strategy", "s", "", "scoring strategy, one of: "+strings.Join(domain.StrategyNames(), ", "))
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print the raw JSON response")
	_ = suggestCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(suggestCmd)
}
