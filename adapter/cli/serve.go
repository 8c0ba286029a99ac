package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/adapter/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the ranking HTTP API.

Endpoints:
  POST /api/v1/tasks/analyze   Rank a full batch
  POST /api/v1/tasks/suggest   Top tasks to work on next
  GET  /health                 Service health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		handler := api.NewRankingHandler(api.RankingHandlerConfig{
			Analyze: app.AnalyzeHandler,
			Suggest: app.SuggestHandler,
			Logger:  app.Logger,
		})

		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = app.Config.Addr
		serverCfg.ReadTimeout = app.Config.ReadTimeout
		serverCfg.WriteTimeout = app.Config.WriteTimeout
		serverCfg.IdleTimeout = app.Config.IdleTimeout

		server := api.NewServer(serverCfg, handler, app.Health, app.Metrics, app.Logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}
	},
}

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Run the MCP server",
	Long:  `Expose the ranking operations as MCP tools over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		deps := mcp.ToolDependencies{
			Analyze: app.AnalyzeHandler,
			Suggest: app.SuggestHandler,
		}

		err := mcp.Serve(cmd.Context(), app.Config, deps, app.Logger)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveMCPCmd)
}
