// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the loaded roster.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/swim/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and works on the backend selected by
--backend or the config file. Every change is stored immediately.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "swim": {
        "command": "swim",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_swimmer, list_swimmers, find_swimmer, update_swimmer, delete_swimmer,
  archive_swimmer, activate_swimmer, search_swimmers, add_race, update_race,
  mark_race, delete_race, search_races, list_ungraded_races, list_graded_races

AVAILABLE RESOURCES:

  swim://roster     Every swimmer with races (JSON)
  swim://summary    Counts by status and level (JSON)
  swim://metrics    Prometheus text exposition`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(swimRoster, version)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		logger.Info("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
