// ABOUTME: Root Cobra command for swim CLI.
// ABOUTME: Loads config, logging, the storage backend and the roster in PersistentPreRunE.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/config"
	"github.com/harperreed/swim/internal/logging"
	"github.com/harperreed/swim/internal/roster"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	store      storage.Serializer
	swimRoster *roster.Roster
	logger     *slog.Logger

	flagBackend  string
	flagDataDir  string
	flagFile     string
	flagLogLevel string
)

// skipRosterCommands run without opening storage.
var skipRosterCommands = map[string]bool{
	"help":          true,
	"version":       true,
	"install-skill": true,
	"completion":    true,
}

var rootCmd = &cobra.Command{
	Use:   "swim",
	Short: "Swimmer roster and race tracker",
	Long: `Swim keeps a roster of swimmers and the races each of them has swum.

WHAT IT TRACKS:

  Swimmers   name, level (1-5), category, active or archived
  Races      medal or result, time (HH:mm:ss), type, graded or ungraded

  A swimmer can only be archived once every race is graded.

QUICK START:

  $ swim add "Michael" 3 Freestyle             # Add a swimmer
  $ swim race add 0 Gold 00:00:52 Freestyle    # Record a race for swimmer 0
  $ swim race mark 0 0 --graded                # Grade it
  $ swim archive 0                             # Archive the swimmer
  $ swim list --archived                       # See archived swimmers
  $ swim menu                                  # Interactive menu

STORAGE BACKENDS:

  xml (default)  ~/.local/share/swim/swimmers.xml
  json, yaml     ~/.local/share/swim/swimmers.json / swimmers.yaml
  sqlite         ~/.local/share/swim/swim.db
  badger         ~/.local/share/swim/badger/
  charm          Charm KV, synced across devices

  Pick one with --backend, SWIM_BACKEND, or backend: in
  ~/.config/swim/config.yaml.

MCP INTEGRATION:

  Run 'swim mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "swim": { "command": "swim", "args": ["mcp"] }
    }
  }`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipRosterCommands[cmd.Name()] {
			return nil
		}
		return openRoster()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// openRoster loads config, applies flag overrides and loads the roster.
func openRoster() error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		loaded.Backend = flagBackend
	}
	if flagDataDir != "" {
		loaded.DataDir = flagDataDir
	}
	if flagFile != "" {
		loaded.File = flagFile
	}
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
	}
	cfg = loaded

	logger, err = logging.Setup(cfg.LogLevel)
	if err != nil {
		return err
	}

	store, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	swimRoster = roster.New(store, roster.WithLogger(logger))
	if err := swimRoster.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		logger.Debug("no roster stored yet, starting empty", "backend", cfg.GetBackend())
	}
	return nil
}

// closeStore releases the open backend. Safe to call more than once.
func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// saveRoster persists the roster after a successful change.
func saveRoster() error {
	if err := swimRoster.Store(); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

func parseID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, s)
	}
	return id, nil
}

func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid level: %s", s)
	}
	return level, nil
}

var faint = color.New(color.Faint)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: xml, json, yaml, sqlite, badger, charm")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/swim)")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "document path for the xml, json and yaml backends")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
