// ABOUTME: CLI command for copying the roster to another storage backend.
// ABOUTME: Refuses to overwrite a destination that already holds data unless forced.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/harperreed/swim/internal/config"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo    string
	migrateForce bool
	migrateSave  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --to <backend>",
	Short: "Copy the roster to another storage backend",
	Long: `Copy every swimmer and race from the current backend to another one.

The destination lives in the same data directory. The source is left as is.

IMPORTANT:

  - Existing destination data is NOT overwritten unless --force is given
  - Pass --save to make the destination the default backend in config.yaml

EXAMPLES:

  swim migrate --to sqlite              # xml file -> swim.db
  swim migrate --to badger --save       # and switch to it
  swim --backend sqlite migrate --to json --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dstCfg := *cfg
		dstCfg.Backend = migrateTo
		dstCfg.File = ""
		if err := dstCfg.Validate(); err != nil {
			return err
		}
		if dstCfg.GetBackend() == cfg.GetBackend() {
			return fmt.Errorf("already using the %s backend", cfg.GetBackend())
		}

		if dstCfg.GetBackend() == "badger" && !migrateForce {
			dir := filepath.Join(dstCfg.GetDataDir(), "badger")
			nonEmpty, err := storage.IsDirNonEmpty(dir)
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty (use --force to overwrite)", dir)
			}
		}

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", dstCfg.GetBackend(), err)
		}
		defer dst.Close()

		if !migrateForce {
			existing, err := dst.Read()
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to read destination: %w", err)
			}
			if len(existing) > 0 {
				return fmt.Errorf("destination %s backend already holds %d swimmers (use --force to overwrite)",
					dstCfg.GetBackend(), len(existing))
			}
		}

		summary, err := storage.MigrateData(store, dst)
		if errors.Is(err, fs.ErrNotExist) {
			warn(cmd.OutOrStdout(), "Nothing to migrate: the %s backend has no roster yet", cfg.GetBackend())
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("roster migrated", "from", cfg.GetBackend(), "to", dstCfg.GetBackend(),
			"swimmers", summary.Swimmers, "races", summary.Races)

		success(cmd.OutOrStdout(), "Migrated %d swimmers and %d races from %s to %s",
			summary.Swimmers, summary.Races, cfg.GetBackend(), dstCfg.GetBackend())

		if migrateSave {
			saved, err := config.Load()
			if err != nil {
				return err
			}
			saved.Backend = dstCfg.GetBackend()
			if err := saved.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint.Sprintf("default backend set in %s", config.GetConfigPath()))
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: xml, json, yaml, sqlite, badger, charm")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite existing destination data")
	migrateCmd.Flags().BoolVar(&migrateSave, "save", false, "make the destination the default backend")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
