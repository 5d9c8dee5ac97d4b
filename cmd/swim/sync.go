// ABOUTME: CLI commands for Charm-based sync of the roster.
// ABOUTME: Supports link, unlink, status, now, repair, reset, and wipe operations.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/swim/internal/charm"
	"github.com/spf13/cobra"
)

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the roster across devices",
	Long: `Sync the roster across devices using Charm Cloud.

These commands work on the charm backend. Select it with --backend charm,
SWIM_BACKEND=charm, or backend: charm in the config file.

Your data is E2E encrypted with your SSH key before upload.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  now         Sync immediately
  repair      Repair local database corruption
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each change.`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		out := cmd.OutOrStdout()
		success(out, "Device linked to Charm")

		if client, ok := store.(*charm.Client); ok {
			if err := client.Sync(); err != nil {
				warn(out, "⚠ Initial sync failed: %v", err)
			} else {
				success(out, "Initial sync complete")
			}
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		success(cmd.OutOrStdout(), "Device unlinked from Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Your local roster is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		client, err := charmStore()
		if err != nil {
			return err
		}

		id, err := client.ID()
		if err != nil {
			warn(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'swim sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", os.Getenv("CHARM_HOST"))
		if client.IsReadOnly() {
			warn(out, "Read-only: another swim process holds the database")
		}
		fmt.Fprintln(out)
		success(out, "Connected to Charm")
		fmt.Fprintf(out, "  Swimmers: %d (%d archived)\n", swimRoster.NumberOfSwimmers(), swimRoster.NumberOfArchivedSwimmers())
		fmt.Fprintf(out, "  Ungraded races: %d\n", swimRoster.NumberOfUngradedRaces())
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync with Charm Cloud now",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmStore()
		if err != nil {
			return err
		}
		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		success(cmd.OutOrStdout(), "Synced")
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair the local Charm database by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Repairing swim database...")
		result, err := kv.Repair(charm.DBName, syncRepairForce)

		if result.WalCheckpointed {
			success(out, "WAL checkpointed")
		}
		if result.ShmRemoved {
			success(out, "SHM file removed")
		}
		if result.IntegrityOK {
			success(out, "Integrity check passed")
		} else {
			failure(out, "Integrity check failed")
		}
		if result.Vacuumed {
			success(out, "Database vacuumed")
		}

		if err != nil {
			if !syncRepairForce {
				warn(out, "\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		success(out, "Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmStore()
		if err != nil {
			return err
		}
		if !confirm(cmd, "This will DELETE the local roster and restore it from cloud.\nContinue? [y/N]: ", "y", "yes") {
			fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
			return nil
		}
		if err := client.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		success(cmd.OutOrStdout(), "Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "This will PERMANENTLY DELETE all cloud backups and the local roster.\nType 'wipe' to confirm: ", "wipe") {
			fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		out := cmd.OutOrStdout()
		success(out, "Data wiped successfully")
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

// charmStore returns the open store as a Charm client.
func charmStore() (*charm.Client, error) {
	client, ok := store.(*charm.Client)
	if !ok {
		return nil, fmt.Errorf("sync needs the charm backend (current: %s); use --backend charm", cfg.GetBackend())
	}
	return client, nil
}

func runCharm(cmd *cobra.Command, arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = cmd.InOrStdin()
	charmCmd.Stdout = cmd.OutOrStdout()
	charmCmd.Stderr = cmd.ErrOrStderr()
	return charmCmd.Run()
}

// confirm prints prompt and reports whether the reply is one of accepted.
func confirm(cmd *cobra.Command, prompt string, accepted ...string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	return readConfirmation(cmd.InOrStdin(), accepted...)
}

func readConfirmation(r io.Reader, accepted ...string) bool {
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	for _, a := range accepted {
		if response == a {
			return true
		}
	}
	return false
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
