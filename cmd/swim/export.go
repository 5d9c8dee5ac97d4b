// ABOUTME: CLI commands for exporting and importing roster data.
// ABOUTME: Supports JSON, YAML, XML and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the roster",
	Long: `Export every swimmer and race.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  xml        XML export, same shape as the xml backend file
  markdown   Markdown tables (for documentation/sharing)

EXAMPLES:

  swim export json                 # Export all data as JSON
  swim export json -o backup.json  # Save to file
  swim export markdown             # Tables for sharing`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "xml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		if args[0] == "markdown" || args[0] == "md" {
			data = []byte(storage.ExportMarkdown(swimRoster.Swimmers()))
		} else {
			format, err := storage.ParseFormat(args[0])
			if err != nil {
				return fmt.Errorf("%w (use json, yaml, xml, or markdown)", err)
			}
			data, err = storage.Export(swimRoster.Swimmers(), format)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(cmd.OutOrStdout(), "Exported %d swimmers to %s", swimRoster.NumberOfSwimmers(), exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import swimmers from an export file",
	Long: `Import swimmers from a json, yaml or xml export, or from a file backend's
document. The format comes from the file extension unless --format is set.

Imported swimmers are appended with new IDs. Their races keep their IDs.

EXAMPLES:

  swim import backup.json
  swim import roster.dat --format xml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		name := importFormat
		if name == "" {
			name = strings.TrimPrefix(filepath.Ext(filename), ".")
		}
		format, err := storage.ParseFormat(strings.ToLower(name))
		if err != nil {
			return fmt.Errorf("%w (pass --format json, yaml or xml)", err)
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		swimmers, err := storage.Import(data, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		for _, s := range swimmers {
			swimRoster.Add(s)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Imported %d swimmers from %s", len(swimmers), filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format: json, yaml, xml")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
