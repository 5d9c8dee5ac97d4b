// ABOUTME: CLI command printing roster statistics.
// ABOUTME: --prom emits the Prometheus text exposition instead.
package main

import (
	"fmt"

	"github.com/harperreed/swim/internal/metrics"
	"github.com/harperreed/swim/internal/models"
	"github.com/spf13/cobra"
)

var statsProm bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show roster counts",
	Long: `Show swimmer and race counts.

With --prom the same numbers are printed in Prometheus text format, suitable
for the node_exporter textfile collector.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if statsProm {
			return metrics.WriteText(out, swimRoster)
		}

		fmt.Fprintf(out, "Swimmers:  %d (%d active, %d archived)\n",
			swimRoster.NumberOfSwimmers(), swimRoster.NumberOfActiveSwimmers(), swimRoster.NumberOfArchivedSwimmers())
		fmt.Fprintf(out, "Races:     %d graded, %d ungraded\n",
			swimRoster.NumberOfGradedRaces(), swimRoster.NumberOfUngradedRaces())
		fmt.Fprintln(out, faint.Sprint("By level:"))
		for level := 1; level <= 5; level++ {
			fmt.Fprintf(out, "  %d  %d\n", level, swimRoster.NumberOfSwimmersByLevel(level))
		}
		fmt.Fprintln(out, faint.Sprint("By category:"))
		for _, category := range models.Categories {
			n := 0
			for _, s := range swimRoster.Swimmers() {
				if s.Category == category {
					n++
				}
			}
			fmt.Fprintf(out, "  %s %d\n", padRight(category, 13), n)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsProm, "prom", false, "print Prometheus text format")
	rootCmd.AddCommand(statsCmd)
}
