// Command rota runs one solve→expand→aggregate pass over a JSON input
// document and writes a JSON output document, standing in for the
// workbook-in/workbook-out collaborator spec.md §6 describes (no
// spreadsheet library exists anywhere in this codebase's dependency
// corpus, so the CLI speaks the same data contract in JSON instead).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	inputPath              string
	outputPath             string
	timeLimitSeconds       int
	noHardWeekGap          bool
	noHardNoConsecWeekends bool
)

var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "Solve a consultant duty rota and export the resulting day sequence",
	RunE:  runSolve,
}

func init() {
	rootCmd.Flags().StringVar(&inputPath, "input", "", "input document path (required)")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "output document path (required)")
	rootCmd.Flags().IntVar(&timeLimitSeconds, "time_limit", 60, "solver wall-clock limit, in seconds")
	rootCmd.Flags().BoolVar(&noHardWeekGap, "no_hard_week_gap", false, "disable the one-block-gap-per-week hard constraint")
	rootCmd.Flags().BoolVar(&noHardNoConsecWeekends, "no_hard_no_consec_weekends", false, "disable the no-consecutive-weekends hard constraint")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
