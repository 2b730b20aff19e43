package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sveder/riftwind/internal/report"
)

var reviewCmd = &cobra.Command{
	Use:   "review <gameName#tagLine>",
	Short: "Fetch a season of matches and print the full year-in-review",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	name, tag, err := splitRiotID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Debug)
	pipeline, gen := newPipeline(cfg, log, os.Stdout)

	repo, analysis, err := pipeline.Build(cmd.Context(), name, tag, cfg.Region)
	if err != nil {
		return err
	}

	report.PrintHeader(os.Stdout, repo)
	report.PrintChampionTable(os.Stdout, repo)
	fmt.Fprintln(os.Stdout)
	report.PrintMonthTable(os.Stdout, repo)
	fmt.Fprintln(os.Stdout)
	report.PrintInsightTable(os.Stdout, analysis)

	fmt.Fprintln(os.Stdout, "\n─── Year in Review ──────────────────────────────────")
	gen.Narrative(cmd.Context(), repo, analysis)
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")
	return nil
}
