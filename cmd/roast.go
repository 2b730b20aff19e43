package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sveder/riftwind/internal/report"
)

var roastCmd = &cobra.Command{
	Use:   "roast <gameName#tagLine>",
	Short: "Fetch a season of matches and roast the player",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoast,
}

func runRoast(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(os.Stdout, "─── Roast ───────────────────────────────────────────")
	gen.Roast(cmd.Context(), repo, analysis)
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")
	return nil
}
