package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <gameName#tagLine>",
	Short: "Fetch and cache a season of matches without analyzing",
	Long:  "Warm the API cache for a player so later review and roast runs skip the network.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	name, tag, err := splitRiotID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Debug)
	pipeline, _ := newPipeline(cfg, log, nil)

	repo, _, err := pipeline.Build(cmd.Context(), name, tag, cfg.Region)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Fetched %d of %d matches for %s (%d timelines)\n",
		len(repo.Matches), repo.RequestedCount, repo.Account.RiotID(), len(repo.Timelines))
	return nil
}
