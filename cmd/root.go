package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sveder/riftwind/internal/api"
	"github.com/Sveder/riftwind/internal/cache"
	"github.com/Sveder/riftwind/internal/config"
	"github.com/Sveder/riftwind/internal/narrative"
)

var (
	flagRegion string
	flagYear   int
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "riftwind",
	Short: "League of Legends year-in-review tool",
	Long:  "Fetch a season of match history from the Riot API and build an AI-narrated year in review.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "platform region, e.g. na1, euw1 (falls back to $RIOT_REGION)")
	rootCmd.PersistentFlags().IntVar(&flagYear, "year", 0, "calendar year to review (default: current year)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(roastCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagRegion != "" {
		cfg.Region = flagRegion
	}
	if flagYear != 0 {
		cfg.Year = flagYear
	}
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newCache(cfg *config.Config, log zerolog.Logger) *cache.Tiered {
	if !cfg.CacheEnabled {
		return nil
	}
	memory := cache.NewMemory(cfg.MemoryTTL)
	disk := cache.NewDisk(cfg.CacheDir, cfg.DiskTTL, log)
	return cache.NewTiered(memory, disk, log)
}

// newPipeline assembles the full review pipeline. sink receives streamed
// narrative deltas as they arrive; pass nil for the API server. The generator
// is returned alongside so commands can narrate a repository they already
// fetched.
func newPipeline(cfg *config.Config, log zerolog.Logger, sink io.Writer) (*api.Pipeline, *narrative.Generator) {
	gen := narrative.NewGenerator(narrative.Config{
		APIKey: cfg.AnthropicAPIKey,
		Model:  cfg.AnthropicModel,
		Logger: log,
		Sink:   sink,
	})
	return api.NewPipeline(*cfg, newCache(cfg, log), gen, log), gen
}

// splitRiotID parses "gameName#tagLine".
func splitRiotID(arg string) (string, string, error) {
	name, tag, ok := strings.Cut(arg, "#")
	if !ok || name == "" || tag == "" {
		return "", "", fmt.Errorf("invalid Riot ID %q: expected gameName#tagLine", arg)
	}
	return name, tag, nil
}
