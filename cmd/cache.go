package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sveder/riftwind/internal/cache"
	"github.com/Sveder/riftwind/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the API response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show disk cache entry counts and size",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired disk cache entries",
	Args:  cobra.NoArgs,
	RunE:  runCacheSweep,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheSweepCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	s := openDisk().Stats()
	fmt.Fprintf(os.Stdout, "Entries: %d (expired: %d)\nSize: %.1f KiB\n",
		s.Entries, s.Expired, float64(s.Bytes)/1024)
	return nil
}

func runCacheSweep(cmd *cobra.Command, args []string) error {
	removed := openDisk().Sweep()
	fmt.Fprintf(os.Stdout, "Removed %d expired entries\n", removed)
	return nil
}

// openDisk builds just the disk layer; cache commands never touch the Riot
// API so a missing RIOT_API_KEY is fine here.
func openDisk() *cache.Disk {
	dir, ttl := config.CacheSettings()
	return cache.NewDisk(dir, ttl, newLogger(flagDebug))
}
