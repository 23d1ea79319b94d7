package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache and index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if cacheManager == nil {
		return errors.New("cache manager not configured")
	}

	cmd.Println("Caches:")
	stats := cacheManager.AllStats()
	for _, name := range cacheManager.Names() {
		s := stats[name]
		cmd.Printf("  %-12s %4d items, %8d bytes, %5d hits, %5d misses, %4d evictions (hit rate %.0f%%)\n",
			name, s.Size, s.SizeBytes, s.Hits, s.Misses, s.Evictions, s.HitRate())
	}

	if chunkCounter != nil {
		total, embedded, err := chunkCounter.CountChunks(context.Background())
		if err != nil {
			return err
		}
		cmd.Println()
		cmd.Printf("Index: %d chunks stored, %d embedded\n", total, embedded)
	}

	return nil
}
