package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidscout/internal/cache"
	"vidscout/internal/config"
	"vidscout/internal/logger"
)

// NewCacheCmd creates the transcript cache management command
func NewCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the transcript cache",
		Long:  `Inspect and manage the SQLite cache of acquired transcripts.`,
	}

	cacheCmd.AddCommand(newCacheStatsCmd())
	cacheCmd.AddCommand(newCacheClearCmd())

	return cacheCmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show transcript cache statistics",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCacheStats(); err != nil {
				logger.Error("Failed to get cache stats", err)
				os.Exit(1)
			}
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached transcripts",
		Run: func(cmd *cobra.Command, args []string) {
			confirm, _ := cmd.Flags().GetBool("confirm")
			if err := runCacheClear(confirm); err != nil {
				logger.Error("Failed to clear cache", err)
				os.Exit(1)
			}
		},
	}

	clearCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	return clearCmd
}

func runCacheStats() error {
	store, err := cache.NewSQLiteStore(config.GetCacheDirectory())
	if err != nil {
		return fmt.Errorf("failed to open transcript cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Transcript Cache")
	fmt.Println("================")
	fmt.Printf("Entries:         %d\n", stats.Entries)
	fmt.Printf("Expired:         %d\n", stats.Expired)
	fmt.Printf("Transcript text: %.2f MB\n", float64(stats.TotalChars)/1024/1024)
	return nil
}

func runCacheClear(confirm bool) error {
	if !confirm {
		fmt.Print("This will remove all cached transcripts. Continue? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" && response != "yes" {
			fmt.Println("Cache clear cancelled")
			return nil
		}
	}

	store, err := cache.NewSQLiteStore(config.GetCacheDirectory())
	if err != nil {
		return fmt.Errorf("failed to open transcript cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	removed, err := store.Clear(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cached transcripts\n", removed)
	return nil
}
