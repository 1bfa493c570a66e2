package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vidscout/internal/config"
	"vidscout/internal/insights"
	"vidscout/internal/logger"
	"vidscout/internal/research"
)

// NewBatchCmd creates the multi-topic batch command
func NewBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch <topic> [topic...]",
		Short: "Research many industry topics with bounded concurrency",
		Long: `Run the research pipeline over several topics in groups, pausing
between groups to respect external rate limits. A topic that fails does not
stop the rest of the batch.

Examples:
  vidscout batch "fitness" "real estate" "dental clinics"
  vidscout batch "fitness" "real estate" --concurrency 3 --depth quick`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			depth, _ := cmd.Flags().GetString("depth")
			minViews, _ := cmd.Flags().GetInt64("min-views")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			outputDir, _ := cmd.Flags().GetString("output")

			if err := runBatch(args, depth, minViews, concurrency, outputDir); err != nil {
				logger.Error("Batch research failed", err)
				os.Exit(1)
			}
		},
	}

	batchCmd.Flags().String("depth", "standard", "Search depth: quick, standard, deep")
	batchCmd.Flags().Int64("min-views", 0, "Skip videos below this view count")
	batchCmd.Flags().Int("concurrency", 0, "Topics per group (default from config)")
	batchCmd.Flags().String("output", "", "Output directory (default from config)")

	return batchCmd
}

func runBatch(topics []string, depth string, minViews int64, concurrency int, outputDir string) error {
	ctx := context.Background()
	cfg := config.Get()

	researcher, store, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if outputDir == "" {
		outputDir = config.GetOutputDirectory()
	}
	if concurrency <= 0 {
		concurrency = cfg.Research.BatchConcurrency
	}

	batchOpts := research.BatchOptions{
		Concurrency:         concurrency,
		DelayBetweenBatches: config.Duration(cfg.Research.DelayBetweenBatches, 5*time.Second),
		OnGroupDone: func(done map[string]research.BatchEntry) {
			logger.Info("Batch group complete", "topics_done", len(done), "topics_total", len(topics))
		},
	}

	entries := researcher.BatchResearch(ctx, topics, batchOpts, researchOptions(depth, minViews))

	failed := 0
	for _, topic := range topics {
		entry := entries[topic]
		if entry.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED  %s: %v\n", topic, entry.Err)
			continue
		}
		if err := exportResult(entry.Result, insights.Aggregate(entry.Result), "", outputDir); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED  %s: export: %v\n", topic, err)
			continue
		}
		fmt.Printf("OK      %s: %d videos, %d transcripts\n",
			topic, len(entry.Result.Videos), entry.Result.Transcription.Succeeded)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d topics failed", failed, len(topics))
	}
	return nil
}
