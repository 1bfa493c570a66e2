package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidscout/internal/config"
	"vidscout/internal/core"
	"vidscout/internal/insights"
	"vidscout/internal/logger"
	"vidscout/internal/render"
)

// NewResearchCmd creates the single-topic research command
func NewResearchCmd() *cobra.Command {
	researchCmd := &cobra.Command{
		Use:   "research <topic>",
		Short: "Research video content for one industry topic",
		Long: `Run the full pipeline for one topic: generate search terms, discover
videos, fetch statistics, acquire transcripts through the provider cascade,
score relevance and quality, and write the result to the output directory.

Examples:
  vidscout research "fitness coaching"
  vidscout research "real estate" --depth deep --min-views 5000
  vidscout research "dental clinics" --format csv --comprehensive`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			depth, _ := cmd.Flags().GetString("depth")
			minViews, _ := cmd.Flags().GetInt64("min-views")
			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output")
			comprehensive, _ := cmd.Flags().GetBool("comprehensive")

			if err := runResearch(args[0], depth, minViews, format, outputDir, comprehensive); err != nil {
				logger.Error("Research failed", err, "topic", args[0])
				os.Exit(1)
			}
		},
	}

	researchCmd.Flags().String("depth", "standard", "Search depth: quick, standard, deep")
	researchCmd.Flags().Int64("min-views", 0, "Skip videos below this view count")
	researchCmd.Flags().String("format", "", "Export format: json, csv, text (default from config)")
	researchCmd.Flags().String("output", "", "Output directory (default from config)")
	researchCmd.Flags().Bool("comprehensive", false, "Also run insight aggregation and competitor analysis")

	return researchCmd
}

func runResearch(topic, depth string, minViews int64, format, outputDir string, comprehensive bool) error {
	ctx := context.Background()

	researcher, store, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	opts := researchOptions(depth, minViews)
	if outputDir == "" {
		outputDir = config.GetOutputDirectory()
	}
	if format == "" {
		format = config.GetOutput().Format
	}

	if comprehensive {
		report, err := researcher.ComprehensiveIndustryResearch(ctx, topic, opts)
		if err != nil {
			return err
		}
		if len(report.Competitors) > 0 {
			fmt.Printf("Top channels for %q:\n", topic)
			for _, stat := range report.Competitors {
				fmt.Printf("  %-30s %d videos, %d total views\n", stat.Channel, stat.Videos, stat.TotalViews)
			}
		}
		return exportResult(report.Result, report.Insights, format, outputDir)
	}

	result, err := researcher.SearchByIndustry(ctx, topic, opts)
	if err != nil {
		return err
	}
	return exportResult(result, insights.Aggregate(result), format, outputDir)
}

// exportResult writes the result in the requested format and prints the
// written path, or prints the text summary directly.
func exportResult(result *core.ResearchResult, summary insights.Summary, format, outputDir string) error {
	switch format {
	case "csv":
		path, err := render.WriteCSV(result, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	case "text":
		fmt.Print(render.RenderTextSummary(result, summary))
	default:
		path, err := render.WriteJSON(result, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
