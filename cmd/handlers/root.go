package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vidscout/internal/cache"
	"vidscout/internal/config"
	"vidscout/internal/discovery"
	"vidscout/internal/logger"
	"vidscout/internal/query"
	"vidscout/internal/research"
	"vidscout/internal/transcript"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vidscout",
		Short: "Vidscout researches industry video content and its transcripts.",
		Long: `Vidscout discovers videos for an industry topic, acquires transcripts
through a cascade of extraction methods, scores relevance and transcript
quality, and aggregates per-topic insight summaries.

Examples:
  vidscout research "fitness coaching"
  vidscout research "fitness coaching" --depth deep --min-views 1000
  vidscout batch "fitness" "real estate" "dental clinics"
  vidscout cache stats`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vidscout.yaml)")

	rootCmd.AddCommand(NewResearchCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewCacheCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Logging.Level)
}

// buildPipeline wires the full research stack from configuration. The
// returned store must be closed by the caller.
func buildPipeline(ctx context.Context) (*research.Researcher, cache.Store, error) {
	cfg := config.Get()

	usage := discovery.NewUsageTracker(cfg.YouTube.DailyQuotaLimit)
	client, err := discovery.NewClient(ctx, cfg.YouTube, usage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize discovery client: %w", err)
	}

	store, err := cache.NewSQLiteStore(cfg.Cache.Directory)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open transcript cache: %w", err)
	}

	httpClient := &http.Client{Timeout: config.Duration(cfg.Transcripts.Timeout, 15*time.Second)}
	engine := transcript.NewDefaultEngine(store, cfg.Transcripts, httpClient)

	researcher := research.NewResearcher(
		client,
		engine,
		config.Duration(cfg.Research.TermDelay, time.Second),
		config.Duration(cfg.Research.MaxDuration, 0),
		usage,
	)
	return researcher, store, nil
}

// researchOptions translates configuration plus command flags into pipeline
// options.
func researchOptions(depth string, minViews int64) research.Options {
	cfg := config.Get()

	opts := research.DefaultOptions()
	opts.Depth = query.Depth(depth)
	opts.MaxPerTerm = cfg.Research.MaxPerTerm
	if minViews > 0 {
		opts.MinViews = minViews
	} else {
		opts.MinViews = cfg.Research.MinViews
	}

	opts.Transcripts.MinLength = cfg.Transcripts.MinLength
	opts.Transcripts.PreferredService = cfg.Transcripts.PreferredService
	opts.Transcripts.CacheTTL = config.Duration(cfg.Transcripts.TTL, 7*24*time.Hour)
	return opts
}
