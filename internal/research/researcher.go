// Package research runs the per-topic pipeline: generate search terms,
// discover candidate videos, fetch their details, acquire transcripts and
// score everything into a ResearchResult. Batch orchestration across topics
// lives in batch.go.
package research

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"vidscout/internal/core"
	"vidscout/internal/discovery"
	"vidscout/internal/logger"
	"vidscout/internal/query"
	"vidscout/internal/relevance"
	"vidscout/internal/transcript"
)

// Discovery is the search/detail surface the pipeline consumes.
type Discovery interface {
	Search(ctx context.Context, term string, maxResults int) ([]core.VideoCandidate, error)
	FetchDetail(ctx context.Context, videoID string) (core.VideoDetail, error)
}

// Transcripts acquires transcript text for discovered videos.
type Transcripts interface {
	Acquire(ctx context.Context, videoID string, opts transcript.Options) core.TranscriptRecord
}

// Options configure one topic run.
type Options struct {
	Depth       query.Depth
	MinViews    int64
	MaxPerTerm  int
	Transcripts transcript.Options
}

// DefaultOptions returns the standard research options.
func DefaultOptions() Options {
	return Options{
		Depth:       query.DepthStandard,
		MaxPerTerm:  5,
		Transcripts: transcript.DefaultOptions(),
	}
}

// Researcher drives the per-topic pipeline. Terms and videos are processed
// sequentially; the limiter paces term searches against external quotas.
type Researcher struct {
	discovery   Discovery
	transcripts Transcripts
	terms       *query.Generator
	limiter     *rate.Limiter
	maxDuration time.Duration
	usage       *discovery.UsageTracker
}

// NewResearcher wires the pipeline. termDelay is the pause between term
// searches; maxDuration caps a whole topic run (zero means unbounded).
// usage may be nil when no quota ceiling applies.
func NewResearcher(d Discovery, t Transcripts, termDelay, maxDuration time.Duration, usage *discovery.UsageTracker) *Researcher {
	if termDelay <= 0 {
		termDelay = time.Second
	}
	return &Researcher{
		discovery:   d,
		transcripts: t,
		terms:       query.NewGenerator(),
		limiter:     rate.NewLimiter(rate.Every(termDelay), 1),
		maxDuration: maxDuration,
		usage:       usage,
	}
}

// SearchByIndustry runs the full pipeline for one topic and returns the
// finalized result, sorted by relevance descending. Only quota exhaustion
// and context cancellation abort the run; individual term or video failures
// are absorbed into the stats.
func (r *Researcher) SearchByIndustry(ctx context.Context, topic string, opts Options) (*core.ResearchResult, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	if opts.MaxPerTerm <= 0 {
		opts.MaxPerTerm = 5
	}
	if opts.Depth == "" {
		opts.Depth = query.DepthStandard
	}

	started := time.Now()
	var deadline time.Time
	if r.maxDuration > 0 {
		deadline = started.Add(r.maxDuration)
	}

	terms := r.terms.Terms(topic, opts.Depth)
	result := &core.ResearchResult{
		ID:          uuid.NewString(),
		Topic:       topic,
		SearchTerms: terms,
		Transcription: core.TranscriptionStats{
			ByMethod: make(map[string]int),
		},
		Processing: core.ProcessingStats{StartedAt: started},
	}

	logger.Info("Starting industry research", "topic", topic, "depth", string(opts.Depth), "terms", len(terms))

	seen := make(map[string]bool)
	channels := make(map[string]bool)

	for _, term := range terms {
		if !deadline.IsZero() && time.Now().After(deadline) {
			logger.Warn("Research run hit its time budget, finalizing early", "topic", topic, "term", term)
			break
		}
		if r.usage != nil && !r.usage.CanAfford(1) {
			logger.Warn("Quota ceiling reached, finalizing early", "topic", topic, "units", r.usage.Units())
			break
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("research canceled: %w", err)
		}

		candidates, err := r.discovery.Search(ctx, term, opts.MaxPerTerm)
		result.Processing.TermsSearched++
		if err != nil {
			if errors.Is(err, discovery.ErrQuotaExceeded) {
				finalizeResult(result, started, channels)
				return result, fmt.Errorf("search quota exhausted during %q: %w", topic, err)
			}
			logger.Warn("Term search failed, continuing with remaining terms",
				"topic", topic, "term", term, "error", err.Error())
			continue
		}

		for _, candidate := range candidates {
			if seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			result.Processing.VideosConsidered++

			scored, ok := r.processCandidate(ctx, candidate, topic, term, opts, result)
			if !ok {
				result.Processing.VideosSkipped++
				continue
			}
			result.Videos = append(result.Videos, scored)
			channels[scored.ChannelTitle] = true
		}
	}

	finalizeResult(result, started, channels)
	if r.usage != nil {
		result.Processing.APICalls = r.usage.Calls()
		result.Processing.QuotaUnits = r.usage.Units()
	}

	logger.Info("Industry research complete",
		"topic", topic, "videos", len(result.Videos),
		"transcripts", result.Transcription.Succeeded,
		"elapsed", result.Processing.Elapsed.String())
	return result, nil
}

// finalizeResult sorts videos by relevance descending, fills the channel
// set and closes out timing.
func finalizeResult(result *core.ResearchResult, started time.Time, channels map[string]bool) {
	sort.SliceStable(result.Videos, func(i, j int) bool {
		return result.Videos[i].RelevanceScore > result.Videos[j].RelevanceScore
	})
	result.Channels = make([]string, 0, len(channels))
	for channel := range channels {
		result.Channels = append(result.Channels, channel)
	}
	sort.Strings(result.Channels)
	result.GeneratedAt = time.Now()
	result.Processing.Elapsed = time.Since(started)
}

// processCandidate resolves detail, applies filters and acquires the
// transcript for one candidate. ok=false means the video was skipped.
func (r *Researcher) processCandidate(ctx context.Context, candidate core.VideoCandidate, topic, term string, opts Options, result *core.ResearchResult) (core.ScoredVideo, bool) {
	detail, err := r.discovery.FetchDetail(ctx, candidate.ID)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			logger.Debug("Video vanished between search and detail fetch", "video_id", candidate.ID)
		} else {
			logger.Warn("Detail fetch failed, skipping video", "video_id", candidate.ID, "error", err.Error())
		}
		return core.ScoredVideo{}, false
	}

	if opts.MinViews > 0 && detail.ViewCount < opts.MinViews {
		logger.Debug("Video below view threshold", "video_id", candidate.ID, "views", detail.ViewCount)
		return core.ScoredVideo{}, false
	}

	record := r.transcripts.Acquire(ctx, candidate.ID, opts.Transcripts)
	result.Transcription.Attempted++
	if record.HasTranscript() {
		result.Transcription.Succeeded++
		result.Transcription.ByMethod[record.Method]++
		if record.FromCache {
			result.Transcription.FromCache++
		}
	} else {
		result.Transcription.Failed++
	}

	return core.ScoredVideo{
		VideoDetail:    detail,
		Transcript:     record,
		RelevanceScore: relevance.Score(detail, topic),
		Quality:        record.Quality,
		SearchTerm:     term,
	}, true
}
