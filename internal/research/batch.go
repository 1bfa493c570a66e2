package research

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vidscout/internal/core"
	"vidscout/internal/logger"
)

// BatchEntry is one topic's outcome in a batch run. Exactly one of Result
// or Err is set.
type BatchEntry struct {
	Result *core.ResearchResult
	Err    error
}

// BatchOptions configure a batch run.
type BatchOptions struct {
	// Concurrency is the group size; topics within a group run in
	// parallel and the whole group finishes before the next starts.
	Concurrency int
	// DelayBetweenBatches is the pause between groups.
	DelayBetweenBatches time.Duration
	// OnGroupDone, when set, receives a snapshot of all entries so far
	// after each group. Callers use it to persist partial progress.
	OnGroupDone func(done map[string]BatchEntry)
}

// DefaultBatchOptions returns the standard batch configuration.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Concurrency:         2,
		DelayBetweenBatches: 5 * time.Second,
	}
}

// runTopic is the per-topic pipeline a batch fans out over.
type runTopic func(ctx context.Context, topic string) (*core.ResearchResult, error)

// BatchResearch runs the researcher's pipeline over many topics in groups
// of Concurrency, pausing between groups. A failing or panicking topic only
// affects its own entry.
func (r *Researcher) BatchResearch(ctx context.Context, topics []string, opts BatchOptions, searchOpts Options) map[string]BatchEntry {
	return runBatch(ctx, topics, opts, func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		return r.SearchByIndustry(ctx, topic, searchOpts)
	})
}

func runBatch(ctx context.Context, topics []string, opts BatchOptions, run runTopic) map[string]BatchEntry {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 2
	}

	entries := make(map[string]BatchEntry, len(topics))
	var mu sync.Mutex

	for start := 0; start < len(topics); start += opts.Concurrency {
		if err := ctx.Err(); err != nil {
			for _, topic := range topics[start:] {
				entries[topic] = BatchEntry{Err: fmt.Errorf("batch canceled before topic started: %w", err)}
			}
			break
		}

		end := start + opts.Concurrency
		if end > len(topics) {
			end = len(topics)
		}
		group := topics[start:end]
		logger.Info("Starting batch group", "topics", len(group), "completed", start, "total", len(topics))

		var wg sync.WaitGroup
		for _, topic := range group {
			wg.Add(1)
			go func(topic string) {
				defer wg.Done()
				entry := runIsolated(ctx, topic, run)
				mu.Lock()
				entries[topic] = entry
				mu.Unlock()
			}(topic)
		}
		wg.Wait()

		if opts.OnGroupDone != nil {
			opts.OnGroupDone(snapshot(entries))
		}

		if end < len(topics) && opts.DelayBetweenBatches > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(opts.DelayBetweenBatches):
			}
		}
	}

	return entries
}

// runIsolated executes one topic, converting a panic into that topic's
// error entry so the rest of the batch proceeds.
func runIsolated(ctx context.Context, topic string, run runTopic) (entry BatchEntry) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Topic pipeline panicked", fmt.Errorf("%v", r), "topic", topic)
			entry = BatchEntry{Err: fmt.Errorf("research for %q panicked: %v", topic, r)}
		}
	}()

	result, err := run(ctx, topic)
	if err != nil {
		logger.Warn("Topic research failed", "topic", topic, "error", err.Error())
		return BatchEntry{Err: err}
	}
	return BatchEntry{Result: result}
}

func snapshot(entries map[string]BatchEntry) map[string]BatchEntry {
	copied := make(map[string]BatchEntry, len(entries))
	for topic, entry := range entries {
		copied[topic] = entry
	}
	return copied
}
