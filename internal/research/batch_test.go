package research

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vidscout/internal/core"
)

func okResult(topic string) *core.ResearchResult {
	return &core.ResearchResult{ID: "r-" + topic, Topic: topic}
}

func TestRunBatchIsolatesFailingTopic(t *testing.T) {
	topics := []string{"fitness", "doomed", "restaurants"}
	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		if topic == "doomed" {
			return nil, errors.New("search backend rejected the query")
		}
		return okResult(topic), nil
	}

	entries := runBatch(context.Background(), topics, BatchOptions{Concurrency: 2}, run)

	if len(entries) != 3 {
		t.Fatalf("Expected an entry per topic, got %d", len(entries))
	}
	if entries["doomed"].Err == nil {
		t.Error("Expected the failing topic to carry an error entry")
	}
	if entries["doomed"].Result != nil {
		t.Error("Expected no result for the failing topic")
	}
	for _, topic := range []string{"fitness", "restaurants"} {
		entry := entries[topic]
		if entry.Err != nil {
			t.Errorf("Expected %q to succeed despite the failing sibling, got %v", topic, entry.Err)
		}
		if entry.Result == nil || entry.Result.Topic != topic {
			t.Errorf("Expected result for %q, got %+v", topic, entry.Result)
		}
	}
}

func TestRunBatchIsolatesPanickingTopic(t *testing.T) {
	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		if topic == "explosive" {
			panic("unexpected nil somewhere deep")
		}
		return okResult(topic), nil
	}

	entries := runBatch(context.Background(), []string{"explosive", "calm"}, BatchOptions{Concurrency: 2}, run)

	if entries["explosive"].Err == nil {
		t.Error("Expected the panicking topic to carry an error entry")
	}
	if entries["calm"].Err != nil {
		t.Errorf("Expected the sibling topic to succeed, got %v", entries["calm"].Err)
	}
}

func TestRunBatchGroupSizing(t *testing.T) {
	var mu sync.Mutex
	running, peak := 0, 0

	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return okResult(topic), nil
	}

	topics := []string{"a", "b", "c", "d", "e"}
	entries := runBatch(context.Background(), topics, BatchOptions{Concurrency: 2}, run)

	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}
	if peak > 2 {
		t.Errorf("Expected at most 2 concurrent topics, observed %d", peak)
	}
}

func TestRunBatchProgressCallback(t *testing.T) {
	var sizes []int
	opts := BatchOptions{
		Concurrency: 2,
		OnGroupDone: func(done map[string]BatchEntry) {
			sizes = append(sizes, len(done))
		},
	}

	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		return okResult(topic), nil
	}

	runBatch(context.Background(), []string{"a", "b", "c"}, opts, run)

	if len(sizes) != 2 {
		t.Fatalf("Expected callback after each of 2 groups, got %d calls", len(sizes))
	}
	if sizes[0] != 2 || sizes[1] != 3 {
		t.Errorf("Expected cumulative snapshots of 2 then 3, got %v", sizes)
	}
}

func TestRunBatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		return okResult(topic), nil
	}

	entries := runBatch(ctx, []string{"a", "b"}, BatchOptions{Concurrency: 1}, run)

	for topic, entry := range entries {
		if entry.Err == nil {
			t.Errorf("Expected cancellation error for %q, got result", topic)
		}
	}
}

func TestRunBatchDefaultConcurrency(t *testing.T) {
	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		return okResult(topic), nil
	}

	entries := runBatch(context.Background(), []string{"a", "b", "c"}, BatchOptions{}, run)

	if len(entries) != 3 {
		t.Errorf("Expected all topics to run with default concurrency, got %d entries", len(entries))
	}
}

func TestRunBatchEmptyTopics(t *testing.T) {
	run := func(ctx context.Context, topic string) (*core.ResearchResult, error) {
		return nil, fmt.Errorf("should never run")
	}

	entries := runBatch(context.Background(), nil, DefaultBatchOptions(), run)

	if len(entries) != 0 {
		t.Errorf("Expected empty map for no topics, got %d entries", len(entries))
	}
}
