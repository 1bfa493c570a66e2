// Package cache stores acquired transcripts keyed by video id so repeat
// research runs avoid re-hitting transcript providers. Entries past their
// expiry are treated as absent.
package cache

import (
	"context"
	"sync"
	"time"

	"vidscout/internal/core"
)

// Store is the key/value contract the transcript engine consumes.
type Store interface {
	// Get returns the cached record for a video id, or (nil, nil) when the
	// entry is missing or expired.
	Get(ctx context.Context, videoID string) (*core.TranscriptRecord, error)

	// Set stores a record. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, record core.TranscriptRecord, ttl time.Duration) error

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, videoID string) error

	// Stats reports entry counts for diagnostics.
	Stats(ctx context.Context) (Stats, error)

	Close() error
}

// Stats summarizes cache contents.
type Stats struct {
	Entries    int   `json:"entries"`
	Expired    int   `json:"expired"`
	TotalChars int64 `json:"total_chars"`
}

// MemoryStore is an in-process Store used by tests and as a fallback when
// no cache directory is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]core.TranscriptRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]core.TranscriptRecord)}
}

// Get returns a stored record, treating expired entries as absent.
func (m *MemoryStore) Get(ctx context.Context, videoID string) (*core.TranscriptRecord, error) {
	m.mu.RLock()
	record, ok := m.records[videoID]
	m.mu.RUnlock()
	if !ok || record.Expired(time.Now()) {
		return nil, nil
	}
	copied := record
	return &copied, nil
}

// Set stores a record with the given ttl.
func (m *MemoryStore) Set(ctx context.Context, record core.TranscriptRecord, ttl time.Duration) error {
	now := time.Now().UTC()
	record.CachedAt = now
	if ttl > 0 {
		record.ExpiresAt = now.Add(ttl)
	} else {
		record.ExpiresAt = time.Time{}
	}

	m.mu.Lock()
	m.records[record.VideoID] = record
	m.mu.Unlock()
	return nil
}

// Delete removes an entry.
func (m *MemoryStore) Delete(ctx context.Context, videoID string) error {
	m.mu.Lock()
	delete(m.records, videoID)
	m.mu.Unlock()
	return nil
}

// Clear removes every entry and returns the number removed.
func (m *MemoryStore) Clear(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := int64(len(m.records))
	m.records = make(map[string]core.TranscriptRecord)
	return removed, nil
}

// Stats reports entry counts.
func (m *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{}
	now := time.Now()
	for _, record := range m.records {
		stats.Entries++
		stats.TotalChars += int64(record.LengthChars)
		if record.Expired(now) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
