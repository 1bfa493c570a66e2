package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"vidscout/internal/core"
)

// SQLiteStore persists transcripts in a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the transcript database under
// the given data directory.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vidscout.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the transcripts table.
func (s *SQLiteStore) initialize() error {
	table := `
	CREATE TABLE IF NOT EXISTS transcripts (
		video_id TEXT PRIMARY KEY,
		text TEXT,
		method TEXT,
		length_chars INTEGER,
		quality TEXT,
		cached_at DATETIME,
		expires_at DATETIME
	);`

	if _, err := s.db.Exec(table); err != nil {
		return fmt.Errorf("failed to create transcripts table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get retrieves a cached transcript. Expired rows are treated as absent and
// purged lazily.
func (s *SQLiteStore) Get(ctx context.Context, videoID string) (*core.TranscriptRecord, error) {
	query := `
	SELECT video_id, text, method, length_chars, quality, cached_at, expires_at
	FROM transcripts
	WHERE video_id = ?`

	row := s.db.QueryRowContext(ctx, query, videoID)

	var record core.TranscriptRecord
	var quality string
	var expiresAt sql.NullTime
	err := row.Scan(
		&record.VideoID,
		&record.Text,
		&record.Method,
		&record.LengthChars,
		&quality,
		&record.CachedAt,
		&expiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached transcript: %w", err)
	}

	record.Quality = core.QualityClass(quality)
	if expiresAt.Valid {
		record.ExpiresAt = expiresAt.Time
	}

	if record.Expired(time.Now()) {
		_ = s.Delete(ctx, videoID)
		return nil, nil
	}

	return &record, nil
}

// Set stores a transcript record. A non-positive ttl means no expiry.
func (s *SQLiteStore) Set(ctx context.Context, record core.TranscriptRecord, ttl time.Duration) error {
	now := time.Now().UTC()
	var expiresAt any
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	query := `
	INSERT OR REPLACE INTO transcripts
	(video_id, text, method, length_chars, quality, cached_at, expires_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		record.VideoID,
		record.Text,
		record.Method,
		record.LengthChars,
		string(record.Quality),
		now,
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to cache transcript: %w", err)
	}
	return nil
}

// Delete removes a cached transcript.
func (s *SQLiteStore) Delete(ctx context.Context, videoID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE video_id = ?`, videoID)
	return err
}

// Clear removes every cached transcript and returns the number of rows
// deleted.
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transcripts`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear transcript cache: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return deleted, nil
}

// Stats reports entry counts.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{}

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(length_chars), 0) FROM transcripts`)
	if err := row.Scan(&stats.Entries, &stats.TotalChars); err != nil {
		return stats, fmt.Errorf("failed to read cache stats: %w", err)
	}

	row = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transcripts WHERE expires_at IS NOT NULL AND expires_at < ?`, time.Now().UTC())
	if err := row.Scan(&stats.Expired); err != nil {
		return stats, fmt.Errorf("failed to count expired entries: %w", err)
	}

	return stats, nil
}
