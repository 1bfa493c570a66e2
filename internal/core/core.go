package core

import "time"

// QualityClass is a coarse classification of transcript text usability.
type QualityClass string

const (
	QualityNone   QualityClass = "none"
	QualityLow    QualityClass = "low"
	QualityMedium QualityClass = "medium"
	QualityHigh   QualityClass = "high"
)

// VideoCandidate represents a video returned by discovery, not yet scored.
type VideoCandidate struct {
	ID           string    `json:"id"`            // Video identifier
	Title        string    `json:"title"`         // Video title
	Description  string    `json:"description"`   // Snippet description
	ChannelTitle string    `json:"channel_title"` // Publishing channel name
	PublishedAt  time.Time `json:"published_at"`  // Publication timestamp
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// VideoDetail is a VideoCandidate enriched with per-video statistics.
// Immutable once fetched.
type VideoDetail struct {
	VideoCandidate
	ViewCount    int64         `json:"view_count"`
	LikeCount    int64         `json:"like_count"`
	CommentCount int64         `json:"comment_count"`
	Duration     time.Duration `json:"duration"`
	Tags         []string      `json:"tags,omitempty"`
}

// EngagementRatio returns (likes + comments) / views, guarding against
// zero views.
func (d VideoDetail) EngagementRatio() float64 {
	views := d.ViewCount
	if views < 1 {
		views = 1
	}
	return float64(d.LikeCount+d.CommentCount) / float64(views)
}

// TranscriptRecord is the outcome of one transcript acquisition attempt.
// A record with empty Text signals that every configured method failed;
// absence of a transcript is a normal outcome, not an error.
type TranscriptRecord struct {
	VideoID        string        `json:"video_id"`
	Text           string        `json:"text,omitempty"`
	Method         string        `json:"method,omitempty"` // Provider that produced the text
	LengthChars    int           `json:"length_chars"`
	Quality        QualityClass  `json:"quality"`
	FromCache      bool          `json:"from_cache"`
	CachedAt       time.Time     `json:"cached_at,omitempty"`
	ExpiresAt      time.Time     `json:"expires_at,omitempty"`
	Elapsed        time.Duration `json:"elapsed,omitempty"`
	FailureReasons []string      `json:"failure_reasons,omitempty"`
}

// HasTranscript reports whether the acquisition produced usable text.
func (r TranscriptRecord) HasTranscript() bool {
	return r.Text != ""
}

// Expired reports whether the record's cache entry is past its expiry.
// Records without an expiry never expire.
func (r TranscriptRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

// ScoredVideo bundles a video's detail, transcript and scoring for a topic.
type ScoredVideo struct {
	VideoDetail
	Transcript     TranscriptRecord `json:"transcript"`
	RelevanceScore int              `json:"relevance_score"`
	Quality        QualityClass     `json:"quality"`
	SearchTerm     string           `json:"search_term"` // Term that discovered this video
}

// TranscriptionStats summarizes transcript acquisition over one topic run.
type TranscriptionStats struct {
	Attempted int            `json:"attempted"`
	Succeeded int            `json:"succeeded"`
	FromCache int            `json:"from_cache"`
	Failed    int            `json:"failed"`
	ByMethod  map[string]int `json:"by_method,omitempty"`
}

// ProcessingStats tracks API usage and pipeline progress for one topic run.
type ProcessingStats struct {
	APICalls         int           `json:"api_calls"`
	QuotaUnits       int           `json:"quota_units"`
	TermsSearched    int           `json:"terms_searched"`
	VideosConsidered int           `json:"videos_considered"`
	VideosSkipped    int           `json:"videos_skipped"`
	StartedAt        time.Time     `json:"started_at"`
	Elapsed          time.Duration `json:"elapsed"`
}

// ResearchResult is the full per-topic output bundle. Videos are sorted by
// relevance score descending once the run finalizes.
type ResearchResult struct {
	ID            string             `json:"id"`
	Topic         string             `json:"topic"`
	SearchTerms   []string           `json:"search_terms"`
	Videos        []ScoredVideo      `json:"videos"`
	Channels      []string           `json:"channels"`
	Transcription TranscriptionStats `json:"transcription_stats"`
	Processing    ProcessingStats    `json:"processing_stats"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// InsightType distinguishes the kinds of derived insights.
type InsightType string

const (
	InsightTheme     InsightType = "theme"
	InsightPainPoint InsightType = "pain_point"
	InsightStrategy  InsightType = "strategy"
	InsightValueProp InsightType = "value_prop"
)

// Insight is a derived, recomputable observation extracted from titles,
// descriptions or transcripts. Non-authoritative.
type Insight struct {
	Type      InsightType `json:"type"`
	Text      string      `json:"text"`
	Category  string      `json:"category,omitempty"`
	Frequency int         `json:"frequency,omitempty"`
}
