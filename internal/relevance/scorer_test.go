package relevance

import (
	"testing"
	"time"

	"vidscout/internal/core"
)

var evalTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestScoreLowSignalVideo(t *testing.T) {
	// Nothing in the title or description matches, no engagement, published
	// two years ago: only the view-count term contributes.
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{
			Title:       "Unrelated vlog",
			Description: "Just a day in the life",
			PublishedAt: evalTime.AddDate(-2, 0, 0),
		},
		ViewCount: 50,
	}

	got := ScoreAt(detail, "fitness", evalTime)
	if got != 8 { // floor(log10(50) * 5) = 8
		t.Errorf("Expected score 8 from views alone, got %d", got)
	}
}

func TestScoreTitleAndDescriptionBonuses(t *testing.T) {
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{
			Title:       "Fitness Marketing Strategy Case Study: Real Results",
			Description: "A fitness marketing breakdown",
			PublishedAt: evalTime.AddDate(0, -1, 0),
		},
		ViewCount: 1,
	}

	// title: topic 20 + marketing 15 + strategy 10 + case study 15 + results 10 = 70
	// description: topic 10 + marketing 5 = 15
	// views log10(1)*5 = 0, engagement 0, recency 10
	got := ScoreAt(detail, "fitness", evalTime)
	if got != 95 {
		t.Errorf("Expected score 95, got %d", got)
	}
}

func TestScoreEngagementCapped(t *testing.T) {
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{Title: "x", PublishedAt: evalTime.AddDate(-1, 0, 0)},
		ViewCount:      100,
		LikeCount:      500,
		CommentCount:   500,
	}

	// engagement ratio = 10, *1000 far above cap -> 20; views log10(100)*5 = 10
	got := ScoreAt(detail, "zzz", evalTime)
	if got != 30 {
		t.Errorf("Expected capped engagement + view score = 30, got %d", got)
	}
}

func TestScoreViewScoreCapped(t *testing.T) {
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{Title: "x", PublishedAt: evalTime.AddDate(-1, 0, 0)},
		ViewCount:      1_000_000_000, // log10 = 9, *5 = 45, capped at 25
	}

	got := ScoreAt(detail, "zzz", evalTime)
	if got != 25 {
		t.Errorf("Expected view score capped at 25, got %d", got)
	}
}

func TestScoreRecencyBonus(t *testing.T) {
	recent := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{Title: "x", PublishedAt: evalTime.AddDate(0, -3, 0)},
		ViewCount:      1,
	}
	old := recent
	old.PublishedAt = evalTime.AddDate(0, -8, 0)

	if got := ScoreAt(recent, "zzz", evalTime); got != 10 {
		t.Errorf("Expected recency bonus 10 for 3-month-old video, got %d", got)
	}
	if got := ScoreAt(old, "zzz", evalTime); got != 0 {
		t.Errorf("Expected no recency bonus for 8-month-old video, got %d", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{
			Title:       "Fitness Marketing Results",
			Description: "fitness tips",
			PublishedAt: evalTime.AddDate(0, -2, 0),
		},
		ViewCount:    12345,
		LikeCount:    321,
		CommentCount: 45,
	}

	first := ScoreAt(detail, "fitness", evalTime)
	for i := 0; i < 10; i++ {
		if got := ScoreAt(detail, "fitness", evalTime); got != first {
			t.Fatalf("Expected deterministic score %d, got %d on repeat %d", first, got, i)
		}
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{Title: "FITNESS MARKETING", PublishedAt: evalTime.AddDate(-1, 0, 0)},
		ViewCount:      1,
	}

	got := ScoreAt(detail, "Fitness", evalTime)
	if got != 35 { // topic 20 + marketing 15
		t.Errorf("Expected case-insensitive matching to score 35, got %d", got)
	}
}
