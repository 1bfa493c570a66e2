package insights

import (
	"fmt"
	"strings"
	"testing"

	"vidscout/internal/core"
)

func TestExtractThemes(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{
			name:  "single keyword",
			title: "Fitness Marketing Strategy for 2024",
			want:  []string{"strategy"},
		},
		{
			name:  "multiple categories",
			title: "How to Automate Your Funnel: Tips and Tools",
			want:  []string{"automation", "conversion", "tips", "tools", "tutorial"},
		},
		{
			name:  "case insensitive",
			title: "CASE STUDY: restaurant growth",
			want:  []string{"case_study"},
		},
		{
			name:  "no matches",
			title: "A day in my life",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractThemes(tt.title, "fitness")
			if len(got) != len(tt.want) {
				t.Fatalf("Expected themes %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Expected theme %d to be %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestExtractPainPoints(t *testing.T) {
	transcript := "We kept struggling with getting new clients through the door. " +
		"The weather was nice. " +
		"Our ads were simply not working for months and we burned through budget. " +
		"Short one. " +
		"We kept struggling with getting new clients through the door."

	points := ExtractPainPoints(transcript)

	if len(points) != 2 {
		t.Fatalf("Expected 2 deduplicated pain points, got %d: %v", len(points), points)
	}
	for _, point := range points {
		if len(point) <= minSentenceLength {
			t.Errorf("Expected pain point longer than %d chars, got %q", minSentenceLength, point)
		}
	}
}

func TestExtractPainPointsEmpty(t *testing.T) {
	if got := ExtractPainPoints(""); got != nil {
		t.Errorf("Expected nil for empty transcript, got %v", got)
	}
}

func TestExtractSuccessStrategies(t *testing.T) {
	transcript := "We found that posting before lunch tripled engagement across the board. " +
		"Nothing else mattered much. " +
		"The key was answering every comment within an hour of posting."

	strategies := ExtractSuccessStrategies(transcript)

	if len(strategies) != 2 {
		t.Fatalf("Expected 2 strategies, got %d: %v", len(strategies), strategies)
	}
	if !strings.Contains(strategies[0], "posting before lunch") {
		t.Errorf("Expected first strategy about posting time, got %q", strategies[0])
	}
}

func TestExtractValueProps(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantCount   int
	}{
		{
			name:      "percentage increase",
			title:     "How we got a 47% increase in bookings",
			wantCount: 1,
		},
		{
			name:      "multiplier",
			title:     "3x growth in six months",
			wantCount: 1,
		},
		{
			name:        "dollar amount",
			title:       "Gym marketing",
			description: "This campaign drove $12,000 in sales",
			wantCount:   1,
		},
		{
			name:      "doubled phrasing",
			title:     "We doubled our client base with one change",
			wantCount: 1,
		},
		{
			name:      "no claims",
			title:     "General marketing chat",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractValueProps(tt.title, tt.description)
			if len(got) != tt.wantCount {
				t.Errorf("Expected %d value props, got %v", tt.wantCount, got)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	result := &core.ResearchResult{
		Topic: "fitness",
		Videos: []core.ScoredVideo{
			{
				VideoDetail: core.VideoDetail{
					VideoCandidate: core.VideoCandidate{
						Title: "Fitness Marketing Strategy Tips",
					},
					ViewCount:    1000,
					LikeCount:    40,
					CommentCount: 10,
				},
				Transcript: core.TranscriptRecord{
					VideoID: "a",
					Text: "We were struggling with empty morning classes for a year. " +
						"The key was partnering with local offices on lunchtime sessions.",
					LengthChars: 120,
				},
			},
			{
				VideoDetail: core.VideoDetail{
					VideoCandidate: core.VideoCandidate{
						Title:       "Gym growth strategy case study: 50% increase in signups",
						Description: "Full breakdown of the campaign",
					},
					ViewCount:    2000,
					LikeCount:    100,
					CommentCount: 0,
				},
			},
		},
	}

	summary := Aggregate(result)

	if summary.VideosAnalyzed != 2 {
		t.Errorf("Expected 2 videos analyzed, got %d", summary.VideosAnalyzed)
	}
	if len(summary.Themes) == 0 || summary.Themes[0].Text != "strategy" {
		t.Errorf("Expected strategy as the top theme, got %v", summary.Themes)
	}
	if summary.Themes[0].Frequency != 2 {
		t.Errorf("Expected strategy frequency 2, got %d", summary.Themes[0].Frequency)
	}
	if len(summary.PainPoints) != 1 {
		t.Errorf("Expected 1 pain point, got %v", summary.PainPoints)
	}
	if len(summary.Strategies) != 1 {
		t.Errorf("Expected 1 strategy, got %v", summary.Strategies)
	}
	if len(summary.ValueProps) != 1 {
		t.Errorf("Expected 1 value prop, got %v", summary.ValueProps)
	}

	wantEngagement := (0.05 + 0.05) / 2
	if diff := summary.AvgEngagement - wantEngagement; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected avg engagement %f, got %f", wantEngagement, summary.AvgEngagement)
	}
}

func TestAggregateEmptyResult(t *testing.T) {
	summary := Aggregate(&core.ResearchResult{Topic: "fitness"})

	if summary.AvgEngagement != 0 {
		t.Errorf("Expected zero engagement for empty result, got %f", summary.AvgEngagement)
	}
	if summary.VideosAnalyzed != 0 {
		t.Errorf("Expected zero videos analyzed, got %d", summary.VideosAnalyzed)
	}
}

func TestCapUnique(t *testing.T) {
	var items []string
	for i := 0; i < 30; i++ {
		items = append(items, fmt.Sprintf("item %d", i%15))
	}

	capped := capUnique(items, 10)

	if len(capped) != 10 {
		t.Fatalf("Expected 10 items after cap, got %d", len(capped))
	}
	if capped[0] != "item 0" {
		t.Errorf("Expected first-seen order preserved, got %q first", capped[0])
	}
}
