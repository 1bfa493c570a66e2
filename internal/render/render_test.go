package render

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"vidscout/internal/core"
	"vidscout/internal/insights"
)

func sampleResult() *core.ResearchResult {
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &core.ResearchResult{
		ID:    "res-1",
		Topic: "fitness",
		Videos: []core.ScoredVideo{
			{
				VideoDetail: core.VideoDetail{
					VideoCandidate: core.VideoCandidate{
						ID:           "vid1",
						Title:        "Fitness marketing strategy",
						ChannelTitle: "Coach A",
						PublishedAt:  published,
					},
					ViewCount:    5000,
					LikeCount:    200,
					CommentCount: 30,
					Duration:     12*time.Minute + 30*time.Second,
				},
				RelevanceScore: 45,
				Quality:        core.QualityHigh,
				SearchTerm:     "fitness marketing strategy",
			},
		},
		Channels: []string{"Coach A"},
		Transcription: core.TranscriptionStats{
			Attempted: 1, Succeeded: 1, FromCache: 0,
		},
		Processing:  core.ProcessingStats{TermsSearched: 4},
		GeneratedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	path, err := WriteJSON(result, dir)
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("Expected .json path, got %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	var decoded core.ResearchResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Written JSON did not parse: %v", err)
	}
	if decoded.Topic != "fitness" || len(decoded.Videos) != 1 {
		t.Errorf("Expected round-tripped result, got topic %q with %d videos",
			decoded.Topic, len(decoded.Videos))
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	path, err := WriteCSV(result, dir)
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open written file: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Written CSV did not parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "title" || rows[0][9] != "duration" {
		t.Errorf("Unexpected header layout: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "Fitness marketing strategy" {
		t.Errorf("Expected title in first column, got %q", row[0])
	}
	if row[2] != "5000" {
		t.Errorf("Expected view count 5000, got %q", row[2])
	}
	if row[6] != "45" {
		t.Errorf("Expected relevance score 45, got %q", row[6])
	}
	if row[7] != "high" {
		t.Errorf("Expected quality high, got %q", row[7])
	}
	if row[9] != "12m30s" {
		t.Errorf("Expected duration 12m30s, got %q", row[9])
	}
}

func TestRenderTextSummary(t *testing.T) {
	result := sampleResult()
	summary := insights.Summary{
		Topic:          "fitness",
		Themes:         []core.Insight{{Type: core.InsightTheme, Text: "strategy", Frequency: 3}},
		PainPoints:     []string{"struggling with retention after the first month"},
		Strategies:     []string{"the key was weekly check-in calls"},
		VideosAnalyzed: 1,
	}

	text := RenderTextSummary(result, summary)

	for _, want := range []string{
		"Industry Research: fitness",
		"Videos analyzed:      1",
		"strategy (3)",
		"struggling with retention",
		"weekly check-in calls",
		"Fitness marketing strategy (Coach A) - score 45, 5000 views",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected summary to contain %q\nGot:\n%s", want, text)
		}
	}
}

func TestRenderTextSummaryEmptySections(t *testing.T) {
	result := &core.ResearchResult{Topic: "niche"}
	text := RenderTextSummary(result, insights.Summary{Topic: "niche"})

	if strings.Contains(text, "pain points") {
		t.Error("Expected empty sections to be omitted")
	}
	if !strings.Contains(text, "Videos analyzed:      0") {
		t.Errorf("Expected zero totals to render, got:\n%s", text)
	}
}

func TestWriteTextSummary(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTextSummary(sampleResult(), insights.Summary{Topic: "fitness"}, dir)
	if err != nil {
		t.Fatalf("WriteTextSummary failed: %v", err)
	}
	if !strings.HasSuffix(path, ".txt") {
		t.Errorf("Expected .txt path, got %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fitness", "fitness"},
		{"Real Estate Agents", "real-estate-agents"},
		{"B2B  SaaS!", "b2b-saas"},
		{"--", ""},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
