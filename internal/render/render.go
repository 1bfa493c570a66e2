// Package render exports research results as JSON, CSV and plain-text
// summaries written under a dated output directory.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vidscout/internal/core"
	"vidscout/internal/insights"
)

// csvHeader is the flattened per-video row layout.
var csvHeader = []string{
	"title", "channel", "views", "likes", "comments",
	"published_at", "relevance_score", "quality", "search_term", "duration",
}

// WriteJSON writes the full result structure as indented JSON and returns
// the written path.
func WriteJSON(result *core.ResearchResult, outputDir string) (string, error) {
	filePath, err := preparePath(outputDir, result.Topic, "json")
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result for %s: %w", result.Topic, err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result file %s: %w", filePath, err)
	}
	return filePath, nil
}

// WriteCSV writes one flattened row per video and returns the written path.
func WriteCSV(result *core.ResearchResult, outputDir string) (string, error) {
	filePath, err := preparePath(outputDir, result.Topic, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file %s: %w", filePath, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, video := range result.Videos {
		row := []string{
			video.Title,
			video.ChannelTitle,
			strconv.FormatInt(video.ViewCount, 10),
			strconv.FormatInt(video.LikeCount, 10),
			strconv.FormatInt(video.CommentCount, 10),
			video.PublishedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(video.RelevanceScore),
			string(video.Quality),
			video.SearchTerm,
			video.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv file %s: %w", filePath, err)
	}
	return filePath, nil
}

// topVideosShown caps the video list in the text summary.
const topVideosShown = 5

// RenderTextSummary formats a human-readable report: topic header, run
// totals, top insights and the best-performing videos.
func RenderTextSummary(result *core.ResearchResult, summary insights.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Industry Research: %s\n", result.Topic))
	b.WriteString(fmt.Sprintf("Generated: %s\n", result.GeneratedAt.UTC().Format("2006-01-02 15:04")))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString(fmt.Sprintf("Videos analyzed:      %d\n", len(result.Videos)))
	b.WriteString(fmt.Sprintf("Channels covered:     %d\n", len(result.Channels)))
	b.WriteString(fmt.Sprintf("Transcripts acquired: %d/%d (%d from cache)\n",
		result.Transcription.Succeeded, result.Transcription.Attempted, result.Transcription.FromCache))
	b.WriteString(fmt.Sprintf("Terms searched:       %d\n\n", result.Processing.TermsSearched))

	if len(summary.Themes) > 0 {
		b.WriteString("Top themes:\n")
		for _, theme := range summary.Themes {
			b.WriteString(fmt.Sprintf("  - %s (%d)\n", theme.Text, theme.Frequency))
		}
		b.WriteString("\n")
	}

	writeSection(&b, "Common pain points:", summary.PainPoints)
	writeSection(&b, "Working strategies:", summary.Strategies)
	writeSection(&b, "Quantified claims:", summary.ValueProps)

	if len(result.Videos) > 0 {
		b.WriteString("Top videos:\n")
		shown := len(result.Videos)
		if shown > topVideosShown {
			shown = topVideosShown
		}
		for i := 0; i < shown; i++ {
			video := result.Videos[i]
			b.WriteString(fmt.Sprintf("  %d. %s (%s) - score %d, %d views\n",
				i+1, video.Title, video.ChannelTitle, video.RelevanceScore, video.ViewCount))
		}
	}

	return b.String()
}

// WriteTextSummary renders the summary and writes it next to the other
// exports, returning the written path.
func WriteTextSummary(result *core.ResearchResult, summary insights.Summary, outputDir string) (string, error) {
	filePath, err := preparePath(outputDir, result.Topic, "txt")
	if err != nil {
		return "", err
	}

	content := RenderTextSummary(result, summary)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary file %s: %w", filePath, err)
	}
	return filePath, nil
}

func writeSection(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(header + "\n")
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
	b.WriteString("\n")
}

// preparePath creates the output directory and returns a dated file path
// for the topic.
func preparePath(outputDir, topic, extension string) (string, error) {
	if outputDir == "" {
		outputDir = "research"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	dateStr := time.Now().UTC().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.%s", slugify(topic), dateStr, extension)
	return filepath.Join(outputDir, filename), nil
}

// slugify lowercases the topic and replaces runs of non-alphanumerics so
// the filename is shell safe.
func slugify(topic string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
