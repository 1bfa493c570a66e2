// Package insights derives recurring themes, pain points, strategies and
// quantified value claims from research results. Everything here is a pure
// function of its inputs driven by the rule tables in rules.go, so a summary
// can always be recomputed from a stored result.
package insights

import (
	"regexp"
	"sort"
	"strings"

	"vidscout/internal/core"
)

const (
	maxPainPoints = 10
	maxStrategies = 10
	maxValueProps = 5

	// minSentenceLength filters out fragments too short to carry meaning.
	minSentenceLength = 20
)

// Summary is the aggregated view over one topic's research result.
type Summary struct {
	Topic          string         `json:"topic"`
	Themes         []core.Insight `json:"themes"`
	PainPoints     []string       `json:"pain_points"`
	Strategies     []string       `json:"strategies"`
	ValueProps     []string       `json:"value_props"`
	AvgEngagement  float64        `json:"avg_engagement"`
	VideosAnalyzed int            `json:"videos_analyzed"`
}

// ExtractThemes returns the theme categories whose keywords appear in the
// title, sorted for stable output. Topic mentions alone do not count as a
// theme; only dictionary keywords do.
func ExtractThemes(title, topic string) []string {
	lower := strings.ToLower(title)
	topic = strings.ToLower(topic)

	var matched []string
	for category, keywords := range ThemeKeywords {
		for _, keyword := range keywords {
			if keyword == topic {
				continue
			}
			if strings.Contains(lower, keyword) {
				matched = append(matched, category)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// ExtractPainPoints returns transcript sentences containing a pain
// indicator, deduplicated and filtered to meaningful length.
func ExtractPainPoints(transcript string) []string {
	return extractBySentence(transcript, PainIndicators)
}

// ExtractSuccessStrategies returns transcript sentences containing a
// success indicator, deduplicated and filtered to meaningful length.
func ExtractSuccessStrategies(transcript string) []string {
	return extractBySentence(transcript, SuccessIndicators)
}

// ExtractValueProps returns quantified claims found in the title and
// description combined.
func ExtractValueProps(title, description string) []string {
	text := title + " " + description

	var matches []string
	seen := make(map[string]bool)
	for _, pattern := range ValuePropPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if match == "" || seen[strings.ToLower(match)] {
				continue
			}
			seen[strings.ToLower(match)] = true
			matches = append(matches, match)
		}
	}
	return matches
}

// Aggregate computes the insight summary for a finished research result.
func Aggregate(result *core.ResearchResult) Summary {
	summary := Summary{
		Topic:          result.Topic,
		VideosAnalyzed: len(result.Videos),
	}

	themeCounts := make(map[string]int)
	var painPoints, strategies, valueProps []string
	var engagementTotal float64

	for _, video := range result.Videos {
		for _, theme := range ExtractThemes(video.Title, result.Topic) {
			themeCounts[theme]++
		}
		if video.Transcript.HasTranscript() {
			painPoints = append(painPoints, ExtractPainPoints(video.Transcript.Text)...)
			strategies = append(strategies, ExtractSuccessStrategies(video.Transcript.Text)...)
		}
		valueProps = append(valueProps, ExtractValueProps(video.Title, video.Description)...)
		engagementTotal += video.EngagementRatio()
	}

	if len(result.Videos) > 0 {
		summary.AvgEngagement = engagementTotal / float64(len(result.Videos))
	}

	summary.Themes = rankThemes(themeCounts)
	summary.PainPoints = capUnique(painPoints, maxPainPoints)
	summary.Strategies = capUnique(strategies, maxStrategies)
	summary.ValueProps = capUnique(valueProps, maxValueProps)
	return summary
}

var sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)

// extractBySentence splits text into sentences and keeps those matching any
// indicator phrase. Matching is case insensitive; output preserves the
// original sentence text.
func extractBySentence(text string, indicators []string) []string {
	if text == "" {
		return nil
	}

	var matched []string
	seen := make(map[string]bool)
	for _, sentence := range sentenceSplitRegex.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minSentenceLength {
			continue
		}
		lower := strings.ToLower(sentence)
		if seen[lower] {
			continue
		}
		for _, indicator := range indicators {
			if strings.Contains(lower, indicator) {
				seen[lower] = true
				matched = append(matched, sentence)
				break
			}
		}
	}
	return matched
}

// rankThemes orders theme counts by frequency descending, alphabetical on
// ties so output is stable.
func rankThemes(counts map[string]int) []core.Insight {
	themes := make([]core.Insight, 0, len(counts))
	for category, count := range counts {
		themes = append(themes, core.Insight{
			Type:      core.InsightTheme,
			Text:      category,
			Category:  category,
			Frequency: count,
		})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Frequency != themes[j].Frequency {
			return themes[i].Frequency > themes[j].Frequency
		}
		return themes[i].Text < themes[j].Text
	})
	return themes
}

// capUnique deduplicates while preserving first-seen order, then caps the
// list length.
func capUnique(items []string, limit int) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, item)
		if len(unique) == limit {
			break
		}
	}
	return unique
}
