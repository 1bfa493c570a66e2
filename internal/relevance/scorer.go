// Package relevance maps a video's metadata onto a deterministic integer
// score estimating how pertinent it is to a research topic. The weights are
// fixed; callers depend on them staying stable.
package relevance

import (
	"math"
	"strings"
	"time"

	"vidscout/internal/core"
)

const (
	titleTopicWeight     = 20
	titleMarketingWeight = 15
	titleStrategyWeight  = 10
	titleCaseStudyWeight = 15
	titleResultsWeight   = 10
	descTopicWeight      = 10
	descMarketingWeight  = 5

	engagementCap = 20.0
	viewScoreCap  = 25.0

	recencyWeight = 10
	recencyWindow = 182 * 24 * time.Hour // ~6 months
)

// Score rates a video's relevance to a topic, evaluated at the current time.
func Score(detail core.VideoDetail, topic string) int {
	return ScoreAt(detail, topic, time.Now())
}

// ScoreAt rates a video's relevance to a topic at an explicit evaluation
// time. Pure and deterministic given its inputs.
func ScoreAt(detail core.VideoDetail, topic string, now time.Time) int {
	title := strings.ToLower(detail.Title)
	description := strings.ToLower(detail.Description)
	topicLower := strings.ToLower(strings.TrimSpace(topic))

	score := 0

	if topicLower != "" && strings.Contains(title, topicLower) {
		score += titleTopicWeight
	}
	if strings.Contains(title, "marketing") {
		score += titleMarketingWeight
	}
	if strings.Contains(title, "strategy") {
		score += titleStrategyWeight
	}
	if strings.Contains(title, "case study") {
		score += titleCaseStudyWeight
	}
	if strings.Contains(title, "results") {
		score += titleResultsWeight
	}

	if topicLower != "" && strings.Contains(description, topicLower) {
		score += descTopicWeight
	}
	if strings.Contains(description, "marketing") {
		score += descMarketingWeight
	}

	engagement := detail.EngagementRatio() * 1000
	if engagement > engagementCap {
		engagement = engagementCap
	}
	score += int(engagement)

	views := float64(detail.ViewCount)
	if views < 1 {
		views = 1
	}
	viewScore := math.Log10(views) * 5
	if viewScore > viewScoreCap {
		viewScore = viewScoreCap
	}
	score += int(viewScore)

	if !detail.PublishedAt.IsZero() && now.Sub(detail.PublishedAt) <= recencyWindow {
		score += recencyWeight
	}

	return score
}
