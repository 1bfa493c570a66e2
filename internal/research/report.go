package research

import (
	"context"
	"sort"
	"time"

	"vidscout/internal/core"
	"vidscout/internal/insights"
)

// ChannelStat describes one channel's footprint in a topic's results.
type ChannelStat struct {
	Channel       string  `json:"channel"`
	Videos        int     `json:"videos"`
	TotalViews    int64   `json:"total_views"`
	AvgRelevance  float64 `json:"avg_relevance"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// PhasedReport is the comprehensive research output: raw results plus the
// derived insight summary and competitor landscape.
type PhasedReport struct {
	Result      *core.ResearchResult `json:"result"`
	Insights    insights.Summary     `json:"insights"`
	Competitors []ChannelStat        `json:"competitors"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// maxCompetitors caps the competitor landscape list.
const maxCompetitors = 10

// ComprehensiveIndustryResearch runs SearchByIndustry and layers insight
// aggregation and a competitor landscape on top.
func (r *Researcher) ComprehensiveIndustryResearch(ctx context.Context, topic string, opts Options) (*PhasedReport, error) {
	result, err := r.SearchByIndustry(ctx, topic, opts)
	if err != nil {
		return nil, err
	}

	return &PhasedReport{
		Result:      result,
		Insights:    insights.Aggregate(result),
		Competitors: CompetitorLandscape(result),
		GeneratedAt: time.Now(),
	}, nil
}

// CompetitorLandscape ranks channels by presence in the result set: video
// count first, then total views. Capped to the top performers.
func CompetitorLandscape(result *core.ResearchResult) []ChannelStat {
	byChannel := make(map[string]*ChannelStat)
	for _, video := range result.Videos {
		stat, ok := byChannel[video.ChannelTitle]
		if !ok {
			stat = &ChannelStat{Channel: video.ChannelTitle}
			byChannel[video.ChannelTitle] = stat
		}
		stat.Videos++
		stat.TotalViews += video.ViewCount
		stat.AvgRelevance += float64(video.RelevanceScore)
		stat.AvgEngagement += video.EngagementRatio()
	}

	stats := make([]ChannelStat, 0, len(byChannel))
	for _, stat := range byChannel {
		stat.AvgRelevance /= float64(stat.Videos)
		stat.AvgEngagement /= float64(stat.Videos)
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Videos != stats[j].Videos {
			return stats[i].Videos > stats[j].Videos
		}
		if stats[i].TotalViews != stats[j].TotalViews {
			return stats[i].TotalViews > stats[j].TotalViews
		}
		return stats[i].Channel < stats[j].Channel
	})

	if len(stats) > maxCompetitors {
		stats = stats[:maxCompetitors]
	}
	return stats
}
