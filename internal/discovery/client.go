package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"vidscout/internal/config"
	"vidscout/internal/core"
	"vidscout/internal/logger"
	"vidscout/internal/query"
)

const maxResultsCap = 50

// Client discovers videos and resolves per-video statistics through the
// YouTube Data API v3.
type Client struct {
	service    *youtube.Service
	usage      *UsageTracker
	region     string
	timeout    time.Duration
	searchCost int
	detailCost int
}

// NewClient creates a discovery client. Extra options are passed through to
// the underlying service; tests use option.WithHTTPClient to inject a fake
// transport.
func NewClient(ctx context.Context, cfg config.YouTube, usage *UsageTracker, opts ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" && len(opts) == 0 {
		return nil, ErrMissingAPIKey
	}

	clientOpts := make([]option.ClientOption, 0, len(opts)+1)
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	if usage == nil {
		usage = NewUsageTracker(cfg.DailyQuotaLimit)
	}

	searchCost := cfg.SearchQuotaCost
	if searchCost <= 0 {
		searchCost = 100
	}
	detailCost := cfg.DetailQuotaCost
	if detailCost <= 0 {
		detailCost = 1
	}

	return &Client{
		service:    service,
		usage:      usage,
		region:     cfg.Region,
		timeout:    config.Duration(cfg.Timeout, 15*time.Second),
		searchCost: searchCost,
		detailCost: detailCost,
	}, nil
}

// Usage exposes the run-scoped usage tracker.
func (c *Client) Usage() *UsageTracker {
	return c.usage
}

// Search returns up to maxResults candidates for a term. A search that yields
// zero results is retried exactly once with the term reduced to its first
// token; a timeout on the first attempt gets the same single retry.
func (c *Client) Search(ctx context.Context, term string, maxResults int) ([]core.VideoCandidate, error) {
	if term == "" {
		return nil, ErrEmptyTerm
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	candidates, err := c.searchOnce(ctx, term, maxResults)
	if err != nil && !isTimeout(err) {
		return nil, err
	}
	if err == nil && len(candidates) > 0 {
		return candidates, nil
	}

	simplified := query.Simplify(term)
	if simplified == term {
		return candidates, err
	}

	logger.Info("Retrying search with simplified term", "term", term, "simplified", simplified)
	return c.searchOnce(ctx, simplified, maxResults)
}

// searchOnce performs a single search API call.
func (c *Client) searchOnce(ctx context.Context, term string, maxResults int) ([]core.VideoCandidate, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.Search.List([]string{"snippet"}).
		Q(term).
		Type("video").
		Order("relevance").
		MaxResults(int64(maxResults)).
		Context(callCtx)
	if c.region != "" {
		call = call.RegionCode(c.region)
	}

	resp, err := call.Do()
	c.usage.Record(c.searchCost)
	if err != nil {
		return nil, classifyAPIError(err)
	}

	candidates := make([]core.VideoCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		candidates = append(candidates, core.VideoCandidate{
			ID:           item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  parseTimestamp(item.Snippet.PublishedAt),
			ThumbnailURL: thumbnailURL(item.Snippet.Thumbnails),
		})
	}

	logger.Debug("Search completed", "term", term, "results", len(candidates))
	return candidates, nil
}

// FetchDetail resolves statistics for a discovered video id. Returns
// ErrNotFound when the id no longer resolves; callers skip the candidate.
func (c *Client) FetchDetail(ctx context.Context, videoID string) (core.VideoDetail, error) {
	if videoID == "" {
		return core.VideoDetail{}, ErrBadRequest
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoID).
		Context(callCtx).
		Do()
	c.usage.Record(c.detailCost)
	if err != nil {
		return core.VideoDetail{}, classifyAPIError(err)
	}
	if len(resp.Items) == 0 {
		return core.VideoDetail{}, fmt.Errorf("%w: %s", ErrNotFound, videoID)
	}

	item := resp.Items[0]
	detail := core.VideoDetail{
		VideoCandidate: core.VideoCandidate{ID: videoID},
	}
	if item.Snippet != nil {
		detail.Title = item.Snippet.Title
		detail.Description = item.Snippet.Description
		detail.ChannelTitle = item.Snippet.ChannelTitle
		detail.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		detail.ThumbnailURL = thumbnailURL(item.Snippet.Thumbnails)
		detail.Tags = item.Snippet.Tags
	}
	if item.Statistics != nil {
		detail.ViewCount = int64(item.Statistics.ViewCount)
		detail.LikeCount = int64(item.Statistics.LikeCount)
		detail.CommentCount = int64(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		detail.Duration = parseISO8601Duration(item.ContentDetails.Duration)
	}

	return detail, nil
}

// parseTimestamp parses the RFC 3339 timestamps the API returns.
func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// thumbnailURL picks the best available thumbnail.
func thumbnailURL(thumbs *youtube.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	for _, t := range []*youtube.Thumbnail{thumbs.High, thumbs.Medium, thumbs.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}

var isoDurationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration converts the API's PT#H#M#S durations. Malformed
// values come back as zero.
func parseISO8601Duration(value string) time.Duration {
	matches := isoDurationRegex.FindStringSubmatch(value)
	if matches == nil {
		return 0
	}
	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if matches[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return 0
		}
		total += time.Duration(n) * unit
	}
	return total
}
