package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const innertubePlayerURL = "https://www.youtube.com/youtubei/v1/player"

// InnertubeProvider is the alternate caption extraction path: it asks the
// youtubei player endpoint for the same player response the watch page
// embeds. Works for some videos where the watch page markup does not carry
// caption tracks.
type InnertubeProvider struct {
	client *http.Client
}

// NewInnertubeProvider creates the innertube adapter.
func NewInnertubeProvider(client *http.Client) *InnertubeProvider {
	return &InnertubeProvider{client: client}
}

// Name identifies this method in records and logs.
func (p *InnertubeProvider) Name() string {
	return "innertube"
}

// Attempt queries the player endpoint and downloads the best caption track.
func (p *InnertubeProvider) Attempt(ctx context.Context, videoID string, opts Options) (string, error) {
	payload := map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client": map[string]any{
				// The android client surface returns caption tracks
				// without the web client's signature requirements.
				"clientName":    "ANDROID",
				"clientVersion": "19.09.37",
				"hl":            opts.Language,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal player request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, innertubePlayerURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call player endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("player endpoint returned status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return "", fmt.Errorf("failed to parse player response: %w", err)
	}

	if player.PlayabilityStatus.Status != "" && player.PlayabilityStatus.Status != "OK" {
		return "", fmt.Errorf("video not playable: %s", player.PlayabilityStatus.Reason)
	}

	track, err := pickCaptionTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, opts.Language)
	if err != nil {
		return "", err
	}

	return fetchCaptionTrack(ctx, p.client, track.BaseURL)
}
