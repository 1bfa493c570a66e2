package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"vidscout/internal/config"
)

const defaultSupadataEndpoint = "https://api.supadata.ai/v1/youtube/transcript"

// SupadataProvider is a paid, per-call transcript API fetched with a
// single GET.
type SupadataProvider struct {
	client   *http.Client
	apiKey   string
	endpoint string
}

// NewSupadataProvider creates the Supadata adapter.
func NewSupadataProvider(client *http.Client, cfg config.SupadataConfig) *SupadataProvider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultSupadataEndpoint
	}
	return &SupadataProvider{client: client, apiKey: cfg.APIKey, endpoint: endpoint}
}

// Name identifies this method in records and logs.
func (p *SupadataProvider) Name() string {
	return "supadata"
}

// Attempt fetches the transcript as plain joined text.
func (p *SupadataProvider) Attempt(ctx context.Context, videoID string, opts Options) (string, error) {
	params := url.Values{}
	params.Set("videoId", videoID)
	params.Set("text", "true")
	if opts.Language != "" {
		params.Set("lang", opts.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create supadata request: %w", err)
	}
	req.Header.Set("x-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("supadata request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("supadata returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse supadata response: %w", err)
	}

	text := strings.TrimSpace(parsed.Content)
	if text == "" {
		return "", fmt.Errorf("supadata returned an empty transcript")
	}
	return text, nil
}
