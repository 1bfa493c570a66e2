package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const defaultTactiqEndpoint = "https://tactiq-apps-prod.tactiq.io/transcript"

// TactiqProvider uses Tactiq's public transcript endpoint, a free
// third-party API that resolves captions server side.
type TactiqProvider struct {
	client   *http.Client
	endpoint string
}

// NewTactiqProvider creates the Tactiq adapter.
func NewTactiqProvider(client *http.Client, endpoint string) *TactiqProvider {
	if endpoint == "" {
		endpoint = defaultTactiqEndpoint
	}
	return &TactiqProvider{client: client, endpoint: endpoint}
}

// Name identifies this method in records and logs.
func (p *TactiqProvider) Name() string {
	return "tactiq"
}

// Attempt posts the video URL and joins the returned caption lines.
func (p *TactiqProvider) Attempt(ctx context.Context, videoID string, opts Options) (string, error) {
	langCode := opts.Language
	if langCode == "" {
		langCode = "en"
	}

	payload, err := json.Marshal(map[string]string{
		"videoUrl": "https://www.youtube.com/watch?v=" + videoID,
		"langCode": langCode,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal tactiq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create tactiq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call tactiq: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tactiq returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Captions []struct {
			Text string `json:"text"`
		} `json:"captions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse tactiq response: %w", err)
	}

	var lines []string
	for _, caption := range parsed.Captions {
		if caption.Text != "" {
			lines = append(lines, caption.Text)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("tactiq returned an empty transcript")
	}

	return strings.Join(lines, " "), nil
}
