package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const deepgramListenURL = "https://api.deepgram.com/v1/listen?model=nova-2&smart_format=true"

// DeepgramProvider is a paid speech-to-text adapter using Deepgram's
// direct (non-polling) transcription call.
type DeepgramProvider struct {
	client *http.Client
	apiKey string
	url    string
}

// NewDeepgramProvider creates the Deepgram adapter.
func NewDeepgramProvider(client *http.Client, apiKey string) *DeepgramProvider {
	return &DeepgramProvider{client: client, apiKey: apiKey, url: deepgramListenURL}
}

// Name identifies this method in records and logs.
func (p *DeepgramProvider) Name() string {
	return "deepgram"
}

// Attempt submits the video URL for synchronous transcription.
func (p *DeepgramProvider) Attempt(ctx context.Context, videoID string, opts Options) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"url": "https://www.youtube.com/watch?v=" + videoID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal deepgram request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create deepgram request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse deepgram response: %w", err)
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("deepgram returned no transcript")
	}
	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}
