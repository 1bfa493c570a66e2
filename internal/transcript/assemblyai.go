package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vidscout/internal/config"
)

const assemblyAIBaseURL = "https://api.assemblyai.com/v2"

// AssemblyAIProvider is a paid speech-to-text adapter using AssemblyAI's
// submit/poll protocol. Media resolution for the submitted URL happens on
// the provider side.
type AssemblyAIProvider struct {
	client       *http.Client
	apiKey       string
	baseURL      string
	pollInterval time.Duration
}

// NewAssemblyAIProvider creates the AssemblyAI adapter.
func NewAssemblyAIProvider(client *http.Client, cfg config.AssemblyAIConfig) *AssemblyAIProvider {
	return &AssemblyAIProvider{
		client:       client,
		apiKey:       cfg.APIKey,
		baseURL:      assemblyAIBaseURL,
		pollInterval: config.Duration(cfg.PollInterval, 3*time.Second),
	}
}

// Name identifies this method in records and logs.
func (p *AssemblyAIProvider) Name() string {
	return "assemblyai"
}

type assemblyAIJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Attempt submits a transcription job and polls until it settles or the
// context deadline cancels the wait.
func (p *AssemblyAIProvider) Attempt(ctx context.Context, videoID string, opts Options) (string, error) {
	job, err := p.submit(ctx, videoID)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("transcription wait canceled: %w", ctx.Err())
		case <-ticker.C:
		}

		job, err = p.poll(ctx, job.ID)
		if err != nil {
			return "", err
		}
		switch job.Status {
		case "completed":
			return job.Text, nil
		case "error":
			return "", fmt.Errorf("transcription failed: %s", job.Error)
		}
	}
}

// submit creates a transcription job for the video URL.
func (p *AssemblyAIProvider) submit(ctx context.Context, videoID string) (*assemblyAIJob, error) {
	payload, err := json.Marshal(map[string]string{
		"audio_url": "https://www.youtube.com/watch?v=" + videoID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return p.do(req)
}

// poll fetches the current job state.
func (p *AssemblyAIProvider) poll(ctx context.Context, jobID string) (*assemblyAIJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/transcript/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create poll request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	return p.do(req)
}

func (p *AssemblyAIProvider) do(req *http.Request) (*assemblyAIJob, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assemblyai request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	var job assemblyAIJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to parse assemblyai response: %w", err)
	}
	return &job, nil
}
