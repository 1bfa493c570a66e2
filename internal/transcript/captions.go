package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const watchPageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// playerResponse is the subset of YouTube's player payload the caption
// providers need.
type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

// CaptionsProvider extracts native caption tracks from the public watch
// page: it locates the embedded player response, picks a caption track and
// fetches it in the json3 timedtext format.
type CaptionsProvider struct {
	client *http.Client
}

// NewCaptionsProvider creates the native-captions adapter.
func NewCaptionsProvider(client *http.Client) *CaptionsProvider {
	return &CaptionsProvider{client: client}
}

// Name identifies this method in records and logs.
func (p *CaptionsProvider) Name() string {
	return "captions"
}

// Attempt fetches the watch page and downloads the best caption track.
func (p *CaptionsProvider) Attempt(ctx context.Context, videoID string, opts Options) (string, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create watch page request: %w", err)
	}
	req.Header.Set("User-Agent", watchPageUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse watch page: %w", err)
	}

	var player *playerResponse
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "ytInitialPlayerResponse") {
			return true
		}
		if parsed := parsePlayerResponse(text); parsed != nil {
			player = parsed
			return false
		}
		return true
	})
	if player == nil {
		return "", fmt.Errorf("player response not found in watch page")
	}

	track, err := pickCaptionTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, opts.Language)
	if err != nil {
		return "", err
	}

	return fetchCaptionTrack(ctx, p.client, track.BaseURL)
}

// parsePlayerResponse extracts the ytInitialPlayerResponse JSON object from
// inline script text using brace matching; the object is followed by
// arbitrary script code, so a regex alone cannot bound it.
func parsePlayerResponse(script string) *playerResponse {
	marker := strings.Index(script, "ytInitialPlayerResponse")
	if marker < 0 {
		return nil
	}
	start := strings.Index(script[marker:], "{")
	if start < 0 {
		return nil
	}
	start += marker

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(script); i++ {
		c := script[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				var parsed playerResponse
				if err := json.Unmarshal([]byte(script[start:i+1]), &parsed); err != nil {
					return nil
				}
				return &parsed
			}
		}
	}
	return nil
}

// pickCaptionTrack prefers a manual track in the requested language, then an
// auto-generated one, then whatever is first.
func pickCaptionTrack(tracks []captionTrack, language string) (captionTrack, error) {
	if len(tracks) == 0 {
		return captionTrack{}, fmt.Errorf("no caption tracks available")
	}
	if language == "" {
		language = "en"
	}

	var asrMatch *captionTrack
	for i := range tracks {
		track := tracks[i]
		if !strings.HasPrefix(track.LanguageCode, language) {
			continue
		}
		if track.Kind != "asr" {
			return track, nil
		}
		if asrMatch == nil {
			asrMatch = &tracks[i]
		}
	}
	if asrMatch != nil {
		return *asrMatch, nil
	}
	return tracks[0], nil
}

// timedTextResponse models the json3 timedtext format.
type timedTextResponse struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// fetchCaptionTrack downloads a caption track and joins its segments.
func fetchCaptionTrack(ctx context.Context, client *http.Client, baseURL string) (string, error) {
	separator := "?"
	if strings.Contains(baseURL, "?") {
		separator = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+separator+"fmt=json3", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create caption track request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch caption track: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption track: %w", err)
	}

	var timedText timedTextResponse
	if err := json.Unmarshal(body, &timedText); err != nil {
		return "", fmt.Errorf("failed to parse caption track: %w", err)
	}

	var b strings.Builder
	for _, event := range timedText.Events {
		for _, seg := range event.Segs {
			b.WriteString(seg.UTF8)
		}
		b.WriteString(" ")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("caption track was empty")
	}
	return text, nil
}
