// Package transcript acquires transcript text for a video id through an
// ordered cascade of provider adapters. The engine checks the cache first,
// then tries each provider until one yields text meeting the minimum length.
// Acquisition never fails with an error; a record with empty text and
// populated failure reasons is the "all methods failed" outcome.
package transcript

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"vidscout/internal/cache"
	"vidscout/internal/config"
	"vidscout/internal/core"
	"vidscout/internal/logger"
	"vidscout/internal/quality"
)

// MethodAuto selects the full cascade in priority order.
const MethodAuto = "auto"

// DefaultMinLength is the shortest transcript the engine accepts.
const DefaultMinLength = 50

// Options control one acquisition.
type Options struct {
	// PreferredService names a single provider, or MethodAuto for the
	// full cascade.
	PreferredService string
	// MinLength is the acceptance bar in characters.
	MinLength int
	// UseCache enables the cache read before the cascade and the
	// write-through after a success.
	UseCache bool
	// CacheTTL bounds how long a written entry stays valid. Non-positive
	// means no expiry.
	CacheTTL time.Duration
	// Language is the preferred caption language code.
	Language string
}

// DefaultOptions returns the standard acquisition options.
func DefaultOptions() Options {
	return Options{
		PreferredService: MethodAuto,
		MinLength:        DefaultMinLength,
		UseCache:         true,
		CacheTTL:         7 * 24 * time.Hour,
		Language:         "en",
	}
}

// Provider is the uniform adapter contract every transcript method
// implements. Attempt must surface failures as errors; the engine treats
// them as cascade continuation, never propagation.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, videoID string, opts Options) (string, error)
}

// Engine runs the provider cascade against a cache store.
type Engine struct {
	providers []Provider
	store     cache.Store
	timeout   time.Duration
}

// NewEngine creates an engine with an explicit provider order. The order is
// fixed for the engine's lifetime. store may be nil to disable caching.
func NewEngine(store cache.Store, timeout time.Duration, providers ...Provider) *Engine {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Engine{providers: providers, store: store, timeout: timeout}
}

// NewDefaultEngine builds the standard cascade from configuration: native
// captions, innertube extraction, the free Tactiq API, then each paid
// provider whose credential is configured.
func NewDefaultEngine(store cache.Store, cfg config.Transcripts, client *http.Client) *Engine {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	providers := []Provider{
		NewCaptionsProvider(client),
		NewInnertubeProvider(client),
		NewTactiqProvider(client, cfg.Providers.Tactiq.Endpoint),
	}
	if cfg.Providers.AssemblyAI.APIKey != "" {
		providers = append(providers, NewAssemblyAIProvider(client, cfg.Providers.AssemblyAI))
	}
	if cfg.Providers.Deepgram.APIKey != "" {
		providers = append(providers, NewDeepgramProvider(client, cfg.Providers.Deepgram.APIKey))
	}
	if cfg.Providers.Supadata.APIKey != "" {
		providers = append(providers, NewSupadataProvider(client, cfg.Providers.Supadata))
	}

	return NewEngine(store, config.Duration(cfg.Timeout, 15*time.Second), providers...)
}

// Methods returns the configured provider names in cascade order.
func (e *Engine) Methods() []string {
	names := make([]string, len(e.providers))
	for i, p := range e.providers {
		names[i] = p.Name()
	}
	return names
}

// Acquire obtains a transcript for a video id. It never returns an error:
// total failure yields a record with empty text and the per-provider
// failure reasons.
func (e *Engine) Acquire(ctx context.Context, videoID string, opts Options) core.TranscriptRecord {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.PreferredService == "" {
		opts.PreferredService = MethodAuto
	}

	if opts.UseCache && e.store != nil {
		if cached, err := e.store.Get(ctx, videoID); err != nil {
			logger.Warn("Cache read failed, continuing without cache", "video_id", videoID, "error", err.Error())
		} else if cached != nil {
			cached.FromCache = true
			logger.Debug("Transcript served from cache", "video_id", videoID, "method", cached.Method)
			return *cached
		}
	}

	providers, reasons := e.resolveProviders(opts.PreferredService)
	start := time.Now()

	for _, provider := range providers {
		attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
		text, err := provider.Attempt(attemptCtx, videoID, opts)
		cancel()

		if err != nil {
			logger.Info("Transcript provider failed, trying next",
				"video_id", videoID, "provider", provider.Name(), "reason", err.Error())
			reasons = append(reasons, fmt.Sprintf("%s: %v", provider.Name(), err))
			continue
		}

		text = CleanTranscript(text)
		if len(text) < opts.MinLength {
			logger.Info("Transcript below minimum length, trying next",
				"video_id", videoID, "provider", provider.Name(), "length", len(text))
			reasons = append(reasons, fmt.Sprintf("%s: transcript too short (%d chars)", provider.Name(), len(text)))
			continue
		}

		record := core.TranscriptRecord{
			VideoID:     videoID,
			Text:        text,
			Method:      provider.Name(),
			LengthChars: len(text),
			Quality:     quality.Assess(text),
			Elapsed:     time.Since(start),
		}

		if opts.UseCache && e.store != nil {
			if err := e.store.Set(ctx, record, opts.CacheTTL); err != nil {
				logger.Warn("Failed to cache transcript", "video_id", videoID, "error", err.Error())
			}
		}

		logger.Info("Transcript acquired",
			"video_id", videoID, "method", record.Method, "length", record.LengthChars)
		return record
	}

	return core.TranscriptRecord{
		VideoID:        videoID,
		Quality:        core.QualityNone,
		Elapsed:        time.Since(start),
		FailureReasons: reasons,
	}
}

// resolveProviders returns the cascade for the requested service. An unknown
// service name yields an empty cascade with the reason prefilled.
func (e *Engine) resolveProviders(preferred string) ([]Provider, []string) {
	if preferred == MethodAuto {
		return e.providers, nil
	}
	for _, p := range e.providers {
		if p.Name() == preferred {
			return []Provider{p}, nil
		}
	}
	return nil, []string{fmt.Sprintf("requested service %q is not configured", preferred)}
}

var (
	timestampRegex  = regexp.MustCompile(`\[\d{2}:\d{2}(?::\d{2})?\]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// CleanTranscript strips timestamp markers and collapses whitespace so
// length checks and quality assessment see only the spoken text.
func CleanTranscript(text string) string {
	if text == "" {
		return ""
	}
	text = timestampRegex.ReplaceAllString(text, "")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
