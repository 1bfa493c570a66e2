package discovery

import (
	"context"
	"errors"
	"net"

	"google.golang.org/api/googleapi"
)

var (
	// ErrMissingAPIKey is returned when no YouTube API key is configured.
	// Fatal for the run.
	ErrMissingAPIKey = errors.New("YouTube API key is required")

	// ErrEmptyTerm is returned when Search is called with an empty term
	ErrEmptyTerm = errors.New("search term must not be empty")

	// ErrQuotaExceeded is returned when the daily API quota is exhausted.
	// Fatal for the current run; retry after the quota window resets.
	ErrQuotaExceeded = errors.New("YouTube API quota exceeded, retry after the daily reset")

	// ErrBadRequest is returned for malformed search or detail parameters
	ErrBadRequest = errors.New("malformed YouTube API request")

	// ErrNotFound is returned when a video id no longer resolves
	ErrNotFound = errors.New("video not found")
)

// classifyAPIError maps a googleapi error onto the package taxonomy.
// Unrecognized errors pass through unchanged.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case 400:
		return errors.Join(ErrBadRequest, err)
	case 403:
		for _, e := range apiErr.Errors {
			if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" || e.Reason == "rateLimitExceeded" {
				return errors.Join(ErrQuotaExceeded, err)
			}
		}
		// Other 403s mean the credential is invalid or the API is disabled
		return errors.Join(ErrMissingAPIKey, err)
	case 404:
		return errors.Join(ErrNotFound, err)
	}
	return err
}

// isTimeout reports whether an error is a network timeout or deadline expiry
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
