// Package quality classifies transcript text usability into coarse tiers.
// The classifier is pure and deterministic; the engine stores its verdict
// alongside the cached transcript.
package quality

import (
	"strings"
	"unicode"

	"vidscout/internal/core"
)

const (
	lowLengthThreshold  = 200
	highLengthThreshold = 1000

	// Repetition detection looks for a run of at least minRunLength
	// characters repeated at least minRepeats times back to back.
	minRunLength = 10
	maxRunLength = 64
	minRepeats   = 3
)

// Assess classifies transcript text. Rules are evaluated in order: empty,
// too short, garbled (repetition or no terminal punctuation), long
// well-formed text, and medium for everything else.
func Assess(text string) core.QualityClass {
	if text == "" {
		return core.QualityNone
	}
	if len(text) < lowLengthThreshold {
		return core.QualityLow
	}
	if hasRepeatedRun(text) || !strings.ContainsAny(text, ".!?") {
		return core.QualityMedium
	}
	if len(text) > highLengthThreshold && hasUppercase(text) && averageWordLength(text) > 3 {
		return core.QualityHigh
	}
	return core.QualityMedium
}

// hasRepeatedRun detects a substring of minRunLength..maxRunLength characters
// repeated minRepeats times consecutively, the signature of glitched
// auto-captions. Longer repeating units always contain a shorter repeating
// window unless their period exceeds maxRunLength, which is rare enough in
// caption output to ignore.
func hasRepeatedRun(text string) bool {
	n := len(text)
	limit := n / minRepeats
	if limit > maxRunLength {
		limit = maxRunLength
	}
	for size := minRunLength; size <= limit; size++ {
		span := size * minRepeats
		for i := 0; i+span <= n; i++ {
			run := text[i : i+size]
			if text[i+size:i+2*size] == run && text[i+2*size:i+3*size] == run {
				return true
			}
		}
	}
	return false
}

// hasUppercase reports whether the text contains at least one upper-case letter.
func hasUppercase(text string) bool {
	return strings.IndexFunc(text, unicode.IsUpper) >= 0
}

// averageWordLength returns len(text) / wordCount.
func averageWordLength(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return float64(len(text)) / float64(words)
}
