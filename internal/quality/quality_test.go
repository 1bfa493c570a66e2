package quality

import (
	"fmt"
	"strings"
	"testing"

	"vidscout/internal/core"
)

// wellFormedText builds varied prose with punctuation and capitalization,
// long enough to qualify as high quality.
func wellFormedText(sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "Sentence number %d covers a slightly different marketing angle than before. ", i)
	}
	return strings.TrimSpace(b.String())
}

func TestAssessEmpty(t *testing.T) {
	if got := Assess(""); got != core.QualityNone {
		t.Errorf("Expected none for empty text, got %q", got)
	}
}

func TestAssessShortText(t *testing.T) {
	if got := Assess("Too short to be useful."); got != core.QualityLow {
		t.Errorf("Expected low for short text, got %q", got)
	}
}

func TestAssessRepeatedRun(t *testing.T) {
	// A garbled auto-caption run repeated back to back inside otherwise
	// long enough text.
	text := wellFormedText(5) + strings.Repeat("the same the same the same ", 3) + wellFormedText(5)
	if got := Assess(text); got != core.QualityMedium {
		t.Errorf("Expected medium for repeated-run text, got %q", got)
	}
}

func TestAssessNoTerminalPunctuation(t *testing.T) {
	text := strings.TrimSuffix(strings.ReplaceAll(wellFormedText(20), ".", ""), ".")
	if strings.ContainsAny(text, ".!?") {
		t.Fatal("test text should lack terminal punctuation")
	}
	if got := Assess(text); got != core.QualityMedium {
		t.Errorf("Expected medium for unpunctuated text, got %q", got)
	}
}

func TestAssessHighQuality(t *testing.T) {
	text := wellFormedText(40)
	if len(text) <= 1000 {
		t.Fatalf("test text too short: %d chars", len(text))
	}
	if got := Assess(text); got != core.QualityHigh {
		t.Errorf("Expected high for long well-formed text, got %q", got)
	}
}

func TestAssessMediumFallback(t *testing.T) {
	// Punctuated, varied, but under the high-quality length bar.
	text := wellFormedText(5)
	if len(text) < 200 || len(text) > 1000 {
		t.Fatalf("test text outside medium band: %d chars", len(text))
	}
	if got := Assess(text); got != core.QualityMedium {
		t.Errorf("Expected medium fallback, got %q", got)
	}
}

func TestAssessDeterministic(t *testing.T) {
	text := wellFormedText(40)
	first := Assess(text)
	for i := 0; i < 10; i++ {
		if got := Assess(text); got != first {
			t.Fatalf("Expected deterministic class %q, got %q on repeat %d", first, got, i)
		}
	}
}

func TestHasRepeatedRun(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact triple", strings.Repeat("abcdefghij", 3), true},
		{"double only", strings.Repeat("abcdefghij", 2), false},
		{"varied text", wellFormedText(10), false},
		{"short unit", strings.Repeat("ab", 30), true}, // "ababababab" repeats
	}

	for _, tt := range tests {
		if got := hasRepeatedRun(tt.text); got != tt.want {
			t.Errorf("%s: hasRepeatedRun = %v, want %v", tt.name, got, tt.want)
		}
	}
}
