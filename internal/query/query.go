package query

import (
	"fmt"
	"strings"
)

// Depth controls how many search phrases a research run uses.
type Depth string

const (
	DepthQuick    Depth = "quick"
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// phraseTemplates are applied to a topic in order. Earlier templates target
// more specific, higher-signal content; insertion order is the priority order.
var phraseTemplates = []string{
	"%s marketing case study",
	"%s marketing strategy",
	"%s lead generation",
	"how to market %s business",
	"%s advertising tips",
	"%s customer acquisition",
	"%s business growth",
	"%s marketing results",
}

// termCounts maps depth to the number of templates used.
var termCounts = map[Depth]int{
	DepthQuick:    2,
	DepthStandard: 4,
	DepthDeep:     len(phraseTemplates),
}

// Generator builds ordered search phrases from a topic using fixed templates.
type Generator struct {
	templates []string
}

// NewGenerator creates a generator with the default phrase templates.
func NewGenerator() *Generator {
	return &Generator{templates: phraseTemplates}
}

// Terms returns the ordered search phrases for a topic at the given depth.
// Unknown depths fall back to standard.
func (g *Generator) Terms(topic string, depth Depth) []string {
	count, ok := termCounts[depth]
	if !ok {
		count = termCounts[DepthStandard]
	}
	if count > len(g.templates) {
		count = len(g.templates)
	}

	topic = strings.TrimSpace(topic)
	terms := make([]string, 0, count)
	for _, tmpl := range g.templates[:count] {
		terms = append(terms, fmt.Sprintf(tmpl, topic))
	}
	return terms
}

// Simplify reduces a search phrase to its first whitespace-delimited token.
// Used for the one-time retry when a full phrase returns zero results.
func Simplify(term string) string {
	fields := strings.Fields(term)
	if len(fields) == 0 {
		return term
	}
	return fields[0]
}
