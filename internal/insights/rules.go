package insights

import "regexp"

// ThemeKeywords maps a theme category to the title keywords that signal it.
// Exported so rule tuning never requires touching the extractor logic.
var ThemeKeywords = map[string][]string{
	"strategy":     {"strategy", "strategies", "plan", "planning", "roadmap"},
	"tips":         {"tips", "tricks", "hacks", "secrets", "advice"},
	"case_study":   {"case study", "success story", "how we", "how i"},
	"tutorial":     {"tutorial", "how to", "guide", "step by step", "walkthrough"},
	"tools":        {"tools", "software", "apps", "platforms", "tech stack"},
	"psychology":   {"psychology", "persuasion", "mindset", "behavior"},
	"automation":   {"automation", "automate", "automated", "workflow"},
	"optimization": {"optimization", "optimize", "improve", "boost"},
	"analytics":    {"analytics", "metrics", "data", "tracking", "measure"},
	"conversion":   {"conversion", "convert", "funnel", "close rate"},
}

// PainIndicators are phrases whose presence marks a sentence as describing
// a pain point.
var PainIndicators = []string{
	"struggling with",
	"problem with",
	"can't figure out",
	"not working",
	"frustrated",
	"difficult to",
	"hard to",
	"challenge",
	"low conversion",
	"wasting money",
	"no results",
	"losing customers",
}

// SuccessIndicators are phrases whose presence marks a sentence as
// describing a working strategy.
var SuccessIndicators = []string{
	"what worked",
	"we found that",
	"the key was",
	"this strategy",
	"increased our",
	"doubled our",
	"grew our",
	"best approach",
	"game changer",
	"the secret is",
	"results came from",
}

// ValuePropPatterns match quantified claims in titles and descriptions:
// percentage changes, multipliers, and dollar amounts.
var ValuePropPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?%\s*(?:increase|growth|boost|improvement|more|higher|lift)\b`),
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?x\s*(?:growth|increase|more|return|roi)\b`),
	regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d+)?[km]?\s*(?:saved|revenue|profit|sales|in sales)?\b`),
	regexp.MustCompile(`(?i)\b(?:doubled|tripled|10x)\b[^.!?]{0,60}`),
}
