package intent

import (
	"regexp"
	"strings"
)

// Result is the heuristic's output. PreferQuality biases provider
// ordering and timeout budgets; it never excludes a provider.
type Result struct {
	MatchedKeywords int  `json:"matched_keywords"`
	PreferQuality   bool `json:"prefer_quality"`
}

// Heuristic performs rule-based urgency/topic scoring over the
// translated (English) message.
type Heuristic struct {
	topicPatterns   []*regexp.Regexp
	spaceNormalizer *regexp.Regexp
}

// NewHeuristic creates the keyword heuristic with its fixed topic set.
func NewHeuristic() *Heuristic {
	return &Heuristic{
		spaceNormalizer: regexp.MustCompile(`\s+`),
		topicPatterns: compilePatterns([]string{
			`\b(stress|stressed|stressful|overwhelm|overwhelmed)\b`,
			`\b(anxiety|anxious|panic|worry|worried|worries)\b`,
			`\b(sleep|sleeping|insomnia|sleepless|tired|exhausted|fatigue)\b`,
			`\b(sad|sadness|depress|depressed|depression|hopeless|lonely|loneliness)\b`,
			`\b(relationship|partner|marriage|boyfriend|girlfriend|breakup|divorce)\b`,
			`\b(work|job|boss|deadline|workload|burnout)\b`,
			`\b(family|parent|parents|mother|father|sibling)\b`,
			`\b(anger|angry|frustrated|frustration|irritated)\b`,
			`\b(eat|eating|appetite|food)\b`,
			`\b(exercise|workout|yoga|breathing|meditation)\b`,
		}),
	}
}

// Classify counts distinct topic-pattern matches in the message.
//
// Zero matches means an open-ended message that deserves a thoughtful
// reply; two or more means a complex multi-topic one. Both prefer the
// slower quality provider. Exactly one match is treated as a simple
// message routed to faster providers first. The 0/1/>=2 thresholds
// mirror observed product behavior and are deliberately not tuned here.
func (h *Heuristic) Classify(translatedMessage string) Result {
	normalized := h.normalizeText(translatedMessage)

	matches := 0
	for _, pattern := range h.topicPatterns {
		if pattern.MatchString(normalized) {
			matches++
		}
	}

	return Result{
		MatchedKeywords: matches,
		PreferQuality:   matches != 1,
	}
}

// normalizeText preprocesses input text before matching
func (h *Heuristic) normalizeText(input string) string {
	text := strings.ToLower(strings.TrimSpace(input))
	text = h.spaceNormalizer.ReplaceAllString(text, " ")
	return strings.TrimRight(text, "!?.,;:")
}

// compilePatterns compiles a slice of regex patterns
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
