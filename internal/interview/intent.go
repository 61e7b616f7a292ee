package interview

import "strings"

type intent int

const (
	intentAnswer intent = iota
	intentQuestion
	intentClarification
	intentNavigation
)

func (i intent) String() string {
	switch i {
	case intentQuestion:
		return "question"
	case intentClarification:
		return "clarification"
	case intentNavigation:
		return "navigation"
	default:
		return "answer"
	}
}

var clarificationPhrases = []string{
	"i didn't understand",
	"explain",
	"repeat",
	"clarify",
	"what do you mean",
	"can you explain",
	"i don't get it",
	"not clear",
	"confused",
	"help me understand",
}

var navigationTokens = map[string]struct{}{
	"ok":       {},
	"okay":     {},
	"got it":   {},
	"continue": {},
	"next":     {},
	"yes":      {},
}

// classifyIntent decides what the candidate meant. The first match wins:
// a question, a request for clarification, a navigation token, an answer.
func classifyIntent(text string) intent {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return intentQuestion
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range clarificationPhrases {
		if strings.Contains(lower, phrase) {
			return intentClarification
		}
	}

	if _, ok := navigationTokens[lower]; ok {
		return intentNavigation
	}

	return intentAnswer
}
