package classifier

import (
	"strings"
)

const (
	headerAIGenerated = "AI-Generated:"
	headerConfidence  = "Confidence:"
	headerReason      = "Reason:"
)

// ParseAIDetection reads AI-Generated, Confidence and Reason lines from a
// model response. Only lines starting with the exact headers count. When the
// AI-Generated header is missing everywhere the defaults are returned, and
// fields whose line is missing keep their default value.
func ParseAIDetection(raw string) AIDetection {
	result := defaultDetection()
	if !strings.Contains(raw, headerAIGenerated) {
		return result
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, headerAIGenerated):
			result.Generated = isYes(valueAfterColon(line))
		case strings.HasPrefix(line, headerConfidence):
			result.Confidence = ParseConfidence(valueAfterColon(line))
		case strings.HasPrefix(line, headerReason):
			if reason := valueAfterColon(line); reason != "" {
				result.Reason = reason
			}
		}
	}

	return result
}

// ParseConfidence maps a free-text confidence level onto Confidence.
func ParseConfidence(raw string) Confidence {
	switch firstWord(raw) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	default:
		return ConfidenceUnknown
	}
}

// ParseCorrectness maps a Correct/Incorrect verdict. Anything unrecognised is
// treated as Incorrect so it never counts towards the scorecard.
func ParseCorrectness(raw string) Correctness {
	switch firstWord(raw) {
	case "correct":
		return CorrectnessCorrect
	default:
		return CorrectnessIncorrect
	}
}

// ParseSentiment maps a Positive/Negative/Neutral label.
func ParseSentiment(raw string) Sentiment {
	switch firstWord(raw) {
	case "positive":
		return SentimentPositive
	case "negative":
		return SentimentNegative
	case "neutral":
		return SentimentNeutral
	default:
		return SentimentUnknown
	}
}

func valueAfterColon(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

func isYes(value string) bool {
	return firstWord(value) == "yes"
}

// firstWord lowercases raw and returns its first word with surrounding quotes
// and punctuation removed.
func firstWord(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "'\"`*.,;:!()[]")
}
