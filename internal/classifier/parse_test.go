package classifier

import "testing"

func TestParseAIDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		expect AIDetection
	}{
		{
			name:   "well formed",
			raw:    "AI-Generated: Yes\nConfidence: High\nReason: too polished",
			expect: AIDetection{Generated: true, Confidence: ConfidenceHigh, Reason: "too polished"},
		},
		{
			name:   "no headers",
			raw:    "I cannot tell, sorry.",
			expect: AIDetection{Generated: false, Confidence: ConfidenceLow, Reason: DefaultAIReason},
		},
		{
			name:   "empty",
			raw:    "",
			expect: AIDetection{Generated: false, Confidence: ConfidenceLow, Reason: DefaultAIReason},
		},
		{
			name:   "missing fields keep defaults",
			raw:    "AI-Generated: No",
			expect: AIDetection{Generated: false, Confidence: ConfidenceLow, Reason: DefaultAIReason},
		},
		{
			name:   "reason keeps later colons",
			raw:    "AI-Generated: yes\r\nConfidence: medium\r\nReason: uses phrases like: in conclusion",
			expect: AIDetection{Generated: true, Confidence: ConfidenceMedium, Reason: "uses phrases like: in conclusion"},
		},
		{
			name:   "prefixes are case sensitive and anchored",
			raw:    "ai-generated: Yes\n  AI-Generated: Yes\nSummary AI-Generated: Yes",
			expect: AIDetection{Generated: false, Confidence: ConfidenceLow, Reason: DefaultAIReason},
		},
		{
			name:   "unknown confidence",
			raw:    "AI-Generated: Yes.\nConfidence: Very sure",
			expect: AIDetection{Generated: true, Confidence: ConfidenceUnknown, Reason: DefaultAIReason},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseAIDetection(tt.raw); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestParseCorrectness(t *testing.T) {
	t.Parallel()

	tests := map[string]Correctness{
		"Correct":              CorrectnessCorrect,
		"  correct.\n":         CorrectnessCorrect,
		"'Correct'":            CorrectnessCorrect,
		"**Correct**":          CorrectnessCorrect,
		"Incorrect":            CorrectnessIncorrect,
		"INCORRECT - see docs": CorrectnessIncorrect,
		"Partially correct":    CorrectnessIncorrect,
		"":                     CorrectnessIncorrect,
	}

	for raw, want := range tests {
		if got := ParseCorrectness(raw); got != want {
			t.Fatalf("ParseCorrectness(%q): expected %s, got %s", raw, want, got)
		}
	}
}

func TestParseSentiment(t *testing.T) {
	t.Parallel()

	tests := map[string]Sentiment{
		"Positive":     SentimentPositive,
		" negative\n":  SentimentNegative,
		"'Neutral'":    SentimentNeutral,
		"Mixed":        SentimentUnknown,
		"":             SentimentUnknown,
		"Positive.   ": SentimentPositive,
	}

	for raw, want := range tests {
		if got := ParseSentiment(raw); got != want {
			t.Fatalf("ParseSentiment(%q): expected %s, got %s", raw, want, got)
		}
	}
}
