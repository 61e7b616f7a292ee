package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/classifier"
	"github.com/spigell/hirely/internal/interview"
)

func TestRenderSnapshot(t *testing.T) {
	snap := interview.Snapshot{
		Phase: interview.PhaseTechnicalQA,
		Progress: []interview.Step{
			{Phase: interview.PhaseWelcome, Title: "Welcome", Status: interview.StepDone},
			{Phase: interview.PhaseTechnicalQA, Title: "Technical Questions", Status: interview.StepCurrent},
		},
		CurrentQuestion: &interview.CurrentQuestion{Index: 1, Total: 6, Text: "What is a channel?"},
		LastAnswer: &interview.AnswerRecord{
			Index: 0,
			Analysis: classifier.Analysis{
				Correctness:  classifier.CorrectnessIncorrect,
				Sentiment:    classifier.SentimentNeutral,
				AIGenerated:  true,
				AIConfidence: classifier.ConfidenceHigh,
				AIReason:     "generic wording",
			},
		},
		Scorecard: interview.Scorecard{Correct: 0, Answered: 1},
	}

	out := renderSnapshot(snap)
	for _, want := range []string{
		"Welcome",
		"Technical Questions",
		"Question 2 of 6",
		"What is a channel?",
		"Incorrect",
		"Possibly AI-generated (High confidence): generic wording",
		"Technical score: 0/1 (0%)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}

func TestRenderSnapshotPendingMessageHidesQuestion(t *testing.T) {
	out := renderSnapshot(interview.Snapshot{
		Phase:           interview.PhaseProjectDiscussion,
		PendingMessage:  "Let me clarify: describe the goal.",
		CurrentQuestion: &interview.CurrentQuestion{Index: 0, Total: 5, Text: "What were the goals?"},
	})

	if !strings.Contains(out, "describe the goal") || strings.Contains(out, "What were the goals?") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Technical score") {
		t.Fatalf("scorecard is only shown for technical questions and the report:\n%s", out)
	}
}

func TestTerminalRecoverable(t *testing.T) {
	var out bytes.Buffer
	term := &terminal{out: &out, logger: zap.NewNop()}

	if err := term.recoverable(interview.ErrEmptyAnswer); err != nil {
		t.Fatalf("empty answer must be recoverable: %v", err)
	}
	if err := term.recoverable(&interview.ValidationError{Fields: []string{"email"}}); err != nil {
		t.Fatalf("validation must be recoverable: %v", err)
	}
	if err := term.recoverable(&interview.CompletionError{Op: "analyze answer", Err: errors.New("boom")}); err != nil {
		t.Fatalf("completion failure must be recoverable: %v", err)
	}
	if err := term.recoverable(interview.ErrInvalidTransition); !errors.Is(err, interview.ErrInvalidTransition) {
		t.Fatalf("unexpected error passthrough: %v", err)
	}

	for _, want := range []string{"Please provide an answer.", "email", "try again"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output misses %q:\n%s", want, out.String())
		}
	}
}

func TestProfileFieldValidators(t *testing.T) {
	if required("  ") == nil || required("x") != nil {
		t.Fatalf("unexpected required validation")
	}
	for input, ok := range map[string]bool{"0": true, "50": true, "51": false, "-1": false, "ten": false} {
		if (experienceYears(input) == nil) != ok {
			t.Fatalf("experienceYears(%q) validity should be %v", input, ok)
		}
	}
}
