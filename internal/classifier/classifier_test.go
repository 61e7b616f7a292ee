package classifier

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// routedCompleter answers by the first marker found in the prompt.
type routedCompleter struct {
	mu      sync.Mutex
	routes  map[string]string
	errs    map[string]error
	prompts []string
}

func (r *routedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	for marker, err := range r.errs {
		if strings.Contains(prompt, marker) {
			return "", err
		}
	}
	for marker, reply := range r.routes {
		if strings.Contains(prompt, marker) {
			return reply, nil
		}
	}
	return "", errors.New("unexpected prompt")
}

const (
	markerDetection   = "appears to be AI-generated"
	markerCorrectness = "Is this answer correct"
	markerSentiment   = "Analyze the sentiment"
	markerAnswer      = "Concisely answer"
	markerReExplain   = "Re-explain this interview question"
)

func TestAnalyzeTechnicalAnswer(t *testing.T) {
	stub := &routedCompleter{routes: map[string]string{
		markerDetection:   "AI-Generated: No\nConfidence: Medium\nReason: personal details",
		markerCorrectness: "Correct",
		markerSentiment:   "Positive",
	}}
	c := New(stub, zap.NewNop(), 0)

	analysis, err := c.Analyze(context.Background(), Request{
		Question:         "What is a goroutine?",
		Answer:           "A lightweight thread managed by the Go runtime; I used them at work.",
		CheckCorrectness: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := Analysis{
		Sentiment:    SentimentPositive,
		AIGenerated:  false,
		AIConfidence: ConfidenceMedium,
		AIReason:     "personal details",
		Correctness:  CorrectnessCorrect,
	}
	if analysis != expect {
		t.Fatalf("expected %+v, got %+v", expect, analysis)
	}

	if len(stub.prompts) != 3 {
		t.Fatalf("expected 3 completion calls, got %d", len(stub.prompts))
	}
}

func TestAnalyzeOverridesCorrectnessForAIGeneratedAnswers(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	stub := &routedCompleter{routes: map[string]string{
		markerDetection:   "AI-Generated: Yes\nConfidence: High\nReason: too polished",
		markerCorrectness: "Correct",
		markerSentiment:   "Neutral",
	}}
	c := New(stub, zap.New(core), 0)

	analysis, err := c.Analyze(context.Background(), Request{Question: "q", Answer: "a", CheckCorrectness: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Correctness != CorrectnessIncorrect {
		t.Fatalf("expected Incorrect, got %s", analysis.Correctness)
	}
	if !analysis.AIGenerated || analysis.AIConfidence != ConfidenceHigh || analysis.AIReason != "too polished" {
		t.Fatalf("unexpected detection fields: %+v", analysis)
	}

	if observed.FilterMessage("answer marked incorrect by ai detection").Len() != 1 {
		t.Fatalf("expected override to be logged")
	}
}

func TestAnalyzeProjectAnswerSkipsCorrectness(t *testing.T) {
	stub := &routedCompleter{routes: map[string]string{
		markerDetection: "nothing useful",
		markerSentiment: "Negative",
	}}
	c := New(stub, nil, 0)

	analysis, err := c.Analyze(context.Background(), Request{Question: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Correctness != CorrectnessNotApplicable {
		t.Fatalf("expected NotApplicable, got %s", analysis.Correctness)
	}
	if analysis.AIReason != DefaultAIReason || analysis.AIConfidence != ConfidenceLow {
		t.Fatalf("expected detection defaults, got %+v", analysis)
	}
	for _, prompt := range stub.prompts {
		if strings.Contains(prompt, markerCorrectness) {
			t.Fatalf("correctness must not be requested for project answers")
		}
	}
}

func TestAnalyzeProjectAnswerFlaggedAsAIIsIncorrect(t *testing.T) {
	stub := &routedCompleter{routes: map[string]string{
		markerDetection: "AI-Generated: Yes",
		markerSentiment: "Neutral",
	}}
	c := New(stub, nil, 0)

	analysis, err := c.Analyze(context.Background(), Request{Question: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Correctness != CorrectnessIncorrect {
		t.Fatalf("expected Incorrect, got %s", analysis.Correctness)
	}
}

func TestAnalyzeFailsWhenAnyCallFails(t *testing.T) {
	boom := errors.New("quota exceeded")
	stub := &routedCompleter{
		routes: map[string]string{
			markerDetection:   "AI-Generated: No",
			markerCorrectness: "Correct",
		},
		errs: map[string]error{markerSentiment: boom},
	}
	c := New(stub, nil, 0)

	_, err := c.Analyze(context.Background(), Request{Question: "q", Answer: "a", CheckCorrectness: true})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped quota error, got %v", err)
	}
	if !strings.Contains(err.Error(), "analyze sentiment") {
		t.Fatalf("expected operation in error, got %v", err)
	}
}

func TestAnswerQuestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reply  string
		expect string
	}{
		{name: "plain reply", reply: "  The role is hybrid.  ", expect: "The role is hybrid."},
		{name: "empty reply", reply: "   ", expect: FallbackMessage("technical")},
		{name: "evasive reply", reply: "I'm Not Sure about that.", expect: FallbackMessage("technical")},
		{name: "no idea", reply: "No idea, honestly", expect: FallbackMessage("technical")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stub := &routedCompleter{routes: map[string]string{markerAnswer: tt.reply}}
			c := New(stub, nil, 0)

			got, err := c.AnswerQuestion(context.Background(), "Is the role remote?", "technical")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFallbackMessageMentionsContext(t *testing.T) {
	msg := FallbackMessage("project")
	if !strings.HasSuffix(msg, "Let's stay focused on your project experience.") {
		t.Fatalf("unexpected fallback: %q", msg)
	}
}

func TestClarify(t *testing.T) {
	stub := &routedCompleter{routes: map[string]string{markerReExplain: "\nIt asks how Go schedules work.\n"}}
	c := New(stub, nil, 0)

	got, err := c.Clarify(context.Background(), "Explain the GMP model.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Let me clarify: It asks how Go schedules work." {
		t.Fatalf("unexpected clarification: %q", got)
	}
	if !strings.Contains(stub.prompts[0], "Question: Explain the GMP model.") {
		t.Fatalf("expected current question in prompt: %s", stub.prompts[0])
	}
}

func TestClarifyRejectsBlankReply(t *testing.T) {
	stub := &routedCompleter{routes: map[string]string{markerReExplain: " \n\t"}}

	got, err := New(stub, nil, 0).Clarify(context.Background(), "Explain the GMP model.")
	if err == nil {
		t.Fatalf("expected error, got %q", got)
	}
}

func TestClassifierWithoutCompleter(t *testing.T) {
	c := New(nil, nil, 0)
	if _, err := c.DetectAI(context.Background(), "text"); err == nil {
		t.Fatal("expected error without completer")
	}
}
