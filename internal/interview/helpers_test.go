package interview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

const (
	markerDetection   = "appears to be AI-generated"
	markerCorrectness = "Is this answer correct"
	markerSentiment   = "Analyze the sentiment"
	markerAnswer      = "Concisely answer"
	markerReExplain   = "Re-explain this interview question"
	markerReport      = "comprehensive hiring report"
)

// scriptedCompleter replies by the first marker found in the prompt.
type scriptedCompleter struct {
	mu      sync.Mutex
	routes  map[string]string
	errs    map[string]error
	prompts []string
}

func newScriptedCompleter() *scriptedCompleter {
	return &scriptedCompleter{
		routes: map[string]string{
			markerDetection:   "AI-Generated: No\nConfidence: Medium\nReason: mentions own project",
			markerCorrectness: "Correct",
			markerSentiment:   "Neutral",
			markerAnswer:      "We use the latest stable release.",
			markerReExplain:   "Describe what the feature does.",
			markerReport:      "## Summary\nSolid.\nRecommendation: Proceed with Caution\n- Practice SQL joins.",
		},
		errs: map[string]error{},
	}
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)

	for marker, err := range s.errs {
		if strings.Contains(prompt, marker) {
			return "", err
		}
	}
	for marker, reply := range s.routes {
		if strings.Contains(prompt, marker) {
			return reply, nil
		}
	}
	return "", errors.New("unexpected prompt")
}

func (s *scriptedCompleter) set(marker, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[marker] = reply
}

func (s *scriptedCompleter) fail(marker string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, marker)
		return
	}
	s.errs[marker] = err
}

func (s *scriptedCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func newTestEngine(t *testing.T, completer *scriptedCompleter) *Engine {
	t.Helper()

	e := NewEngine(completer, nil, zap.NewNop(), 0)
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }
	return e
}

func validProfile() Profile {
	return Profile{
		FullName:         "Ada Lovelace",
		Email:            "ada@example.com",
		Phone:            "+44 20 0000 0000",
		Location:         "London",
		ExperienceYears:  7,
		DesiredPositions: []string{"Backend Engineer"},
		TechStack:        []string{"Python", "SQL"},
	}
}

// technicalSession returns a session waiting on the first technical question.
func technicalSession(t *testing.T, e *Engine) *Session {
	t.Helper()

	ctx := context.Background()
	s := e.NewSession()
	if err := e.StartInterview(ctx, s); err != nil {
		t.Fatalf("start interview: %v", err)
	}
	if err := e.SubmitProfile(ctx, s, validProfile()); err != nil {
		t.Fatalf("submit profile: %v", err)
	}
	return s
}

// projectSession returns a session waiting on the first project question.
func projectSession(t *testing.T, e *Engine) *Session {
	t.Helper()

	s := technicalSession(t, e)
	for s.Phase == PhaseTechnicalQA {
		if err := e.SubmitAnswer(context.Background(), s, "next"); err != nil {
			t.Fatalf("skip technical question: %v", err)
		}
	}
	return s
}
