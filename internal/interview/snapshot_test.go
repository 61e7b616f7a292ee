package interview

import (
	"context"
	"testing"
)

func TestSnapshotProgressAndQuestion(t *testing.T) {
	e := newTestEngine(t, newScriptedCompleter())
	s := technicalSession(t, e)

	snap := e.Snapshot(s)

	if snap.SessionID != s.ID || snap.Phase != PhaseTechnicalQA {
		t.Fatalf("unexpected snapshot header %+v", snap)
	}

	statuses := map[Phase]string{}
	for _, step := range snap.Progress {
		statuses[step.Phase] = step.Status
	}
	expect := map[Phase]string{
		PhaseWelcome:           StepDone,
		PhaseInfoGathering:     StepDone,
		PhaseTechnicalQA:       StepCurrent,
		PhaseProjectDiscussion: StepPending,
		PhaseReport:            StepPending,
	}
	for phase, status := range expect {
		if statuses[phase] != status {
			t.Fatalf("phase %s: expected %s, got %s", phase, status, statuses[phase])
		}
	}

	q := snap.CurrentQuestion
	if q == nil || q.Index != 0 || q.Total != len(s.TechnicalQuestions) || q.Text != s.TechnicalQuestions[0] {
		t.Fatalf("unexpected current question %+v", q)
	}
	if snap.Scorecard.Percentage != 0 || snap.LastAnswer != nil {
		t.Fatalf("unexpected feedback in fresh session: %+v", snap)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(t, newScriptedCompleter())
	s := technicalSession(t, e)

	if err := e.SubmitAnswer(context.Background(), s, "I wrote a Flask service."); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := e.Snapshot(s)
	if snap.LastAnswer == nil || snap.LastAnswer.Index != 0 {
		t.Fatalf("expected last answer feedback, got %+v", snap.LastAnswer)
	}

	snap.Profile.TechStack[0] = "Perl"
	snap.TechnicalAnswers[0].Answer = "changed"

	if s.Profile.TechStack[0] != "Python" || s.TechnicalAnswers[0].Answer != "I wrote a Flask service." {
		t.Fatalf("snapshot shares memory with the session")
	}
}

func TestSnapshotWithoutQuestions(t *testing.T) {
	e := newTestEngine(t, newScriptedCompleter())
	s := e.NewSession()

	snap := NewSnapshot(s)
	if snap.CurrentQuestion != nil || snap.Profile != nil || snap.Recommendation != "" {
		t.Fatalf("unexpected snapshot for a new session: %+v", snap)
	}
	if len(snap.TechnicalAnswers) != 0 || snap.Progress[0].Status != StepCurrent {
		t.Fatalf("unexpected snapshot for a new session: %+v", snap)
	}
}
