package interview

import "github.com/spigell/hirely/internal/classifier"

// Step statuses used in the progress list.
const (
	StepDone    = "done"
	StepCurrent = "current"
	StepPending = "pending"
)

// Snapshot is a read-only view of a session for presentation layers. It
// shares no memory with the session.
type Snapshot struct {
	SessionID        string           `json:"session_id"`
	Phase            Phase            `json:"phase"`
	PhaseTitle       string           `json:"phase_title"`
	Progress         []Step           `json:"progress"`
	CurrentQuestion  *CurrentQuestion `json:"current_question,omitempty"`
	PendingMessage   string           `json:"pending_message,omitempty"`
	TechnicalAnswers []AnswerRecord   `json:"technical_answers"`
	ProjectAnswers   []AnswerRecord   `json:"project_answers"`
	LastAnswer       *AnswerRecord    `json:"last_answer,omitempty"`
	Scorecard        Scorecard        `json:"scorecard"`
	Profile          *Profile         `json:"profile,omitempty"`
	Report           string           `json:"report,omitempty"`
	Recommendation   Recommendation   `json:"recommendation,omitempty"`
}

// Step is one entry of the progress tracker.
type Step struct {
	Phase  Phase  `json:"phase"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// CurrentQuestion is the question waiting for an answer. Index is zero based.
type CurrentQuestion struct {
	Index int    `json:"index"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

// Scorecard summarises technical correctness.
type Scorecard struct {
	Correct    int     `json:"correct"`
	Answered   int     `json:"answered"`
	Percentage float64 `json:"percentage"`
}

// Snapshot returns the current view of s.
func (e *Engine) Snapshot(s *Session) Snapshot {
	return NewSnapshot(s)
}

// NewSnapshot builds a snapshot without an engine, e.g. for a session loaded
// from a store.
func NewSnapshot(s *Session) Snapshot {
	snap := Snapshot{
		SessionID:        s.ID,
		Phase:            s.Phase,
		PhaseTitle:       s.Phase.Title(),
		Progress:         progress(s.Phase),
		PendingMessage:   s.PendingMessage,
		TechnicalAnswers: sortedRecords(s.TechnicalAnswers),
		ProjectAnswers:   sortedRecords(s.ProjectAnswers),
		Scorecard:        ScorecardFor(s),
		Report:           s.Report,
	}

	if list, _, _ := s.questions(); list != nil {
		if index, text, ok := s.CurrentQuestion(); ok {
			snap.CurrentQuestion = &CurrentQuestion{Index: index, Total: len(list), Text: text}
		}
	}

	if last, ok := lastRecord(s); ok {
		snap.LastAnswer = &last
	}

	if s.Profile != nil {
		profile := s.Profile.clone()
		snap.Profile = &profile
	}

	if s.Report != "" {
		snap.Recommendation = RecommendationFrom(s.Report)
	}

	return snap
}

// ScorecardFor counts correct technical answers. Percentage is 0 when nothing
// has been answered.
func ScorecardFor(s *Session) Scorecard {
	var card Scorecard
	for _, r := range s.TechnicalAnswers {
		card.Answered++
		if r.Analysis.Correctness == classifier.CorrectnessCorrect {
			card.Correct++
		}
	}

	if card.Answered > 0 {
		card.Percentage = 100 * float64(card.Correct) / float64(card.Answered)
	}
	return card
}

func progress(current Phase) []Step {
	steps := make([]Step, 0, len(Phases))
	for _, phase := range Phases {
		status := StepPending
		switch {
		case phase == current:
			status = StepCurrent
		case phase.order() < current.order():
			status = StepDone
		}
		steps = append(steps, Step{Phase: phase, Title: phase.Title(), Status: status})
	}
	return steps
}

// lastRecord is the most recent answer of the current phase, used as feedback
// for the previous question.
func lastRecord(s *Session) (AnswerRecord, bool) {
	_, _, answers := s.questions()

	var (
		last  AnswerRecord
		found bool
	)
	for _, r := range answers {
		if !found || r.Index > last.Index {
			last, found = r, true
		}
	}
	return last, found
}
