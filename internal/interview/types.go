package interview

import (
	"time"

	"github.com/spigell/hirely/internal/classifier"
)

type Phase string

const (
	PhaseWelcome           Phase = "welcome"
	PhaseInfoGathering     Phase = "info_gathering"
	PhaseTechnicalQA       Phase = "technical_qa"
	PhaseProjectDiscussion Phase = "project_discussion"
	PhaseReport            Phase = "report"
)

// Phases lists every phase in interview order.
var Phases = []Phase{
	PhaseWelcome,
	PhaseInfoGathering,
	PhaseTechnicalQA,
	PhaseProjectDiscussion,
	PhaseReport,
}

var phaseTitles = map[Phase]string{
	PhaseWelcome:           "Welcome",
	PhaseInfoGathering:     "Candidate Information",
	PhaseTechnicalQA:       "Technical Questions",
	PhaseProjectDiscussion: "Project Discussion",
	PhaseReport:            "Final Report",
}

// Title is the human readable name of the phase.
func (p Phase) Title() string {
	if title, ok := phaseTitles[p]; ok {
		return title
	}
	return string(p)
}

func (p Phase) order() int {
	for i, phase := range Phases {
		if phase == p {
			return i
		}
	}
	return -1
}

// Profile is the candidate information collected in InfoGathering.
type Profile struct {
	FullName         string   `json:"full_name" mapstructure:"full_name"`
	Email            string   `json:"email" mapstructure:"email"`
	Phone            string   `json:"phone" mapstructure:"phone"`
	Location         string   `json:"location" mapstructure:"location"`
	ExperienceYears  int      `json:"experience_years" mapstructure:"experience_years"`
	DesiredPositions []string `json:"desired_positions" mapstructure:"desired_positions"`
	TechStack        []string `json:"tech_stack" mapstructure:"tech_stack"`
}

func (p Profile) clone() Profile {
	p.DesiredPositions = append([]string(nil), p.DesiredPositions...)
	p.TechStack = append([]string(nil), p.TechStack...)
	return p
}

// AnswerRecord is one substantive answer. Records are never changed once stored.
type AnswerRecord struct {
	Index    int                 `json:"index"`
	Question string              `json:"question"`
	Answer   string              `json:"answer"`
	Analysis classifier.Analysis `json:"analysis"`
}

// Session is the whole state of one interview. It is owned by the caller and
// changed only through Engine methods.
type Session struct {
	ID                 string               `json:"id"`
	Phase              Phase                `json:"phase"`
	Profile            *Profile             `json:"profile,omitempty"`
	TechnicalQuestions []string             `json:"technical_questions,omitempty"`
	ProjectQuestions   []string             `json:"project_questions,omitempty"`
	TechnicalAnswers   map[int]AnswerRecord `json:"technical_answers"`
	ProjectAnswers     map[int]AnswerRecord `json:"project_answers"`
	TechnicalCursor    int                  `json:"technical_cursor"`
	ProjectCursor      int                  `json:"project_cursor"`
	PendingMessage     string               `json:"pending_message,omitempty"`
	Report             string               `json:"report,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// questions returns the question list, cursor and answers of the current phase.
func (s *Session) questions() ([]string, int, map[int]AnswerRecord) {
	switch s.Phase {
	case PhaseTechnicalQA:
		return s.TechnicalQuestions, s.TechnicalCursor, s.TechnicalAnswers
	case PhaseProjectDiscussion:
		return s.ProjectQuestions, s.ProjectCursor, s.ProjectAnswers
	default:
		return nil, 0, nil
	}
}

// CurrentQuestion returns the question at the cursor of the current phase.
func (s *Session) CurrentQuestion() (int, string, bool) {
	list, cursor, _ := s.questions()
	if cursor >= len(list) {
		return cursor, "", false
	}
	return cursor, list[cursor], true
}

// phaseContext names the current phase in candidate facing messages.
func (s *Session) phaseContext() string {
	if s.Phase == PhaseProjectDiscussion {
		return "project"
	}
	return "technical"
}
