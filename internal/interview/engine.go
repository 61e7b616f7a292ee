package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/ai"
	"github.com/spigell/hirely/internal/classifier"
	"github.com/spigell/hirely/internal/logger"
	"github.com/spigell/hirely/internal/questions"
)

// Engine drives interview sessions through their phases. It keeps no session
// state of its own, so one Engine serves any number of sessions.
//
// Every event either succeeds completely or leaves the session untouched.
type Engine struct {
	completer  ai.Completer
	classifier *classifier.Classifier
	questions  questions.Source
	logger     *zap.Logger
	now        func() time.Time
}

// NewEngine builds an engine on top of completer. A nil source means the
// built-in question templates.
func NewEngine(completer ai.Completer, source questions.Source, log *zap.Logger, maxLogLength int) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if source == nil {
		source = questions.NewTemplateSource(nil, 0)
	}

	return &Engine{
		completer:  completer,
		classifier: classifier.New(completer, log, maxLogLength),
		questions:  source,
		logger:     log,
		now:        time.Now,
	}
}

// NewSession returns a fresh session at Welcome.
func (e *Engine) NewSession() *Session {
	now := e.now()
	s := &Session{
		ID:               uuid.NewString(),
		Phase:            PhaseWelcome,
		TechnicalAnswers: map[int]AnswerRecord{},
		ProjectAnswers:   map[int]AnswerRecord{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	e.sessionLogger(s).Info("session created")
	return s
}

// StartInterview moves a session from Welcome to InfoGathering.
func (e *Engine) StartInterview(_ context.Context, s *Session) error {
	if s.Phase != PhaseWelcome {
		return ErrInvalidTransition
	}

	e.transition(s, PhaseInfoGathering)
	return nil
}

// SubmitProfile validates the candidate profile, prepares the questions for
// both question phases and moves the session to TechnicalQA.
func (e *Engine) SubmitProfile(ctx context.Context, s *Session, p Profile) error {
	if s.Phase != PhaseInfoGathering {
		return ErrInvalidTransition
	}

	p = p.normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	technical, err := e.questions.Technical(ctx, p.TechStack)
	if err != nil {
		return &CompletionError{Op: "generate technical questions", Err: err}
	}

	project, err := e.questions.Project(ctx)
	if err != nil {
		return &CompletionError{Op: "generate project questions", Err: err}
	}

	if len(technical) == 0 || len(project) == 0 {
		return &CompletionError{Op: "generate questions", Err: errors.New("no questions were produced")}
	}

	profile := p.clone()
	s.Profile = &profile
	s.TechnicalQuestions = technical
	s.ProjectQuestions = project

	e.sessionLogger(s).Info("profile accepted",
		zap.Int("technical_questions", len(technical)),
		zap.Int("project_questions", len(project)),
	)

	e.transition(s, PhaseTechnicalQA)
	return nil
}

// SubmitAnswer handles candidate text for the current question. Depending on
// the text it answers a candidate question, re-explains the current question,
// skips ahead or records an analysed answer.
func (e *Engine) SubmitAnswer(ctx context.Context, s *Session, text string) error {
	if s.Phase != PhaseTechnicalQA && s.Phase != PhaseProjectDiscussion {
		return ErrInvalidTransition
	}

	if s.PendingMessage != "" {
		return ErrBotMessagePending
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyAnswer
	}

	index, question, ok := s.CurrentQuestion()
	if !ok {
		return ErrNoActiveQuestion
	}

	kind := classifyIntent(text)
	log := e.sessionLogger(s).With(zap.Int("question_index", index), zap.Stringer("intent", kind))
	log.Debug("answer received")

	switch kind {
	case intentQuestion:
		reply, err := e.classifier.AnswerQuestion(ctx, text, s.phaseContext())
		if err != nil {
			return &CompletionError{Op: "answer candidate question", Err: err}
		}
		e.setPending(s, reply)

	case intentClarification:
		reply, err := e.classifier.Clarify(ctx, question)
		if err != nil {
			return &CompletionError{Op: "clarify question", Err: err}
		}
		e.setPending(s, reply)

	case intentNavigation:
		e.advanceCursor(s)

	default:
		analysis, err := e.classifier.Analyze(ctx, classifier.Request{
			Question:         question,
			Answer:           text,
			CheckCorrectness: s.Phase == PhaseTechnicalQA,
		})
		if err != nil {
			return &CompletionError{Op: "analyze answer", Err: err}
		}

		record := AnswerRecord{
			Index:    index,
			Question: question,
			Answer:   text,
			Analysis: analysis,
		}
		e.storeRecord(s, record)

		log.Info("answer recorded",
			zap.String("correctness", string(analysis.Correctness)),
			zap.Bool("ai_generated", analysis.AIGenerated),
			zap.String("sentiment", string(analysis.Sentiment)),
		)

		e.advanceCursor(s)
	}

	return nil
}

// AcknowledgeBotMessage clears the pending bot message.
func (e *Engine) AcknowledgeBotMessage(_ context.Context, s *Session) error {
	if s.PendingMessage == "" {
		return ErrInvalidTransition
	}

	s.PendingMessage = ""
	s.UpdatedAt = e.now()
	return nil
}

// AdvancePhase performs the explicit transition out of the current phase.
// Leaving ProjectDiscussion generates the final report.
func (e *Engine) AdvancePhase(ctx context.Context, s *Session) error {
	switch s.Phase {
	case PhaseWelcome:
		return e.StartInterview(ctx, s)

	case PhaseInfoGathering, PhaseTechnicalQA:
		return ErrPhaseIncomplete

	case PhaseProjectDiscussion:
		if s.PendingMessage != "" {
			return ErrBotMessagePending
		}
		if s.ProjectCursor < len(s.ProjectQuestions) {
			return ErrPhaseIncomplete
		}

		report, err := e.generateReport(ctx, s)
		if err != nil {
			return err
		}

		s.Report = report
		e.transition(s, PhaseReport)
		return nil

	default:
		return ErrInvalidTransition
	}
}

// ResetSession discards s and returns a brand new session at Welcome.
func (e *Engine) ResetSession(_ context.Context, s *Session) *Session {
	if s != nil {
		e.sessionLogger(s).Info("session discarded")
	}
	return e.NewSession()
}

func (e *Engine) setPending(s *Session, message string) {
	s.PendingMessage = message
	s.UpdatedAt = e.now()
}

func (e *Engine) storeRecord(s *Session, record AnswerRecord) {
	answers := s.TechnicalAnswers
	if s.Phase == PhaseProjectDiscussion {
		answers = s.ProjectAnswers
	}

	if _, exists := answers[record.Index]; exists {
		return
	}
	answers[record.Index] = record
}

// advanceCursor moves the cursor of the current phase by one. Finishing the
// technical questions moves the session to ProjectDiscussion.
func (e *Engine) advanceCursor(s *Session) {
	s.UpdatedAt = e.now()

	switch s.Phase {
	case PhaseTechnicalQA:
		if s.TechnicalCursor < len(s.TechnicalQuestions) {
			s.TechnicalCursor++
		}
		if s.TechnicalCursor == len(s.TechnicalQuestions) {
			e.transition(s, PhaseProjectDiscussion)
		}
	case PhaseProjectDiscussion:
		if s.ProjectCursor < len(s.ProjectQuestions) {
			s.ProjectCursor++
		}
	}
}

func (e *Engine) transition(s *Session, next Phase) {
	prev := s.Phase
	s.Phase = next
	s.UpdatedAt = e.now()

	e.sessionLogger(s).Info("phase changed", zap.String("from", string(prev)))
}

func (e *Engine) sessionLogger(s *Session) *zap.Logger {
	return logger.WithFields(e.logger, logger.SessionFields(s.ID, string(s.Phase))...)
}
