package classifier

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hirely/internal/ai"
	"github.com/spigell/hirely/internal/prompts"
	"github.com/spigell/hirely/internal/utils"
)

const (
	defaultMaxLogLength = 200

	// ClarifyLeadIn prefixes every re-explanation of a question.
	ClarifyLeadIn = "Let me clarify: "
)

var offTopicMarkers = []string{"not sure", "don't know", "uncertain", "no idea"}

// Classifier turns candidate text into typed signals by asking the completion
// service and parsing its free-text replies.
type Classifier struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func New(completer ai.Completer, logger *zap.Logger, maxLogLength int) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Classifier{
		completer: completer,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// DetectAI asks whether text looks AI-generated. Malformed replies degrade to
// the documented defaults; only a failed call is an error.
func (c *Classifier) DetectAI(ctx context.Context, text string) (AIDetection, error) {
	raw, err := c.complete(ctx, "ai_detection", prompts.AIDetection(text))
	if err != nil {
		return AIDetection{}, fmt.Errorf("detect ai-generated text: %w", err)
	}
	return ParseAIDetection(raw), nil
}

// CheckCorrectness asks for a Correct/Incorrect verdict on answer.
func (c *Classifier) CheckCorrectness(ctx context.Context, question, answer string) (Correctness, error) {
	raw, err := c.complete(ctx, "correctness", prompts.Correctness(question, answer))
	if err != nil {
		return "", fmt.Errorf("check correctness: %w", err)
	}
	return ParseCorrectness(raw), nil
}

// AnalyzeSentiment asks for the sentiment of text.
func (c *Classifier) AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error) {
	raw, err := c.complete(ctx, "sentiment", prompts.Sentiment(text))
	if err != nil {
		return "", fmt.Errorf("analyze sentiment: %w", err)
	}
	return ParseSentiment(raw), nil
}

// Analyze runs the independent checks for one answer concurrently and merges
// them once all have returned. Any failed call fails the whole analysis.
// Calls already issued are never cancelled because of a sibling failure.
func (c *Classifier) Analyze(ctx context.Context, req Request) (Analysis, error) {
	var (
		g           errgroup.Group
		detection   AIDetection
		sentiment   Sentiment
		correctness = CorrectnessNotApplicable
	)

	g.Go(func() error {
		var err error
		detection, err = c.DetectAI(ctx, req.Answer)
		return err
	})

	g.Go(func() error {
		var err error
		sentiment, err = c.AnalyzeSentiment(ctx, req.Answer)
		return err
	})

	if req.CheckCorrectness {
		g.Go(func() error {
			var err error
			correctness, err = c.CheckCorrectness(ctx, req.Question, req.Answer)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	if detection.Generated {
		c.logger.Debug("answer marked incorrect by ai detection",
			zap.String("confidence", string(detection.Confidence)),
			zap.String("model_verdict", string(correctness)),
		)
		correctness = CorrectnessIncorrect
	}

	return Analysis{
		Sentiment:    sentiment,
		AIGenerated:  detection.Generated,
		AIConfidence: detection.Confidence,
		AIReason:     detection.Reason,
		Correctness:  correctness,
	}, nil
}

// AnswerQuestion replies to a question the candidate asked. Empty or evasive
// replies are replaced by FallbackMessage(phaseContext).
func (c *Classifier) AnswerQuestion(ctx context.Context, question, phaseContext string) (string, error) {
	raw, err := c.complete(ctx, "answer_question", prompts.AnswerQuestion(question, phaseContext))
	if err != nil {
		return "", fmt.Errorf("answer candidate question: %w", err)
	}

	reply := strings.TrimSpace(raw)
	if reply == "" || isOffTopic(reply) {
		c.logger.Debug("using fallback reply", zap.String("context", phaseContext))
		return FallbackMessage(phaseContext), nil
	}
	return reply, nil
}

// Clarify re-explains question in simpler terms, prefixed with ClarifyLeadIn.
// A blank reply is an error.
func (c *Classifier) Clarify(ctx context.Context, question string) (string, error) {
	raw, err := c.complete(ctx, "re_explain", prompts.ReExplain(question))
	if err != nil {
		return "", fmt.Errorf("re-explain question: %w", err)
	}
	explanation := strings.TrimSpace(raw)
	if explanation == "" {
		return "", fmt.Errorf("re-explain question: model returned an empty reply")
	}
	return ClarifyLeadIn + explanation, nil
}

// FallbackMessage is the deterministic reply used when the model has nothing
// useful to say. phaseContext is "technical" or "project".
func FallbackMessage(phaseContext string) string {
	return "I'm sorry, I didn't quite understand your response. " +
		"Could you please clarify or answer the question as best you can? " +
		fmt.Sprintf("Let's stay focused on your %s experience.", phaseContext)
}

func isOffTopic(reply string) bool {
	lower := strings.ToLower(reply)
	for _, marker := range offTopicMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (c *Classifier) complete(ctx context.Context, kind, prompt string) (string, error) {
	if c.completer == nil {
		return "", fmt.Errorf("completion service is not configured")
	}

	c.logger.Debug("completion request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.logger.Debug("completion response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	return raw, nil
}
