package interview

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/prompts"
)

// Recommendation is the hiring verdict printed in the final report.
type Recommendation string

const (
	RecommendationStrongHire         Recommendation = "Strong Hire"
	RecommendationProceedWithCaution Recommendation = "Proceed with Caution"
	RecommendationNotAGoodFit        Recommendation = "Not a Good Fit"
)

var recommendations = []Recommendation{
	RecommendationStrongHire,
	RecommendationProceedWithCaution,
	RecommendationNotAGoodFit,
}

const recommendationLabel = "recommendation:"

// RecommendationFrom extracts the verdict from report text. A line starting
// with "Recommendation:" wins; otherwise the earliest label in the text is
// used. An empty value means the report names none.
func RecommendationFrom(report string) Recommendation {
	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "#*-> ")
		if !strings.HasPrefix(strings.ToLower(line), recommendationLabel) {
			continue
		}
		if rec := firstRecommendation(line[len(recommendationLabel):]); rec != "" {
			return rec
		}
	}
	return firstRecommendation(report)
}

func firstRecommendation(text string) Recommendation {
	lower := strings.ToLower(text)

	var (
		found Recommendation
		best  = -1
	)
	for _, rec := range recommendations {
		idx := strings.Index(lower, strings.ToLower(string(rec)))
		if idx >= 0 && (best < 0 || idx < best) {
			found, best = rec, idx
		}
	}
	return found
}

// Transcript renders every answer record as Markdown, technical answers first,
// each group in question order.
func Transcript(s *Session) string {
	var b strings.Builder

	writeSection := func(title string, records []AnswerRecord, withCorrectness bool) {
		if len(records) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, r := range records {
			fmt.Fprintf(&b, "### Question %d\n", r.Index+1)
			fmt.Fprintf(&b, "**Question:** %s\n", r.Question)
			fmt.Fprintf(&b, "**Answer:** %s\n", r.Answer)
			fmt.Fprintf(&b, "- Sentiment: %s\n", r.Analysis.Sentiment)
			fmt.Fprintf(&b, "- AI-Generated: %s (confidence: %s, reason: %s)\n",
				yesNo(r.Analysis.AIGenerated), r.Analysis.AIConfidence, r.Analysis.AIReason)
			if withCorrectness {
				fmt.Fprintf(&b, "- Correctness: %s\n", r.Analysis.Correctness)
			}
			b.WriteString("\n")
		}
	}

	writeSection(PhaseTechnicalQA.Title(), sortedRecords(s.TechnicalAnswers), true)
	writeSection(PhaseProjectDiscussion.Title(), sortedRecords(s.ProjectAnswers), false)

	return strings.TrimSpace(b.String())
}

func (e *Engine) generateReport(ctx context.Context, s *Session) (string, error) {
	if s.Profile == nil {
		return "", ErrInvalidTransition
	}

	p := s.Profile
	prompt := prompts.Report(prompts.Candidate{
		FullName:         p.FullName,
		Email:            p.Email,
		Phone:            p.Phone,
		Location:         p.Location,
		ExperienceYears:  p.ExperienceYears,
		DesiredPositions: p.DesiredPositions,
		TechStack:        p.TechStack,
	}, Transcript(s))

	if e.completer == nil {
		return "", &CompletionError{Op: "generate report", Err: fmt.Errorf("completion service is not configured")}
	}

	report, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return "", &CompletionError{Op: "generate report", Err: err}
	}

	if strings.TrimSpace(report) == "" {
		return "", &CompletionError{Op: "generate report", Err: fmt.Errorf("empty report")}
	}

	e.sessionLogger(s).Info("report generated",
		zap.Int("report_length", len(report)),
		zap.String("recommendation", string(RecommendationFrom(report))),
	)

	return report, nil
}

func sortedRecords(records map[int]AnswerRecord) []AnswerRecord {
	result := make([]AnswerRecord, 0, len(records))
	for _, r := range records {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
