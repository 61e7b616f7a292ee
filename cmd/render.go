package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spigell/hirely/internal/classifier"
	"github.com/spigell/hirely/internal/interview"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))  // Purple
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))            // Gray
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))  // Green
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")) // Yellow
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")) // Red
	botStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func renderProgress(steps []interview.Step) string {
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		switch step.Status {
		case interview.StepDone:
			parts = append(parts, successStyle.Render("✓ "+step.Title))
		case interview.StepCurrent:
			parts = append(parts, titleStyle.Render("● "+step.Title))
		default:
			parts = append(parts, mutedStyle.Render("○ "+step.Title))
		}
	}
	return strings.Join(parts, mutedStyle.Render(" › "))
}

func renderQuestion(q *interview.CurrentQuestion) string {
	header := mutedStyle.Render(fmt.Sprintf("Question %d of %d", q.Index+1, q.Total))
	return header + "\n" + titleStyle.Render(q.Text)
}

// renderFeedback summarises the analysis of the previous answer.
func renderFeedback(record *interview.AnswerRecord) string {
	if record == nil {
		return ""
	}

	a := record.Analysis
	lines := []string{mutedStyle.Render(fmt.Sprintf("Feedback on question %d:", record.Index+1))}

	switch a.Correctness {
	case classifier.CorrectnessCorrect:
		lines = append(lines, successStyle.Render("Correct"))
	case classifier.CorrectnessIncorrect:
		lines = append(lines, errorStyle.Render("Incorrect"))
	}

	lines = append(lines, "Sentiment: "+string(a.Sentiment))

	if a.AIGenerated {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("Possibly AI-generated (%s confidence): %s", a.AIConfidence, a.AIReason)))
	}

	return strings.Join(lines, "\n")
}

func renderScorecard(card interview.Scorecard) string {
	return fmt.Sprintf("Technical score: %d/%d (%.0f%%)", card.Correct, card.Answered, card.Percentage)
}

func renderBotMessage(message string) string {
	return botStyle.Render(message)
}

func renderSnapshot(snap interview.Snapshot) string {
	var b strings.Builder

	b.WriteString(renderProgress(snap.Progress))
	b.WriteString("\n\n")

	if feedback := renderFeedback(snap.LastAnswer); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n\n")
	}

	if snap.Phase == interview.PhaseTechnicalQA || snap.Phase == interview.PhaseReport {
		b.WriteString(mutedStyle.Render(renderScorecard(snap.Scorecard)))
		b.WriteString("\n\n")
	}

	if snap.PendingMessage != "" {
		b.WriteString(renderBotMessage(snap.PendingMessage))
		b.WriteString("\n")
	} else if snap.CurrentQuestion != nil {
		b.WriteString(renderQuestion(snap.CurrentQuestion))
		b.WriteString("\n")
	}

	return b.String()
}
