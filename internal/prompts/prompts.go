// Package prompts renders the text sent to the completion service. Templates
// are embedded Markdown files with {{PLACEHOLDER}} markers.
package prompts

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

//go:embed templates/*.md
var templates embed.FS

const (
	maxFieldRunes = 200
	noneValue     = "none"
)

// Candidate is the profile data embedded in the report prompt.
type Candidate struct {
	FullName         string
	Email            string
	Phone            string
	Location         string
	ExperienceYears  int
	DesiredPositions []string
	TechStack        []string
}

// TechnicalQuestions asks the model for perTechnology questions per technology.
func TechnicalQuestions(techStack []string, perTechnology int) string {
	if perTechnology <= 0 {
		perTechnology = 3
	}
	return render("technical_questions.md",
		"{{PER_TECHNOLOGY}}", strconv.Itoa(perTechnology),
		"{{TECH_STACK}}", joinList(techStack),
	)
}

// AIDetection asks whether text looks machine-written, in the
// AI-Generated/Confidence/Reason line format.
func AIDetection(text string) string {
	return render("ai_detection.md", "{{TEXT}}", strings.TrimSpace(text))
}

// Correctness asks for a literal Correct or Incorrect verdict.
func Correctness(question, answer string) string {
	return render("correctness.md",
		"{{QUESTION}}", strings.TrimSpace(question),
		"{{ANSWER}}", strings.TrimSpace(answer),
	)
}

// Sentiment asks for a literal Positive, Negative or Neutral label.
func Sentiment(text string) string {
	return render("sentiment.md", "{{TEXT}}", strings.TrimSpace(text))
}

// AnswerQuestion asks the model to answer a question the candidate posed.
// context names the interview part, e.g. "technical" or "project".
func AnswerQuestion(question, context string) string {
	return render("answer_question.md",
		"{{QUESTION}}", strings.TrimSpace(question),
		"{{CONTEXT}}", SanitizeLine(context),
	)
}

// ReExplain asks for a simpler restatement of an interview question.
func ReExplain(question string) string {
	return render("re_explain.md", "{{QUESTION}}", strings.TrimSpace(question))
}

// Report builds the final hiring report prompt.
func Report(c Candidate, transcript string) string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		transcript = "No substantive answers were recorded."
	}

	return render("report.md",
		"{{FULL_NAME}}", orNone(SanitizeLine(c.FullName)),
		"{{EMAIL}}", orNone(SanitizeLine(c.Email)),
		"{{PHONE}}", orNone(SanitizeLine(c.Phone)),
		"{{LOCATION}}", orNone(SanitizeLine(c.Location)),
		"{{EXPERIENCE}}", strconv.Itoa(c.ExperienceYears),
		"{{POSITIONS}}", joinList(c.DesiredPositions),
		"{{TECH_STACK}}", joinList(c.TechStack),
		"{{TRANSCRIPT}}", transcript,
	)
}

// SanitizeLine collapses whitespace (including newlines) into single spaces,
// neutralises square brackets so values cannot open new prompt sections and
// truncates to a bounded length.
func SanitizeLine(value string) string {
	value = strings.NewReplacer("[", "(", "]", ")").Replace(value)
	value = strings.Join(strings.FieldsFunc(value, unicode.IsSpace), " ")

	runes := []rune(value)
	if len(runes) > maxFieldRunes {
		value = strings.TrimSpace(string(runes[:maxFieldRunes]))
	}
	return value
}

func joinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = SanitizeLine(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return noneValue
	}
	return strings.Join(cleaned, ", ")
}

func orNone(value string) string {
	if value == "" {
		return noneValue
	}
	return value
}

// render substitutes all placeholders in a single pass, so user supplied text
// that happens to contain a marker is never expanded.
func render(name string, oldnew ...string) string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("prompt template %s is not embedded: %v", name, err))
	}

	template := strings.TrimSpace(string(data))
	if len(oldnew) == 0 {
		return template
	}
	return strings.NewReplacer(oldnew...).Replace(template)
}
