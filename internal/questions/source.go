package questions

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/ai"
	"github.com/spigell/hirely/internal/prompts"
)

const (
	// KindTemplate expands the bank templates over the tech stack.
	KindTemplate = "template"
	// KindModel asks the completion service for technical questions.
	KindModel = "model"

	defaultPerTechnology = 3
)

var listMarker = regexp.MustCompile(`^(?:[-*•]\s+|\d+[.)]\s*)`)

// Source produces the ordered questions for an interview.
type Source interface {
	Technical(ctx context.Context, techStack []string) ([]string, error)
	Project(ctx context.Context) ([]string, error)
}

// TemplateSource expands static templates; it never calls the model, so the
// output is reproducible.
type TemplateSource struct {
	bank          *Bank
	perTechnology int
}

// NewTemplateSource uses at most perTechnology templates per technology.
// A nil bank means DefaultBank.
func NewTemplateSource(bank *Bank, perTechnology int) *TemplateSource {
	if bank == nil {
		bank = DefaultBank()
	}
	if perTechnology <= 0 {
		perTechnology = defaultPerTechnology
	}
	return &TemplateSource{bank: bank, perTechnology: perTechnology}
}

func (s *TemplateSource) Technical(_ context.Context, techStack []string) ([]string, error) {
	stack := NormalizeTechStack(techStack)
	if len(stack) == 0 {
		return nil, fmt.Errorf("tech stack is empty")
	}

	templates := s.bank.TechnicalTemplates
	if len(templates) > s.perTechnology {
		templates = templates[:s.perTechnology]
	}

	result := make([]string, 0, len(stack)*len(templates))
	for _, tech := range stack {
		for _, tmpl := range templates {
			result = append(result, strings.ReplaceAll(tmpl, TechnologyPlaceholder, tech))
		}
	}
	return result, nil
}

func (s *TemplateSource) Project(context.Context) ([]string, error) {
	return append([]string(nil), s.bank.ProjectQuestions...), nil
}

// ModelSource asks the completion service for technical questions in a single
// prompt. Project questions still come from the bank.
type ModelSource struct {
	completer     ai.Completer
	bank          *Bank
	perTechnology int
	logger        *zap.Logger
}

func NewModelSource(completer ai.Completer, bank *Bank, perTechnology int, logger *zap.Logger) *ModelSource {
	if bank == nil {
		bank = DefaultBank()
	}
	if perTechnology <= 0 {
		perTechnology = defaultPerTechnology
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelSource{completer: completer, bank: bank, perTechnology: perTechnology, logger: logger}
}

func (s *ModelSource) Technical(ctx context.Context, techStack []string) ([]string, error) {
	stack := NormalizeTechStack(techStack)
	if len(stack) == 0 {
		return nil, fmt.Errorf("tech stack is empty")
	}

	raw, err := s.completer.Complete(ctx, prompts.TechnicalQuestions(stack, s.perTechnology))
	if err != nil {
		return nil, fmt.Errorf("generate technical questions: %w", err)
	}

	result := SplitLines(raw)
	if len(result) == 0 {
		return nil, fmt.Errorf("generate technical questions: model returned no questions")
	}
	if missing := uncovered(raw, stack); len(missing) > 0 {
		return nil, fmt.Errorf("generate technical questions: no questions for %s", strings.Join(missing, ", "))
	}

	s.logger.Debug("technical questions generated",
		zap.Strings("tech_stack", stack),
		zap.Int("count", len(result)),
	)

	return result, nil
}

func (s *ModelSource) Project(context.Context) ([]string, error) {
	return append([]string(nil), s.bank.ProjectQuestions...), nil
}

// NormalizeTechStack trims entries, drops blanks and collapses case-insensitive
// duplicates, keeping the first spelling and the original order.
func NormalizeTechStack(techStack []string) []string {
	seen := make(map[string]struct{}, len(techStack))
	result := make([]string, 0, len(techStack))
	for _, tech := range techStack {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			continue
		}
		key := strings.ToLower(tech)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, tech)
	}
	return result
}

// uncovered lists the technologies the reply never names, headings included.
func uncovered(raw string, stack []string) []string {
	lower := strings.ToLower(raw)
	var missing []string
	for _, tech := range stack {
		if !strings.Contains(lower, strings.ToLower(tech)) {
			missing = append(missing, tech)
		}
	}
	return missing
}

// SplitLines turns a model listing into questions: one per non-blank line,
// with list markers removed. Markdown headings, bold titles and lines ending
// in a colon are skipped.
func SplitLines(raw string) []string {
	var result []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasSuffix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && !strings.Contains(line, "?") {
			continue
		}

		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result
}
