package questions

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TechnologyPlaceholder is replaced with the technology name in technical templates.
const TechnologyPlaceholder = "{{TECHNOLOGY}}"

// Bank holds the static question material for an interview.
type Bank struct {
	TechnicalTemplates []string `yaml:"technical_templates"`
	ProjectQuestions   []string `yaml:"project_questions"`
}

// DefaultBank returns the built-in templates and the five project questions
// covering goals, technology choices, innovation, challenges and lessons learned.
func DefaultBank() *Bank {
	return &Bank{
		TechnicalTemplates: []string{
			"What are the core concepts of " + TechnologyPlaceholder + ", and how have you applied them in a real project?",
			"Describe a challenging problem you solved using " + TechnologyPlaceholder + ". What trade-offs did you consider?",
			"How do you test, debug and tune the performance of " + TechnologyPlaceholder + " code in production?",
		},
		ProjectQuestions: []string{
			"Tell me about a recent project you are proud of. What were its goals and objectives?",
			"Which technologies and tools did you choose for that project, and why?",
			"What was innovative or unique about the project compared to existing solutions?",
			"What was the biggest challenge you faced during the project, and how did you solve it?",
			"What lessons did you learn, and what would you improve if you built it again?",
		},
	}
}

// LoadBank reads a question bank from a YAML file. Sections missing from the
// file are taken from DefaultBank.
func LoadBank(filename string) (*Bank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading question bank %s: %w", filename, err)
	}

	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsing question bank %s: %w", filename, err)
	}

	defaults := DefaultBank()
	if len(bank.TechnicalTemplates) == 0 {
		bank.TechnicalTemplates = defaults.TechnicalTemplates
	}
	if len(bank.ProjectQuestions) == 0 {
		bank.ProjectQuestions = defaults.ProjectQuestions
	}

	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("validating question bank %s: %w", filename, err)
	}

	return &bank, nil
}

// Validate checks that every template names the technology and that no
// question is blank.
func (b *Bank) Validate() error {
	if len(b.TechnicalTemplates) == 0 {
		return fmt.Errorf("at least one technical template is required")
	}

	for i, tmpl := range b.TechnicalTemplates {
		if strings.TrimSpace(tmpl) == "" {
			return fmt.Errorf("technical template %d is empty", i+1)
		}
		if !strings.Contains(tmpl, TechnologyPlaceholder) {
			return fmt.Errorf("technical template %d must contain %s", i+1, TechnologyPlaceholder)
		}
	}

	if len(b.ProjectQuestions) == 0 {
		return fmt.Errorf("at least one project question is required")
	}

	for i, q := range b.ProjectQuestions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("project question %d is empty", i+1)
		}
	}

	return nil
}
