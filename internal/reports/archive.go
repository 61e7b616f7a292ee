// Package reports stores finished interview reports as Markdown files.
package reports

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/interview"
)

const (
	defaultDir      = "reports"
	timestampLayout = "20060102-150405"
)

var ErrNoReport = errors.New("session has no report yet")

type Archive struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func NewArchive(dir string, logger *zap.Logger) *Archive {
	if strings.TrimSpace(dir) == "" {
		dir = defaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{dir: dir, logger: logger, now: time.Now}
}

// Save writes the report of a finished session and returns the file path.
func (a *Archive) Save(s *interview.Session) (string, error) {
	if s.Phase != interview.PhaseReport || strings.TrimSpace(s.Report) == "" {
		return "", ErrNoReport
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory %s: %w", a.dir, err)
	}

	name := ""
	if s.Profile != nil {
		name = s.Profile.FullName
	}

	now := a.now()
	path := filepath.Join(a.dir, fmt.Sprintf("%s-%s.md", Slug(name), now.Format(timestampLayout)))

	if err := os.WriteFile(path, []byte(Render(s, now)), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}

	a.logger.Info("report saved", zap.String("path", path), zap.String("session_id", s.ID))
	return path, nil
}

// Render builds the Markdown document for a finished session.
func Render(s *interview.Session, generatedAt time.Time) string {
	var b strings.Builder

	name := "Candidate"
	if s.Profile != nil && s.Profile.FullName != "" {
		name = s.Profile.FullName
	}

	fmt.Fprintf(&b, "# Interview Report: %s\n\n", name)
	fmt.Fprintf(&b, "_Generated %s_\n\n", generatedAt.Format(time.RFC1123))

	if p := s.Profile; p != nil {
		b.WriteString("## Candidate\n\n")
		fmt.Fprintf(&b, "- **Email:** %s\n", p.Email)
		fmt.Fprintf(&b, "- **Phone:** %s\n", p.Phone)
		fmt.Fprintf(&b, "- **Location:** %s\n", p.Location)
		fmt.Fprintf(&b, "- **Experience:** %d years\n", p.ExperienceYears)
		fmt.Fprintf(&b, "- **Desired Position(s):** %s\n", strings.Join(p.DesiredPositions, ", "))
		fmt.Fprintf(&b, "- **Tech Stack:** %s\n\n", strings.Join(p.TechStack, ", "))
	}

	card := interview.ScorecardFor(s)
	b.WriteString("## Technical Score\n\n")
	fmt.Fprintf(&b, "%d of %d answers correct (%.0f%%)\n\n", card.Correct, card.Answered, card.Percentage)

	b.WriteString("## Assessment\n\n")
	b.WriteString(strings.TrimSpace(s.Report))
	b.WriteString("\n")

	if transcript := interview.Transcript(s); transcript != "" {
		b.WriteString("\n# Transcript\n\n")
		b.WriteString(transcript)
		b.WriteString("\n")
	}

	return b.String()
}

// Slug turns a candidate name into a file name fragment.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "candidate"
	}
	return slug
}
