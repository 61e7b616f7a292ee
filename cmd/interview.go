package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/interview"
	"github.com/spigell/hirely/internal/logger"
	"github.com/spigell/hirely/internal/reports"
)

const (
	PromptStart          = "Start Interview"
	PromptExit           = "Exit"
	PromptGotIt          = "Got it"
	PromptGenerateReport = "Generate Report"
	PromptDownload       = "Download as Markdown"
	PromptNewInterview   = "Start New Interview"
)

var errExit = errors.New("exit requested")

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interview in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		runInterview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("reports-dir", "r", "", "directory for downloaded reports (default is reports.dir from config)")
	interviewCmd.Flags().StringP("questions-file", "q", "", "a YAML question bank")

	viper.BindPFlag("reports.dir", interviewCmd.Flags().Lookup("reports-dir"))
	viper.BindPFlag("interview.questions-file", interviewCmd.Flags().Lookup("questions-file"))
}

func runInterview(cmd *cobra.Command) {
	ctx := cmd.Context()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the interview", zap.String("version", version))

	engine, err := newEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the interview engine", zap.Error(err))
	}

	t := &terminal{
		engine:  engine,
		archive: reports.NewArchive(config.Reports.Dir, logger),
		out:     os.Stdout,
		logger:  logger,
	}

	if err := t.run(ctx); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}
}

type terminal struct {
	engine  *interview.Engine
	archive *reports.Archive
	out     io.Writer
	logger  *zap.Logger
}

func (t *terminal) run(ctx context.Context) error {
	s := t.engine.NewSession()

	for {
		snap := t.engine.Snapshot(s)
		fmt.Fprintln(t.out)
		fmt.Fprint(t.out, renderSnapshot(snap))

		var err error
		switch snap.Phase {
		case interview.PhaseWelcome:
			err = t.welcome(ctx, s)
		case interview.PhaseInfoGathering:
			err = t.profile(ctx, s)
		case interview.PhaseTechnicalQA, interview.PhaseProjectDiscussion:
			switch {
			case snap.PendingMessage != "":
				err = t.acknowledge(ctx, s)
			case snap.CurrentQuestion == nil:
				err = t.finish(ctx, s)
			default:
				err = t.answer(ctx, s)
			}
		case interview.PhaseReport:
			s, err = t.report(ctx, s, snap)
		}

		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return errExit
			}
			return err
		}
	}
}

func (t *terminal) welcome(ctx context.Context, s *interview.Session) error {
	fmt.Fprintln(t.out, titleStyle.Render("Welcome to Hirely!"))
	fmt.Fprintln(t.out, "I'll ask about your background, then technical questions on your stack and a few questions about a recent project.")

	_, action, err := (&promptui.Select{Label: "Ready?", Items: []string{PromptStart, PromptExit}}).Run()
	if err != nil {
		return err
	}
	if action == PromptExit {
		return errExit
	}
	return t.engine.StartInterview(ctx, s)
}

type profileField struct {
	key      string
	label    string
	validate promptui.ValidateFunc
}

var profileFields = []profileField{
	{key: "full_name", label: "Full name", validate: required},
	{key: "email", label: "Email", validate: required},
	{key: "phone", label: "Phone", validate: required},
	{key: "location", label: "Location", validate: required},
	{key: "experience_years", label: "Years of experience (0-50)", validate: experienceYears},
	{key: "desired_positions", label: "Desired positions (comma separated)", validate: required},
	{key: "tech_stack", label: "Tech stack (comma separated)", validate: required},
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("this field is required")
	}
	return nil
}

func experienceYears(input string) error {
	years, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || years < 0 || years > 50 {
		return errors.New("enter a number between 0 and 50")
	}
	return nil
}

func (t *terminal) profile(ctx context.Context, s *interview.Session) error {
	fields := make(map[string]any, len(profileFields))
	for _, f := range profileFields {
		value, err := (&promptui.Prompt{Label: f.label, Validate: f.validate}).Run()
		if err != nil {
			return err
		}
		fields[f.key] = value
	}

	profile, err := interview.ProfileFromFields(fields)
	if err == nil {
		fmt.Fprintln(t.out, mutedStyle.Render("Preparing your questions..."))
		err = t.engine.SubmitProfile(ctx, s, profile)
	}
	return t.recoverable(err)
}

func (t *terminal) answer(ctx context.Context, s *interview.Session) error {
	text, err := (&promptui.Prompt{Label: "Your answer"}).Run()
	if err != nil {
		return err
	}

	return t.recoverable(t.engine.SubmitAnswer(ctx, s, text))
}

func (t *terminal) acknowledge(ctx context.Context, s *interview.Session) error {
	if _, _, err := (&promptui.Select{Label: "Continue", Items: []string{PromptGotIt}}).Run(); err != nil {
		return err
	}
	return t.engine.AcknowledgeBotMessage(ctx, s)
}

func (t *terminal) finish(ctx context.Context, s *interview.Session) error {
	fmt.Fprintln(t.out, successStyle.Render("All questions answered."))

	_, action, err := (&promptui.Select{Label: "Next step", Items: []string{PromptGenerateReport, PromptExit}}).Run()
	if err != nil {
		return err
	}
	if action == PromptExit {
		return errExit
	}

	fmt.Fprintln(t.out, mutedStyle.Render("Generating your report..."))
	return t.recoverable(t.engine.AdvancePhase(ctx, s))
}

func (t *terminal) report(ctx context.Context, s *interview.Session, snap interview.Snapshot) (*interview.Session, error) {
	fmt.Fprintln(t.out, titleStyle.Render("Interview Report"))
	fmt.Fprintln(t.out, snap.Report)

	for {
		_, action, err := (&promptui.Select{
			Label: "What next?",
			Items: []string{PromptDownload, PromptNewInterview, PromptExit},
		}).Run()
		if err != nil {
			return s, err
		}

		switch action {
		case PromptDownload:
			path, err := t.archive.Save(s)
			if err != nil {
				fmt.Fprintln(t.out, errorStyle.Render(err.Error()))
				continue
			}
			fmt.Fprintln(t.out, successStyle.Render("Report saved to "+path))
		case PromptNewInterview:
			return t.engine.ResetSession(ctx, s), nil
		default:
			return s, errExit
		}
	}
}

// recoverable prints errors the candidate can fix by trying again and passes
// everything else through.
func (t *terminal) recoverable(err error) error {
	var (
		validation *interview.ValidationError
		completion *interview.CompletionError
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, interview.ErrEmptyAnswer):
		fmt.Fprintln(t.out, warningStyle.Render("Please provide an answer."))
	case errors.As(err, &validation):
		fmt.Fprintln(t.out, errorStyle.Render(validation.Error()))
	case errors.As(err, &completion):
		t.logger.Warn("completion failed", zap.String("op", completion.Op), zap.Error(completion.Err))
		fmt.Fprintln(t.out, errorStyle.Render("The assistant is unavailable right now, please try again."))
	default:
		return err
	}
	return nil
}
