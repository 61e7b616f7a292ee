package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/ai"
	"github.com/spigell/hirely/internal/ai/gemini"
	"github.com/spigell/hirely/internal/interview"
	"github.com/spigell/hirely/internal/questions"
	"github.com/spigell/hirely/internal/secrets"
	"github.com/spigell/hirely/internal/session"
)

func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*gemini.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file)", err)
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}
	generator.SetMaxLogLength(cfg.Gemini.MaxLogLength)

	return generator, nil
}

func newQuestionSource(cfg *InterviewConfig, completer ai.Completer, logger *zap.Logger) (questions.Source, error) {
	bank := questions.DefaultBank()
	if cfg.QuestionsFile != "" {
		loaded, err := questions.LoadBank(cfg.QuestionsFile)
		if err != nil {
			return nil, err
		}
		bank = loaded
		logger.Info("question bank loaded", zap.String("filename", cfg.QuestionsFile))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.QuestionSource)) {
	case "", questions.KindTemplate:
		return questions.NewTemplateSource(bank, cfg.TemplatesPerTechnology), nil
	case questions.KindModel:
		return questions.NewModelSource(completer, bank, cfg.TemplatesPerTechnology, logger), nil
	default:
		return nil, fmt.Errorf("unsupported question source: %s", cfg.QuestionSource)
	}
}

func newEngine(ctx context.Context, config *Config, logger *zap.Logger) (*interview.Engine, error) {
	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("creating completion client: %w", err)
	}
	logger.Info("completion service ready", zap.String("model", ai.ModelName(completer)))

	source, err := newQuestionSource(config.Interview, completer, logger)
	if err != nil {
		return nil, fmt.Errorf("preparing questions: %w", err)
	}

	return interview.NewEngine(completer, source, logger, config.AI.Gemini.MaxLogLength), nil
}

// newStore returns the session store and a cleanup func.
func newStore(ctx context.Context, cfg *SessionsConfig, logger *zap.Logger) (session.Store, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "memory":
		return session.NewMemory(cfg.TTL), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     strings.TrimPrefix(cfg.Redis.Addr, "redis://"),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}

		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		return session.NewRedis(rdb, cfg.TTL), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session backend: %s", cfg.Backend)
	}
}
