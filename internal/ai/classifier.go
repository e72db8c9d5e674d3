package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
	"go.uber.org/zap"
)

// SystemPrompt frames the model for every exchange.
const SystemPrompt = "You are an expert technical recruiter. Be precise and conservative in your analysis."

const (
	defaultMaxLogLength = 200
	textPlaceholder     = "{{RESUME_TEXT}}"
)

//go:embed prompt.md
var promptTemplate string

// Classifier asks a model for a Judgment on a résumé text.
type Classifier struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewClassifier(generator Generator, log *zap.Logger, maxLogLength int) *Classifier {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Classifier{
		generator: generator,
		logger:    logger.WithFields(log, zap.String(logger.FieldModel, generator.Model())),
		maxLogLen: maxLogLength,
	}
}

// Classify sends one exchange and parses the reply. No Judgment is returned
// when the reply cannot be parsed.
func (c *Classifier) Classify(ctx context.Context, text string) (Judgment, error) {
	if strings.TrimSpace(text) == "" {
		return Judgment{}, ErrEmptyText
	}

	prompt := BuildPrompt(text)

	c.logger.Debug("classify request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, SystemPrompt, prompt)
	if err != nil {
		return Judgment{}, fmt.Errorf("request judgment: %w", err)
	}

	c.logger.Debug("classify response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	j, err := ParseReply(raw)
	if err != nil {
		return Judgment{}, fmt.Errorf("parse model reply: %w", err)
	}

	return j, nil
}

// BuildPrompt inserts text verbatim into the prompt template.
func BuildPrompt(text string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume text:\n" + textPlaceholder
	}
	return strings.Replace(template, textPlaceholder, text, 1)
}
