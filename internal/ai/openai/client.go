package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "http://localhost:1234/v1"
	defaultModel   = "mistralai/mistral-7b-instruct-v0.3"

	completionsPath = "/chat/completions"
	contentPath     = "choices.0.message.content"
	errorPath       = "error.message"
)

// Options configures a generator for an OpenAI-compatible endpoint.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Generator talks to any /chat/completions endpoint, such as LM Studio.
type Generator struct {
	client      *resty.Client
	model       string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

func NewGenerator(opts Options, log *zap.Logger) (*Generator, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		client.SetAuthToken(key)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Generator{
		client:      client,
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      logger.WithFields(log, logger.CommonFields(ProviderName, model)...),
	}, nil
}

// GenerateContent performs one chat completion and returns the first choice text.
func (g *Generator) GenerateContent(ctx context.Context, system, user string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("openai generator is not initialized")
	}

	if strings.TrimSpace(user) == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]message, 0, 2)
	if system = strings.TrimSpace(system); system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: user})

	reqID := uuid.NewString()
	log := g.logger.With(zap.String("req_id", reqID))
	log.Debug("chat completion request", zap.Int("messages", len(messages)))

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", reqID).
		SetBody(completionRequest{
			Model:       g.model,
			Messages:    messages,
			Temperature: g.temperature,
			MaxTokens:   g.maxTokens,
		}).
		Post(completionsPath)
	if err != nil {
		return "", fmt.Errorf("send chat completion: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		detail := gjson.Get(body, errorPath).String()
		if detail == "" {
			detail = utils.TruncateForLog(body, 200)
		}
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode(), detail)
	}

	content := strings.TrimSpace(gjson.Get(body, contentPath).String())
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}

	log.Debug("chat completion response", zap.Int("status", resp.StatusCode()))

	return content, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
