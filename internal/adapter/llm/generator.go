// Package llm implements the question generator port against an
// OpenAI-compatible chat-completions endpoint (DeepSeek by default).
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"questgenius/internal/config"
	"questgenius/internal/domain"
	"questgenius/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Generator implements domain.QuestionGenerator over a chat model.
type Generator struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// New creates a Generator from configuration, building the underlying
// chat-completions client.
func New(cfg config.LLMConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model client: %w", err)
	}

	logger.Get().Info("Question generator initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model))

	return NewWithModel(model, cfg.Temperature, cfg.MaxTokens), nil
}

// NewWithModel creates a Generator around an existing model. Tests use this
// with a fake llms.Model.
func NewWithModel(model llms.Model, temperature float64, maxTokens int) *Generator {
	return &Generator{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// questionPayload is the raw model reply before validation. Answer is a
// pointer so a missing field is distinguishable from index 0.
type questionPayload struct {
	Question                string   `json:"question"`
	Options                 []string `json:"options"`
	Answer                  *int     `json:"answer"`
	Explanation             string   `json:"explanation"`
	AlternativeExplanations []string `json:"alternativeExplanations"`
}

// GenerateQuestion performs one model round-trip and parses the reply into a
// validated Question. It does not retry and does not check duplicates.
func (g *Generator) GenerateQuestion(ctx context.Context, req *domain.QuestionRequest) (*domain.Question, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, buildUserPrompt(req)),
	}

	resp, err := g.model.GenerateContent(ctx, messages,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		logger.Get().Error("Model call failed",
			zap.String("exam", req.ExamID),
			zap.String("subject", req.Subject),
			zap.Error(err))
		return nil, domain.NewRemoteServiceError(0, err.Error(), err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewMalformedResponseError("model reply has no choices", nil)
	}

	content := resp.Choices[0].Content

	span, ok := extractJSONObject(content)
	if !ok {
		logger.Get().Warn("Model reply contained no JSON object",
			zap.String("exam", req.ExamID),
			zap.String("content", content))
		return nil, domain.NewMalformedResponseError("no JSON object found in model reply", nil)
	}

	var payload questionPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, domain.NewMalformedResponseError("model reply is not valid JSON", err)
	}
	if payload.Question == "" {
		return nil, domain.NewMalformedResponseError("model reply is missing the question field", nil)
	}
	if len(payload.Options) == 0 {
		return nil, domain.NewMalformedResponseError("model reply is missing the options field", nil)
	}
	if payload.Answer == nil {
		return nil, domain.NewMalformedResponseError("model reply is missing the answer field", nil)
	}
	if payload.Explanation == "" {
		return nil, domain.NewMalformedResponseError("model reply is missing the explanation field", nil)
	}

	question := &domain.Question{
		Text:               payload.Question,
		Options:            payload.Options,
		CorrectIndex:       *payload.Answer,
		Explanation:        payload.Explanation,
		OptionExplanations: payload.AlternativeExplanations,
	}
	if err := question.Validate(); err != nil {
		return nil, domain.NewMalformedResponseError("model reply failed validation", err)
	}

	return question, nil
}

// Static assertion that Generator implements the port.
var _ domain.QuestionGenerator = (*Generator)(nil)
