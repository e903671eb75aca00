// Package deepseek implements the generation.Generator interface against
// the DeepSeek chat completion API. DeepSeek exposes an OpenAI-compatible
// surface, so the client is the standard OpenAI SDK pointed at the
// DeepSeek base URL.
package deepseek

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/estudai/estudai-api/internal/config"
	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/generation"
)

const (
	summaryTemperature = 0.3
	quizTemperature    = 0.5
)

const summaryPrompt = `Você é um assistente de estudos. Produza um resumo didático
do texto abaixo, em português, com no máximo 300 palavras. Destaque os
conceitos centrais e organize as ideias de forma clara para revisão.

Texto:
%s`

const quizPrompt = `Você é um assistente de estudos. Com base no texto abaixo,
crie exatamente 5 questões de múltipla escolha em português. Cada questão
deve ter exatamente 4 opções e uma única resposta correta. A resposta
correta deve ser idêntica, caractere por caractere, a uma das opções.

Responda apenas com JSON no formato:
{"questoes":[{"pergunta":"...","opcoes":["...","...","...","..."],"resposta_correta":"..."}]}

Texto:
%s`

// Generator generates summaries and quizzes through the DeepSeek API.
type Generator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGenerator creates a Generator from the given configuration.
// If logger is nil, a default logger will be used.
func NewGenerator(cfg config.LLMConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: missing base URL", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", generation.ErrInvalidConfig)
	}

	if logger == nil {
		logger = slog.Default()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Generator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  logger.With(slog.String("component", "deepseek_generator")),
	}, nil
}

// Ensure Generator implements the generation interfaces
var (
	_ generation.Generator     = (*Generator)(nil)
	_ generation.HealthChecker = (*Generator)(nil)
)

// Summarize implements generation.Generator.Summarize
func (g *Generator) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", generation.ErrEmptyInput
	}

	content, err := g.complete(ctx, fmt.Sprintf(summaryPrompt, text), summaryTemperature, nil)
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(content)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", generation.ErrSchemaValidation)
	}

	return summary, nil
}

// quizPayload mirrors the JSON contract the model is instructed to emit.
type quizPayload struct {
	Questoes []struct {
		Pergunta        string   `json:"pergunta"`
		Opcoes          []string `json:"opcoes"`
		RespostaCorreta string   `json:"resposta_correta"`
	} `json:"questoes"`
}

// GenerateQuiz implements generation.Generator.GenerateQuiz
func (g *Generator) GenerateQuiz(ctx context.Context, text string) ([]domain.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, generation.ErrEmptyInput
	}

	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	content, err := g.complete(ctx, fmt.Sprintf(quizPrompt, text), quizTemperature, format)
	if err != nil {
		return nil, err
	}

	return parseQuiz(content)
}

// parseQuiz decodes and validates the model's quiz payload. The model is
// not trusted: question count, option count and correct-answer membership
// are all re-checked before anything is persisted.
func parseQuiz(content string) ([]domain.Question, error) {
	var payload quizPayload
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed quiz JSON: %v", generation.ErrSchemaValidation, err)
	}

	if len(payload.Questoes) != domain.QuizQuestionCount {
		return nil, fmt.Errorf("%w: expected %d questions, got %d",
			generation.ErrSchemaValidation, domain.QuizQuestionCount, len(payload.Questoes))
	}

	questions := make([]domain.Question, 0, len(payload.Questoes))
	for i, q := range payload.Questoes {
		question := domain.Question{
			Prompt:        q.Pergunta,
			Options:       q.Opcoes,
			CorrectAnswer: q.RespostaCorreta,
		}
		if err := question.ValidateContent(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrSchemaValidation, i+1, err)
		}
		questions = append(questions, question)
	}

	return questions, nil
}

// extractJSON strips markdown code fences some models wrap around JSON.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

// complete sends a single-message chat completion and returns the first
// choice's content.
func (g *Generator) complete(ctx context.Context, prompt string, temperature float32, format *openai.ChatCompletionResponseFormat) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:    temperature,
		ResponseFormat: format,
	})
	if err != nil {
		apiErr := wrapAPIError(err)
		g.logger.Error("chat completion failed",
			slog.String("model", g.model),
			slog.Duration("elapsed", time.Since(start)),
			slog.Int("status_code", apiErr.StatusCode),
			slog.String("error", apiErr.Detail))
		return "", apiErr
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", generation.ErrServiceFailure)
	}

	g.logger.Debug("chat completion succeeded",
		slog.String("model", g.model),
		slog.Duration("elapsed", time.Since(start)))
	return resp.Choices[0].Message.Content, nil
}
