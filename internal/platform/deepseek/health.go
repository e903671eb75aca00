package deepseek

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/estudai/estudai-api/internal/generation"
)

const (
	healthTimeout = 10 * time.Second
	healthPrompt  = `Responda apenas com a palavra "OK".`
)

// CheckHealth sends a minimal completion request and verifies the model
// answers with an affirmative token. A reachable API that produces
// garbage is treated as unhealthy.
func (g *Generator) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: healthPrompt},
		},
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		return wrapAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: health probe returned no choices", generation.ErrServiceFailure)
	}

	answer := normalizeHealthAnswer(resp.Choices[0].Message.Content)
	if !strings.HasPrefix(answer, "OK") {
		return fmt.Errorf("%w: unexpected health answer %q", generation.ErrServiceFailure, answer)
	}

	return nil
}

// normalizeHealthAnswer uppercases and strips quoting and punctuation the
// model may wrap around its answer.
func normalizeHealthAnswer(content string) string {
	answer := strings.ToUpper(strings.TrimSpace(content))
	return strings.Trim(answer, `"'.!`)
}
