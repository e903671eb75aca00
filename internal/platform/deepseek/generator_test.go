package deepseek

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estudai/estudai-api/internal/config"
	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/generation"
)

func validLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		APIKey:                "sk-test",
		BaseURL:               "https://api.deepseek.com/v1",
		Model:                 "deepseek-chat",
		RequestTimeoutSeconds: 60,
	}
}

func TestNewGeneratorValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.LLMConfig)
	}{
		{name: "missing api key", mutate: func(c *config.LLMConfig) { c.APIKey = "" }},
		{name: "missing base url", mutate: func(c *config.LLMConfig) { c.BaseURL = "" }},
		{name: "missing model", mutate: func(c *config.LLMConfig) { c.Model = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validLLMConfig()
			tt.mutate(&cfg)

			_, err := NewGenerator(cfg, nil)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}

	g, err := NewGenerator(validLLMConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, g)
}

const validQuizJSON = `{"questoes":[
	{"pergunta":"Q1?","opcoes":["a","b","c","d"],"resposta_correta":"a"},
	{"pergunta":"Q2?","opcoes":["a","b","c","d"],"resposta_correta":"b"},
	{"pergunta":"Q3?","opcoes":["a","b","c","d"],"resposta_correta":"c"},
	{"pergunta":"Q4?","opcoes":["a","b","c","d"],"resposta_correta":"d"},
	{"pergunta":"Q5?","opcoes":["a","b","c","d"],"resposta_correta":"a"}
]}`

func TestParseQuizValid(t *testing.T) {
	questions, err := parseQuiz(validQuizJSON)
	require.NoError(t, err)
	require.Len(t, questions, domain.QuizQuestionCount)

	assert.Equal(t, "Q1?", questions[0].Prompt)
	assert.Equal(t, []string{"a", "b", "c", "d"}, questions[0].Options)
	assert.Equal(t, "a", questions[0].CorrectAnswer)
}

func TestParseQuizStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"

	questions, err := parseQuiz(fenced)
	require.NoError(t, err)
	assert.Len(t, questions, domain.QuizQuestionCount)
}

func TestParseQuizRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "desculpe, não consigo"},
		{name: "empty object", content: "{}"},
		{
			name: "wrong question count",
			content: `{"questoes":[
				{"pergunta":"Q1?","opcoes":["a","b","c","d"],"resposta_correta":"a"}
			]}`,
		},
		{
			name: "three options",
			content: `{"questoes":[
				{"pergunta":"Q1?","opcoes":["a","b","c"],"resposta_correta":"a"},
				{"pergunta":"Q2?","opcoes":["a","b","c","d"],"resposta_correta":"b"},
				{"pergunta":"Q3?","opcoes":["a","b","c","d"],"resposta_correta":"c"},
				{"pergunta":"Q4?","opcoes":["a","b","c","d"],"resposta_correta":"d"},
				{"pergunta":"Q5?","opcoes":["a","b","c","d"],"resposta_correta":"a"}
			]}`,
		},
		{
			name: "answer not among options",
			content: `{"questoes":[
				{"pergunta":"Q1?","opcoes":["a","b","c","d"],"resposta_correta":"e"},
				{"pergunta":"Q2?","opcoes":["a","b","c","d"],"resposta_correta":"b"},
				{"pergunta":"Q3?","opcoes":["a","b","c","d"],"resposta_correta":"c"},
				{"pergunta":"Q4?","opcoes":["a","b","c","d"],"resposta_correta":"d"},
				{"pergunta":"Q5?","opcoes":["a","b","c","d"],"resposta_correta":"a"}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuiz(tt.content)
			assert.ErrorIs(t, err, generation.ErrSchemaValidation)
		})
	}
}

func TestAPIErrorWrapsServiceFailure(t *testing.T) {
	err := wrapAPIError(assert.AnError)

	assert.ErrorIs(t, err, generation.ErrServiceFailure)
	assert.Equal(t, "o serviço de IA está indisponível no momento", err.PublicMsg)
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

func TestNormalizeHealthAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "OK", want: "OK"},
		{in: " ok \n", want: "OK"},
		{in: `"OK!"`, want: "OK"},
		{in: "OK, estou funcionando", want: "OK, ESTOU FUNCIONANDO"},
		{in: "falha", want: "FALHA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHealthAnswer(tt.in))
	}
}
