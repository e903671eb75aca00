package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() []string {
	return []string{"A) mitocôndria", "B) ribossomo", "C) núcleo", "D) lisossomo"}
}

func TestNewQuestion(t *testing.T) {
	q, err := NewQuestion(42, "Qual organela produz energia?", validOptions(), "A) mitocôndria")
	require.NoError(t, err)

	assert.Equal(t, int64(42), q.StudyID)
	assert.Len(t, q.Options, QuizOptionCount)
	assert.Nil(t, q.UserAnswer)
	assert.Nil(t, q.Correct)
}

func TestNewQuestionValidation(t *testing.T) {
	tests := []struct {
		name    string
		studyID int64
		prompt  string
		options []string
		correct string
		wantErr error
	}{
		{"missing study", 0, "p", validOptions(), "A) mitocôndria", ErrEmptyQuestionStudyID},
		{"missing prompt", 1, "", validOptions(), "A) mitocôndria", ErrEmptyQuestionPrompt},
		{"no options", 1, "p", nil, "x", ErrEmptyQuestionOptions},
		{"three options", 1, "p", []string{"a", "b", "c"}, "a", ErrWrongQuestionOptions},
		{"five options", 1, "p", []string{"a", "b", "c", "d", "e"}, "a", ErrWrongQuestionOptions},
		{"correct not an option", 1, "p", validOptions(), "E) vacúolo", ErrCorrectAnswerNotOption},
		// Membership is byte-exact, close is not enough.
		{"correct differs by case", 1, "p", validOptions(), "a) mitocôndria", ErrCorrectAnswerNotOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestion(tt.studyID, tt.prompt, tt.options, tt.correct)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuestionAnswer(t *testing.T) {
	q, err := NewQuestion(1, "p", validOptions(), "B) ribossomo")
	require.NoError(t, err)

	q.Answer("B) ribossomo")
	require.NotNil(t, q.Correct)
	assert.True(t, *q.Correct)

	// Last write wins: a second, different answer overwrites the result.
	q.Answer("C) núcleo")
	require.NotNil(t, q.UserAnswer)
	assert.Equal(t, "C) núcleo", *q.UserAnswer)
	assert.False(t, *q.Correct)
}

func TestQuestionAnswerTrimsWhitespace(t *testing.T) {
	q, err := NewQuestion(1, "p", validOptions(), "B) ribossomo")
	require.NoError(t, err)

	q.Answer("  B) ribossomo ")
	require.NotNil(t, q.Correct)
	assert.True(t, *q.Correct)
}

func TestDerivedCounts(t *testing.T) {
	questions := make([]*Question, 0, 3)
	for i := 0; i < 3; i++ {
		q, err := NewQuestion(1, "p", validOptions(), "C) núcleo")
		require.NoError(t, err)
		questions = append(questions, q)
	}

	assert.Equal(t, 0, AnsweredCount(questions))
	assert.Equal(t, 0, CorrectCount(questions))
	assert.False(t, AllAnswered(questions))

	questions[0].Answer("C) núcleo")
	questions[1].Answer("A) mitocôndria")

	assert.Equal(t, 2, AnsweredCount(questions))
	assert.Equal(t, 1, CorrectCount(questions))
	assert.False(t, AllAnswered(questions))

	questions[2].Answer("C) núcleo")
	assert.True(t, AllAnswered(questions))
	assert.Equal(t, 2, CorrectCount(questions))
}

func TestAllAnsweredEmpty(t *testing.T) {
	assert.False(t, AllAnswered(nil))
}
