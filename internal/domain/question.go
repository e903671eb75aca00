package domain

import (
	"errors"
	"strings"
)

// Quiz shape invariants. Keeping the counts fixed makes grading and the
// dashboard deterministic.
const (
	QuizQuestionCount = 5
	QuizOptionCount   = 4
)

// Common validation errors for Question
var (
	ErrEmptyQuestionPrompt    = errors.New("question prompt cannot be empty")
	ErrEmptyQuestionOptions   = errors.New("question options cannot be empty")
	ErrWrongQuestionOptions   = errors.New("question must have exactly four options")
	ErrCorrectAnswerNotOption = errors.New("correct answer must match one of the options")
	ErrEmptyQuestionStudyID   = errors.New("question study ID cannot be empty")
)

// Question is one multiple-choice item belonging to a Study. The user's
// answer and the correctness flag are nullable until the study is graded.
type Question struct {
	ID            int64    `json:"id"`
	StudyID       int64    `json:"estudo_id"`
	Prompt        string   `json:"pergunta"`
	Options       []string `json:"opcoes"`
	CorrectAnswer string   `json:"resposta_correta"`
	UserAnswer    *string  `json:"resposta_usuario,omitempty"`
	Correct       *bool    `json:"correta,omitempty"`
}

// NewQuestion creates a Question for the given study. Returns an error if
// the options list does not hold the fixed option count or the correct
// answer is not a member of it.
func NewQuestion(studyID int64, prompt string, options []string, correctAnswer string) (*Question, error) {
	q := &Question{
		StudyID:       studyID,
		Prompt:        prompt,
		Options:       options,
		CorrectAnswer: correctAnswer,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks the Question invariants: an owning study, non-empty
// prompt, exactly four options, and a correct answer byte-identical to
// one of them.
func (q *Question) Validate() error {
	if q.StudyID <= 0 {
		return ErrEmptyQuestionStudyID
	}

	return q.ValidateContent()
}

// ValidateContent checks the content invariants alone, without requiring
// an owning study. Generation validates freshly produced questions with it
// before they are attached to a study.
func (q *Question) ValidateContent() error {
	if q.Prompt == "" {
		return ErrEmptyQuestionPrompt
	}

	if len(q.Options) == 0 {
		return ErrEmptyQuestionOptions
	}

	if len(q.Options) != QuizOptionCount {
		return ErrWrongQuestionOptions
	}

	if !containsOption(q.Options, q.CorrectAnswer) {
		return ErrCorrectAnswerNotOption
	}

	return nil
}

// Answer records a user-submitted answer and derives the correctness flag.
// Calling it again overwrites the previous result (last write wins).
func (q *Question) Answer(submitted string) {
	answer := submitted
	q.UserAnswer = &answer

	correct := strings.TrimSpace(submitted) == strings.TrimSpace(q.CorrectAnswer)
	q.Correct = &correct
}

// containsOption reports whether value is byte-identical to an option.
func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// AnsweredCount returns how many questions carry a user answer. It is a
// pure function over a materialized question collection so the lifecycle
// invariants stay checkable without a backing store.
func AnsweredCount(questions []*Question) int {
	count := 0
	for _, q := range questions {
		if q.UserAnswer != nil {
			count++
		}
	}
	return count
}

// CorrectCount returns how many questions were answered correctly.
func CorrectCount(questions []*Question) int {
	count := 0
	for _, q := range questions {
		if q.Correct != nil && *q.Correct {
			count++
		}
	}
	return count
}

// AllAnswered reports whether every question in the collection has been
// answered at least once.
func AllAnswered(questions []*Question) bool {
	if len(questions) == 0 {
		return false
	}
	return AnsweredCount(questions) == len(questions)
}
