package worker

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/queue"
	"github.com/estudai/estudai-api/internal/store"
)

type mockStudyStore struct {
	mock.Mock
}

func (m *mockStudyStore) Create(ctx context.Context, study *domain.Study) error {
	return m.Called(ctx, study).Error(0)
}

func (m *mockStudyStore) GetByID(ctx context.Context, id int64) (*domain.Study, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Study), args.Error(1)
}

func (m *mockStudyStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Study, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Study), args.Error(1)
}

func (m *mockStudyStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStudyStore) Complete(ctx context.Context, id int64, summary string, questions []*domain.Question) error {
	return m.Called(ctx, id, summary, questions).Error(0)
}

func (m *mockStudyStore) Fail(ctx context.Context, id int64, diagnostic string) error {
	return m.Called(ctx, id, diagnostic).Error(0)
}

func (m *mockStudyStore) WithTx(tx *sql.Tx) store.StudyStore {
	return m
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Save(ctx context.Context, key string, data []byte) (string, error) {
	args := m.Called(ctx, key, data)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(filename string, data []byte) (string, error) {
	args := m.Called(filename, data)
	return args.String(0), args.Error(1)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) GenerateQuiz(ctx context.Context, text string) ([]domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func sampleQuiz() []domain.Question {
	quiz := make([]domain.Question, domain.QuizQuestionCount)
	for i := range quiz {
		quiz[i] = domain.Question{
			Prompt:        "pergunta",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
		}
	}
	return quiz
}

func newTestProcessor() (*Processor, *mockStudyStore, *mockStorage, *mockExtractor, *mockGenerator) {
	studies := new(mockStudyStore)
	files := new(mockStorage)
	extractor := new(mockExtractor)
	generator := new(mockGenerator)
	return NewProcessor(studies, files, extractor, generator, nil), studies, files, extractor, generator
}

func TestProcessHappyPath(t *testing.T) {
	processor, studies, files, extractor, generator := newTestProcessor()
	ctx := context.Background()
	task := queue.Task{EstudoID: 10, Filename: "doc.pdf", UserID: 1}

	files.On("Load", ctx, "doc.pdf").Return([]byte("raw"), nil)
	extractor.On("Extract", "doc.pdf", []byte("raw")).Return("texto extraído", nil)
	generator.On("Summarize", mock.Anything, "texto extraído").Return("resumo", nil)
	generator.On("GenerateQuiz", mock.Anything, "texto extraído").Return(sampleQuiz(), nil)
	studies.On("Complete", mock.Anything, int64(10), "resumo",
		mock.MatchedBy(func(qs []*domain.Question) bool {
			if len(qs) != domain.QuizQuestionCount {
				return false
			}
			for _, q := range qs {
				if q.StudyID != 10 {
					return false
				}
			}
			return true
		})).Return(nil)

	require.NoError(t, processor.Process(ctx, task))
	studies.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestProcessFailsWhenFileMissing(t *testing.T) {
	processor, studies, files, _, _ := newTestProcessor()
	ctx := context.Background()
	task := queue.Task{EstudoID: 11, Filename: "gone.pdf", UserID: 1}

	files.On("Load", ctx, "gone.pdf").Return(nil, errors.New("not found"))
	studies.On("Fail", mock.Anything, int64(11), mock.MatchedBy(func(diag string) bool {
		return diag != ""
	})).Return(nil)

	err := processor.Process(ctx, task)
	assert.Error(t, err)
	studies.AssertExpectations(t)
	studies.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessFailsOnEmptyText(t *testing.T) {
	processor, studies, files, extractor, _ := newTestProcessor()
	ctx := context.Background()
	task := queue.Task{EstudoID: 12, Filename: "vazio.txt", UserID: 1}

	files.On("Load", ctx, "vazio.txt").Return([]byte{}, nil)
	extractor.On("Extract", "vazio.txt", []byte{}).Return("", nil)
	studies.On("Fail", mock.Anything, int64(12), mock.Anything).Return(nil)

	err := processor.Process(ctx, task)
	assert.Error(t, err)
	studies.AssertExpectations(t)
}

func TestProcessFailsWhenSummaryErrors(t *testing.T) {
	processor, studies, files, extractor, generator := newTestProcessor()
	ctx := context.Background()
	task := queue.Task{EstudoID: 13, Filename: "doc.txt", UserID: 1}

	files.On("Load", ctx, "doc.txt").Return([]byte("raw"), nil)
	extractor.On("Extract", "doc.txt", []byte("raw")).Return("texto", nil)
	generator.On("Summarize", mock.Anything, "texto").Return("", errors.New("api down"))
	studies.On("Fail", mock.Anything, int64(13), mock.MatchedBy(func(diag string) bool {
		return diag != ""
	})).Return(nil)

	err := processor.Process(ctx, task)
	assert.Error(t, err)
	generator.AssertNotCalled(t, "GenerateQuiz", mock.Anything, mock.Anything)
	studies.AssertExpectations(t)
}

func TestProcessFailsWhenQuizErrors(t *testing.T) {
	processor, studies, files, extractor, generator := newTestProcessor()
	ctx := context.Background()
	task := queue.Task{EstudoID: 14, Filename: "doc.txt", UserID: 1}

	files.On("Load", ctx, "doc.txt").Return([]byte("raw"), nil)
	extractor.On("Extract", "doc.txt", []byte("raw")).Return("texto", nil)
	generator.On("Summarize", mock.Anything, "texto").Return("resumo", nil)
	generator.On("GenerateQuiz", mock.Anything, "texto").Return(nil, errors.New("schema"))
	studies.On("Fail", mock.Anything, int64(14), mock.Anything).Return(nil)

	err := processor.Process(ctx, task)
	assert.Error(t, err)
	studies.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	studies.AssertExpectations(t)
}

func TestProcessReturnsPipelineErrorWhenFailRecordingFails(t *testing.T) {
	processor, studies, files, _, _ := newTestProcessor()
	ctx := context.Background()
	task := queue.Task{EstudoID: 15, Filename: "doc.txt", UserID: 1}

	cause := errors.New("boom")
	files.On("Load", ctx, "doc.txt").Return(nil, cause)
	studies.On("Fail", mock.Anything, int64(15), mock.Anything).Return(errors.New("db down"))

	err := processor.Process(ctx, task)
	assert.ErrorIs(t, err, cause)
}
