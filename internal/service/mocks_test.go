package service

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

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

func (m *mockStudyStore) WithTx(tx *sql.Tx) store.StudyStore { return m }

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListByStudy(ctx context.Context, studyID int64) ([]*domain.Question, error) {
	args := m.Called(ctx, studyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *mockQuestionStore) SaveAnswers(ctx context.Context, questions []*domain.Question) error {
	return m.Called(ctx, questions).Error(0)
}

func (m *mockQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore { return m }

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

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

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, task queue.Task) error {
	return m.Called(ctx, task).Error(0)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}
