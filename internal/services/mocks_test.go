package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of repositories.Repository
type MockRepository struct {
	mock.Mock
	exams   *MockExamRepository
	results *MockResultRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		exams:   &MockExamRepository{},
		results: &MockResultRepository{},
	}
}

func (m *MockRepository) Exam() repositories.ExamRepository     { return m.exams }
func (m *MockRepository) Result() repositories.ResultRepository { return m.results }

func (m *MockRepository) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockExamRepository is a mock implementation of ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Save(ctx context.Context, exam *models.ExamDefinition) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) GetByID(ctx context.Context, id string) (*models.ExamDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamDefinition), args.Error(1)
}

func (m *MockExamRepository) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.ExamDefinition, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.ExamDefinition), args.Get(1).(int64), args.Error(2)
}

func (m *MockExamRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *models.ScoredResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) CreateBatch(ctx context.Context, results []*models.ScoredResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockResultRepository) GetByID(ctx context.Context, id string) (*models.ScoredResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoredResult), args.Error(1)
}

func (m *MockResultRepository) List(ctx context.Context, filters repositories.ResultFilters) ([]models.ScoredResult, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.ScoredResult), args.Get(1).(int64), args.Error(2)
}

// MockCache is a mock implementation of cache.CacheService. Get copies the
// configured value into dest through JSON, like the redis implementation.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	if err := args.Error(1); err != nil {
		return err
	}
	data, err := json.Marshal(args.Get(0))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}
