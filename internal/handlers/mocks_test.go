package handlers

import (
	"context"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/cheruab/dreamacademyScM-sub002/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockServiceManager struct {
	exam    *MockExamService
	grading *MockGradingService
}

func (m *MockServiceManager) Exam() services.ExamService       { return m.exam }
func (m *MockServiceManager) Grading() services.GradingService { return m.grading }

type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) ImportAiken(ctx context.Context, req *services.ImportAikenRequest) (*models.ImportSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportSummary), args.Error(1)
}

func (m *MockExamService) Create(ctx context.Context, req *services.SaveExamRequest) (*models.ExamDefinition, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamDefinition), args.Error(1)
}

func (m *MockExamService) Update(ctx context.Context, id string, req *services.SaveExamRequest) (*models.ExamDefinition, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamDefinition), args.Error(1)
}

func (m *MockExamService) GetByID(ctx context.Context, id string) (*models.ExamDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamDefinition), args.Error(1)
}

func (m *MockExamService) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.ExamDefinition, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.ExamDefinition), args.Get(1).(int64), args.Error(2)
}

func (m *MockExamService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGradingService struct {
	mock.Mock
}

func (m *MockGradingService) Submit(ctx context.Context, examID string, sub *models.Submission) (*models.ScoredResult, error) {
	args := m.Called(ctx, examID, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoredResult), args.Error(1)
}

func (m *MockGradingService) SubmitBatch(ctx context.Context, examID string, subs []models.Submission) ([]*models.ScoredResult, error) {
	args := m.Called(ctx, examID, subs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScoredResult), args.Error(1)
}

func (m *MockGradingService) GetResult(ctx context.Context, id string) (*models.ScoredResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoredResult), args.Error(1)
}

func (m *MockGradingService) ListResults(ctx context.Context, filters repositories.ResultFilters) ([]models.ScoredResult, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.ScoredResult), args.Get(1).(int64), args.Error(2)
}

func (m *MockGradingService) ExamStatistics(ctx context.Context, examID string) (*models.Statistics, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statistics), args.Error(1)
}

func (m *MockGradingService) Statistics(ctx context.Context, filters services.StatisticsFilters) (*models.Statistics, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statistics), args.Error(1)
}

func (m *MockGradingService) ExportResults(ctx context.Context, examID string, format models.ExportFormat) ([]byte, error) {
	args := m.Called(ctx, examID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
