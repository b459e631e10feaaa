package services

import (
	"context"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
)

// ===== REQUEST TYPES =====

// ExamMetaRequest carries the author-supplied exam metadata
type ExamMetaRequest struct {
	Title             string `json:"title" validate:"required,not_blank,max=200"`
	Description       string `json:"description" validate:"max=1000"`
	Subject           string `json:"subject" validate:"max=100"`
	TimeLimitSeconds  int    `json:"time_limit_seconds" validate:"gte=0"`
	PassingPercentage *int   `json:"passing_percentage" validate:"omitempty,gte=0,lte=100"`
}

func (r ExamMetaRequest) toMeta(id string) models.ExamMeta {
	return models.ExamMeta{
		ID:                id,
		Title:             r.Title,
		Description:       r.Description,
		Subject:           r.Subject,
		TimeLimitSeconds:  r.TimeLimitSeconds,
		PassingPercentage: r.PassingPercentage,
	}
}

// ImportAikenRequest creates an exam from AIKEN text
type ImportAikenRequest struct {
	ExamMetaRequest
	Content string `json:"content" validate:"required"`
}

// SaveExamRequest creates or replaces an exam from edited questions
type SaveExamRequest struct {
	ExamMetaRequest
	Questions []models.Question `json:"questions" validate:"required,min=1"`
}

// StatisticsFilters selects the results a statistics query covers
type StatisticsFilters struct {
	ExamID     string `json:"exam_id" form:"exam_id"`
	Subject    string `json:"subject" form:"subject"`
	StudentRef string `json:"student_ref" form:"student_ref"`
}

// ===== SERVICE INTERFACES =====

type ExamService interface {
	ImportAiken(ctx context.Context, req *ImportAikenRequest) (*models.ImportSummary, error)
	Create(ctx context.Context, req *SaveExamRequest) (*models.ExamDefinition, error)
	// Update re-assembles the exam and replaces the stored definition
	Update(ctx context.Context, id string, req *SaveExamRequest) (*models.ExamDefinition, error)
	GetByID(ctx context.Context, id string) (*models.ExamDefinition, error)
	List(ctx context.Context, filters repositories.ExamFilters) ([]*models.ExamDefinition, int64, error)
	Delete(ctx context.Context, id string) error
}

type GradingService interface {
	Submit(ctx context.Context, examID string, sub *models.Submission) (*models.ScoredResult, error)
	SubmitBatch(ctx context.Context, examID string, subs []models.Submission) ([]*models.ScoredResult, error)
	GetResult(ctx context.Context, id string) (*models.ScoredResult, error)
	ListResults(ctx context.Context, filters repositories.ResultFilters) ([]models.ScoredResult, int64, error)
	ExamStatistics(ctx context.Context, examID string) (*models.Statistics, error)
	Statistics(ctx context.Context, filters StatisticsFilters) (*models.Statistics, error)
	ExportResults(ctx context.Context, examID string, format models.ExportFormat) ([]byte, error)
}

type ServiceManager interface {
	Exam() ExamService
	Grading() GradingService
}
