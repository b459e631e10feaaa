package repositories

import (
	"context"
	"errors"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ===== SHARED FILTER STRUCTS =====

type ExamFilters struct {
	Subject string `json:"subject"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

type ResultFilters struct {
	ExamID     string `json:"exam_id"`
	StudentRef string `json:"student_ref"`
	Subject    string `json:"subject"`
	Passed     *bool  `json:"passed"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sort_by"`    // "submitted_at", "percentage", "student_name"
	SortOrder  string `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

type ExamRepository interface {
	// Save inserts the exam or replaces a stored exam with the same ID
	Save(ctx context.Context, exam *models.ExamDefinition) error
	GetByID(ctx context.Context, id string) (*models.ExamDefinition, error)
	List(ctx context.Context, filters ExamFilters) ([]*models.ExamDefinition, int64, error)
	Delete(ctx context.Context, id string) error
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.ScoredResult) error
	CreateBatch(ctx context.Context, results []*models.ScoredResult) error
	GetByID(ctx context.Context, id string) (*models.ScoredResult, error)
	List(ctx context.Context, filters ResultFilters) ([]models.ScoredResult, int64, error)
}

// Repository groups the stores used by the services
type Repository interface {
	Exam() ExamRepository
	Result() ResultRepository
	Migrate(ctx context.Context) error
}
