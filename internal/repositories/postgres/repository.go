package postgres

import (
	"context"
	"fmt"

	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	exam   repositories.ExamRepository
	result repositories.ResultRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:     db,
		exam:   NewExamPostgreSQL(db),
		result: NewResultPostgreSQL(db),
	}
}

func (r *Repository) Exam() repositories.ExamRepository     { return r.exam }
func (r *Repository) Result() repositories.ResultRepository { return r.result }

// Migrate creates or updates the exams and scored_results tables
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&ExamRecord{}, &ResultRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
