package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e *ExamPostgreSQL) Save(ctx context.Context, exam *models.ExamDefinition) error {
	record, err := toExamRecord(exam)
	if err != nil {
		return err
	}

	return e.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "subject", "question_count", "total_marks", "payload", "assembled_at", "updated_at"}),
		}).
		Create(record).Error
}

func (e *ExamPostgreSQL) GetByID(ctx context.Context, id string) (*models.ExamDefinition, error) {
	var record ExamRecord
	if err := e.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return record.toModel()
}

func (e *ExamPostgreSQL) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.ExamDefinition, int64, error) {
	var records []ExamRecord
	var total int64

	query := e.db.WithContext(ctx).Model(&ExamRecord{})
	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filters.Limit, filters.Offset).Order("created_at DESC")
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	exams := make([]*models.ExamDefinition, 0, len(records))
	for i := range records {
		exam, err := records[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		exams = append(exams, exam)
	}
	return exams, total, nil
}

func (e *ExamPostgreSQL) Delete(ctx context.Context, id string) error {
	result := e.db.WithContext(ctx).Delete(&ExamRecord{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete exam %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
