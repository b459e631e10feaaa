package postgres

import (
	"context"
	"errors"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

var resultSortColumns = map[string]string{
	"submitted_at": "submitted_at",
	"percentage":   "percentage",
	"student_name": "student_name",
}

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.ScoredResult) error {
	record, err := toResultRecord(result)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateBatch inserts all results in one transaction
func (r *ResultPostgreSQL) CreateBatch(ctx context.Context, results []*models.ScoredResult) error {
	if len(results) == 0 {
		return nil
	}

	records := make([]*ResultRecord, 0, len(results))
	for _, result := range results {
		record, err := toResultRecord(result)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(records, 100).Error
	})
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, id string) (*models.ScoredResult, error) {
	var record ResultRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	result, err := record.toModel()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) List(ctx context.Context, filters repositories.ResultFilters) ([]models.ScoredResult, int64, error) {
	var records []ResultRecord
	var total int64

	// apply filter first
	query := r.db.WithContext(ctx).Model(&ResultRecord{})
	query = applyResultFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = applyPagination(query, filters.Limit, filters.Offset)
	query = query.Order(resultOrder(filters.SortBy, filters.SortOrder))

	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	results := make([]models.ScoredResult, 0, len(records))
	for i := range records {
		result, err := records[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		results = append(results, result)
	}
	return results, total, nil
}

func applyResultFilters(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	if filters.ExamID != "" {
		query = query.Where("exam_id = ?", filters.ExamID)
	}
	if filters.StudentRef != "" {
		query = query.Where("student_ref = ?", filters.StudentRef)
	}
	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}
	if filters.Passed != nil {
		query = query.Where("passed = ?", *filters.Passed)
	}
	return query
}

// resultOrder builds an ORDER BY clause from whitelisted columns only
func resultOrder(sortBy, sortOrder string) string {
	column, ok := resultSortColumns[sortBy]
	if !ok {
		column = "submitted_at"
	}
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC"
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	return query.Limit(normalizeLimit(limit)).Offset(max(offset, 0))
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}
