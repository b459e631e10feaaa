package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"gorm.io/datatypes"
)

// ExamRecord stores an assembled exam. The full definition lives in Payload;
// the other columns exist for filtering and listing.
type ExamRecord struct {
	ID            string         `gorm:"primaryKey;size:64"`
	Title         string         `gorm:"not null;size:200"`
	Subject       string         `gorm:"size:100;index"`
	QuestionCount int            `gorm:"not null"`
	TotalMarks    int            `gorm:"not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	AssembledAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ExamRecord) TableName() string { return "exams" }

// ResultRecord stores one scored submission, outcomes included in Payload
type ResultRecord struct {
	ID          string         `gorm:"primaryKey;size:64"`
	ExamID      string         `gorm:"not null;size:64;index"`
	StudentRef  string         `gorm:"not null;size:100;index"`
	StudentName string         `gorm:"size:200"`
	Subject     string         `gorm:"size:100;index"`
	Percentage  int            `gorm:"not null"`
	Passed      bool           `gorm:"not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	SubmittedAt time.Time      `gorm:"index"`
	CreatedAt   time.Time
}

func (ResultRecord) TableName() string { return "scored_results" }

func toExamRecord(exam *models.ExamDefinition) (*ExamRecord, error) {
	payload, err := json.Marshal(exam)
	if err != nil {
		return nil, fmt.Errorf("failed to encode exam %s: %w", exam.ID, err)
	}

	return &ExamRecord{
		ID:            exam.ID,
		Title:         exam.Title,
		Subject:       exam.Subject,
		QuestionCount: exam.QuestionCount(),
		TotalMarks:    exam.TotalMarks,
		Payload:       datatypes.JSON(payload),
		AssembledAt:   exam.AssembledAt,
	}, nil
}

func (r *ExamRecord) toModel() (*models.ExamDefinition, error) {
	var exam models.ExamDefinition
	if err := json.Unmarshal(r.Payload, &exam); err != nil {
		return nil, fmt.Errorf("failed to decode exam %s: %w", r.ID, err)
	}
	return &exam, nil
}

func toResultRecord(result *models.ScoredResult) (*ResultRecord, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result %s: %w", result.ID, err)
	}

	return &ResultRecord{
		ID:          result.ID,
		ExamID:      result.ExamRef,
		StudentRef:  result.StudentRef,
		StudentName: result.StudentName,
		Subject:     result.Subject,
		Percentage:  result.Percentage,
		Passed:      result.Passed,
		Payload:     datatypes.JSON(payload),
		SubmittedAt: result.SubmittedAt,
	}, nil
}

func (r *ResultRecord) toModel() (models.ScoredResult, error) {
	var result models.ScoredResult
	if err := json.Unmarshal(r.Payload, &result); err != nil {
		return result, fmt.Errorf("failed to decode result %s: %w", r.ID, err)
	}
	return result, nil
}
