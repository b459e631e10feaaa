package events

import (
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/google/uuid"
)

// EventType represents different types of grading events
type EventType string

const (
	EventExamImported EventType = "exam.imported"
	EventResultScored EventType = "result.scored"
)

const (
	eventSource  = "exam-grading-service"
	eventVersion = "1.0"
)

// GradingEvent is the envelope for all published events
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	// Key orders events on the wire; it is the exam ID
	Key string `json:"-"`
}

type ExamImportedEvent struct {
	ExamID        string `json:"exam_id"`
	ExamTitle     string `json:"exam_title"`
	QuestionCount int    `json:"question_count"`
	TotalMarks    int    `json:"total_marks"`
	Skipped       int    `json:"skipped"`
}

type ResultScoredEvent struct {
	ResultID     string `json:"result_id"`
	ExamID       string `json:"exam_id"`
	ExamTitle    string `json:"exam_title"`
	StudentRef   string `json:"student_ref"`
	StudentName  string `json:"student_name,omitempty"`
	Score        int    `json:"score"`
	Total        int    `json:"total"`
	Percentage   int    `json:"percentage"`
	Grade        string `json:"grade"`
	Passed       bool   `json:"passed"`
	TimeSpentSec int    `json:"time_spent_seconds"`
}

// NewGradingEvent creates an event with a fresh ID and the current time
func NewGradingEvent(eventType EventType, key string, data interface{}) *GradingEvent {
	return &GradingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
		Key:       key,
	}
}

// WithMetadata adds metadata to the event
func (e *GradingEvent) WithMetadata(key string, value interface{}) *GradingEvent {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func NewExamImportedEvent(exam *models.ExamDefinition, skipped int) *GradingEvent {
	return NewGradingEvent(EventExamImported, exam.ID, ExamImportedEvent{
		ExamID:        exam.ID,
		ExamTitle:     exam.Title,
		QuestionCount: exam.QuestionCount(),
		TotalMarks:    exam.TotalMarks,
		Skipped:       skipped,
	})
}

func NewResultScoredEvent(result *models.ScoredResult) *GradingEvent {
	return NewGradingEvent(EventResultScored, result.ExamRef, ResultScoredEvent{
		ResultID:     result.ID,
		ExamID:       result.ExamRef,
		ExamTitle:    result.ExamTitle,
		StudentRef:   result.StudentRef,
		StudentName:  result.StudentName,
		Score:        result.Score,
		Total:        result.TotalQuestions,
		Percentage:   result.Percentage,
		Grade:        result.Grade,
		Passed:       result.Passed,
		TimeSpentSec: result.TimeSpentSeconds,
	}).WithMetadata("subject", result.Subject)
}
