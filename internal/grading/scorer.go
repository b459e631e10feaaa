// Package grading assembles exams, scores submissions against them and
// aggregates the results. Every type here is safe for concurrent use.
package grading

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/answerkey"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const DefaultBatchConcurrency = 8

// Scorer grades submissions. Its configuration is fixed at construction.
type Scorer struct {
	scale       []models.GradeRange
	concurrency int
	now         func() time.Time
	logger      *slog.Logger
}

type ScorerOption func(*Scorer)

// WithGradeScale replaces the default letter grade thresholds. Ranges may be
// given in any order; a percentage below every range gets models.FailingGrade.
func WithGradeScale(scale []models.GradeRange) ScorerOption {
	return func(s *Scorer) {
		sorted := append([]models.GradeRange(nil), scale...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinPercentage > sorted[j].MinPercentage
		})
		s.scale = sorted
	}
}

// WithBatchConcurrency limits how many submissions ScoreBatch grades at once
func WithBatchConcurrency(n int) ScorerOption {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithScorerClock(now func() time.Time) ScorerOption {
	return func(s *Scorer) { s.now = now }
}

func WithScorerLogger(logger *slog.Logger) ScorerOption {
	return func(s *Scorer) { s.logger = logger }
}

func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		scale:       models.DefaultGradeScale,
		concurrency: DefaultBatchConcurrency,
		now:         time.Now,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score grades one submission. Missing, unknown or malformed answers count as
// incorrect; scoring itself never fails.
func (s *Scorer) Score(exam *models.ExamDefinition, sub models.Submission) *models.ScoredResult {
	result := &models.ScoredResult{
		ID:               uuid.NewString(),
		StudentRef:       sub.StudentRef,
		StudentName:      sub.StudentName,
		RollNumber:       sub.RollNumber,
		ExamRef:          exam.ID,
		ExamTitle:        exam.Title,
		Subject:          exam.Subject,
		Outcomes:         make([]models.QuestionOutcome, 0, len(exam.Questions)),
		TotalQuestions:   len(exam.Questions),
		TotalMarks:       exam.TotalMarks,
		TimeSpentSeconds: max(sub.TimeSpentSeconds, 0),
		SubmittedAt:      sub.SubmittedAt,
	}
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = s.now().UTC()
	}

	for _, q := range exam.Questions {
		outcome := models.QuestionOutcome{
			QuestionID:    q.ID,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
		}

		if token, ok := sub.Answers[q.ID]; ok {
			answer := token
			outcome.UserAnswer = &answer
			outcome.IsCorrect = s.matches(q, token)
		}

		if outcome.IsCorrect {
			outcome.MarksObtained = q.Marks
			result.Score++
			result.TotalMarksObtained += q.Marks
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if exam.TotalMarks <= 0 {
		s.logger.Warn("Exam has no marks, reporting 0 percent",
			"exam_id", exam.ID,
			"student_ref", sub.StudentRef)
	}
	result.Percentage = percentOf(result.TotalMarksObtained, exam.TotalMarks)
	result.Grade = s.GradeFor(result.Percentage)
	result.Passed = result.Percentage >= exam.PassingPercentage

	return result
}

func (s *Scorer) matches(q models.Question, token string) bool {
	got, err := answerkey.Normalize(token)
	if err != nil {
		s.logger.Debug("Unreadable answer token counted as incorrect",
			"question_id", q.ID,
			"token", token)
		return false
	}
	want, err := answerkey.Normalize(q.CorrectAnswer)
	if err != nil {
		s.logger.Error("Question has an unreadable answer key",
			"question_id", q.ID,
			"correct_answer", q.CorrectAnswer)
		return false
	}
	return got == want
}

// GradeFor maps a percentage to a letter grade using the configured scale
func (s *Scorer) GradeFor(percentage int) string {
	for _, r := range s.scale {
		if percentage >= r.MinPercentage {
			return r.Grade
		}
	}
	return models.FailingGrade
}

// ScoreBatch grades submissions concurrently. Results are in input order.
// It stops early and returns ctx's error when ctx is cancelled.
func (s *Scorer) ScoreBatch(ctx context.Context, exam *models.ExamDefinition, subs []models.Submission) ([]*models.ScoredResult, error) {
	results := make([]*models.ScoredResult, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range subs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Score(exam, subs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score batch: %w", err)
	}

	s.logger.Debug("Batch scored",
		"exam_id", exam.ID,
		"submissions", len(subs))

	return results, nil
}
