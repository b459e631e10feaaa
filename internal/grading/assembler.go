package grading

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/validator"
	"github.com/google/uuid"
)

const (
	MinTimeLimitSeconds      = 60
	DefaultPassingPercentage = 60
)

// Assembler turns exam metadata and a question list into an ExamDefinition
type Assembler struct {
	validator      *validator.Validator
	defaultPassing int
	now            func() time.Time
	logger         *slog.Logger
}

type AssemblerOption func(*Assembler)

// WithDefaultPassing sets the passing percentage used when the metadata leaves it unset
func WithDefaultPassing(percentage int) AssemblerOption {
	return func(a *Assembler) { a.defaultPassing = clamp(percentage, 0, 100) }
}

func WithAssemblerClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

func WithAssemblerLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) { a.logger = logger }
}

func NewAssembler(v *validator.Validator, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		validator:      v,
		defaultPassing: DefaultPassingPercentage,
		now:            time.Now,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Assemble validates and normalizes the inputs. The caller's slice is copied,
// never modified, and the returned definition must be treated as read-only.
func (a *Assembler) Assemble(meta models.ExamMeta, questions []models.Question) (*models.ExamDefinition, error) {
	if len(questions) == 0 {
		return nil, apperrors.ErrNoQuestions
	}
	if strings.TrimSpace(meta.Title) == "" {
		return nil, apperrors.ErrMissingTitle
	}
	if err := a.validator.Validate(&meta); err != nil {
		return nil, err
	}

	normalized := make([]models.Question, len(questions))
	totalMarks := 0
	for i, q := range questions {
		q = q.Clone()
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = fmt.Sprintf("Q%d", i+1)
		}
		if q.Marks <= 0 {
			q.Marks = 1
		}
		normalized[i] = q
		totalMarks += q.Marks
	}

	if errs := a.validator.Question().ValidateBatch(normalized); len(errs) > 0 {
		return nil, errs
	}

	passing := a.defaultPassing
	if meta.PassingPercentage != nil {
		passing = clamp(*meta.PassingPercentage, 0, 100)
	}

	id := strings.TrimSpace(meta.ID)
	if id == "" {
		id = uuid.NewString()
	}

	exam := &models.ExamDefinition{
		ID:                id,
		Title:             strings.TrimSpace(meta.Title),
		Description:       meta.Description,
		Subject:           meta.Subject,
		TimeLimitSeconds:  max(meta.TimeLimitSeconds, MinTimeLimitSeconds),
		PassingPercentage: passing,
		Questions:         normalized,
		TotalMarks:        totalMarks,
		AssembledAt:       a.now().UTC(),
	}

	a.logger.Debug("Exam assembled",
		"exam_id", exam.ID,
		"questions", exam.QuestionCount(),
		"total_marks", exam.TotalMarks)

	return exam, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
