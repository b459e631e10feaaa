package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/aiken"
	"github.com/cheruab/dreamacademyScM-sub002/internal/cache"
	"github.com/cheruab/dreamacademyScM-sub002/internal/events"
	"github.com/cheruab/dreamacademyScM-sub002/internal/grading"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/cheruab/dreamacademyScM-sub002/internal/validator"
)

type examService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	parser    *aiken.Parser
	assembler *grading.Assembler
	validator *validator.Validator
	cacheTTL  time.Duration
	logger    *slog.Logger
	ops       *ServiceLogger
}

// NewExamService creates the exam authoring service. cacheService may be nil.
func NewExamService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	parser *aiken.Parser,
	assembler *grading.Assembler,
	validator *validator.Validator,
	cacheTTL time.Duration,
	logger *slog.Logger,
) ExamService {
	return &examService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		parser:    parser,
		assembler: assembler,
		validator: validator,
		cacheTTL:  cacheTTL,
		logger:    logger,
		ops:       NewServiceLogger(logger, "exam"),
	}
}

// ===== AUTHORING =====

func (s *examService) ImportAiken(ctx context.Context, req *ImportAikenRequest) (summary *models.ImportSummary, err error) {
	op := s.ops.WithOperation(ctx, "import_aiken")
	defer func() {
		id := ""
		if summary != nil {
			id = summary.Exam.ID
		}
		op.LogResult(id, "exam", err)
	}()

	start := time.Now()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	parsed, err := s.parser.Parse(req.Content)
	if err != nil {
		return nil, err
	}

	exam, err := s.assembler.Assemble(req.toMeta(""), parsed.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Exam().Save(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to save exam: %w", err)
	}

	s.publish(ctx, events.NewExamImportedEvent(exam, parsed.Skipped))

	return &models.ImportSummary{
		Exam:           exam,
		Accepted:       parsed.Accepted,
		Skipped:        parsed.Skipped,
		SkipReasons:    parsed.SkipReasons,
		ProcessingTime: time.Since(start),
	}, nil
}

func (s *examService) Create(ctx context.Context, req *SaveExamRequest) (exam *models.ExamDefinition, err error) {
	op := s.ops.WithOperation(ctx, "create_exam")
	defer func() { op.LogResult(examID(exam), "exam", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exam, err = s.assembler.Assemble(req.toMeta(""), req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Exam().Save(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to save exam: %w", err)
	}

	s.publish(ctx, events.NewExamImportedEvent(exam, 0))
	return exam, nil
}

func (s *examService) Update(ctx context.Context, id string, req *SaveExamRequest) (exam *models.ExamDefinition, err error) {
	op := s.ops.WithOperation(ctx, "update_exam")
	defer func() { op.LogResult(id, "exam", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Exam().GetByID(ctx, id); err != nil {
		return nil, s.mapNotFound(err, id)
	}

	exam, err = s.assembler.Assemble(req.toMeta(id), req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Exam().Save(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to save exam: %w", err)
	}

	s.invalidate(ctx, id)
	return exam, nil
}

// ===== QUERIES =====

// GetByID returns the exam, served from cache when possible. Callers must not
// modify the returned definition.
func (s *examService) GetByID(ctx context.Context, id string) (*models.ExamDefinition, error) {
	if s.cache != nil {
		var cached models.ExamDefinition
		err := s.cache.Get(ctx, cache.ExamKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Exam cache read failed", "exam_id", id, "error", err)
		}
	}

	exam, err := s.repo.Exam().GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ExamKey(id), exam, s.cacheTTL); err != nil {
			s.logger.Warn("Exam cache write failed", "exam_id", id, "error", err)
		}
	}

	return exam, nil
}

func (s *examService) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.ExamDefinition, int64, error) {
	exams, total, err := s.repo.Exam().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, total, nil
}

func (s *examService) Delete(ctx context.Context, id string) (err error) {
	op := s.ops.WithOperation(ctx, "delete_exam")
	defer func() { op.LogResult(id, "exam", err) }()

	if err := s.repo.Exam().Delete(ctx, id); err != nil {
		return s.mapNotFound(err, id)
	}

	s.invalidate(ctx, id)
	return nil
}

// ===== HELPERS =====

func (s *examService) mapNotFound(err error, id string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrExamNotFound, id)
	}
	return fmt.Errorf("failed to load exam %s: %w", id, err)
}

func (s *examService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cache.ExamPattern(id)); err != nil {
		s.logger.Warn("Exam cache invalidation failed", "exam_id", id, "error", err)
	}
}

// publish never fails the caller; the exam is already stored
func (s *examService) publish(ctx context.Context, event *events.GradingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func examID(exam *models.ExamDefinition) string {
	if exam == nil {
		return ""
	}
	return exam.ID
}
