package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/cache"
	"github.com/cheruab/dreamacademyScM-sub002/internal/events"
	"github.com/cheruab/dreamacademyScM-sub002/internal/grading"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/report"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/cheruab/dreamacademyScM-sub002/internal/validator"
)

const (
	// MaxBatchSize caps the number of submissions accepted in one batch
	MaxBatchSize = 500

	resultPageSize = 1000
)

type gradingService struct {
	repo       repositories.Repository
	exams      ExamService
	cache      cache.CacheService
	publisher  events.EventPublisher
	scorer     *grading.Scorer
	aggregator *grading.Aggregator
	exporter   *report.Exporter
	validator  *validator.Validator
	cacheTTL   time.Duration
	logger     *slog.Logger
	ops        *ServiceLogger
}

// NewGradingService creates the scoring and reporting service. cacheService may be nil.
func NewGradingService(
	repo repositories.Repository,
	exams ExamService,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	scorer *grading.Scorer,
	exporter *report.Exporter,
	validator *validator.Validator,
	cacheTTL time.Duration,
	logger *slog.Logger,
) GradingService {
	return &gradingService{
		repo:       repo,
		exams:      exams,
		cache:      cacheService,
		publisher:  publisher,
		scorer:     scorer,
		aggregator: grading.NewAggregator(),
		exporter:   exporter,
		validator:  validator,
		cacheTTL:   cacheTTL,
		logger:     logger,
		ops:        NewServiceLogger(logger, "grading"),
	}
}

// ===== SCORING =====

func (s *gradingService) Submit(ctx context.Context, examID string, sub *models.Submission) (result *models.ScoredResult, err error) {
	op := s.ops.WithOperation(ctx, "submit")
	defer func() { op.LogResult(examID, "exam", err) }()

	if err := s.validator.Validate(sub); err != nil {
		return nil, err
	}

	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	result = s.scorer.Score(exam, *sub)

	if err := s.repo.Result().Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	s.invalidateStatistics(ctx, examID)
	s.publish(ctx, events.NewResultScoredEvent(result))

	return result, nil
}

func (s *gradingService) SubmitBatch(ctx context.Context, examID string, subs []models.Submission) (results []*models.ScoredResult, err error) {
	op := s.ops.WithOperation(ctx, "submit_batch")
	defer func() { op.LogResult(examID, "exam", err) }()

	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: no submissions", ErrBadRequest)
	}
	if len(subs) > MaxBatchSize {
		return nil, NewBusinessRuleError("max_batch_size",
			fmt.Sprintf("a batch may contain at most %d submissions", MaxBatchSize),
			map[string]interface{}{"submitted": len(subs)})
	}

	var verrs ValidationErrors
	for i := range subs {
		verrs = append(verrs, s.validator.ValidateAt(fmt.Sprintf("submissions[%d].", i), &subs[i])...)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	results, err = s.scorer.ScoreBatch(ctx, exam, subs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Result().CreateBatch(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to save results: %w", err)
	}

	s.invalidateStatistics(ctx, examID)
	scored := make([]*events.GradingEvent, len(results))
	for i, r := range results {
		scored[i] = events.NewResultScoredEvent(r)
	}
	s.publish(ctx, scored...)

	return results, nil
}

// ===== RESULTS =====

func (s *gradingService) GetResult(ctx context.Context, id string) (*models.ScoredResult, error) {
	result, err := s.repo.Result().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrResultNotFound, id)
		}
		return nil, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	return result, nil
}

func (s *gradingService) ListResults(ctx context.Context, filters repositories.ResultFilters) ([]models.ScoredResult, int64, error) {
	if filters.ExamID != "" {
		if _, err := s.exams.GetByID(ctx, filters.ExamID); err != nil {
			return nil, 0, err
		}
	}

	results, total, err := s.repo.Result().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list results: %w", err)
	}
	return results, total, nil
}

// ===== STATISTICS =====

func (s *gradingService) ExamStatistics(ctx context.Context, examID string) (*models.Statistics, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	key := cache.StatisticsKey(examID)
	if s.cache != nil {
		var cached models.Statistics
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Statistics cache read failed", "exam_id", examID, "error", err)
		}
	}

	stats, err := s.Statistics(ctx, StatisticsFilters{ExamID: examID})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
			s.logger.Warn("Statistics cache write failed", "exam_id", examID, "error", err)
		}
	}
	return stats, nil
}

func (s *gradingService) Statistics(ctx context.Context, filters StatisticsFilters) (*models.Statistics, error) {
	results, err := s.allResults(ctx, repositories.ResultFilters{
		ExamID:     filters.ExamID,
		Subject:    filters.Subject,
		StudentRef: filters.StudentRef,
	})
	if err != nil {
		return nil, err
	}

	stats := s.aggregator.Aggregate(results)
	return &stats, nil
}

// ===== EXPORT =====

func (s *gradingService) ExportResults(ctx context.Context, examID string, format models.ExportFormat) (data []byte, err error) {
	op := s.ops.WithOperation(ctx, "export_results")
	defer func() { op.LogResult(examID, "exam", err) }()

	if format != models.ExportCSV && format != models.ExportXLSX {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	results, err := s.allResults(ctx, repositories.ResultFilters{ExamID: examID, SortBy: "submitted_at"})
	if err != nil {
		return nil, err
	}

	return s.exporter.Export(format, results)
}

// ===== HELPERS =====

// allResults pages through every result matching filters
func (s *gradingService) allResults(ctx context.Context, filters repositories.ResultFilters) ([]models.ScoredResult, error) {
	var all []models.ScoredResult
	filters.Limit = resultPageSize

	for offset := 0; ; offset += resultPageSize {
		filters.Offset = offset
		page, total, err := s.repo.Result().List(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to list results: %w", err)
		}
		all = append(all, page...)
		if len(page) < resultPageSize || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func (s *gradingService) invalidateStatistics(ctx context.Context, examID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.StatisticsKey(examID)); err != nil {
		s.logger.Warn("Statistics cache invalidation failed", "exam_id", examID, "error", err)
	}
}

// publish never fails the caller; the result is already stored
func (s *gradingService) publish(ctx context.Context, evs ...*events.GradingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evs...); err != nil {
		s.logger.Error("Failed to publish events", "count", len(evs), "error", err)
	}
}
