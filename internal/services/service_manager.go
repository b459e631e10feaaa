package services

import (
	"log/slog"

	"github.com/cheruab/dreamacademyScM-sub002/internal/aiken"
	"github.com/cheruab/dreamacademyScM-sub002/internal/cache"
	"github.com/cheruab/dreamacademyScM-sub002/internal/config"
	"github.com/cheruab/dreamacademyScM-sub002/internal/events"
	"github.com/cheruab/dreamacademyScM-sub002/internal/grading"
	"github.com/cheruab/dreamacademyScM-sub002/internal/report"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/cheruab/dreamacademyScM-sub002/internal/validator"
)

type serviceManager struct {
	exam    ExamService
	grading GradingService
}

// NewServiceManager wires the services from configuration. cacheService may be nil.
func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	cfg *config.Config,
	logger *slog.Logger,
) ServiceManager {
	parser := aiken.NewParser(
		aiken.WithDefaultAnswer(cfg.Grading.DefaultAnswerLetter),
		aiken.WithLogger(logger),
	)
	assembler := grading.NewAssembler(validator,
		grading.WithDefaultPassing(cfg.Grading.DefaultPassingPercentage),
		grading.WithAssemblerLogger(logger),
	)
	scorer := grading.NewScorer(
		grading.WithBatchConcurrency(cfg.Grading.BatchConcurrency),
		grading.WithScorerLogger(logger),
	)
	exporter := report.NewExporter(report.WithTimeLayout(cfg.Grading.ReportTimeLayout))

	examService := NewExamService(repo, cacheService, publisher, parser, assembler, validator, cfg.CacheTTL, logger)

	return &serviceManager{
		exam:    examService,
		grading: NewGradingService(repo, examService, cacheService, publisher, scorer, exporter, validator, cfg.CacheTTL, logger),
	}
}

func (m *serviceManager) Exam() ExamService       { return m.exam }
func (m *serviceManager) Grading() GradingService { return m.grading }
