package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

// ===== OPERATION LOGGING =====

// LogOperation records the outcome of one service call. Caller mistakes are
// logged at warn or info; anything else that failed is an error.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, resourceID, resourceType string, duration time.Duration, err error) {
	class := Classify(err)
	status := string(class)
	level := slog.LevelError
	switch class {
	case ClassNone:
		status = "success"
		level = slog.LevelInfo
	case ClassNotFound:
		level = slog.LevelInfo
	case ClassInvalid, ClassCanceled:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_id", resourceID),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErr apperrors.ValidationErrors
		var noValid *apperrors.NoValidQuestionsError
		var businessErr *BusinessRuleError
		switch {
		case errors.As(err, &validationErr):
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErr)))
		case errors.As(err, &noValid):
			attrs = append(attrs, slog.Int("skipped_questions", noValid.Skipped))
		case errors.As(err, &businessErr):
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i == 5 {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
			slog.Any("value", err.Value),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

// ===== HELPERS =====

// OperationLogger times one operation and logs its result
type OperationLogger struct {
	logger    *ServiceLogger
	operation string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string) *OperationLogger {
	return &OperationLogger{
		logger:    l,
		operation: operation,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (ol *OperationLogger) LogResult(resourceID, resourceType string, err error) {
	ol.logger.LogOperation(ol.ctx, ol.operation, resourceID, resourceType, time.Since(ol.startTime), err)

	var validationErrors ValidationErrors
	if errors.As(err, &validationErrors) {
		ol.logger.LogValidationError(ol.ctx, ol.operation, validationErrors)
	}
}
