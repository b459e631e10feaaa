package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/report"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrExamNotFound      = errors.New("exam not found")
	ErrResultNotFound    = errors.New("result not found")
	ErrUnsupportedFormat = report.ErrUnsupportedFormat
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// BusinessRuleError rejects a well-formed request that breaks a service limit
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

// ===== ERROR CLASSES =====

// ErrorClass groups errors by who has to act on them
type ErrorClass string

const (
	ClassNone     ErrorClass = ""
	ClassInvalid  ErrorClass = "validation_error" // caller must fix the request or the exam text
	ClassNotFound ErrorClass = "not_found"
	ClassCanceled ErrorClass = "canceled"
	ClassInternal ErrorClass = "error"
)

func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case IsValidation(err), IsBusinessRule(err), IsAuthoring(err),
		errors.Is(err, ErrBadRequest), errors.Is(err, ErrUnsupportedFormat):
		return ClassInvalid
	case IsNotFound(err):
		return ClassNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ClassCanceled
	}
	return ClassInternal
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) || errors.Is(err, ErrResultNotFound)
}

func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsAuthoring reports an exam text or structure problem the author must fix
func IsAuthoring(err error) bool {
	return apperrors.IsAuthoringError(err)
}

func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
