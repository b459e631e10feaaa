package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ===== AUTHORING AND GRADING ERRORS =====

var (
	// Parser
	ErrEmptyInput       = errors.New("exam text is empty")
	ErrNoValidQuestions = errors.New("no valid questions found")

	// Answer key codec
	ErrInvalidAnswerToken = errors.New("invalid answer token")

	// Assembler
	ErrMissingTitle = errors.New("exam title is required")
	ErrNoQuestions  = errors.New("exam must contain at least one question")
)

// InvalidAnswerTokenError carries the token the codec could not interpret.
type InvalidAnswerTokenError struct {
	Token  string
	Reason string
}

func (e *InvalidAnswerTokenError) Error() string {
	return fmt.Sprintf("invalid answer token %q: %s", e.Token, e.Reason)
}

func (e *InvalidAnswerTokenError) Unwrap() error {
	return ErrInvalidAnswerToken
}

// NewInvalidAnswerToken creates an InvalidAnswerTokenError
func NewInvalidAnswerToken(token, reason string) *InvalidAnswerTokenError {
	return &InvalidAnswerTokenError{Token: token, Reason: reason}
}

// NoValidQuestionsError is returned when every block of the input was rejected.
// It keeps the skip reasons so the author can fix the source text.
type NoValidQuestionsError struct {
	Skipped     int      `json:"skipped"`
	SkipReasons []string `json:"skip_reasons"`
}

func (e *NoValidQuestionsError) Error() string {
	if e.Skipped == 0 {
		return ErrNoValidQuestions.Error()
	}
	return fmt.Sprintf("%s: %d skipped (%s)", ErrNoValidQuestions, e.Skipped, strings.Join(e.SkipReasons, "; "))
}

func (e *NoValidQuestionsError) Unwrap() error {
	return ErrNoValidQuestions
}

// IsAuthoringError reports whether err should be shown to the exam author for correction
func IsAuthoringError(err error) bool {
	var ve ValidationErrors
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoValidQuestions) ||
		errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrNoQuestions) ||
		errors.As(err, &ve)
}
