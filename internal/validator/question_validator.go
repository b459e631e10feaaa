package validator

import (
	"fmt"

	"github.com/cheruab/dreamacademyScM-sub002/internal/answerkey"
	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/go-playground/validator/v10"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct {
	structValidator *validator.Validate
}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator(structValidator *validator.Validate) *QuestionValidator {
	return &QuestionValidator{structValidator: structValidator}
}

// ValidateQuestion checks struct rules and that the answer letter points at an
// existing option. Field names are prefixed with "questions[i]." for batch use.
func (v *QuestionValidator) ValidateQuestion(index int, question *models.Question) ValidationErrors {
	prefix := fmt.Sprintf("questions[%d].", index)

	if err := v.structValidator.Struct(question); err != nil {
		return apperrors.ToValidationErrors(err, prefix)
	}

	answerIndex, err := answerkey.LetterToIndex(question.CorrectAnswer)
	if err != nil || answerIndex >= len(question.Options) {
		return ValidationErrors{{
			Field:   prefix + "correct_answer",
			Message: fmt.Sprintf("must select one of the %d options", len(question.Options)),
			Value:   question.CorrectAnswer,
			Rule:    "answer_in_range",
		}}
	}

	return nil
}

// ValidateBatch validates every question and checks IDs are unique.
// Questions without an ID are ignored by the uniqueness check.
func (v *QuestionValidator) ValidateBatch(questions []models.Question) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]int, len(questions))

	for i := range questions {
		errs = append(errs, v.ValidateQuestion(i, &questions[i])...)

		id := questions[i].ID
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("questions[%d].id", i),
				Message: fmt.Sprintf("duplicates the id of questions[%d]", first),
				Value:   id,
				Rule:    "unique_id",
			})
			continue
		}
		seen[id] = i
	}

	return errs
}
