// Package validator wraps go-playground/validator with the exam rules and
// converts its failures into field-addressed ValidationErrors.
package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/go-playground/validator/v10"
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// MaxAnswerLetter is the last letter an exam answer may use (five options)
const MaxAnswerLetter = 'E'

var customRules = map[string]validator.Func{
	"answer_letter":    isAnswerLetter,
	"difficulty_level": isDifficultyLevel,
	"not_blank":        isNotBlank,
}

type Validator struct {
	validate  *validator.Validate
	questions *QuestionValidator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	for tag, fn := range customRules {
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation(tag, fn)
	}
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Validator{
		validate:  validate,
		questions: NewQuestionValidator(validate),
	}
}

// ValidateStruct returns the raw go-playground error
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Validate checks struct tags and reports failures as ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.ToValidationErrors(err, ""); len(errs) > 0 {
		return errs
	}
	return err
}

// ValidateAt is Validate for an element of a collection: every field name is
// prefixed, e.g. "submissions[3].student_ref". It returns nil when s is valid.
func (v *Validator) ValidateAt(prefix string, s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return apperrors.ToValidationErrors(err, prefix)
	}
	return nil
}

func (v *Validator) Question() *QuestionValidator {
	return v.questions
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func isAnswerLetter(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return len(value) == 1 && value[0] >= 'A' && value[0] <= MaxAnswerLetter
}

func isDifficultyLevel(fl validator.FieldLevel) bool {
	switch models.DifficultyLevel(fl.Field().String()) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
