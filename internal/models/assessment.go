package models

import (
	"time"
)

// ExamMeta is the exam-level metadata an author supplies alongside the question text
type ExamMeta struct {
	ID                string `json:"id"`
	Title             string `json:"title" validate:"max=200"`
	Description       string `json:"description,omitempty" validate:"max=1000"`
	Subject           string `json:"subject,omitempty"`
	TimeLimitSeconds  int    `json:"time_limit_seconds"`
	PassingPercentage *int   `json:"passing_percentage,omitempty"`
}

// ExamDefinition is an assembled exam. It is read-only once assembled: an edit
// re-runs assembly and replaces the reference.
type ExamDefinition struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Subject           string     `json:"subject,omitempty"`
	TimeLimitSeconds  int        `json:"time_limit_seconds"`
	PassingPercentage int        `json:"passing_percentage"`
	Questions         []Question `json:"questions"`
	TotalMarks        int        `json:"total_marks"`
	AssembledAt       time.Time  `json:"assembled_at"`
}

// QuestionCount returns the number of questions in the exam
func (e *ExamDefinition) QuestionCount() int {
	return len(e.Questions)
}

// Clone returns a deep copy of the definition
func (e *ExamDefinition) Clone() *ExamDefinition {
	c := *e
	c.Questions = make([]Question, len(e.Questions))
	for i, q := range e.Questions {
		c.Questions[i] = q.Clone()
	}
	return &c
}
