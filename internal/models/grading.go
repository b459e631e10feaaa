package models

import (
	"time"
)

// Submission is one student's answers to one exam.
// Answers maps a question ID to a raw token: a letter ("C") or a zero-based
// index ("2"), depending on the client. A missing entry means unanswered.
type Submission struct {
	StudentRef       string            `json:"student_ref" validate:"required"`
	StudentName      string            `json:"student_name"`
	RollNumber       string            `json:"roll_number"`
	Answers          map[string]string `json:"answers"`
	TimeSpentSeconds int               `json:"time_spent_seconds" validate:"gte=0"`
	SubmittedAt      time.Time         `json:"submitted_at"`
}

type QuestionOutcome struct {
	QuestionID    string  `json:"question_id"`
	IsCorrect     bool    `json:"is_correct"`
	UserAnswer    *string `json:"user_answer"` // nil when unanswered
	CorrectAnswer string  `json:"correct_answer"`
	Marks         int     `json:"marks"`
	MarksObtained int     `json:"marks_obtained"`
}

// ScoredResult is the outcome of grading one submission. It is never mutated;
// a resubmission produces a new result.
type ScoredResult struct {
	ID          string `json:"id"`
	StudentRef  string `json:"student_ref"`
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	ExamRef     string `json:"exam_ref"`
	ExamTitle   string `json:"exam_title"`
	Subject     string `json:"subject,omitempty"`

	Outcomes []QuestionOutcome `json:"outcomes"`

	// Score counts correct questions ("X/Y correct"); TotalMarksObtained is the
	// weighted figure percentage and grade are derived from.
	Score              int `json:"score"`
	TotalQuestions     int `json:"total_questions"`
	TotalMarksObtained int `json:"total_marks_obtained"`
	TotalMarks         int `json:"total_marks"`

	Percentage       int       `json:"percentage"`
	Grade            string    `json:"grade"`
	Passed           bool      `json:"passed"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// GradeRange maps a minimum percentage to a letter grade
type GradeRange struct {
	MinPercentage int    `json:"min_percentage"`
	Grade         string `json:"grade"`
}

// DefaultGradeScale is evaluated high to low; anything below the last range is FailingGrade.
var DefaultGradeScale = []GradeRange{
	{MinPercentage: 90, Grade: "A+"},
	{MinPercentage: 80, Grade: "A"},
	{MinPercentage: 70, Grade: "B+"},
	{MinPercentage: 60, Grade: "B"},
	{MinPercentage: 50, Grade: "C"},
}

const FailingGrade = "F"
