package models

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Question is one multiple-choice item. Options are displayed in slice order and
// the option at index i is addressed by letter 'A'+i.
type Question struct {
	ID            string          `json:"id"`
	Text          string          `json:"text" validate:"required,not_blank"`
	Options       []string        `json:"options" validate:"min=2,max=5,dive,required"`
	CorrectAnswer string          `json:"correct_answer" validate:"answer_letter"`
	Marks         int             `json:"marks"`
	Difficulty    DifficultyLevel `json:"difficulty,omitempty" validate:"omitempty,difficulty_level"`
	Category      string          `json:"category,omitempty"`
	Explanation   string          `json:"explanation,omitempty"`
}

// Clone returns a copy that shares no memory with q
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}
