package models

// Statistics aggregates a set of scored results, optionally spanning several
// exams of one subject. All figures are integer percentages.
type Statistics struct {
	TotalStudents int `json:"total_students"`
	TotalPassed   int `json:"total_passed"`
	TotalFailed   int `json:"total_failed"`
	AverageScore  int `json:"average_score"`
	PassRate      int `json:"pass_rate"`
	HighestScore  int `json:"highest_score"`
	LowestScore   int `json:"lowest_score"`

	ExamStats map[string]ExamStatistics `json:"exam_stats"`
}

type ExamStatistics struct {
	ExamRef       string `json:"exam_ref"`
	ExamTitle     string `json:"exam_title"`
	TotalStudents int    `json:"total_students"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	AverageScore  int    `json:"average_score"`
	HighestScore  int    `json:"highest_score"`
	LowestScore   int    `json:"lowest_score"`
	PassRate      int    `json:"pass_rate"`
}
