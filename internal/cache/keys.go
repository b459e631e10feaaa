package cache

import "fmt"

const keyPrefix = "exams"

// ExamKey is the cache key of an assembled exam definition
func ExamKey(examID string) string {
	return fmt.Sprintf("%s:exam:%s", keyPrefix, examID)
}

// StatisticsKey is the cache key of an exam's statistics
func StatisticsKey(examID string) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, examID)
}

// ExamPattern matches every key derived from one exam
func ExamPattern(examID string) string {
	return fmt.Sprintf("%s:*:%s", keyPrefix, examID)
}
