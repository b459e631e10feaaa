package models

import "time"

// ParseReport is the outcome of parsing AIKEN text. Skipped blocks are counted and
// explained so the author can fix them without losing the accepted ones.
type ParseReport struct {
	Questions   []Question `json:"questions"`
	Accepted    int        `json:"accepted"`
	Skipped     int        `json:"skipped"`
	SkipReasons []string   `json:"skip_reasons"`
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ImportSummary is returned to the author after an AIKEN import
type ImportSummary struct {
	Exam           *ExamDefinition `json:"exam"`
	Accepted       int             `json:"accepted"`
	Skipped        int             `json:"skipped"`
	SkipReasons    []string        `json:"skip_reasons"`
	ProcessingTime time.Duration   `json:"processing_time"`
}
