// Package report renders scored results as flat tables, one row per submission
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultTimeLayout = "1/2/2006, 3:04:05 PM"
	sheetName         = "Results"
)

var headers = []string{
	"Exam", "Student Name", "Roll Number", "Score", "Percentage", "Result", "Time Spent", "Submitted At",
}

// ErrUnsupportedFormat is returned for formats other than csv and xlsx
var ErrUnsupportedFormat = errors.New("unsupported export format")

type Exporter struct {
	timeLayout string
	location   *time.Location
}

type Option func(*Exporter)

// WithTimeLayout sets the layout used for the Submitted At column
func WithTimeLayout(layout string) Option {
	return func(e *Exporter) {
		if layout != "" {
			e.timeLayout = layout
		}
	}
}

// WithLocation renders timestamps in loc instead of UTC
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) {
		if loc != nil {
			e.location = loc
		}
	}
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		timeLayout: DefaultTimeLayout,
		location:   time.UTC,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export renders results in the requested format
func (e *Exporter) Export(format models.ExportFormat, results []models.ScoredResult) ([]byte, error) {
	switch format {
	case models.ExportCSV:
		return e.CSV(results)
	case models.ExportXLSX:
		return e.XLSX(results)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// CSV renders results with a header row. Fields containing commas or quotes are quoted.
func (e *Exporter) CSV(results []models.ScoredResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range results {
		if err := writer.Write(e.Row(&results[i])); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// XLSX renders the same cells as CSV into a single "Results" sheet
func (e *Exporter) XLSX(results []models.ScoredResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write Excel header: %w", err)
		}
	}

	for rowIndex := range results {
		row := e.Row(&results[rowIndex])
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write Excel cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

// Row returns the display cells for one result, in header order
func (e *Exporter) Row(r *models.ScoredResult) []string {
	result := "Fail"
	if r.Passed {
		result = "Pass"
	}

	return []string{
		r.ExamTitle,
		r.StudentName,
		r.RollNumber,
		fmt.Sprintf("%d/%d", r.Score, r.TotalQuestions),
		fmt.Sprintf("%d%%", r.Percentage),
		result,
		FormatDuration(r.TimeSpentSeconds),
		r.SubmittedAt.In(e.location).Format(e.timeLayout),
	}
}

// FormatDuration renders seconds as "Xm Ys"
func FormatDuration(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Headers returns a copy of the column titles
func Headers() []string {
	return append([]string(nil), headers...)
}
