package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExam = `What is the capital of France?
A. Berlin
B. Paris
C. Madrid
ANSWER: B

Which gas do plants absorb?
A. Oxygen
B. Nitrogen
C. Carbon dioxide
ANSWER: C

Broken question without options
ANSWER: A
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestParse_ReportWithoutTitle(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "exam.txt", []byte(sampleExam))

	stdout, stderr, err := execute(t, "parse", src)
	require.NoError(t, err)

	var report models.ParseReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Skipped)
	assert.Contains(t, stderr, "skipped:")
}

func TestParseScoreReport_Pipeline(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "exam.txt", []byte(sampleExam))
	examPath := filepath.Join(dir, "exam.json")

	_, _, err := execute(t, "parse", src, "--title", "Science Quiz", "--passing", "50", "-o", examPath)
	require.NoError(t, err)

	var exam models.ExamDefinition
	require.NoError(t, readJSON(examPath, &exam))
	assert.Equal(t, "Science Quiz", exam.Title)
	assert.Equal(t, 50, exam.PassingPercentage)
	assert.Equal(t, 2, exam.TotalMarks)

	subs, err := json.Marshal([]models.Submission{
		{StudentRef: "s1", StudentName: "Ada", Answers: map[string]string{"Q1": "B", "Q2": "2"}, TimeSpentSeconds: 125},
		{StudentRef: "s2", StudentName: "Bob", Answers: map[string]string{"Q1": "A"}},
	})
	require.NoError(t, err)
	subsPath := writeFile(t, dir, "subs.json", subs)

	resultsPath := filepath.Join(dir, "results.json")
	_, _, err = execute(t, "score", subsPath, "--exam", examPath, "-o", resultsPath)
	require.NoError(t, err)

	var results []models.ScoredResult
	require.NoError(t, readJSON(resultsPath, &results))
	require.Len(t, results, 2)
	assert.Equal(t, 100, results[0].Percentage)
	assert.True(t, results[0].Passed)
	assert.Equal(t, 0, results[1].Percentage)
	assert.False(t, results[1].Passed)

	stdout, _, err := execute(t, "score", subsPath, "--exam", examPath, "--stats")
	require.NoError(t, err)
	var stats models.Statistics
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 50, stats.AverageScore)
	assert.Equal(t, 50, stats.PassRate)

	stdout, _, err = execute(t, "report", resultsPath)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewBufferString(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ada", rows[1][1])
	assert.Equal(t, "2/2", rows[1][3])
	assert.Equal(t, "2m 5s", rows[1][6])
}

func TestScore_RequiresExamFlag(t *testing.T) {
	dir := t.TempDir()
	subs := writeFile(t, dir, "subs.json", []byte("[]"))

	_, _, err := execute(t, "score", subs)
	require.Error(t, err)
}

func TestReport_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	results := writeFile(t, dir, "results.json", []byte("[]"))

	_, _, err := execute(t, "report", results, "--format", "pdf")
	require.Error(t, err)
}

func TestParse_AssembleFailsWithoutValidQuestions(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "exam.txt", []byte("Only a stem\nANSWER: A\n"))

	_, _, err := execute(t, "parse", src, "--title", "Empty")
	require.Error(t, err)
}
