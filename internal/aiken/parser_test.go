package aiken

import (
	"strings"
	"sync"
	"testing"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoQuestions = `
What is the capital of France?
A. Berlin
B. Paris
C. Madrid
D. Rome
ANSWER: B

Which gas do plants absorb?
A. Oxygen
B. Nitrogen
C. Carbon dioxide
answer: c
`

func TestParse_WellFormed(t *testing.T) {
	report, err := NewParser().Parse(twoQuestions)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.SkipReasons)
	require.Len(t, report.Questions, 2)

	first := report.Questions[0]
	assert.Equal(t, "Q1", first.ID)
	assert.Equal(t, "What is the capital of France?", first.Text)
	assert.Equal(t, []string{"Berlin", "Paris", "Madrid", "Rome"}, first.Options)
	assert.Equal(t, "B", first.CorrectAnswer)
	assert.Equal(t, 1, first.Marks)

	second := report.Questions[1]
	assert.Equal(t, "Q2", second.ID)
	assert.Equal(t, "C", second.CorrectAnswer, "answer keyword and letter are case-insensitive")
}

func TestParse_SkipsQuestionWithOneOption(t *testing.T) {
	text := `Lonely question?
A. Only option
ANSWER: A

Good question?
A. Yes
B. No
ANSWER: A`

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.SkipReasons, 1)
	assert.Contains(t, report.SkipReasons[0], "question 1")
	assert.Contains(t, report.SkipReasons[0], "at least 2 required")
	assert.Equal(t, "Good question?", report.Questions[0].Text)
	assert.Equal(t, "Q1", report.Questions[0].ID)
}

func TestParse_AnswerOutOfRangeIsSkipped(t *testing.T) {
	text := `Pick one
A. first
B. second
ANSWER: D

Pick again
A. first
B. second
ANSWER: B`

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, report.Skipped)
	assert.Contains(t, report.SkipReasons[0], "does not match any of the 2 options")
}

func TestParse_UnterminatedQuestionDefaultsToA(t *testing.T) {
	// The missing ANSWER line falls back to "A" even though the author never said so.
	text := `First question without answer
A. one
B. two
Second question
A. three
B. four
ANSWER: B
Truncated at end of file
A. five
B. six`

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	require.Len(t, report.Questions, 3)
	assert.Equal(t, "A", report.Questions[0].CorrectAnswer)
	assert.Equal(t, "B", report.Questions[1].CorrectAnswer)
	assert.Equal(t, "A", report.Questions[2].CorrectAnswer)
	assert.Equal(t, "Truncated at end of file", report.Questions[2].Text)
}

func TestParse_DefaultAnswerIsConfigurable(t *testing.T) {
	text := "No answer line\nA. one\nB. two\n"

	report, err := NewParser(WithDefaultAnswer("b")).Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "B", report.Questions[0].CorrectAnswer)
}

func TestParse_InvalidAnswerLetterKeepsDefault(t *testing.T) {
	text := "Question\nA. one\nB. two\nC. three\nANSWER: Z\n"

	report, err := NewParser().Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "A", report.Questions[0].CorrectAnswer)
}

func TestParse_AnswerKeywordIsASCII(t *testing.T) {
	// "anſwer" uppercases to "ANSWER" but is a different byte sequence, so it
	// opens a new block instead of being read as an answer line.
	text := "Question\nA. one\nB. two\nanſwer: B\nNext\nA. p\nB. q\nAnswer: b\n"

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	require.Len(t, report.Questions, 2)
	assert.Equal(t, "A", report.Questions[0].CorrectAnswer)
	assert.Equal(t, "B", report.Questions[1].CorrectAnswer)
	assert.Equal(t, 1, report.Skipped)
	assert.Contains(t, report.SkipReasons[0], "anſwer: B")
}

func TestParse_LineClassification(t *testing.T) {
	text := "\r\n  Spaced question?  \r\n" +
		"A.    padded option   \r\n" +
		"B. \tsecond\r\n" +
		"F. not an option so this starts a question\r\n" +
		"A. x\r\n" +
		"B. y\r\n" +
		"ANSWER: B\r\n"

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	require.Len(t, report.Questions, 2)
	assert.Equal(t, "Spaced question?", report.Questions[0].Text)
	assert.Equal(t, []string{"padded option", "second"}, report.Questions[0].Options)
	assert.Equal(t, "F. not an option so this starts a question", report.Questions[1].Text)
	assert.Equal(t, "B", report.Questions[1].CorrectAnswer)
}

func TestParse_IgnoresStrayLines(t *testing.T) {
	text := "A. orphan option\nANSWER: A\nReal question\nA. yes\nB. no\nANSWER: B\n"

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 0, report.Skipped)
}

func TestParse_BareOptionPrefixStartsQuestion(t *testing.T) {
	text := "Question\nA. one\nB.  \nC. two\nANSWER: B\nNext\nA. p\nB. q\nANSWER: A\n"

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	// "B.  " trims to "B.", which is not an option line, so it opens a new block and
	// both one-option blocks are skipped.
	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, "Next", report.Questions[0].Text)
	assert.Contains(t, report.SkipReasons[1], `question 2 "B."`)
}

func TestParse_TooManyOptions(t *testing.T) {
	text := "Question\nA. 1\nB. 2\nC. 3\nD. 4\nE. 5\nA. 6\nANSWER: A\nOther\nA. x\nB. y\nANSWER: A"

	report, err := NewParser().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Accepted)
	assert.Contains(t, report.SkipReasons[0], "at most 5 allowed")
}

func TestParse_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := NewParser().Parse("  \n\t\n ")
		assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
	})

	t.Run("no valid questions", func(t *testing.T) {
		_, err := NewParser().Parse("Question one\nA. only\nANSWER: A\nQuestion two\n")
		require.ErrorIs(t, err, apperrors.ErrNoValidQuestions)

		var nvq *apperrors.NoValidQuestionsError
		require.ErrorAs(t, err, &nvq)
		assert.Equal(t, 2, nvq.Skipped)
		assert.Len(t, nvq.SkipReasons, 2)
	})
}

func TestParse_Idempotent(t *testing.T) {
	p := NewParser()

	first, err := p.Parse(twoQuestions)
	require.NoError(t, err)
	second, err := p.Parse(twoQuestions)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	first.Questions[0].Options[0] = "mutated"
	assert.Equal(t, "Berlin", second.Questions[0].Options[0])
}

func TestParse_ConcurrentCallsAgree(t *testing.T) {
	p := NewParser()
	want, err := p.Parse(twoQuestions)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*models.ParseReport, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Parse(twoQuestions)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestParse_LongTextIsAbbreviatedInReason(t *testing.T) {
	long := strings.Repeat("x", 100)
	_, err := NewParser().Parse(long + "\nA. one\nANSWER: A\n")

	var nvq *apperrors.NoValidQuestionsError
	require.ErrorAs(t, err, &nvq)
	assert.Contains(t, nvq.SkipReasons[0], strings.Repeat("x", 40)+"...")
	assert.NotContains(t, nvq.SkipReasons[0], strings.Repeat("x", 41))
}
