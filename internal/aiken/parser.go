// Package aiken parses AIKEN-style multiple-choice text:
//
//	What is the capital of France?
//	A. Berlin
//	B. Paris
//	C. Madrid
//	ANSWER: B
//
// Malformed blocks are skipped and reported; parsing fails only when the input is
// blank or nothing valid remains.
package aiken

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cheruab/dreamacademyScM-sub002/internal/answerkey"
	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
)

const (
	answerPrefix = "ANSWER:"
	minOptions   = 2
	maxOptions   = 5
	maxLetter    = 'E'

	// DefaultAnswer is assumed for a question that never saw an ANSWER line
	DefaultAnswer = "A"
)

var optionLinePattern = regexp.MustCompile(`^[A-E]\.\s`)

// Parser holds only immutable configuration, so one instance can be shared
// between goroutines and repeated calls on the same text give equal results.
type Parser struct {
	defaultAnswer string
	logger        *slog.Logger
}

type Option func(*Parser)

// WithDefaultAnswer overrides the answer letter assumed for unterminated questions
func WithDefaultAnswer(letter string) Option {
	return func(p *Parser) { p.defaultAnswer = strings.ToUpper(strings.TrimSpace(letter)) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// NewParser creates a parser with the given options
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		defaultAnswer: DefaultAnswer,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse converts raw AIKEN text into validated questions plus a skip report
func (p *Parser) Parse(raw string) (*models.ParseReport, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.ErrEmptyInput
	}

	report := &models.ParseReport{
		Questions:   []models.Question{},
		SkipReasons: []string{},
	}

	acc := accumulator{state: noQuestion{}}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		acc = p.step(acc, line)
	}
	acc = p.finish(acc)

	for _, c := range acc.closed {
		if c.reason != "" {
			report.Skipped++
			report.SkipReasons = append(report.SkipReasons, c.reason)
			continue
		}
		q := c.question
		q.ID = fmt.Sprintf("Q%d", len(report.Questions)+1)
		report.Questions = append(report.Questions, q)
	}
	report.Accepted = len(report.Questions)

	p.logger.Debug("AIKEN text parsed",
		"accepted", report.Accepted,
		"skipped", report.Skipped)

	if report.Accepted == 0 {
		return nil, &apperrors.NoValidQuestionsError{
			Skipped:     report.Skipped,
			SkipReasons: report.SkipReasons,
		}
	}

	return report, nil
}

// ===== FOLD STATE =====

// parserState is either noQuestion or buildingQuestion
type parserState interface {
	isParserState()
}

type noQuestion struct{}

type buildingQuestion struct {
	draft draft
}

func (noQuestion) isParserState()       {}
func (buildingQuestion) isParserState() {}

type draft struct {
	ordinal int
	text    string
	options []string
	answer  string
}

// closedBlock is a question that left the fold, accepted or not
type closedBlock struct {
	question models.Question
	reason   string // non-empty when skipped
}

type accumulator struct {
	state   parserState
	started int
	closed  []closedBlock
}

// step consumes one trimmed, non-empty line. acc is treated as consumed.
func (p *Parser) step(acc accumulator, line string) accumulator {
	switch {
	case optionLinePattern.MatchString(line):
		b, ok := acc.state.(buildingQuestion)
		if !ok {
			p.logger.Debug("Ignoring option line outside a question", "line", line)
			return acc
		}
		if text := strings.TrimSpace(line[3:]); text != "" {
			b.draft.options = append(b.draft.options, text)
		}
		acc.state = b

	case isAnswerLine(line):
		b, ok := acc.state.(buildingQuestion)
		if !ok {
			p.logger.Debug("Ignoring answer line outside a question", "line", line)
			return acc
		}
		letter := strings.ToUpper(strings.TrimSpace(line[len(answerPrefix):]))
		if isAnswerLetter(letter) {
			b.draft.answer = letter
		}
		acc.closed = append(acc.closed, p.close(b.draft))
		acc.state = noQuestion{}

	default:
		if b, ok := acc.state.(buildingQuestion); ok {
			acc.closed = append(acc.closed, p.close(b.draft))
		}
		acc.started++
		acc.state = buildingQuestion{draft: draft{
			ordinal: acc.started,
			text:    line,
			answer:  p.defaultAnswer,
		}}
	}
	return acc
}

// finish closes a question left open at end of input
func (p *Parser) finish(acc accumulator) accumulator {
	if b, ok := acc.state.(buildingQuestion); ok {
		acc.closed = append(acc.closed, p.close(b.draft))
		acc.state = noQuestion{}
	}
	return acc
}

// close applies the commit rule and then the validation filter
func (p *Parser) close(d draft) closedBlock {
	if problem := validateDraft(d); problem != "" {
		reason := fmt.Sprintf("question %d %q: %s", d.ordinal, abbreviate(d.text, 40), problem)
		p.logger.Debug("Skipping question", "ordinal", d.ordinal, "reason", problem)
		return closedBlock{reason: reason}
	}

	return closedBlock{question: models.Question{
		Text:          d.text,
		Options:       append([]string(nil), d.options...),
		CorrectAnswer: d.answer,
		Marks:         1,
	}}
}

// isAnswerLine matches the ASCII prefix case-insensitively on the raw bytes, so
// the prefix length is the same in line and answerPrefix.
func isAnswerLine(line string) bool {
	return len(line) >= len(answerPrefix) && strings.EqualFold(line[:len(answerPrefix)], answerPrefix)
}

func validateDraft(d draft) string {
	if strings.TrimSpace(d.text) == "" {
		return "question text is empty"
	}
	if len(d.options) < minOptions {
		return fmt.Sprintf("has %d option(s), at least %d required", len(d.options), minOptions)
	}
	if len(d.options) > maxOptions {
		return fmt.Sprintf("has %d options, at most %d allowed", len(d.options), maxOptions)
	}
	if !isAnswerLetter(d.answer) {
		return fmt.Sprintf("answer %q is not a letter between A and %c", d.answer, maxLetter)
	}
	index, err := answerkey.LetterToIndex(d.answer)
	if err != nil || index >= len(d.options) {
		return fmt.Sprintf("answer %s does not match any of the %d options", d.answer, len(d.options))
	}
	return ""
}

func isAnswerLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= maxLetter
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
