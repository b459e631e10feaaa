package grading

import (
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
)

// Aggregator computes class statistics from scored results
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate summarizes results overall and per exam. The output does not
// depend on the order of results; an empty input yields all zeros.
func (a *Aggregator) Aggregate(results []models.ScoredResult) models.Statistics {
	overall := tally{}
	perExam := make(map[string]*tally)
	titles := make(map[string]string)

	for i := range results {
		r := &results[i]
		overall.add(r)

		t, ok := perExam[r.ExamRef]
		if !ok {
			t = &tally{}
			perExam[r.ExamRef] = t
			titles[r.ExamRef] = r.ExamTitle
		} else if r.ExamTitle < titles[r.ExamRef] {
			// results for one exam may carry different titles after a rename
			titles[r.ExamRef] = r.ExamTitle
		}
		t.add(r)
	}

	stats := models.Statistics{
		TotalStudents: overall.count,
		TotalPassed:   overall.passed,
		TotalFailed:   overall.count - overall.passed,
		AverageScore:  overall.average(),
		PassRate:      overall.passRate(),
		HighestScore:  overall.highest,
		LowestScore:   overall.lowest,
		ExamStats:     make(map[string]models.ExamStatistics, len(perExam)),
	}

	for ref, t := range perExam {
		stats.ExamStats[ref] = models.ExamStatistics{
			ExamRef:       ref,
			ExamTitle:     titles[ref],
			TotalStudents: t.count,
			Passed:        t.passed,
			Failed:        t.count - t.passed,
			AverageScore:  t.average(),
			HighestScore:  t.highest,
			LowestScore:   t.lowest,
			PassRate:      t.passRate(),
		}
	}

	return stats
}

type tally struct {
	count   int
	passed  int
	sum     int
	highest int
	lowest  int
}

func (t *tally) add(r *models.ScoredResult) {
	if t.count == 0 {
		t.highest, t.lowest = r.Percentage, r.Percentage
	} else {
		t.highest = max(t.highest, r.Percentage)
		t.lowest = min(t.lowest, r.Percentage)
	}
	t.count++
	t.sum += r.Percentage
	if r.Passed {
		t.passed++
	}
}

func (t *tally) average() int  { return roundedMean(t.sum, t.count) }
func (t *tally) passRate() int { return percentOf(t.passed, t.count) }
