// Package report summarizes a finished or in-progress exam session for
// display and export.
package report

import (
	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/timing"
)

// Highlight classifies a row for display.
type Highlight string

const (
	HighlightNone       Highlight = "none"
	HighlightSuspicious Highlight = "suspicious" // answered faster than plausible
	HighlightSlow       Highlight = "slow"
	HighlightSyntax     Highlight = "syntax"
	HighlightIncorrect  Highlight = "incorrect"
)

// Row is one annotated attempt.
type Row struct {
	Number         int            `json:"number"`
	QuestionID     string         `json:"question_id"`
	Topic          bank.Topic     `json:"topic"`
	Prompt         string         `json:"prompt"`
	RawInput       string         `json:"raw_input"`
	Reference      string         `json:"reference"`
	IsCorrect      bool           `json:"is_correct"`
	Verdict        answer.Verdict `json:"verdict"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
	TimingFlag     timing.Flag    `json:"timing_flag"`
	Highlight      Highlight      `json:"highlight"`
}

// Report is the session summary.
type Report struct {
	SessionID string `json:"session_id"`
	BankName  string `json:"bank_name"`

	// Total is the bank size; Answered is the number of attempts.
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Score    int `json:"score"`

	// PercentageScore is 100*Score/Total, 0 for an empty bank.
	PercentageScore float64 `json:"percentage_score"`

	// TotalElapsedMinutes sums the per-attempt times.
	TotalElapsedMinutes float64 `json:"total_elapsed_minutes"`

	Finished bool `json:"finished"`

	// Flags counts attempts per timing flag.
	Flags map[timing.Flag]int `json:"flags"`

	Rows []Row `json:"rows"`
}

// Suspicious returns the number of attempts flagged too fast.
func (r *Report) Suspicious() int { return r.Flags[timing.FlagTooFast] }

// Summarize builds the report for s. It does not modify s.
func Summarize(b *bank.Bank, s *exam.SessionState) *Report {
	r := &Report{
		SessionID: s.ID,
		BankName:  b.Name(),
		Total:     b.Len(),
		Answered:  len(s.Log),
		Score:     s.Score,
		Finished:  s.Finished,
		Flags: map[timing.Flag]int{
			timing.FlagNormal:  0,
			timing.FlagTooFast: 0,
			timing.FlagTooSlow: 0,
		},
		Rows: make([]Row, 0, len(s.Log)),
	}
	if r.Total > 0 {
		r.PercentageScore = 100 * float64(s.Score) / float64(r.Total)
	}

	var seconds float64
	for i, a := range s.Log {
		seconds += a.ElapsedSeconds
		r.Flags[a.TimingFlag]++

		row := Row{
			Number:         i + 1,
			QuestionID:     a.QuestionID,
			RawInput:       a.RawInput,
			IsCorrect:      a.IsCorrect,
			Verdict:        a.Verdict,
			ElapsedSeconds: a.ElapsedSeconds,
			TimingFlag:     a.TimingFlag,
			Highlight:      highlight(a),
		}
		if q, ok := b.ByID(a.QuestionID); ok {
			row.Topic = q.Topic
			row.Prompt = q.Prompt
			row.Reference = q.ReferenceString()
		}
		r.Rows = append(r.Rows, row)
	}
	r.TotalElapsedMinutes = seconds / 60
	return r
}

// highlight ranks suspicious timing above correctness so that a correct
// answer given too fast still stands out.
func highlight(a exam.AttemptRecord) Highlight {
	switch {
	case a.TimingFlag == timing.FlagTooFast:
		return HighlightSuspicious
	case a.Verdict == answer.VerdictSyntaxError:
		return HighlightSyntax
	case !a.IsCorrect:
		return HighlightIncorrect
	case a.TimingFlag == timing.FlagTooSlow:
		return HighlightSlow
	default:
		return HighlightNone
	}
}
