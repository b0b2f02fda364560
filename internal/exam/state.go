package exam

import (
	"time"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/timing"
)

// Status is the state-machine state of a session.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS" // Has a current question
	StatusFinished   Status = "FINISHED"    // Every question attempted
)

// AttemptRecord is one graded submission. Records are never modified after
// they are appended to a session log.
type AttemptRecord struct {
	QuestionID string `json:"question_id"`

	// RawInput is the submitted text, verbatim.
	RawInput string `json:"raw_input"`

	IsCorrect bool `json:"is_correct"`

	// Verdict separates unparseable input from wrong answers.
	Verdict answer.Verdict `json:"verdict"`

	// ElapsedSeconds is the time from question activation to submission.
	ElapsedSeconds float64 `json:"elapsed_seconds"`

	TimingFlag timing.Flag `json:"timing_flag"`

	// TimingRule names the rule that raised TimingFlag, empty for NORMAL.
	TimingRule string `json:"timing_rule,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
}

// SessionState is one exam attempt.
type SessionState struct {
	// ID identifies the session in a Manager.
	ID string `json:"id"`

	// CurrentIndex points into the bank; it reaches Len() once finished.
	CurrentIndex int `json:"current_index"`

	// Score is the number of correct answers so far.
	Score int `json:"score"`

	// Log holds every attempt in submission order.
	Log []AttemptRecord `json:"log"`

	// QuestionStartedAt is when the current question was shown.
	QuestionStartedAt time.Time `json:"question_started_at"`

	// StartedAt is when the session was initialized or last restarted.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is set when the last question is answered.
	FinishedAt time.Time `json:"finished_at,omitempty"`

	Finished bool `json:"finished"`
}

// Status returns the state-machine state.
func (s *SessionState) Status() Status {
	if s.Finished {
		return StatusFinished
	}
	return StatusInProgress
}

// Clone returns a deep copy of s.
func (s *SessionState) Clone() *SessionState {
	c := *s
	c.Log = make([]AttemptRecord, len(s.Log))
	copy(c.Log, s.Log)
	return &c
}

// Outcome is returned by Submit.
type Outcome struct {
	Attempt AttemptRecord

	// Hint is the question hint, set only when the answer was not correct.
	Hint string

	// Err explains a syntax error or an abandoned equivalence check. It is
	// informational; the attempt has already been scored.
	Err error

	// Finished reports whether this submission ended the exam.
	Finished bool
}
