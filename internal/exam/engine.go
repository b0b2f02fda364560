// Package exam drives an exam session: it serves questions from a bank in
// order, grades each submission, classifies its response time, and keeps
// the score and the attempt log.
package exam

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/timing"
)

var (
	// ErrSessionFinished is returned by Submit once every question has
	// been answered.
	ErrSessionFinished = errors.New("exam: session is finished")

	// ErrEmptyBank is returned when a session is started on a bank with no
	// questions.
	ErrEmptyBank = errors.New("exam: question bank is empty")
)

// Clock returns the current time.
type Clock func() time.Time

// Engine runs sessions over one bank. It holds no per-session state and is
// safe for concurrent use; a single SessionState is not.
type Engine struct {
	bank    *bank.Bank
	checker *answer.Checker
	policy  timing.Policy
	now     Clock
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.now = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolicy sets the timing thresholds.
func WithPolicy(p timing.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine returns an engine for b that grades with checker.
func NewEngine(b *bank.Bank, checker *answer.Checker, opts ...Option) *Engine {
	e := &Engine{
		bank:    b,
		checker: checker,
		policy:  timing.DefaultPolicy(),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bank returns the engine's question bank.
func (e *Engine) Bank() *bank.Bank { return e.bank }

// Policy returns the timing thresholds in use.
func (e *Engine) Policy() timing.Policy { return e.policy }

// Start initializes a new session with the first question active.
func (e *Engine) Start() (*SessionState, error) {
	if e.bank.Len() == 0 {
		return nil, ErrEmptyBank
	}
	s := &SessionState{ID: uuid.NewString()}
	e.initialize(s)
	e.logger.Debug("session started", zap.String("session", s.ID), zap.Int("questions", e.bank.Len()))
	return s, nil
}

// Restart discards the score and log of s and starts over from the first
// question. The session ID is kept.
func (e *Engine) Restart(s *SessionState) error {
	if e.bank.Len() == 0 {
		return ErrEmptyBank
	}
	e.initialize(s)
	e.logger.Debug("session restarted", zap.String("session", s.ID))
	return nil
}

func (e *Engine) initialize(s *SessionState) {
	now := e.now()
	s.CurrentIndex = 0
	s.Score = 0
	s.Log = nil
	s.QuestionStartedAt = now
	s.StartedAt = now
	s.FinishedAt = time.Time{}
	s.Finished = false
}

// Current returns the active question. It reports false once s is finished.
func (e *Engine) Current(s *SessionState) (bank.QuestionRecord, bool) {
	if s.Finished {
		return bank.QuestionRecord{}, false
	}
	return e.bank.At(s.CurrentIndex)
}

// Submit grades raw against the active question, records the attempt, and
// advances. Unparseable input and simplifier failures count as incorrect
// answers; the only error is ErrSessionFinished.
func (e *Engine) Submit(s *SessionState, raw string) (*Outcome, error) {
	q, ok := e.Current(s)
	if !ok {
		return nil, ErrSessionFinished
	}

	now := e.now()
	elapsed := now.Sub(s.QuestionStartedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	res := e.checker.Check(raw, q.Target())
	flag, rule := timing.RunClassifiers(e.policy.Classifiers(), q.TimingInput(elapsed))

	rec := AttemptRecord{
		QuestionID:     q.ID,
		RawInput:       raw,
		IsCorrect:      res.Correct(),
		Verdict:        res.Verdict,
		ElapsedSeconds: elapsed,
		TimingFlag:     flag,
		TimingRule:     rule,
		SubmittedAt:    now,
	}
	s.Log = append(s.Log, rec)
	if rec.IsCorrect {
		s.Score++
	}

	e.logger.Debug("answer graded",
		zap.String("session", s.ID),
		zap.String("question", q.ID),
		zap.String("verdict", string(rec.Verdict)),
		zap.Float64("elapsed", elapsed),
		zap.String("flag", string(flag)))
	if flag != timing.FlagNormal {
		e.logger.Info("timing anomaly",
			zap.String("session", s.ID),
			zap.String("question", q.ID),
			zap.String("flag", string(flag)),
			zap.String("rule", rule),
			zap.Float64("elapsed", elapsed),
			zap.Float64("min_expected", q.MinExpectedSeconds))
	}

	e.advance(s, now)

	out := &Outcome{Attempt: rec, Err: res.Err, Finished: s.Finished}
	if !rec.IsCorrect {
		out.Hint = q.Hint
	}
	return out, nil
}

func (e *Engine) advance(s *SessionState, now time.Time) {
	s.CurrentIndex++
	if s.CurrentIndex >= e.bank.Len() {
		s.CurrentIndex = e.bank.Len()
		s.Finished = true
		s.FinishedAt = now
		return
	}
	s.QuestionStartedAt = now
}
