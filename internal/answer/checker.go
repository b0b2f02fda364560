package answer

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/calcexam/internal/symbolic"
)

// Kind is how a question's answer is graded.
type Kind string

const (
	KindValue      Kind = "VALUE"
	KindDerivative Kind = "DERIVATIVE"
	KindSet        Kind = "SET"
)

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindValue, KindDerivative, KindSet:
		return k, nil
	}
	return "", fmt.Errorf("unknown answer kind %q", s)
}

// Verdict classifies a graded attempt.
type Verdict string

const (
	VerdictCorrect     Verdict = "correct"
	VerdictIncorrect   Verdict = "incorrect"
	VerdictSyntaxError Verdict = "syntax_error"
)

// Target is what an answer is graded against.
type Target struct {
	Kind      Kind
	Reference symbolic.Expr

	// Set holds the expected elements for KindSet.
	Set []symbolic.Expr
}

// Result is the outcome of grading one answer.
type Result struct {
	Verdict Verdict

	// Parsed holds the normalized answer, one entry per set element.
	Parsed []symbolic.Expr

	// Err is a *NormalizationError for syntax errors or an
	// *EquivalenceEvaluationError when the simplifier gave up.
	Err error
}

// Correct reports whether the verdict is correct.
func (r Result) Correct() bool { return r.Verdict == VerdictCorrect }

// Strategy grades one kind of answer.
type Strategy interface {
	Grade(n *Normalizer, raw string, t Target) Result
}

// Checker routes answers to the strategy for their kind.
type Checker struct {
	normalizer *Normalizer
	strategies map[Kind]Strategy
	logger     *zap.Logger
}

// NewChecker returns a Checker with the built-in strategies. A nil logger
// disables logging.
func NewChecker(n *Normalizer, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		normalizer: n,
		logger:     logger,
		strategies: map[Kind]Strategy{
			KindValue:      exprStrategy{},
			KindDerivative: exprStrategy{},
			KindSet:        setStrategy{},
		},
	}
}

// Normalizer returns the normalizer used for learner input.
func (c *Checker) Normalizer() *Normalizer { return c.normalizer }

// Check grades raw against t. It never panics.
func (c *Checker) Check(raw string, t Target) Result {
	s, ok := c.strategies[t.Kind]
	if !ok {
		return Result{Verdict: VerdictIncorrect, Err: fmt.Errorf("no strategy for answer kind %q", t.Kind)}
	}
	res := s.Grade(c.normalizer, raw, t)

	var ee *EquivalenceEvaluationError
	if errors.As(res.Err, &ee) {
		c.logger.Warn("equivalence check gave up",
			zap.String("input", raw),
			zap.String("kind", string(t.Kind)),
			zap.Error(res.Err))
	}
	return res
}

// exprStrategy grades single-expression answers (limits and derivatives).
type exprStrategy struct{}

func (exprStrategy) Grade(n *Normalizer, raw string, t Target) Result {
	e, err := n.Normalize(raw)
	if err != nil {
		return Result{Verdict: VerdictSyntaxError, Err: err}
	}
	ok, err := Equivalent(e, t.Reference)
	if ok {
		return Result{Verdict: VerdictCorrect, Parsed: []symbolic.Expr{e}}
	}
	return Result{Verdict: VerdictIncorrect, Parsed: []symbolic.Expr{e}, Err: err}
}

// setStrategy grades comma- or semicolon-separated sets of values. Order
// and duplicates do not matter; every expected element must be present and
// nothing else.
type setStrategy struct{}

func (setStrategy) Grade(n *Normalizer, raw string, t Target) Result {
	parts := SplitSet(raw)
	if len(parts) == 0 {
		return Result{Verdict: VerdictSyntaxError, Err: &NormalizationError{Input: raw, Reason: "empty answer", Pos: -1}}
	}

	parsed := make([]symbolic.Expr, 0, len(parts))
	for _, p := range parts {
		e, err := n.Normalize(p)
		if err != nil {
			return Result{Verdict: VerdictSyntaxError, Err: err}
		}
		parsed = append(parsed, e)
	}

	matched := make([]bool, len(t.Set))
	var evalErr error
	for _, e := range parsed {
		found := false
		for i, want := range t.Set {
			ok, err := Equivalent(e, want)
			if err != nil && evalErr == nil {
				evalErr = err
			}
			if ok {
				matched[i] = true
				found = true
			}
		}
		if !found {
			return Result{Verdict: VerdictIncorrect, Parsed: parsed, Err: evalErr}
		}
	}
	for _, m := range matched {
		if !m {
			return Result{Verdict: VerdictIncorrect, Parsed: parsed, Err: evalErr}
		}
	}
	return Result{Verdict: VerdictCorrect, Parsed: parsed}
}

// SplitSet splits a set answer such as "{-1, 1}" or "x = -1; x = 1" on
// top-level commas and semicolons.
func SplitSet(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	var parts []string
	depth := 0
	start := 0
	flush := func(end int) {
		if p := strings.TrimSpace(s[start:end]); p != "" {
			parts = append(parts, p)
		}
	}
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',', ';':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return parts
}
