package answer

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/calcexam/internal/symbolic"
)

// simplifyModes are tried in order; the first that proves the difference
// is zero wins.
var simplifyModes = []symbolic.Mode{symbolic.ModeAlgebraic, symbolic.ModeTrig}

// samplePoints are the values free symbols take when an expression is too
// complex to simplify and the answers are compared numerically instead.
var samplePoints = []float64{-2.31, -0.73, 0.41, 1.17, 2.59, 3.83}

// Equivalent reports whether user and reference are mathematically the
// same expression. Structurally identical expressions are equivalent even
// when they are not finite (zoo == zoo). When the simplifier gives up, the
// two sides are sampled numerically: a clear mismatch yields false with no
// error, otherwise false with an *EquivalenceEvaluationError. A panic also
// yields an *EquivalenceEvaluationError.
func Equivalent(user, reference symbolic.Expr) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = &EquivalenceEvaluationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if symbolic.Equal(user, reference) {
		return true, nil
	}
	if !symbolic.IsFinite(user) || !symbolic.IsFinite(reference) {
		return false, nil
	}

	diff := symbolic.Sub(user, reference)
	for _, mode := range simplifyModes {
		zero, err := symbolic.IsZero(diff, mode)
		if errors.Is(err, symbolic.ErrTooComplex) && numericallyDifferent(user, reference) {
			return false, nil
		}
		if err != nil {
			return false, &EquivalenceEvaluationError{Mode: mode.String(), Err: err}
		}
		if zero {
			return true, nil
		}
	}
	return false, nil
}

// numericallyDifferent reports whether a and b disagree at two or more
// sample points where both evaluate to finite values. Constant expressions
// are evaluated once.
func numericallyDifferent(a, b symbolic.Expr) bool {
	names := freeSymbols(a, b)
	rounds := len(samplePoints)
	needed := 2
	if len(names) == 0 {
		rounds, needed = 1, 1
	}

	env := make(map[string]float64, len(names))
	mismatches := 0
	for i := range rounds {
		// Each symbol gets a different point so x - y cannot cancel.
		for j, name := range names {
			env[name] = samplePoints[(i+j)%len(samplePoints)]
		}
		va, errA := symbolic.Eval(a, env)
		vb, errB := symbolic.Eval(b, env)
		if errA != nil || errB != nil || !finite(va) || !finite(vb) {
			continue
		}
		scale := max(1, math.Abs(va), math.Abs(vb))
		if math.Abs(va-vb) > 1e-6*scale {
			mismatches++
		}
	}
	return mismatches >= needed
}

func freeSymbols(exprs ...symbolic.Expr) []string {
	seen := map[string]bool{}
	var names []string
	for _, e := range exprs {
		symbolic.Walk(e, func(n symbolic.Expr) bool {
			if s, ok := n.(*symbolic.Symbol); ok && !seen[s.Name] {
				seen[s.Name] = true
				names = append(names, s.Name)
			}
			return true
		})
	}
	return names
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsEquivalent is Equivalent without the error detail.
func IsEquivalent(user, reference symbolic.Expr) bool {
	ok, _ := Equivalent(user, reference)
	return ok
}
