// Package timing flags answers whose response time is implausible for the
// question: submitted too fast to have been worked out, or so slowly that
// outside help is likely.
package timing

import (
	"errors"
	"fmt"
)

// Flag labels an attempt's response time.
type Flag string

const (
	FlagNormal  Flag = "NORMAL"
	FlagTooFast Flag = "TOO_FAST"
	FlagTooSlow Flag = "TOO_SLOW"
)

// DefaultSlowMultiplier is how many times the minimum expected time an
// answer may take before it is flagged as too slow.
const DefaultSlowMultiplier = 10.0

// DefaultFastFactor scales the minimum expected time for the too-fast test.
const DefaultFastFactor = 1.0

// Policy holds the thresholds used to classify response times.
type Policy struct {
	// FastFactor scales the minimum; elapsed < min*FastFactor is too fast.
	FastFactor float64

	// SlowMultiplier: elapsed > min*SlowMultiplier is too slow.
	SlowMultiplier float64
}

// DefaultPolicy returns the standard thresholds (1x and 10x the minimum).
func DefaultPolicy() Policy {
	return Policy{FastFactor: DefaultFastFactor, SlowMultiplier: DefaultSlowMultiplier}
}

// Validate checks that the thresholds leave a non-empty normal band.
func (p Policy) Validate() error {
	if p.FastFactor <= 0 {
		return fmt.Errorf("fast factor must be positive, got %v", p.FastFactor)
	}
	if p.SlowMultiplier <= 0 {
		return fmt.Errorf("slow multiplier must be positive, got %v", p.SlowMultiplier)
	}
	if p.SlowMultiplier < p.FastFactor {
		return errors.New("slow multiplier must not be below the fast factor")
	}
	return nil
}

// Input is what classifiers look at.
type Input struct {
	ElapsedSeconds     float64
	MinExpectedSeconds float64

	// SlowMultiplier overrides the policy multiplier when positive.
	SlowMultiplier float64
}

// Classify labels an attempt. Both bounds are strict: an attempt taking
// exactly the minimum, or exactly the slow limit, is NORMAL.
func (p Policy) Classify(in Input) Flag {
	flag, _ := RunClassifiers(p.Classifiers(), in)
	return flag
}

// Classifiers returns the rules for p in priority order.
func (p Policy) Classifiers() []Classifier {
	return []Classifier{
		&TooFastClassifier{Factor: p.FastFactor},
		&TooSlowClassifier{Multiplier: p.SlowMultiplier},
	}
}
