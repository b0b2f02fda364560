package bank

import (
	"fmt"
	"strings"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/symbolic"
)

// Definition is the textual form of a question, as written in the built-in
// bank and in bank files.
type Definition struct {
	ID                 string   `json:"id" yaml:"id"`
	Topic              string   `json:"topic" yaml:"topic"`
	Prompt             string   `json:"prompt" yaml:"prompt"`
	Kind               string   `json:"kind" yaml:"kind"`
	SourceFunction     string   `json:"source_function,omitempty" yaml:"source_function,omitempty"`
	ReferenceAnswer    string   `json:"reference_answer,omitempty" yaml:"reference_answer,omitempty"`
	ReferenceSet       []string `json:"reference_set,omitempty" yaml:"reference_set,omitempty"`
	MinExpectedSeconds float64  `json:"min_expected_seconds" yaml:"min_expected_seconds"`
	SlowMultiplier     float64  `json:"slow_multiplier,omitempty" yaml:"slow_multiplier,omitempty"`
	Hint               string   `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// ValidationError lists every problem found while building a bank.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid question bank: " + strings.Join(e.Problems, "; ")
}

// Build parses and checks defs and returns the bank. Derivative references
// are computed from the source function; a reference written alongside it
// must agree with the computed one. Set answers given with a source
// function must be critical points of it.
func Build(name string, defs []Definition, n *answer.Normalizer) (*Bank, error) {
	var errs []string
	seen := make(map[string]bool, len(defs))
	questions := make([]QuestionRecord, 0, len(defs))

	for i, d := range defs {
		label := d.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		problem := func(format string, args ...any) {
			errs = append(errs, fmt.Sprintf("question %s: ", label)+fmt.Sprintf(format, args...))
		}

		if d.ID == "" {
			problem("missing id")
		} else if seen[d.ID] {
			problem("duplicate id")
		}
		seen[d.ID] = true

		if strings.TrimSpace(d.Prompt) == "" {
			problem("missing prompt")
		}
		if d.MinExpectedSeconds <= 0 {
			problem("min_expected_seconds must be positive, got %v", d.MinExpectedSeconds)
		}
		if d.SlowMultiplier != 0 && d.SlowMultiplier < 1 {
			problem("slow_multiplier must be at least 1, got %v", d.SlowMultiplier)
		}
		kind, err := answer.ParseKind(d.Kind)
		if err != nil {
			problem("%v", err)
			continue
		}

		q := QuestionRecord{
			ID:                 d.ID,
			Topic:              Topic(d.Topic),
			Prompt:             d.Prompt,
			Kind:               kind,
			MinExpectedSeconds: d.MinExpectedSeconds,
			SlowMultiplier:     d.SlowMultiplier,
			Hint:               d.Hint,
		}

		if d.SourceFunction != "" {
			if q.SourceFunction, err = n.Normalize(d.SourceFunction); err != nil {
				problem("source_function: %v", err)
				continue
			}
		}

		switch kind {
		case answer.KindValue:
			if d.ReferenceAnswer == "" {
				problem("VALUE question needs reference_answer")
				continue
			}
			if q.ReferenceAnswer, err = n.Normalize(d.ReferenceAnswer); err != nil {
				problem("reference_answer: %v", err)
				continue
			}

		case answer.KindDerivative:
			if q.SourceFunction == nil {
				problem("DERIVATIVE question needs source_function")
				continue
			}
			q.ReferenceAnswer = symbolic.Diff(q.SourceFunction, n.Variable())
			if d.ReferenceAnswer != "" {
				given, err := n.Normalize(d.ReferenceAnswer)
				if err != nil {
					problem("reference_answer: %v", err)
					continue
				}
				if !answer.IsEquivalent(given, q.ReferenceAnswer) {
					problem("reference_answer %s is not the derivative of %s (%s)", given, q.SourceFunction, q.ReferenceAnswer)
					continue
				}
			}

		case answer.KindSet:
			if len(d.ReferenceSet) == 0 {
				problem("SET question needs reference_set")
				continue
			}
			ok := true
			for _, raw := range d.ReferenceSet {
				e, err := n.Normalize(raw)
				if err != nil {
					problem("reference_set: %v", err)
					ok = false
					break
				}
				q.ReferenceSet = append(q.ReferenceSet, e)
			}
			if !ok {
				continue
			}
			if q.SourceFunction != nil {
				df := symbolic.Diff(q.SourceFunction, n.Variable())
				for _, p := range q.ReferenceSet {
					at := symbolic.Substitute(df, n.Variable(), p)
					if zero, err := symbolic.IsZero(at, symbolic.ModeTrig); err != nil || !zero {
						problem("%s is not a critical point of %s", p, q.SourceFunction)
					}
				}
			}
		}

		questions = append(questions, q)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Problems: errs}
	}
	return newBank(name, questions), nil
}
