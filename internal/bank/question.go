// Package bank holds the ordered, read-only set of exam questions and the
// reference answers they are graded against.
package bank

import (
	"math/rand/v2"
	"strings"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/symbolic"
	"github.com/abhisek/calcexam/internal/timing"
)

// Topic groups questions for display.
type Topic string

const (
	TopicLimits         Topic = "limits"
	TopicDerivatives    Topic = "derivatives"
	TopicCriticalPoints Topic = "critical_points"
)

// QuestionRecord is one exam question. Records are immutable once the bank
// is built.
type QuestionRecord struct {
	ID     string
	Topic  Topic
	Prompt string

	// SourceFunction is the function a DERIVATIVE or SET question is
	// about. Nil for limits.
	SourceFunction symbolic.Expr

	// ReferenceAnswer is the expected value for VALUE and DERIVATIVE
	// questions. For DERIVATIVE it is computed from SourceFunction.
	ReferenceAnswer symbolic.Expr

	// ReferenceSet is the expected set for SET questions.
	ReferenceSet []symbolic.Expr

	Kind               answer.Kind
	MinExpectedSeconds float64

	// SlowMultiplier overrides the policy's too-slow multiplier when
	// positive.
	SlowMultiplier float64

	Hint string
}

// Target returns what answers to q are graded against.
func (q QuestionRecord) Target() answer.Target {
	return answer.Target{Kind: q.Kind, Reference: q.ReferenceAnswer, Set: q.ReferenceSet}
}

// TimingInput returns the classifier input for an attempt on q.
func (q QuestionRecord) TimingInput(elapsedSeconds float64) timing.Input {
	return timing.Input{
		ElapsedSeconds:     elapsedSeconds,
		MinExpectedSeconds: q.MinExpectedSeconds,
		SlowMultiplier:     q.SlowMultiplier,
	}
}

// ReferenceString renders the expected answer.
func (q QuestionRecord) ReferenceString() string {
	if q.Kind == answer.KindSet {
		parts := make([]string, len(q.ReferenceSet))
		for i, e := range q.ReferenceSet {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	if q.ReferenceAnswer == nil {
		return ""
	}
	return q.ReferenceAnswer.String()
}

// Bank is an ordered collection of questions.
type Bank struct {
	name      string
	questions []QuestionRecord
	byID      map[string]int
}

func newBank(name string, questions []QuestionRecord) *Bank {
	b := &Bank{
		name:      name,
		questions: questions,
		byID:      make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		b.byID[q.ID] = i
	}
	return b
}

// Name returns the bank's display name.
func (b *Bank) Name() string { return b.name }

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// At returns the question at index i.
func (b *Bank) At(i int) (QuestionRecord, bool) {
	if i < 0 || i >= len(b.questions) {
		return QuestionRecord{}, false
	}
	return b.questions[i], true
}

// ByID returns the question with the given ID.
func (b *Bank) ByID(id string) (QuestionRecord, bool) {
	i, ok := b.byID[id]
	if !ok {
		return QuestionRecord{}, false
	}
	return b.questions[i], true
}

// All returns the questions in exam order.
func (b *Bank) All() []QuestionRecord {
	out := make([]QuestionRecord, len(b.questions))
	copy(out, b.questions)
	return out
}

// ByTopic returns the questions of one topic in exam order.
func (b *Bank) ByTopic(t Topic) []QuestionRecord {
	var out []QuestionRecord
	for _, q := range b.questions {
		if q.Topic == t {
			out = append(out, q)
		}
	}
	return out
}

// Shuffled returns a copy of b with its questions in a pseudo-random order
// fixed by seed. A zero seed returns b unchanged.
func (b *Bank) Shuffled(seed uint64) *Bank {
	if seed == 0 {
		return b
	}
	qs := b.All()
	r := rand.New(rand.NewPCG(seed, seed>>1|1))
	r.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	return newBank(b.name, qs)
}
