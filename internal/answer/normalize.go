package answer

import (
	"errors"
	"regexp"
	"strings"

	"github.com/abhisek/calcexam/internal/symbolic"
)

// DefaultVariable is the free variable of every question in the bank.
const DefaultVariable = "x"

// Options configures a Normalizer.
type Options struct {
	// Variable is the free symbol accepted in answers. Defaults to x.
	Variable string

	// AcceptInfinityAliases maps inf, infinity and ∞ to +oo. The printed
	// forms zoo (unsigned infinity) and oo are always accepted.
	AcceptInfinityAliases bool
}

// rule is one textual rewrite applied before parsing.
type rule struct {
	name  string
	apply func(string) string
}

// Normalizer turns raw learner text into an expression.
type Normalizer struct {
	opts  Options
	rules []rule
	parse symbolic.ParseOptions
}

var (
	answerPrefix = regexp.MustCompile(`^\s*(?:y\s*'|f\s*'\s*\(\s*x\s*\)|dy\s*/\s*dx|y|f\s*\(\s*x\s*\)|x)\s*=\s*`)
	infinityWord = regexp.MustCompile(`\b(?:infinity|inf)\b`)

	unicodeOperators = strings.NewReplacer(
		"×", "*",
		"·", "*",
		"⋅", "*",
		"÷", "/",
		"−", "-",
		"–", "-",
		"²", "^2",
		"³", "^3",
		"√", "sqrt",
		"π", "pi",
		"′", "'",
	)

	// Regional and long-form spellings of function names. Longer
	// spellings come first so they win over their suffixes.
	functionAliases = strings.NewReplacer(
		"arcsin", "asin",
		"arccos", "acos",
		"arctan", "atan",
		"arctg", "atan",
		"cosec", "csc",
		"cotg", "cot",
		"ctg", "cot",
		"tg", "tan",
	)
)

// NewNormalizer returns a Normalizer for opts.
func NewNormalizer(opts Options) *Normalizer {
	if opts.Variable == "" {
		opts.Variable = DefaultVariable
	}
	opts.Variable = strings.ToLower(opts.Variable)

	constants := map[string]symbolic.Expr{
		"zoo": symbolic.ComplexInfinity(),
		"oo":  symbolic.PositiveInfinity(),
	}

	n := &Normalizer{
		opts: opts,
		parse: symbolic.ParseOptions{
			Variables:              []string{opts.Variable},
			Constants:              constants,
			ImplicitMultiplication: true,
		},
	}
	n.rules = []rule{
		{"trim", strings.TrimSpace},
		{"lowercase", strings.ToLower},
		{"unicode", unicodeOperators.Replace},
		{"prefix", func(s string) string { return answerPrefix.ReplaceAllString(s, "") }},
		{"power", func(s string) string { return strings.ReplaceAll(s, "^", "**") }},
		{"sine", func(s string) string { return strings.ReplaceAll(s, "sen", "sin") }},
		{"aliases", functionAliases.Replace},
	}
	if opts.AcceptInfinityAliases {
		n.rules = append(n.rules, rule{"infinity", func(s string) string {
			s = strings.ReplaceAll(s, "∞", "oo")
			return infinityWord.ReplaceAllString(s, "oo")
		}})
	}
	return n
}

// Variable returns the free symbol answers are written in.
func (n *Normalizer) Variable() string { return n.opts.Variable }

// Rewrite applies the textual rules and returns the text handed to the
// parser.
func (n *Normalizer) Rewrite(raw string) string {
	s := raw
	for _, r := range n.rules {
		s = r.apply(s)
	}
	return s
}

// Normalize parses raw into an expression. Failures are returned as
// *NormalizationError.
func (n *Normalizer) Normalize(raw string) (symbolic.Expr, error) {
	s := n.Rewrite(raw)
	if s == "" {
		return nil, &NormalizationError{Input: raw, Reason: "empty answer", Pos: -1}
	}
	e, err := symbolic.Parse(s, n.parse)
	if err != nil {
		var se *symbolic.SyntaxError
		if errors.As(err, &se) {
			return nil, &NormalizationError{Input: raw, Reason: se.Msg, Pos: se.Pos, Err: err}
		}
		return nil, &NormalizationError{Input: raw, Reason: err.Error(), Pos: -1, Err: err}
	}
	if isUndefined(e) {
		return nil, &NormalizationError{Input: raw, Reason: "undefined value", Pos: -1}
	}
	return e, nil
}

// isUndefined reports whether e contains an indeterminate form such as 0/0.
func isUndefined(e symbolic.Expr) bool {
	found := false
	symbolic.Walk(e, func(n symbolic.Expr) bool {
		if _, ok := n.(*symbolic.Undefined); ok {
			found = true
		}
		return !found
	})
	return found
}
