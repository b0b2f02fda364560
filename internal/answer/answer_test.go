package answer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/calcexam/internal/symbolic"
)

func mustNormalize(t *testing.T, n *Normalizer, s string) symbolic.Expr {
	t.Helper()
	e, err := n.Normalize(s)
	require.NoError(t, err, "Normalize(%q)", s)
	return e
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(Options{})
	tests := []struct {
		in   string
		want string
	}{
		{"3x^2", "3*x^2"},
		{"y' = 3x^2", "3*x^2"},
		{"f'(x) = 2x", "2*x"},
		{"dy/dx = 2x", "2*x"},
		{"sen(x)", "sin(x)"},
		{"-3sen(x)", "-3*sin(x)"},
		{"senh(x)", "sinh(x)"},
		{"tg(x)", "tan(x)"},
		{"ctg(x)", "cot(x)"},
		{"cosec(x)", "csc(x)"},
		{"arctan(x)", "atan(x)"},
		{"arctg(x)", "atan(x)"},
		{"arcsen(x)", "asin(x)"},
		{"2·x", "2*x"},
		{"x²", "x^2"},
		{"−3", "-3"},
		{"√(x)", "sqrt(x)"},
		{"Sin(X)", "sin(x)"},
		{"zoo", "zoo"},
		{"oo", "oo"},
		{"ln(0)", "-oo"},
		{"  -3  ", "-3"},
	}
	for _, tt := range tests {
		got := mustNormalize(t, n, tt.in)
		assert.Equal(t, tt.want, got.String(), "Normalize(%q)", tt.in)
	}
}

func TestNormalize_Errors(t *testing.T) {
	n := NewNormalizer(Options{})
	for _, in := range []string{"", "   ", "3x+", "(x", "inf", "∞", "y' = ", "0/0", "x + 0/0"} {
		_, err := n.Normalize(in)
		require.Error(t, err, "Normalize(%q)", in)
		var ne *NormalizationError
		assert.True(t, errors.As(err, &ne), "Normalize(%q) error type %T", in, err)
		assert.Equal(t, in, ne.Input)
	}
}

func TestNormalize_InfinityAliases(t *testing.T) {
	n := NewNormalizer(Options{AcceptInfinityAliases: true})
	for _, in := range []string{"oo", "inf", "infinity", "∞"} {
		got := mustNormalize(t, n, in)
		assert.Equal(t, "oo", got.String(), "Normalize(%q)", in)
	}
	assert.Equal(t, "-oo", mustNormalize(t, n, "-inf").String())
	assert.Equal(t, "zoo", mustNormalize(t, n, "zoo").String())
}

func TestNormalize_PrintedFormsRenormalize(t *testing.T) {
	n := NewNormalizer(Options{})
	inputs := []string{
		"ln(0)", "-oo", "1/0", "zoo", "oo",
		"3x^2", "-3sen(x) + 5/sen(x)^2", "sqrt(2x + 1)", "e^x(x^2 + 2x)",
		"(x^2-9)/(x-3)", "arctg(x)", "log(x, 2)",
	}
	for _, in := range inputs {
		first := mustNormalize(t, n, in)
		again, err := n.Normalize(first.String())
		if !assert.NoError(t, err, "re-normalize %q (from %q)", first.String(), in) {
			continue
		}
		ok, err := Equivalent(again, first)
		assert.NoError(t, err)
		assert.True(t, ok, "Normalize(%q) = %q re-normalizes to %q", in, first.String(), again.String())
	}
}

func TestNormalize_SyntaxErrorPosition(t *testing.T) {
	n := NewNormalizer(Options{})
	_, err := n.Normalize("x + $")
	var ne *NormalizationError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, 4, ne.Pos)
	var se *symbolic.SyntaxError
	assert.True(t, errors.As(err, &se), "NormalizationError should unwrap to SyntaxError")
}

func TestEquivalent(t *testing.T) {
	n := NewNormalizer(Options{})
	tests := []struct {
		user string
		ref  string
		want bool
	}{
		{"-3", "-3", true},
		{"6", "(x^2-9)/(x-3) - x + 3", true},
		{"9", "(x^2-9)/(x-3) - x + 3", false},
		{"2x", "x + x", true},
		{"-3sin(x) + 5csc(x)^2", "-3sin(x) + 5/sin(x)^2", true},
		{"5/sin(x)^2 - 3sin(x)", "-3sin(x) + 5csc(x)^2", true},
		{"5(1 + cot(x)^2) - 3sin(x)", "-3sin(x) + 5csc(x)^2", true},
		{"e^x(x^2 + 2x)", "2x e^x + x^2 e^x", true},
		{"zoo", "zoo", true},
		{"0", "zoo", false},
		{"1/2", "0.5", true},
		{"sin(x)", "cos(x)", false},
	}
	for _, tt := range tests {
		got, err := Equivalent(mustNormalize(t, n, tt.user), mustNormalize(t, n, tt.ref))
		assert.NoError(t, err, "Equivalent(%q, %q)", tt.user, tt.ref)
		assert.Equal(t, tt.want, got, "Equivalent(%q, %q)", tt.user, tt.ref)
	}
}

func TestEquivalent_SimplifierFailure(t *testing.T) {
	n := NewNormalizer(Options{})

	// Numeric sampling settles answers the simplifier cannot.
	got, err := Equivalent(mustNormalize(t, n, "sin(100x)"), mustNormalize(t, n, "cos(x)"))
	assert.False(t, got)
	assert.NoError(t, err)

	got, err = Equivalent(mustNormalize(t, n, "2sin(50x)cos(50x)"), mustNormalize(t, n, "sin(100x)"))
	assert.False(t, got)
	var ee *EquivalenceEvaluationError
	require.True(t, errors.As(err, &ee))
	assert.True(t, errors.Is(err, symbolic.ErrTooComplex))
}

func TestEquivalent_NestedPowers(t *testing.T) {
	n := NewNormalizer(Options{})
	got, err := Equivalent(mustNormalize(t, n, "((10^1000)^1000)^1000"), symbolic.Int(-3))
	assert.False(t, got)
	assert.True(t, errors.Is(err, symbolic.ErrTooComplex), "err = %v", err)
}

func TestChecker_Value(t *testing.T) {
	n := NewNormalizer(Options{})
	c := NewChecker(n, nil)
	target := Target{Kind: KindValue, Reference: symbolic.Int(-3)}

	tests := []struct {
		in   string
		want Verdict
	}{
		{"-3", VerdictCorrect},
		{"−3", VerdictCorrect},
		{"-6/2", VerdictCorrect},
		{"3", VerdictIncorrect},
		{"3x+", VerdictSyntaxError},
		{"", VerdictSyntaxError},
	}
	for _, tt := range tests {
		res := c.Check(tt.in, target)
		assert.Equal(t, tt.want, res.Verdict, "Check(%q)", tt.in)
	}
}

func TestChecker_ComplexInfinity(t *testing.T) {
	target := Target{Kind: KindValue, Reference: symbolic.ComplexInfinity()}

	strict := NewChecker(NewNormalizer(Options{}), nil)
	assert.Equal(t, VerdictCorrect, strict.Check("zoo", target).Verdict)
	assert.Equal(t, VerdictSyntaxError, strict.Check("∞", target).Verdict)
	assert.Equal(t, VerdictIncorrect, strict.Check("oo", target).Verdict)
	assert.Equal(t, VerdictIncorrect, strict.Check("0", target).Verdict)

	lenient := NewChecker(NewNormalizer(Options{AcceptInfinityAliases: true}), nil)
	assert.Equal(t, VerdictIncorrect, lenient.Check("∞", target).Verdict)
	assert.Equal(t, VerdictCorrect, lenient.Check("zoo", target).Verdict)
}

func TestChecker_Derivative(t *testing.T) {
	n := NewNormalizer(Options{})
	c := NewChecker(n, nil)
	f := mustNormalize(t, n, "3cos(x) - 5cot(x)")
	target := Target{Kind: KindDerivative, Reference: symbolic.Diff(f, "x")}

	for _, in := range []string{
		"-3sin(x) + 5csc(x)^2",
		"-3sen(x)+5/sen(x)^2",
		"y' = 5csc(x)^2 - 3sin(x)",
	} {
		assert.Equal(t, VerdictCorrect, c.Check(in, target).Verdict, "Check(%q)", in)
	}
	assert.Equal(t, VerdictIncorrect, c.Check("-3sin(x) - 5csc(x)^2", target).Verdict)
}

func TestChecker_Set(t *testing.T) {
	n := NewNormalizer(Options{})
	c := NewChecker(n, nil)
	target := Target{Kind: KindSet, Set: []symbolic.Expr{symbolic.Int(-1), symbolic.Int(1)}}

	tests := []struct {
		in   string
		want Verdict
	}{
		{"{-1, 1}", VerdictCorrect},
		{"1; -1", VerdictCorrect},
		{"x = -1, x = 1", VerdictCorrect},
		{"1, 1, -1", VerdictCorrect},
		{"1", VerdictIncorrect},
		{"-1, 1, 2", VerdictIncorrect},
		{"1, (", VerdictSyntaxError},
		{"{}", VerdictSyntaxError},
	}
	for _, tt := range tests {
		res := c.Check(tt.in, target)
		assert.Equal(t, tt.want, res.Verdict, "Check(%q)", tt.in)
	}
}

func TestChecker_UnknownKind(t *testing.T) {
	c := NewChecker(NewNormalizer(Options{}), nil)
	res := c.Check("1", Target{Kind: "ESSAY"})
	assert.Equal(t, VerdictIncorrect, res.Verdict)
	assert.Error(t, res.Err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" derivative ")
	require.NoError(t, err)
	assert.Equal(t, KindDerivative, k)

	_, err = ParseKind("essay")
	assert.Error(t, err)
}

func TestSplitSet(t *testing.T) {
	assert.Equal(t, []string{"log(x, 2)", "3"}, SplitSet("log(x, 2), 3"))
	assert.Equal(t, []string{"-1", "1"}, SplitSet(" { -1 ; 1 } "))
	assert.Empty(t, SplitSet("{ }"))
}
