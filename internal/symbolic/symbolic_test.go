package symbolic

import (
	"errors"
	"math"
	"testing"
	"time"
)

var implicit = ParseOptions{ImplicitMultiplication: true}

func mustParse(t *testing.T, s string) Expr {
	t.Helper()
	e, err := Parse(s, implicit)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	return e
}

func TestParse_String(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x^2 + 2x + 1", "x^2 + 2*x + 1"},
		{"3x^4 - 2x + 7", "3*x^4 - 2*x + 7"},
		{"2*3", "6"},
		{"x*x", "x^2"},
		{"x/x", "1"},
		{"0.5", "1/2"},
		{"-(x)", "-x"},
		{"e^x", "exp(x)"},
		{"x**3", "x^3"},
		{"sin(x)/cos(x)", "sin(x)/cos(x)"},
		{"2(x + 1)", "2*x + 2"},
		{"sin(-x)", "-sin(x)"},
		{"cos(-x)", "cos(x)"},
		{"sin(pi)", "0"},
		{"cos(pi)", "-1"},
		{"ln(e^x)", "x"},
		{"sqrt(4)", "2"},
		{"8^(1/3)", "2"},
		{"1/0", "zoo"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.in).String()
		if got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_ImplicitMultiplication(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2x", "2*x"},
		{"x sin(x)", "x*sin(x)"},
		{"xsin(x)", "x*sin(x)"},
		{"(x+1)(x-1)", "(x + 1)*(x - 1)"},
		{"sin x", "sin(x)"},
		{"x^2e^x", "x^2*exp(x)"},
		{"sin^2(x)", "sin(x)^2"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.in).String()
		if got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		opts ParseOptions
	}{
		{"", implicit},
		{"   ", implicit},
		{"(x+1", implicit},
		{"x+", implicit},
		{"x)", implicit},
		{"foo(x)", implicit},
		{"2x", ParseOptions{}},
		{"sin x", ParseOptions{}},
		{"x $ 2", implicit},
		{"log(x, 2, 3)", implicit},
		{"sin^x(x)", implicit},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in, tt.opts)
		if err == nil {
			t.Errorf("Parse(%q) = nil error, want error", tt.in)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) error type = %T, want *SyntaxError", tt.in, err)
		}
	}
}

func TestParse_Constants(t *testing.T) {
	opts := ParseOptions{
		ImplicitMultiplication: true,
		Constants:              map[string]Expr{"zoo": ComplexInfinity()},
	}
	e, err := Parse("zoo", opts)
	if err != nil {
		t.Fatalf("Parse(zoo) error: %v", err)
	}
	if got := e.String(); got != "zoo" {
		t.Errorf("Parse(zoo) = %q, want zoo", got)
	}
	if IsFinite(e) {
		t.Error("IsFinite(zoo) = true, want false")
	}
	if _, err := Parse("zoo", implicit); err == nil {
		t.Error("Parse(zoo) without constant table succeeded, want error")
	}
}

func TestParse_LogWithBase(t *testing.T) {
	e := mustParse(t, "log(8, 2)")
	want := Quo(Apply(FnLn, Int(8)), Apply(FnLn, Int(2)))
	if !Equal(e, want) {
		t.Errorf("log(8, 2) = %s, want %s", e, want)
	}
	zero, err := IsZero(Sub(e, Int(3)), ModeAlgebraic)
	if err != nil {
		t.Fatalf("IsZero error: %v", err)
	}
	if !zero {
		t.Error("log(8, 2) - 3 should simplify to zero")
	}
}

func TestString_RoundTrip(t *testing.T) {
	inputs := []string{
		"x^2 + 2x + 1",
		"sin(x)/cos(x)",
		"-3sin(x) + 5/sin(x)^2",
		"x exp(x)",
		"sqrt(2x + 1)",
		"(x + 1)^(1/3)",
		"1/(x - 1)^2",
		"ln(x^2 + 1)",
		"2x/(x^2 + 1)",
		"-x/2",
		"pi x",
		"x^x",
	}
	for _, in := range inputs {
		e1 := mustParse(t, in)
		e2, err := Parse(e1.String(), implicit)
		if err != nil {
			t.Errorf("re-parse of %q (%q) failed: %v", in, e1.String(), err)
			continue
		}
		if !Equal(e1, e2) {
			t.Errorf("round trip of %q: %q != %q", in, e1.String(), e2.String())
		}
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		algebraic bool
		trig      bool
	}{
		{"cancel rational", "(x^2 - 9)/(x - 3) - (x + 3)", true, true},
		{"cube difference", "(x^3 - 1)/(x - 1) - (x^2 + x + 1)", true, true},
		{"tan quotient", "tan(x) - sin(x)/cos(x)", true, true},
		{"csc reciprocal", "csc(x)^2 - 1/sin(x)^2", true, true},
		{"pythagorean", "sin(x)^2 + cos(x)^2 - 1", false, true},
		{"double angle", "sin(2x) - 2sin(x)cos(x)", false, true},
		{"cos double angle", "cos(2x) - (1 - 2sin(x)^2)", false, true},
		{"angle shift", "sin(x + pi) + sin(x)", false, true},
		{"cot identity", "1 + cot(x)^2 - csc(x)^2", false, true},
		{"log power", "ln(x^2) - 2ln(x)", true, true},
		{"log product", "ln(2x) - ln(2) - ln(x)", true, true},
		{"radical content", "sqrt(4x) - 2sqrt(x)", true, true},
		{"radical constant", "sqrt(8) - 2sqrt(2)", true, true},
		{"radical square", "sqrt(x + 1)*sqrt(x + 1) - x - 1", true, true},
		{"special angle", "sin(pi/6) - 1/2", true, true},
		{"cosh sinh", "cosh(x)^2 - sinh(x)^2 - 1", true, true},
		{"general power", "x^x - exp(x ln(x))", true, true},
		{"not zero", "x^2 - x", false, false},
		{"not zero trig", "sin(x) - cos(x)", false, false},
		{"sqrt of square", "sqrt(x^2) - x", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustParse(t, tt.expr)
			got, err := IsZero(e, ModeAlgebraic)
			if err != nil {
				t.Fatalf("IsZero(algebraic) error: %v", err)
			}
			if got != tt.algebraic {
				t.Errorf("IsZero(%q, algebraic) = %v, want %v", tt.expr, got, tt.algebraic)
			}
			got, err = IsZero(e, ModeTrig)
			if err != nil {
				t.Fatalf("IsZero(trig) error: %v", err)
			}
			if got != tt.trig {
				t.Errorf("IsZero(%q, trig) = %v, want %v", tt.expr, got, tt.trig)
			}
		})
	}
}

func TestIsZero_Errors(t *testing.T) {
	if _, err := IsZero(ComplexInfinity(), ModeAlgebraic); !errors.Is(err, ErrNonFinite) {
		t.Errorf("IsZero(zoo) error = %v, want ErrNonFinite", err)
	}
	e := mustParse(t, "1/(sin(x)^2 + cos(x)^2 - 1)")
	if _, err := IsZero(e, ModeTrig); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("IsZero(1/0 identity) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := IsZero(mustParse(t, "sin(100x)"), ModeTrig); !errors.Is(err, ErrTooComplex) {
		t.Errorf("IsZero(sin(100x)) error = %v, want ErrTooComplex", err)
	}
}

func TestParse_NestedPowersStayUnevaluated(t *testing.T) {
	done := make(chan Expr, 1)
	go func() {
		e, _ := Parse("((10^1000)^1000)^1000", implicit)
		done <- e
	}()

	var e Expr
	select {
	case e = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("parsing nested powers did not finish")
	}
	if _, ok := e.(*Pow); !ok {
		t.Fatalf("Parse = %T, want an unevaluated *Pow", e)
	}
	if _, err := IsZero(Sub(e, Int(1)), ModeAlgebraic); !errors.Is(err, ErrTooComplex) {
		t.Errorf("IsZero error = %v, want ErrTooComplex", err)
	}

	if got := mustParse(t, "(2^10)^3").String(); got != "1073741824" {
		t.Errorf("small nested power = %q, want 1073741824", got)
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		f    string
		want string
	}{
		{"3x^4 - 2x + 7", "12x^3 - 2"},
		{"x^2 e^x", "2x e^x + x^2 e^x"},
		{"sin(3x^2)", "6x cos(3x^2)"},
		{"x sin(x)", "sin(x) + x cos(x)"},
		{"(x^2 + 1)/(x - 1)", "(x^2 - 2x - 1)/(x - 1)^2"},
		{"3cos(x) - 5cot(x)", "-3sin(x) + 5csc(x)^2"},
		{"ln(x^2 + 1)", "2x/(x^2 + 1)"},
		{"sqrt(2x + 1)", "1/sqrt(2x + 1)"},
		{"tan(x)", "1 + tan(x)^2"},
		{"atan(x)", "1/(1 + x^2)"},
		{"x^x", "x^x (ln(x) + 1)"},
		{"2^x", "2^x ln(2)"},
	}
	for _, tt := range tests {
		got := Diff(mustParse(t, tt.f), "x")
		want := mustParse(t, tt.want)
		zero, err := IsZero(Sub(got, want), ModeTrig)
		if err != nil {
			t.Errorf("d/dx %s: IsZero error: %v", tt.f, err)
			continue
		}
		if !zero {
			t.Errorf("d/dx %s = %s, want %s", tt.f, got, want)
		}
	}
}

func TestDiff_Polynomial(t *testing.T) {
	got := Diff(mustParse(t, "x^3"), "x").String()
	if got != "3*x^2" {
		t.Errorf("d/dx x^3 = %q, want 3*x^2", got)
	}
	if got := Diff(Pi(), "x").String(); got != "0" {
		t.Errorf("d/dx pi = %q, want 0", got)
	}
}

func TestSubstitute(t *testing.T) {
	f := mustParse(t, "x^3 - 3x")
	tests := []struct {
		at   int64
		want string
	}{
		{1, "-2"},
		{-1, "2"},
		{2, "2"},
	}
	for _, tt := range tests {
		got := Substitute(f, "x", Int(tt.at)).String()
		if got != tt.want {
			t.Errorf("f(%d) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestEval(t *testing.T) {
	got, err := Eval(mustParse(t, "x^2 + sin(pi/2)"), map[string]float64{"x": 3})
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if math.Abs(got-10) > 1e-12 {
		t.Errorf("Eval = %v, want 10", got)
	}
	if _, err := Eval(Var("y"), nil); err == nil {
		t.Error("Eval of unbound variable should fail")
	}
}

func TestInfinityArithmetic(t *testing.T) {
	tests := []struct {
		got  Expr
		want string
	}{
		{Sum(PositiveInfinity(), Int(1)), "oo"},
		{Sum(PositiveInfinity(), Neg(PositiveInfinity())), "nan"},
		{Product(Int(-2), PositiveInfinity()), "-oo"},
		{Product(Int(0), PositiveInfinity()), "nan"},
		{Quo(Int(1), Int(0)), "zoo"},
		{Apply(FnExp, &Infinity{Sign: -1}), "0"},
	}
	for i, tt := range tests {
		if got := tt.got.String(); got != tt.want {
			t.Errorf("case %d: got %q, want %q", i, got, tt.want)
		}
	}
}
