// Package symbolic is a small exact-arithmetic computer algebra core used to
// parse, differentiate and compare single-variable calculus expressions.
//
// Expressions are immutable trees. The constructors in build.go keep every
// tree in a light normal form (flattened sums and products, folded numbers,
// collected like terms) so that String is deterministic and two trees that
// print the same are structurally equal.
package symbolic

import (
	"math/big"
)

// Expr is a node in an expression tree.
type Expr interface {
	String() string
	expr()
}

// Num is an exact rational number.
type Num struct {
	r *big.Rat
}

// Symbol is a free variable such as x.
type Symbol struct {
	Name string
}

// Constant is a named mathematical constant. Only pi is represented this
// way; Euler's number is exp(1).
type Constant struct {
	Name string
}

// Add is a sum of two or more terms.
type Add struct {
	Terms []Expr
}

// Mul is a product of two or more factors. A numeric coefficient, when
// present, is always the first factor.
type Mul struct {
	Factors []Expr
}

// Pow is Base raised to Exp.
type Pow struct {
	Base Expr
	Exp  Expr
}

// Call is a named function applied to a single argument.
type Call struct {
	Fn  string
	Arg Expr
}

// Infinity is a signed (+1, -1) or unsigned (0) infinity.
type Infinity struct {
	Sign int
}

// Undefined is the result of indeterminate forms such as oo - oo.
type Undefined struct{}

func (*Num) expr()       {}
func (*Symbol) expr()    {}
func (*Constant) expr()  {}
func (*Add) expr()       {}
func (*Mul) expr()       {}
func (*Pow) expr()       {}
func (*Call) expr()      {}
func (*Infinity) expr()  {}
func (*Undefined) expr() {}

// Function names understood by the engine.
const (
	FnSin  = "sin"
	FnCos  = "cos"
	FnTan  = "tan"
	FnCot  = "cot"
	FnSec  = "sec"
	FnCsc  = "csc"
	FnAsin = "asin"
	FnAcos = "acos"
	FnAtan = "atan"
	FnSinh = "sinh"
	FnCosh = "cosh"
	FnTanh = "tanh"
	FnExp  = "exp"
	FnLn   = "ln"
	FnAbs  = "abs"
)

var knownFunctions = map[string]bool{
	FnSin: true, FnCos: true, FnTan: true, FnCot: true, FnSec: true, FnCsc: true,
	FnAsin: true, FnAcos: true, FnAtan: true,
	FnSinh: true, FnCosh: true, FnTanh: true,
	FnExp: true, FnLn: true, FnAbs: true,
}

// IsFunction reports whether name is a function the engine can apply.
func IsFunction(name string) bool {
	return knownFunctions[name]
}

// Int returns the integer n as an expression.
func Int(n int64) *Num {
	return &Num{r: new(big.Rat).SetInt64(n)}
}

// Rat returns the fraction p/q as an expression. q must be non-zero.
func Rat(p, q int64) *Num {
	return &Num{r: big.NewRat(p, q)}
}

// NumFromRat wraps a copy of r.
func NumFromRat(r *big.Rat) *Num {
	return &Num{r: new(big.Rat).Set(r)}
}

// Rat returns a copy of the underlying rational.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.r) }

// Sign returns -1, 0 or +1.
func (n *Num) Sign() int { return n.r.Sign() }

// IsInt reports whether n is an integer.
func (n *Num) IsInt() bool { return n.r.IsInt() }

func (n *Num) isZero() bool { return n.r.Sign() == 0 }

func (n *Num) isOne() bool { return n.r.IsInt() && n.r.Num().IsInt64() && n.r.Num().Int64() == 1 }

// Var returns the symbol with the given name.
func Var(name string) *Symbol { return &Symbol{Name: name} }

// Pi returns the constant pi.
func Pi() *Constant { return &Constant{Name: "pi"} }

// E returns Euler's number.
func E() Expr { return &Call{Fn: FnExp, Arg: Int(1)} }

// ComplexInfinity returns the unsigned infinity (zoo).
func ComplexInfinity() *Infinity { return &Infinity{Sign: 0} }

// PositiveInfinity returns +oo.
func PositiveInfinity() *Infinity { return &Infinity{Sign: 1} }

// NaN returns the undefined value.
func NaN() *Undefined { return &Undefined{} }

// Equal reports whether a and b are structurally identical.
func Equal(a, b Expr) bool {
	return a.String() == b.String()
}

// IsFinite reports whether e contains no infinity or undefined node.
func IsFinite(e Expr) bool {
	finite := true
	Walk(e, func(n Expr) bool {
		switch n.(type) {
		case *Infinity, *Undefined:
			finite = false
		}
		return finite
	})
	return finite
}

// FreeOf reports whether e does not mention the variable name.
func FreeOf(e Expr, name string) bool {
	free := true
	Walk(e, func(n Expr) bool {
		if s, ok := n.(*Symbol); ok && s.Name == name {
			free = false
		}
		return free
	})
	return free
}

// Walk visits e and its children depth-first until visit returns false.
func Walk(e Expr, visit func(Expr) bool) bool {
	if !visit(e) {
		return false
	}
	switch v := e.(type) {
	case *Add:
		for _, t := range v.Terms {
			if !Walk(t, visit) {
				return false
			}
		}
	case *Mul:
		for _, f := range v.Factors {
			if !Walk(f, visit) {
				return false
			}
		}
	case *Pow:
		return Walk(v.Base, visit) && Walk(v.Exp, visit)
	case *Call:
		return Walk(v.Arg, visit)
	}
	return true
}
