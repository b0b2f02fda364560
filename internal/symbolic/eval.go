package symbolic

import (
	"fmt"
	"math"
)

// Substitute replaces every occurrence of the variable name with value and
// re-simplifies the result.
func Substitute(e Expr, name string, value Expr) Expr {
	switch v := e.(type) {
	case *Symbol:
		if v.Name == name {
			return value
		}
		return v
	case *Add:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Substitute(t, name, value)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = Substitute(f, name, value)
		}
		return Product(factors...)
	case *Pow:
		return Power(Substitute(v.Base, name, value), Substitute(v.Exp, name, value))
	case *Call:
		return Apply(v.Fn, Substitute(v.Arg, name, value))
	}
	return e
}

// Eval evaluates e numerically with the given variable bindings.
func Eval(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		f, _ := v.r.Float64()
		return f, nil
	case *Symbol:
		x, ok := env[v.Name]
		if !ok {
			return 0, fmt.Errorf("unbound variable %q", v.Name)
		}
		return x, nil
	case *Constant:
		if v.Name == "pi" {
			return math.Pi, nil
		}
		return 0, fmt.Errorf("unknown constant %q", v.Name)
	case *Add:
		var sum float64
		for _, t := range v.Terms {
			x, err := Eval(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod := 1.0
		for _, f := range v.Factors {
			x, err := Eval(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := Eval(v.Base, env)
		if err != nil {
			return 0, err
		}
		x, err := Eval(v.Exp, env)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, x), nil
	case *Call:
		u, err := Eval(v.Arg, env)
		if err != nil {
			return 0, err
		}
		return evalFunction(v.Fn, u)
	case *Infinity:
		if v.Sign < 0 {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case *Undefined:
		return math.NaN(), nil
	}
	return 0, fmt.Errorf("cannot evaluate %T", e)
}

func evalFunction(fn string, u float64) (float64, error) {
	switch fn {
	case FnSin:
		return math.Sin(u), nil
	case FnCos:
		return math.Cos(u), nil
	case FnTan:
		return math.Tan(u), nil
	case FnCot:
		return 1 / math.Tan(u), nil
	case FnSec:
		return 1 / math.Cos(u), nil
	case FnCsc:
		return 1 / math.Sin(u), nil
	case FnAsin:
		return math.Asin(u), nil
	case FnAcos:
		return math.Acos(u), nil
	case FnAtan:
		return math.Atan(u), nil
	case FnSinh:
		return math.Sinh(u), nil
	case FnCosh:
		return math.Cosh(u), nil
	case FnTanh:
		return math.Tanh(u), nil
	case FnExp:
		return math.Exp(u), nil
	case FnLn:
		return math.Log(u), nil
	case FnAbs:
		return math.Abs(u), nil
	}
	return 0, fmt.Errorf("unknown function %q", fn)
}
