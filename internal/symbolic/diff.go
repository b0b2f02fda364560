package symbolic

// Diff returns the derivative of e with respect to the variable name.
func Diff(e Expr, name string) Expr {
	switch v := e.(type) {
	case *Num, *Constant:
		return Int(0)
	case *Symbol:
		if v.Name == name {
			return Int(1)
		}
		return Int(0)
	case *Add:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Diff(t, name)
		}
		return Sum(terms...)
	case *Mul:
		terms := make([]Expr, 0, len(v.Factors))
		for i, f := range v.Factors {
			df := Diff(f, name)
			if isZeroExpr(df) {
				continue
			}
			parts := make([]Expr, 0, len(v.Factors))
			parts = append(parts, v.Factors[:i]...)
			parts = append(parts, df)
			parts = append(parts, v.Factors[i+1:]...)
			terms = append(terms, Product(parts...))
		}
		return Sum(terms...)
	case *Pow:
		return diffPow(v, name)
	case *Call:
		du := Diff(v.Arg, name)
		if isZeroExpr(du) {
			return Int(0)
		}
		return Product(outerDerivative(v.Fn, v.Arg), du)
	case *Infinity, *Undefined:
		return NaN()
	}
	return NaN()
}

func diffPow(p *Pow, name string) Expr {
	baseFree := FreeOf(p.Base, name)
	expFree := FreeOf(p.Exp, name)
	switch {
	case baseFree && expFree:
		return Int(0)
	case expFree:
		// d(u^n) = n*u^(n-1)*u'
		return Product(p.Exp, Power(p.Base, Sum(p.Exp, Int(-1))), Diff(p.Base, name))
	case baseFree:
		// d(a^v) = a^v*ln(a)*v'
		return Product(p, Apply(FnLn, p.Base), Diff(p.Exp, name))
	}
	// d(u^v) = u^v*(v'*ln(u) + v*u'/u)
	return Product(p, Sum(
		Product(Diff(p.Exp, name), Apply(FnLn, p.Base)),
		Product(p.Exp, Diff(p.Base, name), Power(p.Base, Int(-1))),
	))
}

// outerDerivative returns f'(u) for f(u).
func outerDerivative(fn string, u Expr) Expr {
	one := Int(1)
	switch fn {
	case FnSin:
		return Apply(FnCos, u)
	case FnCos:
		return Neg(Apply(FnSin, u))
	case FnTan:
		return Power(Apply(FnSec, u), Int(2))
	case FnCot:
		return Neg(Power(Apply(FnCsc, u), Int(2)))
	case FnSec:
		return Product(Apply(FnSec, u), Apply(FnTan, u))
	case FnCsc:
		return Neg(Product(Apply(FnCsc, u), Apply(FnCot, u)))
	case FnAsin:
		return Power(Sub(one, Power(u, Int(2))), Rat(-1, 2))
	case FnAcos:
		return Neg(Power(Sub(one, Power(u, Int(2))), Rat(-1, 2)))
	case FnAtan:
		return Power(Sum(one, Power(u, Int(2))), Int(-1))
	case FnSinh:
		return Apply(FnCosh, u)
	case FnCosh:
		return Apply(FnSinh, u)
	case FnTanh:
		return Power(Apply(FnCosh, u), Int(-2))
	case FnExp:
		return Apply(FnExp, u)
	case FnLn:
		return Power(u, Int(-1))
	case FnAbs:
		return Quo(u, Apply(FnAbs, u))
	}
	return NaN()
}
