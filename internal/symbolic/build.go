package symbolic

import (
	"math/big"
	"sort"
)

const (
	// maxNumericPower bounds exact integer powers of rationals.
	maxNumericPower = 4096

	// maxNumericBits bounds the estimated size of a folded power's
	// numerator and denominator. Nested powers such as (10^1000)^1000
	// stay unevaluated past it.
	maxNumericBits = 4096
)

// Sum returns the simplified sum of terms.
func Sum(terms ...Expr) Expr {
	var flat []Expr
	for _, t := range terms {
		if a, ok := t.(*Add); ok {
			flat = append(flat, a.Terms...)
			continue
		}
		flat = append(flat, t)
	}

	constant := new(big.Rat)
	coeffs := make(map[string]*big.Rat)
	bases := make(map[string]Expr)
	var keys []string
	var infs []*Infinity

	for _, t := range flat {
		switch v := t.(type) {
		case *Undefined:
			return NaN()
		case *Infinity:
			infs = append(infs, v)
		case *Num:
			constant.Add(constant, v.r)
		default:
			c, rest := splitCoeff(t)
			k := rest.String()
			if cur, ok := coeffs[k]; ok {
				cur.Add(cur, c)
				continue
			}
			coeffs[k] = c
			bases[k] = rest
			keys = append(keys, k)
		}
	}

	if len(infs) > 0 {
		return sumInfinities(infs)
	}

	var out []Expr
	for _, k := range keys {
		c := coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		out = append(out, scale(c, bases[k]))
	}
	sort.SliceStable(out, func(i, j int) bool { return termLess(out[i], out[j]) })
	if constant.Sign() != 0 {
		out = append(out, NumFromRat(constant))
	}

	switch len(out) {
	case 0:
		return Int(0)
	case 1:
		return out[0]
	}
	return &Add{Terms: out}
}

// Product returns the simplified product of factors.
func Product(factors ...Expr) Expr {
	var flat []Expr
	for _, f := range factors {
		if m, ok := f.(*Mul); ok {
			flat = append(flat, m.Factors...)
			continue
		}
		flat = append(flat, f)
	}

	coeff := big.NewRat(1, 1)
	exps := make(map[string][]Expr)
	bases := make(map[string]Expr)
	var keys []string
	var infs []*Infinity
	var expArgs []Expr

	for _, f := range flat {
		switch v := f.(type) {
		case *Undefined:
			return NaN()
		case *Infinity:
			infs = append(infs, v)
		case *Num:
			coeff.Mul(coeff, v.r)
		case *Call:
			if v.Fn == FnExp {
				expArgs = append(expArgs, v.Arg)
				continue
			}
			k := v.String()
			if _, ok := bases[k]; !ok {
				bases[k] = v
				keys = append(keys, k)
			}
			exps[k] = append(exps[k], Int(1))
		default:
			b, e := splitPower(f)
			k := b.String()
			if _, ok := bases[k]; !ok {
				bases[k] = b
				keys = append(keys, k)
			}
			exps[k] = append(exps[k], e)
		}
	}

	if len(infs) > 0 {
		if coeff.Sign() == 0 {
			return NaN()
		}
		sign := coeff.Sign()
		for _, in := range infs {
			if in.Sign == 0 {
				return ComplexInfinity()
			}
			sign *= in.Sign
		}
		return &Infinity{Sign: sign}
	}
	if coeff.Sign() == 0 {
		return Int(0)
	}

	var out []Expr
	collect := func(p Expr) Expr {
		switch pv := p.(type) {
		case *Num:
			coeff.Mul(coeff, pv.r)
		case *Mul:
			for _, f := range pv.Factors {
				if n, ok := f.(*Num); ok {
					coeff.Mul(coeff, n.r)
					continue
				}
				out = append(out, f)
			}
		case *Infinity, *Undefined:
			return pv
		default:
			out = append(out, p)
		}
		return nil
	}
	for _, k := range keys {
		if bad := collect(Power(bases[k], Sum(exps[k]...))); bad != nil {
			return Product(NumFromRat(coeff), bad)
		}
	}
	if len(expArgs) > 0 {
		if bad := collect(Apply(FnExp, Sum(expArgs...))); bad != nil {
			return Product(NumFromRat(coeff), bad)
		}
	}
	if coeff.Sign() == 0 {
		return Int(0)
	}
	sort.SliceStable(out, func(i, j int) bool { return factorLess(out[i], out[j]) })

	// A number times a single sum distributes.
	if len(out) == 1 && !isOneRat(coeff) {
		if a, ok := out[0].(*Add); ok {
			scaled := make([]Expr, len(a.Terms))
			for i, t := range a.Terms {
				scaled[i] = Product(NumFromRat(coeff), t)
			}
			return Sum(scaled...)
		}
	}

	if !isOneRat(coeff) {
		out = append([]Expr{NumFromRat(coeff)}, out...)
	}
	switch len(out) {
	case 0:
		return Int(1)
	case 1:
		return out[0]
	}
	return &Mul{Factors: out}
}

// Power returns the simplified base^exp.
func Power(base, exp Expr) Expr {
	if isUndefined(base) || isUndefined(exp) {
		return NaN()
	}
	en, expIsNum := exp.(*Num)
	if expIsNum {
		if en.isZero() {
			return Int(1)
		}
		if en.isOne() {
			return base
		}
	}

	switch b := base.(type) {
	case *Num:
		if b.isOne() {
			return Int(1)
		}
		if expIsNum {
			return powNum(b, en)
		}
	case *Infinity:
		if expIsNum {
			if en.Sign() < 0 {
				return Int(0)
			}
			if b.Sign == 0 {
				return ComplexInfinity()
			}
			if en.IsInt() && en.r.Num().Bit(0) == 0 {
				return PositiveInfinity()
			}
			return &Infinity{Sign: b.Sign}
		}
		return NaN()
	case *Pow:
		if expIsNum && en.IsInt() {
			return Power(b.Base, Product(b.Exp, exp))
		}
	case *Mul:
		if expIsNum && en.IsInt() {
			parts := make([]Expr, len(b.Factors))
			for i, f := range b.Factors {
				parts[i] = Power(f, exp)
			}
			return Product(parts...)
		}
	case *Call:
		if b.Fn == FnExp {
			return Apply(FnExp, Product(b.Arg, exp))
		}
	}
	if _, ok := exp.(*Infinity); ok {
		return NaN()
	}
	return &Pow{Base: base, Exp: exp}
}

// Apply returns the simplified fn(arg). fn must satisfy IsFunction.
func Apply(fn string, arg Expr) Expr {
	if isUndefined(arg) {
		return NaN()
	}
	if inf, ok := arg.(*Infinity); ok {
		return applyInfinity(fn, inf)
	}

	switch fn {
	case FnSin, FnTan, FnAsin, FnAtan, FnSinh, FnTanh:
		if isZeroExpr(arg) {
			return Int(0)
		}
		if neg, ok := negated(arg); ok {
			return Neg(Apply(fn, neg))
		}
	case FnCsc, FnCot:
		if isZeroExpr(arg) {
			return ComplexInfinity()
		}
		if neg, ok := negated(arg); ok {
			return Neg(Apply(fn, neg))
		}
	case FnCos, FnSec, FnCosh:
		if isZeroExpr(arg) {
			return Int(1)
		}
		if neg, ok := negated(arg); ok {
			return Apply(fn, neg)
		}
	case FnAbs:
		if n, ok := arg.(*Num); ok {
			return &Num{r: new(big.Rat).Abs(n.r)}
		}
		if neg, ok := negated(arg); ok {
			return Apply(fn, neg)
		}
	case FnExp:
		if isZeroExpr(arg) {
			return Int(1)
		}
		if c, ok := arg.(*Call); ok && c.Fn == FnLn {
			return c.Arg
		}
	case FnLn:
		if n, ok := arg.(*Num); ok {
			if n.isOne() {
				return Int(0)
			}
			if n.isZero() {
				return &Infinity{Sign: -1}
			}
		}
		if c, ok := arg.(*Call); ok && c.Fn == FnExp {
			return c.Arg
		}
	}

	if fn == FnSin || fn == FnCos {
		if v, ok := trigAtHalfPi(fn, arg); ok {
			return v
		}
	}
	return &Call{Fn: fn, Arg: arg}
}

// Neg returns -e.
func Neg(e Expr) Expr { return Product(Int(-1), e) }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Sum(a, Neg(b)) }

// Quo returns a / b.
func Quo(a, b Expr) Expr { return Product(a, Power(b, Int(-1))) }

// Sqrt returns the principal square root of e.
func Sqrt(e Expr) Expr { return Power(e, Rat(1, 2)) }

func splitCoeff(e Expr) (*big.Rat, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return big.NewRat(1, 1), e
	}
	n, ok := m.Factors[0].(*Num)
	if !ok {
		return big.NewRat(1, 1), e
	}
	rest := m.Factors[1:]
	if len(rest) == 1 {
		return new(big.Rat).Set(n.r), rest[0]
	}
	return new(big.Rat).Set(n.r), &Mul{Factors: append([]Expr(nil), rest...)}
}

func splitPower(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.Base, p.Exp
	}
	return e, Int(1)
}

func scale(c *big.Rat, e Expr) Expr {
	if isOneRat(c) {
		return e
	}
	return Product(NumFromRat(c), e)
}

func sumInfinities(infs []*Infinity) Expr {
	sign := infs[0].Sign
	for _, in := range infs {
		if in.Sign == 0 {
			if len(infs) > 1 {
				return NaN()
			}
			return ComplexInfinity()
		}
		if in.Sign != sign {
			return NaN()
		}
	}
	return &Infinity{Sign: sign}
}

func applyInfinity(fn string, in *Infinity) Expr {
	switch fn {
	case FnExp:
		switch in.Sign {
		case 1:
			return PositiveInfinity()
		case -1:
			return Int(0)
		}
	case FnLn, FnAbs:
		return PositiveInfinity()
	case FnAtan:
		if in.Sign != 0 {
			return Product(Rat(int64(in.Sign), 2), Pi())
		}
	}
	return NaN()
}

// negated returns -e when e carries a negative numeric coefficient.
func negated(e Expr) (Expr, bool) {
	switch v := e.(type) {
	case *Num:
		if v.Sign() < 0 {
			return &Num{r: new(big.Rat).Neg(v.r)}, true
		}
	case *Mul:
		if n, ok := v.Factors[0].(*Num); ok && n.Sign() < 0 {
			return Neg(v), true
		}
	}
	return nil, false
}

// trigAtHalfPi evaluates sin and cos exactly at integer multiples of pi/2.
func trigAtHalfPi(fn string, arg Expr) (Expr, bool) {
	c, ok := piMultiple(arg)
	if !ok {
		return nil, false
	}
	k := new(big.Rat).Mul(c, big.NewRat(2, 1))
	if !k.IsInt() {
		return nil, false
	}
	q := new(big.Int).Mod(k.Num(), big.NewInt(4)).Int64()
	if fn == FnCos {
		q = (q + 1) % 4
	}
	switch q {
	case 0, 2:
		return Int(0), true
	case 1:
		return Int(1), true
	}
	return Int(-1), true
}

// piMultiple reports whether e is c*pi for a rational c.
func piMultiple(e Expr) (*big.Rat, bool) {
	switch v := e.(type) {
	case *Constant:
		if v.Name == "pi" {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(v.Factors) != 2 {
			return nil, false
		}
		n, ok := v.Factors[0].(*Num)
		if !ok {
			return nil, false
		}
		if c, ok := v.Factors[1].(*Constant); ok && c.Name == "pi" {
			return new(big.Rat).Set(n.r), true
		}
	}
	return nil, false
}

func powNum(b, e *Num) Expr {
	if e.IsInt() {
		if !e.r.Num().IsInt64() {
			return &Pow{Base: b, Exp: e}
		}
		n := e.r.Num().Int64()
		if n > maxNumericPower || n < -maxNumericPower {
			return &Pow{Base: b, Exp: e}
		}
		if powTooLarge(b.r, n) {
			return &Pow{Base: b, Exp: e}
		}
		if b.isZero() {
			if n < 0 {
				return ComplexInfinity()
			}
			return Int(0)
		}
		return &Num{r: ratPow(b.r, n)}
	}

	p := e.r.Num()
	q := e.r.Denom()
	if !q.IsInt64() || q.Int64() > 64 || !p.IsInt64() {
		return &Pow{Base: b, Exp: e}
	}
	qi := q.Int64()
	if b.Sign() < 0 && qi%2 == 0 {
		return &Pow{Base: b, Exp: e}
	}
	abs := new(big.Rat).Abs(b.r)
	num, okNum := intRoot(abs.Num(), qi)
	den, okDen := intRoot(abs.Denom(), qi)
	if !okNum || !okDen {
		return &Pow{Base: b, Exp: e}
	}
	root := new(big.Rat).SetFrac(num, den)
	if b.Sign() < 0 {
		root.Neg(root)
	}
	return powNum(&Num{r: root}, Int(p.Int64()))
}

// powTooLarge reports whether r^n would exceed maxNumericBits in its
// numerator or denominator.
func powTooLarge(r *big.Rat, n int64) bool {
	if n < 0 {
		n = -n
	}
	bits := int64(max(r.Num().BitLen(), r.Denom().BitLen()))
	return bits > 1 && bits*n > maxNumericBits
}

func ratPow(r *big.Rat, n int64) *big.Rat {
	neg := n < 0
	if neg {
		n = -n
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// intRoot returns the exact q-th root of a non-negative x if one exists.
func intRoot(x *big.Int, q int64) (*big.Int, bool) {
	if x.Sign() == 0 {
		return new(big.Int), true
	}
	if q == 2 {
		r := new(big.Int).Sqrt(x)
		return r, new(big.Int).Mul(r, r).Cmp(x) == 0
	}
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(x.BitLen()/int(q)+1))
	exp := big.NewInt(q)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		v := new(big.Int).Exp(mid, exp, nil)
		switch v.Cmp(x) {
		case 0:
			return mid, true
		case -1:
			lo = mid.Add(mid, big.NewInt(1))
		default:
			hi = mid.Sub(mid, big.NewInt(1))
		}
	}
	return nil, false
}

func isOneRat(r *big.Rat) bool {
	return r.IsInt() && r.Num().IsInt64() && r.Num().Int64() == 1
}

func isZeroExpr(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.isZero()
}

func isUndefined(e Expr) bool {
	_, ok := e.(*Undefined)
	return ok
}

// termLess orders sum terms by descending degree, then lexically.
func termLess(a, b Expr) bool {
	da, db := degree(a), degree(b)
	if da != db {
		return da > db
	}
	return a.String() < b.String()
}

func degree(e Expr) int64 {
	switch v := e.(type) {
	case *Symbol:
		return 1
	case *Pow:
		if _, ok := v.Base.(*Symbol); ok {
			if n, ok := v.Exp.(*Num); ok && n.IsInt() && n.r.Num().IsInt64() {
				return n.r.Num().Int64()
			}
		}
	case *Mul:
		var d int64
		for _, f := range v.Factors {
			d += degree(f)
		}
		return d
	}
	return 0
}

// factorLess orders product factors: symbols and their powers first, then
// function calls, then sums.
func factorLess(a, b Expr) bool {
	ra, rb := factorRank(a), factorRank(b)
	if ra != rb {
		return ra < rb
	}
	return a.String() < b.String()
}

func factorRank(e Expr) int {
	switch v := e.(type) {
	case *Num:
		return 0
	case *Constant, *Symbol:
		return 1
	case *Call:
		return 2
	case *Pow:
		return factorRank(v.Base)
	case *Add:
		return 3
	}
	return 4
}
