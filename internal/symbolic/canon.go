package symbolic

import (
	"errors"
	"math/big"
	"strconv"
)

// Mode selects the rewrite rules used when testing for zero.
type Mode int

const (
	// ModeAlgebraic combines rational functions over the expression atoms.
	ModeAlgebraic Mode = iota
	// ModeTrig additionally expands sums and multiples of angles and uses
	// sin^2 + cos^2 = 1.
	ModeTrig
)

func (m Mode) String() string {
	if m == ModeTrig {
		return "trig"
	}
	return "algebraic"
}

var (
	ErrNonFinite      = errors.New("expression is not finite")
	ErrTooComplex     = errors.New("expression too complex to simplify")
	ErrDivisionByZero = errors.New("division by zero")
)

const (
	maxCanonTerms    = 2048
	maxCanonPower    = 64
	maxAngleMultiple = 12
	maxCanonSteps    = 200000
	maxReduceRounds  = 128
	maxTrialDivisor  = 1000
)

// IsZero reports whether e simplifies to zero under the given mode.
func IsZero(e Expr, mode Mode) (bool, error) {
	r, err := newCanon(mode).toRat(e)
	if err != nil {
		return false, err
	}
	return r.num.isZero(), nil
}

type canon struct {
	mode  Mode
	atoms map[string]*atom
	steps int
}

func newCanon(mode Mode) *canon {
	return &canon{mode: mode, atoms: make(map[string]*atom)}
}

func (c *canon) intern(a *atom) *atom {
	if got, ok := c.atoms[a.key]; ok {
		return got
	}
	c.atoms[a.key] = a
	return a
}

func (c *canon) constRat(r *big.Rat) *ratfunc {
	return &ratfunc{num: constPoly(r), den: constPoly(big.NewRat(1, 1))}
}

func (c *canon) one() *ratfunc  { return c.constRat(big.NewRat(1, 1)) }
func (c *canon) zero() *ratfunc { return c.constRat(new(big.Rat)) }

func (c *canon) atomRat(a *atom) *ratfunc {
	return &ratfunc{
		num: monoPoly(big.NewRat(1, 1), monomial{{a: a, e: 1}}),
		den: constPoly(big.NewRat(1, 1)),
	}
}

func (c *canon) polyRat(p *poly) (*ratfunc, error) {
	return c.normalize(p, constPoly(big.NewRat(1, 1)))
}

func (c *canon) toRat(e Expr) (*ratfunc, error) {
	c.steps++
	if c.steps > maxCanonSteps {
		return nil, ErrTooComplex
	}

	switch v := e.(type) {
	case *Num:
		return c.constRat(v.r), nil
	case *Symbol:
		return c.atomRat(c.intern(&atom{key: v.Name, kind: atomSymbol})), nil
	case *Constant:
		return c.atomRat(c.intern(&atom{key: v.Name, kind: atomPi})), nil
	case *Add:
		acc := c.zero()
		for _, t := range v.Terms {
			r, err := c.toRat(t)
			if err != nil {
				return nil, err
			}
			if acc, err = c.add(acc, r); err != nil {
				return nil, err
			}
		}
		return acc, nil
	case *Mul:
		acc := c.one()
		for _, f := range v.Factors {
			r, err := c.toRat(f)
			if err != nil {
				return nil, err
			}
			if acc, err = c.mul(acc, r); err != nil {
				return nil, err
			}
		}
		return acc, nil
	case *Pow:
		return c.powRat(v)
	case *Call:
		return c.callRat(v)
	}
	return nil, ErrNonFinite
}

func (c *canon) add(a, b *ratfunc) (*ratfunc, error) {
	if a.den.key() == b.den.key() {
		return c.normalize(a.num.add(b.num), a.den)
	}
	l, err := a.num.mul(b.den)
	if err != nil {
		return nil, err
	}
	r, err := b.num.mul(a.den)
	if err != nil {
		return nil, err
	}
	den, err := a.den.mul(b.den)
	if err != nil {
		return nil, err
	}
	return c.normalize(l.add(r), den)
}

func (c *canon) sub(a, b *ratfunc) (*ratfunc, error) {
	return c.add(a, &ratfunc{num: b.num.neg(), den: b.den})
}

func (c *canon) mul(a, b *ratfunc) (*ratfunc, error) {
	num, err := a.num.mul(b.num)
	if err != nil {
		return nil, err
	}
	den, err := a.den.mul(b.den)
	if err != nil {
		return nil, err
	}
	return c.normalize(num, den)
}

func (c *canon) inv(a *ratfunc) (*ratfunc, error) {
	if a.num.isZero() {
		return nil, ErrDivisionByZero
	}
	return c.normalize(a.den, a.num)
}

func (c *canon) pow(a *ratfunc, n int) (*ratfunc, error) {
	if n > maxCanonPower || n < -maxCanonPower {
		return nil, ErrTooComplex
	}
	if n < 0 {
		inv, err := c.inv(a)
		if err != nil {
			return nil, err
		}
		return c.pow(inv, -n)
	}
	result := c.one()
	base := a
	for n > 0 {
		var err error
		if n&1 == 1 {
			if result, err = c.mul(result, base); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if base, err = c.mul(base, base); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (c *canon) scaleRat(a *ratfunc, k *big.Rat) *ratfunc {
	return &ratfunc{num: a.num.scale(k), den: a.den}
}

// normalize reduces num and den, cancels common monomials and constant
// ratios, and makes the denominator monic.
func (c *canon) normalize(num, den *poly) (*ratfunc, error) {
	var err error
	if num, err = c.reduce(num); err != nil {
		return nil, err
	}
	if den, err = c.reduce(den); err != nil {
		return nil, err
	}
	if den.isZero() {
		return nil, ErrDivisionByZero
	}
	if num.isZero() {
		return c.zero(), nil
	}

	if g := gcdMonomial(num, den); len(g) > 0 {
		num = num.divMono(g)
		den = den.divMono(g)
	}

	if k, ok := den.constant(); ok {
		return &ratfunc{num: num.scale(new(big.Rat).Inv(k)), den: constPoly(big.NewRat(1, 1))}, nil
	}
	if k, ok := proportional(num, den); ok {
		return c.constRat(k), nil
	}

	lead := new(big.Rat).Inv(den.sorted()[0].c)
	return &ratfunc{num: num.scale(lead), den: den.scale(lead)}, nil
}

// proportional reports whether num = k*den for a rational k.
func proportional(num, den *poly) (*big.Rat, bool) {
	if len(num.terms) != len(den.terms) {
		return nil, false
	}
	nt, dt := num.sorted(), den.sorted()
	if nt[0].m.key() != dt[0].m.key() {
		return nil, false
	}
	k := new(big.Rat).Quo(nt[0].c, dt[0].c)
	if den.scale(k).key() != num.key() {
		return nil, false
	}
	return k, true
}

// reduce applies the root relation atom^q = radicand and, in trig mode,
// sin^2 = 1 - cos^2 until no term changes.
func (c *canon) reduce(p *poly) (*poly, error) {
	for round := 0; ; round++ {
		if round > maxReduceRounds {
			return nil, ErrTooComplex
		}
		changed := false
		out := newPoly()
		for _, t := range p.terms {
			repl, ok, err := c.rewriteTerm(t)
			if err != nil {
				return nil, err
			}
			if !ok {
				out.addTerm(t.c, t.m)
				continue
			}
			changed = true
			for _, rt := range repl.terms {
				out.addTerm(rt.c, rt.m)
			}
		}
		if !changed {
			return out, nil
		}
		if len(out.terms) > maxCanonTerms {
			return nil, ErrTooComplex
		}
		p = out
	}
}

func (c *canon) rewriteTerm(t *term) (*poly, bool, error) {
	for i, f := range t.m {
		switch {
		case f.a.kind == atomRoot && f.e >= f.a.index:
			p, err := monoPoly(t.c, t.m.without(i, f.a.index)).mul(f.a.radicand)
			return p, true, err
		case c.mode == ModeTrig && f.a.kind == atomSin && f.e >= 2:
			cosAtom := c.intern(&atom{key: "cos(" + f.a.arg.key() + ")", kind: atomCos, arg: f.a.arg})
			oneMinusCos2 := constPoly(big.NewRat(1, 1))
			oneMinusCos2.addTerm(big.NewRat(-1, 1), monomial{{a: cosAtom, e: 2}})
			p, err := monoPoly(t.c, t.m.without(i, 2)).mul(oneMinusCos2)
			return p, true, err
		}
	}
	return nil, false, nil
}

func (c *canon) powRat(p *Pow) (*ratfunc, error) {
	n, ok := p.Exp.(*Num)
	if !ok {
		// b^v = exp(v*ln(b))
		return c.toRat(Apply(FnExp, Product(p.Exp, Apply(FnLn, p.Base))))
	}
	base, err := c.toRat(p.Base)
	if err != nil {
		return nil, err
	}
	if n.IsInt() {
		if !n.r.Num().IsInt64() {
			return nil, ErrTooComplex
		}
		return c.pow(base, int(n.r.Num().Int64()))
	}

	num, den := n.r.Num(), n.r.Denom()
	if !num.IsInt64() || !den.IsInt64() || den.Int64() > maxCanonPower {
		return nil, ErrTooComplex
	}
	q := int(den.Int64())
	rn, err := c.root(base.num, q)
	if err != nil {
		return nil, err
	}
	rd, err := c.root(base.den, q)
	if err != nil {
		return nil, err
	}
	if rd, err = c.inv(rd); err != nil {
		return nil, err
	}
	r, err := c.mul(rn, rd)
	if err != nil {
		return nil, err
	}
	return c.pow(r, int(num.Int64()))
}

// root returns the q-th root of p. Constant content is pulled out so that
// sqrt(4*x) and 2*sqrt(x) share an atom.
func (c *canon) root(p *poly, q int) (*ratfunc, error) {
	if k, ok := p.constant(); ok {
		return c.rootConst(k, q)
	}
	lead := p.sorted()[0].c
	content := new(big.Rat).Abs(lead)
	rest := p.scale(new(big.Rat).Inv(content))
	if rest.isOne() {
		return c.rootConst(content, q)
	}
	outside, err := c.rootConst(content, q)
	if err != nil {
		return nil, err
	}
	a := c.intern(&atom{
		key:      "root" + strconv.Itoa(q) + "(" + rest.key() + ")",
		kind:     atomRoot,
		radicand: rest,
		index:    q,
	})
	return c.mul(outside, c.atomRat(a))
}

func (c *canon) rootConst(k *big.Rat, q int) (*ratfunc, error) {
	if k.Sign() == 0 {
		return c.zero(), nil
	}
	if k.Sign() < 0 && q%2 == 0 {
		return nil, ErrNonFinite
	}
	sign := big.NewRat(int64(k.Sign()), 1)
	abs := new(big.Rat).Abs(k)

	// root(a/b) = root(a*b^(q-1))/b
	b := new(big.Int).Set(abs.Denom())
	a := new(big.Int).Mul(abs.Num(), new(big.Int).Exp(b, big.NewInt(int64(q-1)), nil))
	out, in := extractPower(a, q)
	coeff := new(big.Rat).SetFrac(out, b)
	coeff.Mul(coeff, sign)
	if in.Cmp(big.NewInt(1)) == 0 {
		return c.constRat(coeff), nil
	}
	radicand := constPoly(new(big.Rat).SetInt(in))
	ra := c.intern(&atom{
		key:      "root" + strconv.Itoa(q) + "(" + in.String() + ")",
		kind:     atomRoot,
		radicand: radicand,
		index:    q,
	})
	return c.scaleRat(c.atomRat(ra), coeff), nil
}

// extractPower splits n = out^q * in with in free of small q-th powers.
func extractPower(n *big.Int, q int) (*big.Int, *big.Int) {
	out := big.NewInt(1)
	in := new(big.Int).Set(n)
	if r, ok := intRoot(in, int64(q)); ok {
		return r, big.NewInt(1)
	}
	for d := int64(2); d <= maxTrialDivisor; d++ {
		dq := new(big.Int).Exp(big.NewInt(d), big.NewInt(int64(q)), nil)
		if dq.Cmp(in) > 0 {
			break
		}
		for new(big.Int).Mod(in, dq).Sign() == 0 {
			in.Quo(in, dq)
			out.Mul(out, big.NewInt(d))
		}
	}
	return out, in
}

func (c *canon) callRat(v *Call) (*ratfunc, error) {
	a := v.Arg
	switch v.Fn {
	case FnTan:
		return c.toRat(Quo(Apply(FnSin, a), Apply(FnCos, a)))
	case FnCot:
		return c.toRat(Quo(Apply(FnCos, a), Apply(FnSin, a)))
	case FnSec:
		return c.toRat(Power(Apply(FnCos, a), Int(-1)))
	case FnCsc:
		return c.toRat(Power(Apply(FnSin, a), Int(-1)))
	case FnSinh:
		return c.toRat(Quo(Sub(Apply(FnExp, a), Apply(FnExp, Neg(a))), Int(2)))
	case FnCosh:
		return c.toRat(Quo(Sum(Apply(FnExp, a), Apply(FnExp, Neg(a))), Int(2)))
	case FnTanh:
		return c.toRat(Quo(Sub(Apply(FnExp, a), Apply(FnExp, Neg(a))), Sum(Apply(FnExp, a), Apply(FnExp, Neg(a)))))
	case FnAcos:
		return c.toRat(Sub(Quo(Pi(), Int(2)), Apply(FnAsin, a)))
	}

	r, err := c.toRat(a)
	if err != nil {
		return nil, err
	}
	switch v.Fn {
	case FnSin, FnCos:
		return c.trig(v.Fn, r)
	case FnExp:
		return c.exp(r)
	case FnLn:
		return c.ln(r)
	}
	return c.atomRat(c.intern(&atom{key: v.Fn + "(" + r.key() + ")", kind: atomOpaque, arg: r})), nil
}

func (c *canon) trig(fn string, r *ratfunc) (*ratfunc, error) {
	if r.num.isZero() {
		if fn == FnSin {
			return c.zero(), nil
		}
		return c.one(), nil
	}
	if k, ok := piCoefficient(r); ok {
		if v, ok := trigAtSpecialAngle(fn, k); ok {
			return c.toRat(v)
		}
	}

	if c.mode == ModeTrig && r.den.isOne() {
		terms := r.num.sorted()
		if len(terms) > 1 {
			first, err := c.polyRat(monoPoly(terms[0].c, terms[0].m))
			if err != nil {
				return nil, err
			}
			restPoly := newPoly()
			for _, t := range terms[1:] {
				restPoly.addTerm(t.c, t.m)
			}
			rest, err := c.polyRat(restPoly)
			if err != nil {
				return nil, err
			}
			return c.angleSum(fn, first, rest)
		}
		t := terms[0]
		if t.c.IsInt() && t.c.Num().IsInt64() {
			n := t.c.Num().Int64()
			if n <= -2 || n >= 2 {
				if n < -maxAngleMultiple || n > maxAngleMultiple {
					return nil, ErrTooComplex
				}
				return c.angleMultiple(fn, monoPoly(big.NewRat(1, 1), t.m), int(n))
			}
		}
	}

	// sin(-u) = -sin(u), cos(-u) = cos(u); the representative has a
	// positive leading coefficient.
	if r.num.sorted()[0].c.Sign() < 0 {
		neg := &ratfunc{num: r.num.neg(), den: r.den}
		v, err := c.trig(fn, neg)
		if err != nil {
			return nil, err
		}
		if fn == FnSin {
			return c.scaleRat(v, big.NewRat(-1, 1)), nil
		}
		return v, nil
	}

	kind := atomCos
	if fn == FnSin {
		kind = atomSin
	}
	return c.atomRat(c.intern(&atom{key: fn + "(" + r.key() + ")", kind: kind, arg: r})), nil
}

func (c *canon) angleSum(fn string, u, v *ratfunc) (*ratfunc, error) {
	su, err := c.trig(FnSin, u)
	if err != nil {
		return nil, err
	}
	cu, err := c.trig(FnCos, u)
	if err != nil {
		return nil, err
	}
	sv, err := c.trig(FnSin, v)
	if err != nil {
		return nil, err
	}
	cv, err := c.trig(FnCos, v)
	if err != nil {
		return nil, err
	}
	if fn == FnSin {
		// sin(u+v) = sin(u)cos(v) + cos(u)sin(v)
		a, err := c.mul(su, cv)
		if err != nil {
			return nil, err
		}
		b, err := c.mul(cu, sv)
		if err != nil {
			return nil, err
		}
		return c.add(a, b)
	}
	// cos(u+v) = cos(u)cos(v) - sin(u)sin(v)
	a, err := c.mul(cu, cv)
	if err != nil {
		return nil, err
	}
	b, err := c.mul(su, sv)
	if err != nil {
		return nil, err
	}
	return c.sub(a, b)
}

func (c *canon) angleMultiple(fn string, unit *poly, n int) (*ratfunc, error) {
	negative := n < 0
	if negative {
		n = -n
	}
	u, err := c.polyRat(unit)
	if err != nil {
		return nil, err
	}
	s1, err := c.trig(FnSin, u)
	if err != nil {
		return nil, err
	}
	c1, err := c.trig(FnCos, u)
	if err != nil {
		return nil, err
	}
	s, co := s1, c1
	for i := 2; i <= n; i++ {
		a, err := c.mul(s, c1)
		if err != nil {
			return nil, err
		}
		b, err := c.mul(co, s1)
		if err != nil {
			return nil, err
		}
		ns, err := c.add(a, b)
		if err != nil {
			return nil, err
		}
		a, err = c.mul(co, c1)
		if err != nil {
			return nil, err
		}
		b, err = c.mul(s, s1)
		if err != nil {
			return nil, err
		}
		nc, err := c.sub(a, b)
		if err != nil {
			return nil, err
		}
		s, co = ns, nc
	}
	if fn == FnCos {
		return co, nil
	}
	if negative {
		return c.scaleRat(s, big.NewRat(-1, 1)), nil
	}
	return s, nil
}

// trigAtSpecialAngle evaluates sin and cos exactly at multiples of pi/6
// and pi/4.
func trigAtSpecialAngle(fn string, k *big.Rat) (Expr, bool) {
	steps := new(big.Rat).Mul(k, big.NewRat(12, 1))
	if !steps.IsInt() {
		return nil, false
	}
	j := new(big.Int).Mod(steps.Num(), big.NewInt(24)).Int64()
	if fn == FnCos {
		j = (j + 6) % 24
	}
	sign := int64(1)
	if j >= 12 {
		sign = -1
		j -= 12
	}
	var v Expr
	switch j {
	case 0, 12:
		v = Int(0)
	case 2, 10:
		v = Rat(1, 2)
	case 3, 9:
		v = Product(Rat(1, 2), Sqrt(Int(2)))
	case 4, 8:
		v = Product(Rat(1, 2), Sqrt(Int(3)))
	case 6:
		v = Int(1)
	default:
		return nil, false
	}
	return Product(Int(sign), v), true
}

// piCoefficient reports whether r is k*pi for a rational k.
func piCoefficient(r *ratfunc) (*big.Rat, bool) {
	if !r.den.isOne() || len(r.num.terms) != 1 {
		return nil, false
	}
	t := r.num.sorted()[0]
	if len(t.m) != 1 || t.m[0].a.kind != atomPi || t.m[0].e != 1 {
		return nil, false
	}
	return new(big.Rat).Set(t.c), true
}

// exp splits exp(a + b) into exp(a)*exp(b) and folds integer multiples
// into powers of a shared atom.
func (c *canon) exp(r *ratfunc) (*ratfunc, error) {
	if r.num.isZero() {
		return c.one(), nil
	}
	if !r.den.isOne() {
		return c.atomRat(c.intern(&atom{key: "exp(" + r.key() + ")", kind: atomExp, arg: r})), nil
	}

	result := c.one()
	for _, t := range r.num.sorted() {
		f, err := c.expTerm(t)
		if err != nil {
			return nil, err
		}
		if result, err = c.mul(result, f); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *canon) expTerm(t *term) (*ratfunc, error) {
	// exp(k*ln(u)) = u^k
	if len(t.m) == 1 && t.m[0].a.kind == atomLn && t.m[0].e == 1 && t.c.IsInt() {
		if k := t.c.Num(); k.IsInt64() && k.Int64() >= -maxCanonPower && k.Int64() <= maxCanonPower {
			return c.pow(t.m[0].a.arg, int(k.Int64()))
		}
	}

	p := t.c.Num()
	unit := monoPoly(new(big.Rat).SetFrac(big.NewInt(1), t.c.Denom()), t.m)
	if !p.IsInt64() || p.Int64() > maxCanonPower || p.Int64() < -maxCanonPower {
		whole := monoPoly(t.c, t.m)
		arg := &ratfunc{num: whole, den: constPoly(big.NewRat(1, 1))}
		return c.atomRat(c.intern(&atom{key: "exp(" + whole.key() + ")", kind: atomExp, arg: arg})), nil
	}
	arg := &ratfunc{num: unit, den: constPoly(big.NewRat(1, 1))}
	a := c.intern(&atom{key: "exp(" + unit.key() + ")", kind: atomExp, arg: arg})
	return c.pow(c.atomRat(a), int(p.Int64()))
}

// ln splits logarithms of products, quotients and powers.
func (c *canon) ln(r *ratfunc) (*ratfunc, error) {
	n, err := c.lnPoly(r.num)
	if err != nil {
		return nil, err
	}
	d, err := c.lnPoly(r.den)
	if err != nil {
		return nil, err
	}
	return c.sub(n, d)
}

func (c *canon) lnPoly(p *poly) (*ratfunc, error) {
	if k, ok := p.constant(); ok {
		return c.lnConst(k)
	}
	acc := c.zero()
	if g := gcdMonomial(p); len(g) > 0 {
		for _, f := range g {
			l, err := c.lnAtom(f.a)
			if err != nil {
				return nil, err
			}
			if acc, err = c.add(acc, c.scaleRat(l, big.NewRat(int64(f.e), 1))); err != nil {
				return nil, err
			}
		}
		p = p.divMono(g)
	}
	if k, ok := p.constant(); ok {
		l, err := c.lnConst(k)
		if err != nil {
			return nil, err
		}
		return c.add(acc, l)
	}

	lead := new(big.Rat).Set(p.sorted()[0].c)
	l, err := c.lnConst(lead)
	if err != nil {
		return nil, err
	}
	if acc, err = c.add(acc, l); err != nil {
		return nil, err
	}
	rest := p.scale(new(big.Rat).Inv(lead))
	arg, err := c.polyRat(rest)
	if err != nil {
		return nil, err
	}
	a := c.intern(&atom{key: "ln(" + rest.key() + ")", kind: atomLn, arg: arg})
	return c.add(acc, c.atomRat(a))
}

func (c *canon) lnAtom(a *atom) (*ratfunc, error) {
	switch a.kind {
	case atomExp:
		return a.arg, nil
	case atomRoot:
		l, err := c.lnPoly(a.radicand)
		if err != nil {
			return nil, err
		}
		return c.scaleRat(l, big.NewRat(1, int64(a.index))), nil
	}
	arg := c.atomRat(a)
	return c.atomRat(c.intern(&atom{key: "ln(" + a.key + ")", kind: atomLn, arg: arg})), nil
}

func (c *canon) lnConst(k *big.Rat) (*ratfunc, error) {
	if k.Sign() == 0 {
		return nil, ErrNonFinite
	}
	acc := c.zero()
	if k.Sign() < 0 {
		acc = c.atomRat(c.intern(&atom{key: "ln(-1)", kind: atomLn, arg: c.constRat(big.NewRat(-1, 1))}))
		k = new(big.Rat).Neg(k)
	}
	num, err := c.lnInt(k.Num())
	if err != nil {
		return nil, err
	}
	den, err := c.lnInt(k.Denom())
	if err != nil {
		return nil, err
	}
	if acc, err = c.add(acc, num); err != nil {
		return nil, err
	}
	return c.sub(acc, den)
}

// lnInt writes ln(n) as a combination of logarithms of small primes and
// one remaining cofactor.
func (c *canon) lnInt(n *big.Int) (*ratfunc, error) {
	rest := new(big.Int).Set(n)
	acc := c.zero()
	addLn := func(v *big.Int, e int64) error {
		a := c.intern(&atom{key: "ln(" + v.String() + ")", kind: atomLn, arg: c.constRat(new(big.Rat).SetInt(v))})
		var err error
		acc, err = c.add(acc, c.scaleRat(c.atomRat(a), big.NewRat(e, 1)))
		return err
	}
	for d := int64(2); d <= maxTrialDivisor && rest.Cmp(big.NewInt(1)) > 0; d++ {
		bd := big.NewInt(d)
		var e int64
		for new(big.Int).Mod(rest, bd).Sign() == 0 {
			rest.Quo(rest, bd)
			e++
		}
		if e > 0 {
			if err := addLn(bd, e); err != nil {
				return nil, err
			}
		}
	}
	if rest.Cmp(big.NewInt(1)) > 0 {
		if err := addLn(rest, 1); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
