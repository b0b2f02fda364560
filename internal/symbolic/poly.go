package symbolic

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

type atomKind int

const (
	atomSymbol atomKind = iota
	atomPi
	atomSin
	atomCos
	atomExp
	atomLn
	atomRoot
	atomOpaque
)

// atom is an indeterminate of the canonical polynomial ring: a variable,
// pi, or a transcendental or radical that the rewriter cannot reduce.
type atom struct {
	key  string
	kind atomKind

	// arg is the argument of sin, cos, exp and ln atoms.
	arg *ratfunc

	// radicand and index describe root atoms: atom^index = radicand.
	radicand *poly
	index    int
}

type factor struct {
	a *atom
	e int
}

// monomial is a product of atoms with positive exponents, sorted by key.
type monomial []factor

func (m monomial) key() string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, len(m))
	for i, f := range m {
		if f.e == 1 {
			parts[i] = f.a.key
			continue
		}
		parts[i] = f.a.key + "^" + strconv.Itoa(f.e)
	}
	return strings.Join(parts, "*")
}

func mulMonomial(a, b monomial) monomial {
	out := make(monomial, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].a.key < b[j].a.key:
			out = append(out, a[i])
			i++
		case a[i].a.key > b[j].a.key:
			out = append(out, b[j])
			j++
		default:
			if e := a[i].e + b[j].e; e != 0 {
				out = append(out, factor{a: a[i].a, e: e})
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// divMonomial returns a/b, assuming b divides a.
func divMonomial(a, b monomial) monomial {
	neg := make(monomial, len(b))
	for i, f := range b {
		neg[i] = factor{a: f.a, e: -f.e}
	}
	return mulMonomial(a, neg)
}

// without returns m with factor i lowered by k.
func (m monomial) without(i, k int) monomial {
	out := make(monomial, 0, len(m))
	for j, f := range m {
		if j == i {
			if f.e > k {
				out = append(out, factor{a: f.a, e: f.e - k})
			}
			continue
		}
		out = append(out, f)
	}
	return out
}

type term struct {
	c *big.Rat
	m monomial
}

// poly is a sparse polynomial over the rationals in a set of atoms.
type poly struct {
	terms map[string]*term
}

func newPoly() *poly {
	return &poly{terms: make(map[string]*term)}
}

func constPoly(r *big.Rat) *poly {
	p := newPoly()
	p.addTerm(r, nil)
	return p
}

func monoPoly(c *big.Rat, m monomial) *poly {
	p := newPoly()
	p.addTerm(c, m)
	return p
}

func (p *poly) addTerm(c *big.Rat, m monomial) {
	if c.Sign() == 0 {
		return
	}
	k := m.key()
	if t, ok := p.terms[k]; ok {
		t.c.Add(t.c, c)
		if t.c.Sign() == 0 {
			delete(p.terms, k)
		}
		return
	}
	p.terms[k] = &term{c: new(big.Rat).Set(c), m: m}
}

func (p *poly) isZero() bool { return len(p.terms) == 0 }

func (p *poly) constant() (*big.Rat, bool) {
	switch len(p.terms) {
	case 0:
		return new(big.Rat), true
	case 1:
		if t, ok := p.terms[""]; ok {
			return new(big.Rat).Set(t.c), true
		}
	}
	return nil, false
}

func (p *poly) isOne() bool {
	c, ok := p.constant()
	return ok && isOneRat(c)
}

func (p *poly) sorted() []*term {
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*term, len(keys))
	for i, k := range keys {
		out[i] = p.terms[k]
	}
	return out
}

func (p *poly) key() string {
	if p.isZero() {
		return "0"
	}
	terms := p.sorted()
	parts := make([]string, len(terms))
	for i, t := range terms {
		mk := t.m.key()
		switch {
		case mk == "":
			parts[i] = t.c.RatString()
		case isOneRat(t.c):
			parts[i] = mk
		default:
			parts[i] = t.c.RatString() + "*" + mk
		}
	}
	return strings.Join(parts, " + ")
}

func (p *poly) add(q *poly) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(t.c, t.m)
	}
	for _, t := range q.terms {
		out.addTerm(t.c, t.m)
	}
	return out
}

func (p *poly) scale(c *big.Rat) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(new(big.Rat).Mul(t.c, c), t.m)
	}
	return out
}

func (p *poly) neg() *poly { return p.scale(big.NewRat(-1, 1)) }

func (p *poly) mul(q *poly) (*poly, error) {
	if len(p.terms)*len(q.terms) > maxCanonTerms*8 {
		return nil, ErrTooComplex
	}
	out := newPoly()
	for _, a := range p.terms {
		for _, b := range q.terms {
			out.addTerm(new(big.Rat).Mul(a.c, b.c), mulMonomial(a.m, b.m))
		}
	}
	if len(out.terms) > maxCanonTerms {
		return nil, ErrTooComplex
	}
	return out, nil
}

func (p *poly) divMono(m monomial) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(t.c, divMonomial(t.m, m))
	}
	return out
}

// gcdMonomial returns the largest monomial dividing every term of ps.
func gcdMonomial(ps ...*poly) monomial {
	var g monomial
	first := true
	for _, p := range ps {
		for _, t := range p.terms {
			if first {
				g = append(monomial(nil), t.m...)
				first = false
				continue
			}
			var next monomial
			for _, f := range g {
				for _, h := range t.m {
					if h.a.key == f.a.key {
						e := f.e
						if h.e < e {
							e = h.e
						}
						next = append(next, factor{a: f.a, e: e})
						break
					}
				}
			}
			g = next
			if len(g) == 0 {
				return nil
			}
		}
	}
	return g
}

// ratfunc is a quotient of polynomials kept with a monic denominator.
type ratfunc struct {
	num *poly
	den *poly
}

func (r *ratfunc) key() string {
	if r.den.isOne() {
		return r.num.key()
	}
	return "(" + r.num.key() + ")/(" + r.den.key() + ")"
}
