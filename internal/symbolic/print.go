package symbolic

import (
	"math/big"
	"strings"
)

func (n *Num) String() string {
	if n.r.IsInt() {
		return n.r.Num().String()
	}
	return n.r.String()
}

func (s *Symbol) String() string { return s.Name }

func (c *Constant) String() string { return c.Name }

func (c *Call) String() string {
	if c.Fn == FnExp {
		if n, ok := c.Arg.(*Num); ok && n.isOne() {
			return "e"
		}
	}
	return c.Fn + "(" + c.Arg.String() + ")"
}

func (i *Infinity) String() string {
	switch i.Sign {
	case 1:
		return "oo"
	case -1:
		return "-oo"
	}
	return "zoo"
}

func (*Undefined) String() string { return "nan" }

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.Terms {
		s := t.String()
		if i == 0 {
			sb.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
			continue
		}
		sb.WriteString(" + ")
		sb.WriteString(s)
	}
	return sb.String()
}

func (m *Mul) String() string {
	coeff := big.NewRat(1, 1)
	var num, den []string
	for _, f := range m.Factors {
		switch v := f.(type) {
		case *Num:
			coeff.Set(v.r)
		case *Pow:
			if n, ok := v.Exp.(*Num); ok && n.Sign() < 0 {
				den = append(den, powerString(v.Base, new(big.Rat).Neg(n.r)))
				continue
			}
			num = append(num, v.String())
		default:
			num = append(num, wrapFactor(f))
		}
	}

	sign := ""
	if coeff.Sign() < 0 {
		sign = "-"
		coeff.Neg(coeff)
	}
	if !coeff.Num().IsInt64() || coeff.Num().Int64() != 1 {
		num = append([]string{coeff.Num().String()}, num...)
	}
	if !coeff.IsInt() {
		den = append([]string{coeff.Denom().String()}, den...)
	}

	numStr := strings.Join(num, "*")
	if numStr == "" {
		numStr = "1"
	}
	if len(den) == 0 {
		return sign + numStr
	}
	denStr := strings.Join(den, "*")
	if len(den) > 1 {
		denStr = "(" + denStr + ")"
	}
	return sign + numStr + "/" + denStr
}

func (p *Pow) String() string {
	if n, ok := p.Exp.(*Num); ok {
		if n.Sign() < 0 {
			return "1/" + powerString(p.Base, new(big.Rat).Neg(n.r))
		}
		return powerString(p.Base, n.r)
	}
	return wrapBase(p.Base) + "^" + wrapExp(p.Exp)
}

// powerString renders base^k for a positive rational k.
func powerString(base Expr, k *big.Rat) string {
	if isOneRat(k) {
		return wrapFactor(base)
	}
	if k.Cmp(big.NewRat(1, 2)) == 0 {
		return "sqrt(" + base.String() + ")"
	}
	exp := k.String()
	if !k.IsInt() {
		exp = "(" + exp + ")"
	} else {
		exp = k.Num().String()
	}
	return wrapBase(base) + "^" + exp
}

func wrapFactor(e Expr) string {
	switch v := e.(type) {
	case *Add:
		return "(" + v.String() + ")"
	case *Num:
		if v.Sign() < 0 || !v.IsInt() {
			return "(" + v.String() + ")"
		}
	case *Infinity:
		if v.Sign < 0 {
			return "(" + v.String() + ")"
		}
	}
	return e.String()
}

func wrapBase(e Expr) string {
	switch v := e.(type) {
	case *Symbol, *Constant:
		return e.String()
	case *Call:
		if v.Fn == FnExp {
			if n, ok := v.Arg.(*Num); ok && n.isOne() {
				return "e"
			}
		}
		return e.String()
	case *Num:
		if v.Sign() > 0 && v.IsInt() {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

func wrapExp(e Expr) string {
	switch v := e.(type) {
	case *Symbol, *Constant, *Call:
		return e.String()
	case *Num:
		if v.Sign() >= 0 && v.IsInt() {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}
