package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"unicode"
)

// maxParseDepth bounds nesting of parentheses and function calls.
const maxParseDepth = 200

// SyntaxError reports input that could not be parsed into an expression.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

// ParseOptions configures Parse.
type ParseOptions struct {
	// Variables are the free symbols accepted in input. Defaults to x.
	Variables []string

	// Constants maps extra names, such as zoo, to the values they denote.
	Constants map[string]Expr

	// ImplicitMultiplication accepts juxtaposition ("2x", "x sin(x)") as a
	// product and a bare function name followed by an operand ("sin x") as
	// a call.
	ImplicitMultiplication bool
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	num  *big.Rat
	pos  int
}

func (t token) is(op string) bool { return t.kind == tokOp && t.text == op }

// Parse parses input into a simplified expression.
func Parse(input string, opts ParseOptions) (Expr, error) {
	if len(opts.Variables) == 0 {
		opts.Variables = []string{"x"}
	}
	p := &parser{opts: opts}
	p.vars = make(map[string]bool, len(opts.Variables))
	for _, v := range opts.Variables {
		p.vars[v] = true
	}

	toks, err := p.lex(input)
	if err != nil {
		return nil, err
	}
	p.toks = toks
	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
	}
	return e, nil
}

type parser struct {
	opts  ParseOptions
	vars  map[string]bool
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(op string) error {
	t := p.next()
	if !t.is(op) {
		if t.kind == tokEOF {
			return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %q before end of input", op)}
		}
		return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %q, got %q", op, t.text)}
	}
	return nil
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !t.is("+") && !t.is("-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if t.text == "-" {
			right = Neg(right)
		}
		left = Sum(left, right)
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.is("*"):
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Product(left, right)
		case t.is("/"):
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Quo(left, right)
		case p.opts.ImplicitMultiplication && (t.kind == tokIdent || t.is("(")):
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = Product(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.peek()
	switch {
	case t.is("-"):
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(e), nil
	case t.is("+"):
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.peek().is("^") {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Power(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxParseDepth {
		return nil, &SyntaxError{Pos: p.peek().pos, Msg: "expression nested too deeply"}
	}

	t := p.next()
	switch t.kind {
	case tokNum:
		return &Num{r: t.num}, nil
	case tokIdent:
		return p.parseIdent(t)
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of input"}
	}
	if t.is("(") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
}

func (p *parser) parseIdent(t token) (Expr, error) {
	name := t.text
	if p.vars[name] {
		return Var(name), nil
	}
	if c, ok := p.opts.Constants[name]; ok {
		return c, nil
	}
	switch name {
	case "pi":
		return Pi(), nil
	case "e":
		return E(), nil
	}

	// Function call, optionally written as f^n(x).
	var power *Num
	if p.peek().is("^") {
		p.next()
		nt := p.next()
		if nt.kind != tokNum || !nt.num.IsInt() || nt.num.Sign() <= 0 {
			return nil, &SyntaxError{Pos: nt.pos, Msg: fmt.Sprintf("function power on %s must be a positive integer", name)}
		}
		power = &Num{r: nt.num}
	}

	var args []Expr
	switch {
	case p.peek().is("("):
		p.next()
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().is(",") {
				p.next()
				continue
			}
			break
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	case p.opts.ImplicitMultiplication:
		arg, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		args = []Expr{arg}
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("function %s requires parentheses", name)}
	}

	call, err := callFunction(name, args, t.pos)
	if err != nil {
		return nil, err
	}
	if power != nil {
		return Power(call, power), nil
	}
	return call, nil
}

func callFunction(name string, args []Expr, pos int) (Expr, error) {
	arity := func(n int) error {
		if len(args) != n {
			return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("%s takes %d argument(s), got %d", name, n, len(args))}
		}
		return nil
	}
	switch name {
	case "sqrt":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Sqrt(args[0]), nil
	case "log":
		switch len(args) {
		case 1:
			return Apply(FnLn, args[0]), nil
		case 2:
			return Quo(Apply(FnLn, args[0]), Apply(FnLn, args[1])), nil
		}
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("log takes 1 or 2 arguments, got %d", len(args))}
	}
	if !IsFunction(name) {
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unknown function %q", name)}
	}
	if err := arity(1); err != nil {
		return nil, err
	}
	return Apply(name, args[0]), nil
}

// lex splits input into tokens. Runs of letters are split into the
// longest known names, so "xsin" reads as x followed by sin.
func (p *parser) lex(input string) ([]token, error) {
	var toks []token
	runes := []rune(input)
	words := p.knownWords()

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			seenDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || (runes[i] == '.' && !seenDot)) {
				if runes[i] == '.' {
					seenDot = true
				}
				i++
			}
			text := string(runes[start:i])
			lit := text
			if strings.HasPrefix(lit, ".") {
				lit = "0" + lit
			}
			if strings.HasSuffix(lit, ".") {
				lit += "0"
			}
			n, ok := new(big.Rat).SetString(lit)
			if !ok {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", text)}
			}
			toks = append(toks, token{kind: tokNum, text: text, num: n, pos: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == '_') {
				i++
			}
			split, err := splitWord(string(runes[start:i]), start, words)
			if err != nil {
				return nil, err
			}
			toks = append(toks, split...)
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^", pos: i})
			i += 2
		case strings.ContainsRune("+-*/^(),", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(runes)})
	return toks, nil
}

func (p *parser) knownWords() []string {
	words := []string{"pi", "e", "sqrt", "log"}
	for fn := range knownFunctions {
		words = append(words, fn)
	}
	words = append(words, p.opts.Variables...)
	for name := range p.opts.Constants {
		words = append(words, name)
	}
	// Longest first so greedy matching prefers "sinh" over "sin".
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}

func splitWord(word string, pos int, words []string) ([]token, error) {
	var out []token
	for off := 0; off < len(word); {
		matched := ""
		for _, w := range words {
			if strings.HasPrefix(word[off:], w) {
				matched = w
				break
			}
		}
		if matched == "" {
			return nil, &SyntaxError{Pos: pos + off, Msg: fmt.Sprintf("unknown name %q", word)}
		}
		out = append(out, token{kind: tokIdent, text: matched, pos: pos + off})
		off += len(matched)
	}
	return out, nil
}
