package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSymbols is the working symbol universe. Operations extend it with
// the variable they are told to use.
var DefaultSymbols = []string{"x", "y", "z", "a", "b", "c", "t", "n", "m", "k"}

// DefaultCacheSize is the parse cache capacity of the package-level parser.
const DefaultCacheSize = 512

// maxNesting bounds recursion on deeply nested input.
const maxNesting = 256

// Parser turns expression text into simplified trees. Results are cached by
// normalized text and symbol universe; trees are immutable, so cached values
// are shared between callers. A Parser is safe for concurrent use.
type Parser struct {
	cache *lru.Cache[string, Expr]
}

// NewParser returns a Parser with an LRU cache of the given size. A size of
// zero or less disables caching.
func NewParser(cacheSize int) (*Parser, error) {
	p := &Parser{}
	if cacheSize > 0 {
		c, err := lru.New[string, Expr](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("parse cache: %w", err)
		}
		p.cache = c
	}
	return p, nil
}

var defaultParser, _ = NewParser(DefaultCacheSize)

// Parse parses text with the package-level parser.
func Parse(text string, extra ...string) (Expr, error) {
	return defaultParser.Parse(text, extra...)
}

// Parse normalizes and parses text. Names in extra join the symbol universe
// for this call, so a multi-letter variable such as "theta" is read as one
// symbol instead of a product of letters. Every failure, including an
// internal fault, is returned as a ParseFailure *Error.
func (p *Parser) Parse(text string, extra ...string) (expr Expr, err error) {
	normalized, ok := Normalize(text)
	if !ok {
		return nil, &Error{Kind: ParseFailure, Op: "parse", Msg: "Could not parse expression: empty input"}
	}
	key := cacheKey(normalized, extra)
	if p.cache != nil {
		if e, hit := p.cache.Get(key); hit {
			return e, nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			expr = nil
			err = &Error{Kind: ParseFailure, Op: "parse", Msg: fmt.Sprintf("Could not parse expression %q", text), Err: fmt.Errorf("%v", r)}
		}
	}()

	universe := map[string]bool{}
	for _, s := range DefaultSymbols {
		universe[s] = true
	}
	for _, s := range extra {
		if s = strings.TrimSpace(s); s != "" {
			universe[s] = true
		}
	}
	ps := &parseState{tokens: Lex(normalized), universe: universe}
	e, perr := ps.parseAll()
	if perr != nil {
		return nil, &Error{Kind: ParseFailure, Op: "parse", Msg: fmt.Sprintf("Could not parse expression %q", text), Err: perr}
	}
	if p.cache != nil {
		p.cache.Add(key, e)
	}
	return e, nil
}

// Len reports how many parses are cached.
func (p *Parser) Len() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

func cacheKey(normalized string, extra []string) string {
	if len(extra) == 0 {
		return normalized
	}
	names := append([]string(nil), extra...)
	sort.Strings(names)
	return normalized + "\x00" + strings.Join(names, ",")
}

// ============================================================
// Recursive descent
// ============================================================

type parseState struct {
	tokens   []Token
	pos      int
	depth    int
	universe map[string]bool
}

type syntaxError struct {
	Msg string
	Pos int
}

func (e *syntaxError) Error() string { return fmt.Sprintf("%s at offset %d", e.Msg, e.Pos) }

func (p *parseState) fail(msg string) error {
	return &syntaxError{Msg: msg, Pos: p.peek().Pos}
}

func (p *parseState) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parseState) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parseState) parseAll() (Expr, error) {
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.fail("unexpected token " + fmt.Sprintf("%q", tok.Literal))
	}
	return e, nil
}

// parseExpression: term ( ("+" | "-") term )*
func (p *parseState) parseExpression() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.fail("expression nested too deeply")
	}

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for p.peek().Type == TokenPlus || p.peek().Type == TokenMinus {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.Type == TokenMinus {
			right = MulOf(N(-1), right)
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return AddOf(terms...), nil
}

// parseTerm: unary ( ("*" | "/" | juxtaposition) unary )*
func (p *parseState) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{left}
	for {
		tok := p.peek()
		switch tok.Type {
		case TokenStar, TokenSlash:
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if tok.Type == TokenSlash {
				right = PowOf(right, N(-1))
			}
			factors = append(factors, right)
		case TokenNumber, TokenWord, TokenLParen:
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, right)
		default:
			if len(factors) == 1 {
				return left, nil
			}
			return MulOf(factors...), nil
		}
	}
}

// parseUnary: ("-" | "+") unary | power
func (p *parseState) parseUnary() (Expr, error) {
	switch p.peek().Type {
	case TokenMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), operand), nil
	case TokenPlus:
		p.advance()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower: primary ( "**" unary )?
func (p *parseState) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenStarStar {
		return base, nil
	}
	p.advance()
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.fail("expression nested too deeply")
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

// parsePrimary: number | name | function application | "(" expression ")"
func (p *parseState) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		r, ok := new(big.Rat).SetString(tok.Literal)
		if !ok {
			return nil, p.fail("invalid number " + tok.Literal)
		}
		return &Num{val: r}, nil
	case TokenLParen:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRParen {
			return nil, p.fail("expected ')'")
		}
		p.advance()
		return e, nil
	case TokenWord:
		p.advance()
		return p.parseName(tok.Literal)
	case TokenEOF:
		return nil, p.fail("unexpected end of input")
	}
	return nil, p.fail(fmt.Sprintf("unexpected token %q", tok.Literal))
}

// parseName resolves a word: a symbol in the universe, a constant, a
// function name, a function name glued to its argument ("sinx"), or a run
// of single-letter symbols ("xy" is x*y).
func (p *parseState) parseName(word string) (Expr, error) {
	if p.universe[word] {
		return S(word), nil
	}
	if c, ok := namedConstant(word); ok {
		return c, nil
	}
	if greekLetters[word] {
		return S(word), nil
	}
	if isFunctionName(word) {
		return p.parseApplication(word)
	}
	if len([]rune(word)) == 1 {
		return S(word), nil
	}
	for _, fn := range functionPrefixes {
		if strings.HasPrefix(word, fn) && len(word) > len(fn) {
			arg, err := p.parseName(word[len(fn):])
			if err != nil {
				return nil, err
			}
			return applyNamed(fn, []Expr{arg})
		}
	}
	if strings.IndexFunc(word, func(r rune) bool { return r >= '0' && r <= '9' || r == '_' }) >= 0 {
		return S(word), nil
	}
	factors := []Expr{}
	for _, r := range word {
		name := string(r)
		if c, ok := namedConstant(name); ok && !p.universe[name] {
			factors = append(factors, c)
			continue
		}
		factors = append(factors, S(name))
	}
	return MulOf(factors...), nil
}

// parseApplication reads f(args) or f operand.
func (p *parseState) parseApplication(name string) (Expr, error) {
	if p.peek().Type != TokenLParen {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return applyNamed(name, []Expr{arg})
	}
	p.advance()
	var args []Expr
	if p.peek().Type != TokenRParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != TokenComma {
				break
			}
			p.advance()
		}
	}
	if p.peek().Type != TokenRParen {
		return nil, p.fail("expected ')' in function call")
	}
	p.advance()
	return applyNamed(name, args)
}

func applyNamed(name string, args []Expr) (Expr, error) {
	switch {
	case name == "sqrt" && len(args) == 1:
		return SqrtOf(args[0]), nil
	case (name == "log" || name == "ln") && len(args) == 2:
		return LogBase(args[0], args[1]), nil
	case len(args) == 1:
		if e, ok := Apply(name, args[0]); ok {
			return e, nil
		}
	}
	return nil, &syntaxError{Msg: fmt.Sprintf("%s takes one argument, got %d", name, len(args))}
}

func isFunctionName(word string) bool {
	return word == "sqrt" || word == "ln" || funcNames[word]
}

// functionPrefixes is ordered longest first so "sinh" wins over "sin".
var functionPrefixes = []string{
	"asin", "acos", "atan", "sinh", "cosh", "tanh", "sqrt",
	"sin", "cos", "tan", "exp", "log", "abs", "ln",
}

// greekLetters are spelled-out angle and parameter names read as one symbol.
// pi is a constant instead.
var greekLetters = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true,
	"epsilon": true, "zeta": true, "eta": true, "theta": true,
	"iota": true, "kappa": true, "lambda": true, "mu": true,
	"nu": true, "xi": true, "omicron": true, "rho": true,
	"sigma": true, "tau": true, "upsilon": true, "phi": true,
	"chi": true, "psi": true, "omega": true,
}

func namedConstant(word string) (Expr, bool) {
	switch word {
	case "pi":
		return Pi, true
	case "E", "e":
		return E, true
	case "I":
		return I, true
	case "oo", "inf", "infinity":
		return Infinity, true
	}
	return nil, false
}
