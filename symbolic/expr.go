// Package symbolic is the deterministic expression kernel behind the
// verification operations.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat), no floating point in Simplify
//   - Deterministic simplification and stable, re-parseable output
//   - Complex domain: the imaginary unit I is a first-class constant
//   - Only the operation set needed to check student-level work
//
// Equivalence is best-effort. Equivalent reports true only when the
// difference of two expressions reduces to the exact zero; expressions that
// mix radicals, trig and logs can be equal without the rewriting rules
// noticing (a false negative). A difference that reduces to a nonzero
// constant is never reported as equivalent.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an immutable expression tree node. Every constructor returns a
// simplified node, so two equal input texts always yield Equal trees.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (float64, bool)
	Equal(other Expr) bool
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) Eval() (float64, bool) { return n.Float64(), true }

var (
	ratOne  = big.NewRat(1, 1)
	ratHalf = big.NewRat(1, 2)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }

// smallInt reports the value of an integer Num that fits in an int64.
func (n *Num) smallInt() (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return n.val.Num().Int64(), true
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym             { return &Sym{name: name} }
func (s *Sym) Simplify() Expr        { return s }
func (s *Sym) String() string        { return s.name }
func (s *Sym) LaTeX() string         { return s.name }
func (s *Sym) Eval() (float64, bool) { return 0, false }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Const: named constants
// ============================================================

// Const is a named mathematical constant. The set is closed: pi, E, the
// imaginary unit I, positive infinity oo, complex infinity zoo and the
// undefined value nan.
type Const struct{ name string }

var (
	Pi              = &Const{name: "pi"}
	E               = &Const{name: "E"}
	I               = &Const{name: "I"}
	Infinity        = &Const{name: "oo"}
	ComplexInfinity = &Const{name: "zoo"}
	NaN             = &Const{name: "nan"}
)

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && c.name == o.name }

func (c *Const) LaTeX() string {
	switch c.name {
	case "pi":
		return "\\pi"
	case "E":
		return "e"
	case "I":
		return "i"
	case "oo":
		return "\\infty"
	case "zoo":
		return "\\tilde{\\infty}"
	}
	return "\\mathrm{NaN}"
}

func (c *Const) Eval() (float64, bool) {
	switch c.name {
	case "pi":
		return math.Pi, true
	case "E":
		return math.E, true
	}
	return 0, false
}

func isConst(e Expr, c *Const) bool {
	o, ok := e.(*Const)
	return ok && o.name == c.name
}

// undefined reports nan and complex infinity, which never cancel.
func undefined(e Expr) bool { return isConst(e, NaN) || isConst(e, ComplexInfinity) }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(v, 1)) == 0
}

// IsZero reports whether e is exactly the rational zero.
func IsZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}
