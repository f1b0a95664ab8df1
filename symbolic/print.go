package symbolic

import (
	"strings"
)

// Rendering follows the usual CAS text form: ** for powers, sqrt(...) for
// square roots, x/2 and 1/x for negative exponents and " - " between terms.
// The text form is accepted back by Parse and yields an Equal tree.

const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func prec(e Expr) int {
	switch v := e.(type) {
	case *Add:
		return precAdd
	case *Mul:
		return precMul
	case *Num:
		if v.IsNegative() || !v.IsInteger() {
			return precMul
		}
		return precAtom
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			if n.IsNegative() {
				return precMul
			}
			if isSqrtExp(n) {
				return precAtom
			}
		}
		return precPow
	}
	return precAtom
}

func isSqrtExp(n *Num) bool { return n.val.Cmp(ratHalf) == 0 }

func wrap(e Expr, min int) string {
	if prec(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func wrapTeX(e Expr, min int) string {
	if prec(e) < min {
		return "\\left(" + e.LaTeX() + "\\right)"
	}
	return e.LaTeX()
}

// ---------- Add ----------

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// ---------- Mul ----------

// fraction splits a product into sign, numerator and denominator factors.
// Factors with a negative rational exponent move to the denominator.
func (m *Mul) fraction() (neg bool, coeff *Num, num, den []Expr) {
	coeff = N(1)
	for _, f := range m.factors {
		if c, ok := f.(*Num); ok {
			coeff = numMul(coeff, c)
			continue
		}
		if p, ok := f.(*Pow); ok {
			if e, ok2 := p.exp.(*Num); ok2 && e.IsNegative() {
				den = append(den, &Pow{base: p.base, exp: numNeg(e)})
				continue
			}
		}
		num = append(num, f)
	}
	if coeff.IsNegative() {
		neg = true
		coeff = numNeg(coeff)
	}
	return neg, coeff, num, den
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	neg, coeff, num, den := m.fraction()
	top := []string{}
	if cn := coeff.val.Num(); !cn.IsInt64() || cn.Int64() != 1 || len(num) == 0 {
		top = append(top, cn.String())
	}
	for _, f := range num {
		top = append(top, wrap(f, precPow))
	}
	bottom := []string{}
	if cd := coeff.val.Denom(); !cd.IsInt64() || cd.Int64() != 1 {
		bottom = append(bottom, cd.String())
	}
	for _, f := range den {
		bottom = append(bottom, wrap(unitPow(f), precPow))
	}
	s := strings.Join(top, "*")
	if len(bottom) == 1 {
		s += "/" + bottom[0]
	} else if len(bottom) > 1 {
		s += "/(" + strings.Join(bottom, "*") + ")"
	}
	if neg {
		return "-" + s
	}
	return s
}

func (m *Mul) LaTeX() string {
	neg, coeff, num, den := m.fraction()
	top := []string{}
	if cn := coeff.val.Num(); !cn.IsInt64() || cn.Int64() != 1 || len(num) == 0 {
		top = append(top, cn.String())
	}
	for _, f := range num {
		top = append(top, wrapTeX(f, precPow))
	}
	bottom := []string{}
	if cd := coeff.val.Denom(); !cd.IsInt64() || cd.Int64() != 1 {
		bottom = append(bottom, cd.String())
	}
	for _, f := range den {
		bottom = append(bottom, unitPow(f).LaTeX())
	}
	s := strings.Join(top, " ")
	if len(bottom) > 0 {
		s = "\\frac{" + s + "}{" + strings.Join(bottom, " ") + "}"
	}
	if neg {
		return "-" + s
	}
	return s
}

// unitPow drops a **1 left over after moving a factor to the denominator.
func unitPow(e Expr) Expr {
	if p, ok := e.(*Pow); ok {
		if n, ok2 := p.exp.(*Num); ok2 && n.IsOne() {
			return p.base
		}
	}
	return e
}

// ---------- Pow ----------

func (p *Pow) String() string {
	exp, isNum := p.exp.(*Num)
	if isNum && exp.IsNegative() {
		return (&Mul{factors: []Expr{p}}).String()
	}
	if isNum && isSqrtExp(exp) {
		return "sqrt(" + p.base.String() + ")"
	}
	return wrap(p.base, precAtom) + "**" + wrap(p.exp, precAtom)
}

func (p *Pow) LaTeX() string {
	exp, isNum := p.exp.(*Num)
	if isNum && exp.IsNegative() {
		return (&Mul{factors: []Expr{p}}).LaTeX()
	}
	if isNum && isSqrtExp(exp) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	if isNum && !exp.IsInteger() {
		r := exp.val
		if r.Num().IsInt64() && r.Num().Int64() == 1 {
			return "\\sqrt[" + r.Denom().String() + "]{" + p.base.LaTeX() + "}"
		}
	}
	return wrapTeX(p.base, precAtom) + "^{" + p.exp.LaTeX() + "}"
}

// ---------- Func ----------

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "log", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + f.arg.LaTeX() + "\\right)"
	case "acos":
		return "\\arccos\\left(" + f.arg.LaTeX() + "\\right)"
	case "atan":
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}
