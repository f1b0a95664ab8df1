package symbolic

import (
	"math"
	"sort"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds rational constants and collects like
// terms (terms equal up to a rational coefficient).
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	type like struct {
		coeff *Num
		rest  Expr
		deg   int
	}
	numAccum := N(0)
	groups := map[string]*like{}
	keys := []string{}
	var nan bool
	var zoo, posInf, negInf int
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, n)
			continue
		}
		switch {
		case isConst(t, NaN):
			nan = true
			continue
		case isConst(t, ComplexInfinity):
			zoo++
			continue
		}
		coeff, rest := splitCoeff(t)
		if isConst(rest, Infinity) {
			if coeff.IsNegative() {
				negInf++
			} else {
				posInf++
			}
			continue
		}
		key := rest.String()
		g, seen := groups[key]
		if !seen {
			g = &like{coeff: N(0), rest: rest, deg: degreeHint(rest)}
			groups[key] = g
			keys = append(keys, key)
		}
		g.coeff = numAdd(g.coeff, coeff)
	}

	if nan || zoo > 1 || (zoo == 1 && posInf+negInf > 0) || (posInf > 0 && negInf > 0) {
		return NaN
	}
	if zoo == 1 {
		return ComplexInfinity
	}

	sort.SliceStable(keys, func(i, j int) bool {
		gi, gj := groups[keys[i]], groups[keys[j]]
		if gi.deg != gj.deg {
			return gi.deg > gj.deg
		}
		return keys[i] < keys[j]
	})

	result := []Expr{}
	for _, k := range keys {
		g := groups[k]
		if g.coeff.IsZero() {
			continue
		}
		result = append(result, withCoeff(g.coeff, g.rest))
	}
	switch {
	case posInf > 0:
		result = append(result, Infinity)
	case negInf > 0:
		result = append(result, &Mul{factors: []Expr{N(-1), Infinity}})
	case !numAccum.IsZero():
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (float64, bool) {
	acc := 0.0
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return 0, false
		}
		acc += v
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// splitCoeff separates the leading rational coefficient of a product.
func splitCoeff(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// withCoeff is the inverse of splitCoeff on already-canonical parts.
func withCoeff(c *Num, rest Expr) Expr {
	if c.IsOne() {
		return rest
	}
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{c}, m.factors...)}
	}
	if _, ok := rest.(*Add); ok {
		return MulOf(c, rest)
	}
	return &Mul{factors: []Expr{c, rest}}
}

// degreeHint orders sum terms by descending total degree for display.
func degreeHint(e Expr) int {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if _, ok := v.base.(*Sym); ok {
			if n, ok2 := v.exp.(*Num); ok2 {
				if k, ok3 := n.smallInt(); ok3 {
					return int(k)
				}
			}
		}
		return 0
	case *Mul:
		d := 0
		for _, f := range v.factors {
			d += degreeHint(f)
		}
		return d
	}
	return 0
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds the rational coefficient and
// combines like bases by adding exponents. A rational coefficient times a
// single sum is distributed over the sum.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	type power struct {
		base     Expr
		exps     []Expr
		original Expr
	}
	coeff := N(1)
	powers := map[string]*power{}
	order := []string{}
	var nan bool
	var zoo, inf int
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		switch {
		case isConst(f, NaN):
			nan = true
			continue
		case isConst(f, ComplexInfinity):
			zoo++
			continue
		case isConst(f, Infinity):
			inf++
			continue
		}
		base, exp := asPower(f)
		key := base.String()
		p, seen := powers[key]
		if !seen {
			p = &power{base: base, original: f}
			powers[key] = p
			order = append(order, key)
		}
		p.exps = append(p.exps, exp)
	}

	if nan || ((zoo > 0 || inf > 0) && coeff.IsZero()) {
		return NaN
	}
	if zoo > 0 {
		return ComplexInfinity
	}
	if coeff.IsZero() {
		return N(0)
	}

	others := []Expr{}
	resimplify := false
	for _, key := range order {
		p := powers[key]
		var combined Expr
		if len(p.exps) == 1 {
			combined = p.original
		} else {
			combined = PowOf(p.base, AddOf(p.exps...))
		}
		switch c := combined.(type) {
		case *Num:
			coeff = numMul(coeff, c)
		case *Mul:
			others = append(others, c.factors...)
			resimplify = true
		default:
			others = append(others, combined)
		}
	}
	if resimplify {
		return MulOf(append([]Expr{coeff}, others...)...)
	}
	if coeff.IsZero() {
		return N(0)
	}

	if inf > 0 {
		others = append(others, Infinity)
		if coeff.IsNegative() {
			coeff = N(-1)
		} else {
			coeff = N(1)
		}
	}

	if len(others) == 1 && !coeff.IsOne() {
		if sum, ok := others[0].(*Add); ok {
			terms := make([]Expr, len(sum.terms))
			for i, t := range sum.terms {
				terms[i] = MulOf(coeff, t)
			}
			return AddOf(terms...)
		}
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sortedOthers := make([]Expr, len(ks))
	for i := range ks {
		sortedOthers[i] = ks[i].e
	}
	others = sortedOthers

	if len(others) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// asPower views a factor as base**exp; exp(u) is treated as E**u so that
// exponentials combine.
func asPower(e Expr) (Expr, Expr) {
	switch v := e.(type) {
	case *Pow:
		return v.base, v.exp
	case *Func:
		if v.name == "exp" {
			return E, v.arg
		}
	}
	return e, N(1)
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (float64, bool) {
	acc := 1.0
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Pow: base**exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if undefined(base) && !IsZero(exp) || isConst(exp, NaN) {
		return NaN
	}
	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if expIsNum && en.IsNegative() {
				return ComplexInfinity
			}
			if expIsNum {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			return N(1)
		}
		if expIsNum {
			if r, ok := numPow(bn, en); ok {
				return r
			}
		}
		return &Pow{base: base, exp: exp}
	}

	switch {
	case isConst(base, I):
		if expIsNum {
			if k, ok := en.smallInt(); ok {
				return imagPow(k)
			}
		}
	case isConst(base, E):
		return ExpOf(exp)
	case isConst(base, Infinity):
		if expIsNum {
			if en.IsPositive() {
				return Infinity
			}
			return N(0)
		}
	}

	if inner, ok := base.(*Pow); ok && expIsNum && en.IsInteger() {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	if m, ok := base.(*Mul); ok && expIsNum && en.IsInteger() {
		factors := make([]Expr, len(m.factors))
		for i, f := range m.factors {
			factors[i] = PowOf(f, exp)
		}
		return MulOf(factors...)
	}
	if fn, ok := base.(*Func); ok && fn.name == "exp" && expIsNum && en.IsInteger() {
		return ExpOf(MulOf(fn.arg, exp))
	}
	return &Pow{base: base, exp: exp}
}

// imagPow cycles I**k through 1, I, -1, -I.
func imagPow(k int64) Expr {
	switch ((k % 4) + 4) % 4 {
	case 0:
		return N(1)
	case 1:
		return I
	case 2:
		return N(-1)
	}
	return &Mul{factors: []Expr{N(-1), I}}
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if !DependsOn(p.exp, varName) {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	if !DependsOn(p.base, varName) {
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (float64, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if ok1 && ok2 {
		pf := math.Pow(b, e)
		if math.IsNaN(pf) || math.IsInf(pf, 0) {
			return 0, false
		}
		return pf, true
	}
	return 0, false
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// ============================================================
// Equation
// ============================================================

type Equation struct{ LHS, RHS Expr }

func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }
func (e *Equation) String() string {
	return e.LHS.String() + " = " + e.RHS.String()
}
func (e *Equation) LaTeX() string { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }
func (e *Equation) Residual() Expr {
	return AddOf(e.LHS, MulOf(N(-1), e.RHS))
}
