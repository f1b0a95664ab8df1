package symbolic

// maxExpandPower bounds the integer powers of sums that Expand multiplies out.
const maxExpandPower = 10

func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			if a, ok := f.(*Add); ok {
				rest := make([]Expr, 0, len(expanded)-1)
				for j, ef := range expanded {
					if j != i {
						rest = append(rest, ef)
					}
				}
				terms := make([]Expr, len(a.terms))
				for k, t := range a.terms {
					terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
				}
				return AddOf(terms...)
			}
		}
		return MulOf(expanded...)
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok {
			if k, ok2 := n.smallInt(); ok2 {
				if _, isSum := base.(*Add); isSum && k >= 2 && k <= maxExpandPower {
					result := base
					for i := int64(1); i < k; i++ {
						result = mulSums(result, base)
					}
					return result
				}
				if _, isSum := base.(*Add); isSum && k <= -2 && k >= -maxExpandPower {
					return PowOf(expandExpr(PowOf(base, N(-k))), N(-1))
				}
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// mulSums multiplies two expanded expressions term by term. Going through
// MulOf directly would fold (x+1)*(x+1) back into a power.
func mulSums(a, b Expr) Expr {
	at, bt := termsOf(a), termsOf(b)
	out := make([]Expr, 0, len(at)*len(bt))
	for _, x := range at {
		for _, y := range bt {
			out = append(out, expandExpr(MulOf(x, y)))
		}
	}
	return AddOf(out...)
}

func termsOf(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// DependsOn reports whether varName occurs free in e.
func DependsOn(e Expr, varName string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == varName
	case *Add:
		for _, t := range v.terms {
			if DependsOn(t, varName) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if DependsOn(f, varName) {
				return true
			}
		}
	case *Pow:
		return DependsOn(v.base, varName) || DependsOn(v.exp, varName)
	case *Func:
		return DependsOn(v.arg, varName)
	}
	return false
}

// ============================================================
// Rational form
// ============================================================

// Together rewrites e over a common denominator and returns the expanded
// numerator together with the denominator factors that were multiplied in.
func Together(e Expr) (num Expr, dens []Expr) {
	n, d := numerDenom(e.Simplify())
	return Expand(n), d
}

// removeFactors returns from with one Equal occurrence of each factor in
// drop removed.
func removeFactors(from, drop []Expr) []Expr {
	out := append([]Expr(nil), from...)
	for _, d := range drop {
		for i, f := range out {
			if f.Equal(d) {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

func numerDenom(e Expr) (Expr, []Expr) {
	switch v := e.(type) {
	case *Add:
		nums := make([]Expr, len(v.terms))
		dens := make([][]Expr, len(v.terms))
		var common []Expr
		for i, t := range v.terms {
			nums[i], dens[i] = numerDenom(t)
			missing := removeFactors(dens[i], common)
			common = append(common, missing...)
		}
		if len(common) == 0 {
			return v, nil
		}
		terms := make([]Expr, len(v.terms))
		for i := range v.terms {
			factors := append([]Expr{nums[i]}, removeFactors(common, dens[i])...)
			terms[i] = MulOf(factors...)
		}
		return AddOf(terms...), common
	case *Mul:
		var nums, all []Expr
		for _, f := range v.factors {
			n, d := numerDenom(f)
			nums = append(nums, n)
			all = append(all, d...)
		}
		return MulOf(nums...), all
	case *Pow:
		exp, ok := v.exp.(*Num)
		if !ok {
			return v, nil
		}
		if k, isInt := exp.smallInt(); isInt {
			bn, bd := numerDenom(v.base)
			if k < 0 {
				den := []Expr{PowOf(bn, N(-k))}
				return PowOf(MulOf(append([]Expr{N(1)}, bd...)...), N(-k)), den
			}
			var dens []Expr
			for _, d := range bd {
				dens = append(dens, PowOf(d, N(k)))
			}
			return PowOf(bn, N(k)), dens
		}
		if exp.IsNegative() {
			return N(1), []Expr{PowOf(v.base, numNeg(exp))}
		}
	}
	return e, nil
}
