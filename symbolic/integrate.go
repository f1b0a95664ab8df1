package symbolic

// ============================================================
// Integration (rule-based)
// ============================================================

// Integrate returns an antiderivative of expr with respect to varName, or
// false when no rule applies. The result omits the constant of integration.
func Integrate(expr Expr, varName string) (Expr, bool) {
	expr = expr.Simplify()
	x := S(varName)
	if !DependsOn(expr, varName) {
		return MulOf(expr, x), true
	}
	switch v := expr.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(x, N(2))), true
	case *Pow:
		if !DependsOn(v.exp, varName) {
			a, ok := linearIn(v.base, varName)
			if !ok {
				break
			}
			if isNumEqual(v.exp, -1) {
				return MulOf(PowOf(a, N(-1)), LnOf(v.base)), true
			}
			newExp := AddOf(v.exp, N(1))
			return MulOf(PowOf(MulOf(a, newExp), N(-1)), PowOf(v.base, newExp)), true
		}
		if !DependsOn(v.base, varName) {
			a, ok := linearIn(v.exp, varName)
			if !ok {
				break
			}
			return MulOf(PowOf(MulOf(a, LnOf(v.base)), N(-1)), expr), true
		}
	case *Mul:
		var consts, rest []Expr
		for _, f := range v.factors {
			if DependsOn(f, varName) {
				rest = append(rest, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(consts) > 0 {
			inner, ok := Integrate(MulOf(rest...), varName)
			if !ok {
				return nil, false
			}
			return MulOf(append(consts, inner)...), true
		}
		if expanded := Expand(v); !expanded.Equal(v) {
			return Integrate(expanded, varName)
		}
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			intT, ok := Integrate(t, varName)
			if !ok {
				return nil, false
			}
			terms[i] = intT
		}
		return AddOf(terms...), true
	case *Func:
		a, ok := linearIn(v.arg, varName)
		if !ok {
			break
		}
		inv := PowOf(a, N(-1))
		switch v.name {
		case "sin":
			return MulOf(N(-1), inv, CosOf(v.arg)), true
		case "cos":
			return MulOf(inv, SinOf(v.arg)), true
		case "exp":
			return MulOf(inv, ExpOf(v.arg)), true
		case "sinh":
			return MulOf(inv, CoshOf(v.arg)), true
		case "cosh":
			return MulOf(inv, SinhOf(v.arg)), true
		case "log":
			return MulOf(inv, AddOf(MulOf(v.arg, LnOf(v.arg)), MulOf(N(-1), v.arg))), true
		case "atan":
			if v.arg.Equal(x) {
				return AddOf(
					MulOf(x, AtanOf(x)),
					MulOf(F(-1, 2), LnOf(AddOf(N(1), PowOf(x, N(2))))),
				), true
			}
		case "asin":
			if v.arg.Equal(x) {
				return AddOf(
					MulOf(x, AsinOf(x)),
					SqrtOf(AddOf(N(1), MulOf(N(-1), PowOf(x, N(2))))),
				), true
			}
		case "acos":
			if v.arg.Equal(x) {
				return AddOf(
					MulOf(x, AcosOf(x)),
					MulOf(N(-1), SqrtOf(AddOf(N(1), MulOf(N(-1), PowOf(x, N(2)))))),
				), true
			}
		}
	}
	if expanded := Expand(expr); !expanded.Equal(expr) {
		return Integrate(expanded, varName)
	}
	return nil, false
}

// linearIn reports the slope a when e = a*varName + b with a, b free of
// varName and a nonzero.
func linearIn(e Expr, varName string) (Expr, bool) {
	coeffs, ok := PolyCoeffs(e, varName)
	if !ok || Degree(coeffs) != 1 {
		return nil, false
	}
	return coeffAt(coeffs, 1), true
}
