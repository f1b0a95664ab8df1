package symbolic

// Equivalent reports whether a - b reduces to exactly zero under one of the
// rewriting stages below, tried cheapest first. A false result does not prove
// the expressions differ.
func Equivalent(a, b Expr) bool {
	if a == nil || b == nil {
		return false
	}
	diff := AddOf(a, MulOf(N(-1), b))
	for _, stage := range equivalenceStages {
		if IsZero(stage(diff)) {
			return true
		}
	}
	return false
}

// equivalenceStages each map a difference to a form that is zero only when
// the difference is.
var equivalenceStages = []func(Expr) Expr{
	func(d Expr) Expr { return d },
	Expand,
	func(d Expr) Expr { return DeepSimplify(Expand(d)) },
	func(d Expr) Expr {
		num, _ := Together(d)
		return DeepSimplify(num)
	},
	func(d Expr) Expr {
		num, _ := Together(rewriteQuotients(d))
		return DeepSimplify(num)
	},
}

// rewriteQuotients writes tan and tanh as quotients so their denominators
// can be cleared.
func rewriteQuotients(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = rewriteQuotients(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = rewriteQuotients(f)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(rewriteQuotients(v.base), rewriteQuotients(v.exp))
	case *Func:
		arg := rewriteQuotients(v.arg)
		switch v.name {
		case "tan":
			return MulOf(SinOf(arg), PowOf(CosOf(arg), N(-1)))
		case "tanh":
			return MulOf(SinhOf(arg), PowOf(CoshOf(arg), N(-1)))
		}
		return funcOf(v.name, arg).Simplify()
	}
	return e
}
