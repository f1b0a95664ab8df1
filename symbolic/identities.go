package symbolic

// ============================================================
// Deep Simplification and Trig Identities
// ============================================================

// TrigSimplify applies the Pythagorean identity sin²+cos²=1 (and its
// hyperbolic counterpart cosh²-sinh²=1) throughout e.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigSimplifyExpr(t)
		}
		return trigFindPythagorean(AddOf(newTerms...))
	case *Mul:
		newFactors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			newFactors[i] = trigSimplifyExpr(f)
		}
		return MulOf(newFactors...)
	case *Pow:
		return PowOf(trigSimplifyExpr(v.base), v.exp)
	case *Func:
		return funcOf(v.name, trigSimplifyExpr(v.arg)).Simplify()
	}
	return e
}

type squaredFunc struct {
	name  string
	arg   string
	coeff *Num
	rest  string
	idx   int
}

// trigFindPythagorean replaces one matching pair c*sin(u)**2*r + c*cos(u)**2*r
// by c*r, and c*cosh(u)**2*r - c*sinh(u)**2*r likewise.
func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	var found []squaredFunc
	for idx, t := range add.terms {
		coeff, inner := splitCoeff(t)
		factors := []Expr{inner}
		if m, ok2 := inner.(*Mul); ok2 {
			factors = m.factors
		}
		for fi, f := range factors {
			p, ok2 := f.(*Pow)
			if !ok2 || !isNumEqual(p.exp, 2) {
				continue
			}
			fn, ok3 := p.base.(*Func)
			if !ok3 {
				continue
			}
			switch fn.name {
			case "sin", "cos", "sinh", "cosh":
			default:
				continue
			}
			others := make([]Expr, 0, len(factors)-1)
			others = append(others, factors[:fi]...)
			others = append(others, factors[fi+1:]...)
			found = append(found, squaredFunc{
				name:  fn.name,
				arg:   fn.arg.String(),
				coeff: coeff,
				rest:  MulOf(append([]Expr{N(1)}, others...)...).String(),
				idx:   idx,
			})
		}
	}
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			ti, tj := found[i], found[j]
			if ti.arg != tj.arg || ti.rest != tj.rest || ti.idx == tj.idx {
				continue
			}
			var replacement Expr
			switch {
			case pair(ti.name, tj.name, "sin", "cos") && ti.coeff.Equal(tj.coeff):
				replacement = ti.coeff
			case pair(ti.name, tj.name, "cosh", "sinh") && ti.coeff.Equal(numNeg(tj.coeff)):
				if ti.name == "cosh" {
					replacement = ti.coeff
				} else {
					replacement = tj.coeff
				}
			default:
				continue
			}
			restExpr := restOf(add.terms[ti.idx], ti.name)
			newTerms := []Expr{}
			for idx, t := range add.terms {
				if idx != ti.idx && idx != tj.idx {
					newTerms = append(newTerms, t)
				}
			}
			newTerms = append(newTerms, MulOf(replacement, restExpr))
			return AddOf(newTerms...)
		}
	}
	return e
}

func pair(a, b, x, y string) bool { return (a == x && b == y) || (a == y && b == x) }

// restOf strips the coefficient and the squared name(...) factor from a term.
func restOf(term Expr, name string) Expr {
	_, inner := splitCoeff(term)
	factors := []Expr{inner}
	if m, ok := inner.(*Mul); ok {
		factors = m.factors
	}
	rest := []Expr{N(1)}
	dropped := false
	for _, f := range factors {
		if p, ok := f.(*Pow); ok && !dropped && isNumEqual(p.exp, 2) {
			if fn, ok2 := p.base.(*Func); ok2 && fn.name == name {
				dropped = true
				continue
			}
		}
		rest = append(rest, f)
	}
	return MulOf(rest...)
}

// DeepSimplify applies repeated simplification+trig passes until stable.
func DeepSimplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = TrigSimplify(curr)
	}
	return curr
}
