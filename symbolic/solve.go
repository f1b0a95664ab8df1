package symbolic

import (
	"math/big"
	"sort"
)

// ============================================================
// Solvers
// ============================================================

// Solve returns the roots of eq in varName over the complex numbers. An
// empty result means no closed form was found; it is not an error.
func Solve(eq *Equation, varName string) []Expr {
	return SolveExpr(eq.Residual(), varName)
}

// SolveExpr returns the roots of expr = 0. Rational expressions are brought
// over a common denominator first, and roots that make a denominator vanish
// are discarded. Polynomials of degree three or more are deflated by their
// rational roots; whatever remains above degree two is left unsolved.
func SolveExpr(expr Expr, varName string) []Expr {
	num, dens := Together(expr)
	coeffs, ok := PolyCoeffs(num, varName)
	if !ok {
		return nil
	}
	var kept []Expr
	for _, r := range polyRoots(coeffs) {
		if vanishes(dens, varName, r) {
			continue
		}
		kept = appendUnique(kept, r)
	}
	sortRoots(kept)
	return kept
}

func polyRoots(coeffs map[int]Expr) []Expr {
	deg := Degree(coeffs)
	switch {
	case deg <= 0:
		return nil
	case deg == 1:
		return []Expr{MulOf(N(-1), coeffAt(coeffs, 0), PowOf(coeffAt(coeffs, 1), N(-1)))}
	case deg == 2:
		_, x1, x2 := QuadraticRoots(coeffAt(coeffs, 2), coeffAt(coeffs, 1), coeffAt(coeffs, 0))
		return []Expr{x1, x2}
	}

	var roots []Expr
	low := 0
	for low < deg && IsZero(coeffAt(coeffs, low)) {
		low++
	}
	if low > 0 {
		roots = append(roots, N(0))
		shifted := map[int]Expr{}
		for d, c := range coeffs {
			if d >= low {
				shifted[d-low] = c
			}
		}
		return append(roots, polyRoots(shifted)...)
	}

	p, ok := rationalCoeffs(coeffs, deg)
	if !ok {
		return nil
	}
	for _, cand := range rationalRootCandidates(p) {
		for len(p) > 3 && horner(p, cand).Sign() == 0 {
			roots = append(roots, &Num{val: new(big.Rat).Set(cand)})
			p = deflate(p, cand)
		}
		if len(p) <= 3 {
			break
		}
	}
	if len(p) <= 3 {
		rest := map[int]Expr{}
		for d, c := range p {
			rest[d] = &Num{val: c}
		}
		roots = append(roots, polyRoots(rest)...)
	}
	return roots
}

// QuadraticRoots applies the quadratic formula to a*x**2 + b*x + c and
// returns the discriminant and the roots (-b ± sqrt(D)) / (2a), in that order.
func QuadraticRoots(a, b, c Expr) (disc, x1, x2 Expr) {
	disc = Expand(AddOf(PowOf(b, N(2)), MulOf(N(-4), a, c)))
	sq := SqrtOf(disc)
	inv := PowOf(MulOf(N(2), a), N(-1))
	x1 = Expand(MulOf(AddOf(MulOf(N(-1), b), sq), inv))
	x2 = Expand(MulOf(AddOf(MulOf(N(-1), b), MulOf(N(-1), sq)), inv))
	return disc, x1, x2
}

func vanishes(dens []Expr, varName string, r Expr) bool {
	for _, d := range dens {
		v := d.Sub(varName, r)
		if IsZero(v) || undefined(v) || IsZero(Expand(v)) {
			return true
		}
	}
	return false
}

func appendUnique(list []Expr, r Expr) []Expr {
	for _, e := range list {
		if e.Equal(r) {
			return list
		}
	}
	return append(list, r)
}

// sortRoots orders all-rational root lists ascending and leaves any other
// list in discovery order.
func sortRoots(roots []Expr) {
	for _, r := range roots {
		if _, ok := r.(*Num); !ok {
			return
		}
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].(*Num).val.Cmp(roots[j].(*Num).val) < 0
	})
}
