package symbolic

import (
	"math/big"
	"sort"
)

// ============================================================
// Polynomial utilities
// ============================================================

// PolyCoeffs expands expr and returns its coefficients by power of varName.
// It reports false when varName occurs anywhere other than as a
// non-negative integer power (inside a function, in a denominator, ...).
func PolyCoeffs(expr Expr, varName string) (map[int]Expr, bool) {
	out := map[int]Expr{}
	for _, t := range termsOf(Expand(expr)) {
		deg, coeff, ok := monomial(t, varName)
		if !ok {
			return nil, false
		}
		if prev, seen := out[deg]; seen {
			out[deg] = AddOf(prev, coeff)
		} else {
			out[deg] = coeff
		}
	}
	return out, true
}

func monomial(t Expr, varName string) (int, Expr, bool) {
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	deg := 0
	rest := []Expr{N(1)}
	for _, f := range factors {
		if d, ok := varPower(f, varName); ok {
			deg += d
			continue
		}
		if DependsOn(f, varName) {
			return 0, nil, false
		}
		rest = append(rest, f)
	}
	return deg, MulOf(rest...), true
}

func varPower(f Expr, varName string) (int, bool) {
	switch v := f.(type) {
	case *Sym:
		if v.name == varName {
			return 1, true
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 {
				if k, ok3 := n.smallInt(); ok3 && k >= 1 {
					return int(k), true
				}
			}
		}
	}
	return 0, false
}

// Degree is the highest power with a nonzero coefficient, or -1 for the
// zero polynomial.
func Degree(coeffs map[int]Expr) int {
	deg := -1
	for d, c := range coeffs {
		if d > deg && !IsZero(c) {
			deg = d
		}
	}
	return deg
}

func coeffAt(coeffs map[int]Expr, d int) Expr {
	if c, ok := coeffs[d]; ok {
		return c
	}
	return N(0)
}

// rationalCoeffs returns the coefficients lowest degree first when every one
// of them is a rational number.
func rationalCoeffs(coeffs map[int]Expr, deg int) ([]*big.Rat, bool) {
	out := make([]*big.Rat, deg+1)
	for d := 0; d <= deg; d++ {
		n, ok := coeffAt(coeffs, d).(*Num)
		if !ok {
			return nil, false
		}
		out[d] = n.Rat()
	}
	return out, true
}

// horner evaluates p (lowest degree first) at r.
func horner(p []*big.Rat, r *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, r)
		acc.Add(acc, p[i])
	}
	return acc
}

// deflate divides p by (x - r), dropping the zero remainder.
func deflate(p []*big.Rat, r *big.Rat) []*big.Rat {
	n := len(p) - 1
	q := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(p[i], new(big.Rat).Mul(carry, r))
		q[i-1] = carry
	}
	return q
}

// maxCandidateMagnitude bounds the integers whose divisors are enumerated
// for rational root candidates.
const maxCandidateMagnitude = 1000000

// rationalRootCandidates lists ±p/q with p | a0 and q | an for an integer
// polynomial.
func rationalRootCandidates(p []*big.Rat) []*big.Rat {
	lcm := big.NewInt(1)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	a0 := new(big.Int).Mul(p[0].Num(), new(big.Int).Quo(lcm, p[0].Denom()))
	an := new(big.Int).Mul(p[len(p)-1].Num(), new(big.Int).Quo(lcm, p[len(p)-1].Denom()))
	a0.Abs(a0)
	an.Abs(an)
	limit := big.NewInt(maxCandidateMagnitude)
	if a0.Cmp(limit) > 0 || an.Cmp(limit) > 0 {
		return nil
	}
	ps, qs := divisors(a0.Int64()), divisors(an.Int64())
	seen := map[string]bool{}
	var out []*big.Rat
	for _, num := range ps {
		for _, den := range qs {
			for _, sign := range []int64{1, -1} {
				r := big.NewRat(sign*num, den)
				if key := r.RatString(); !seen[key] {
					seen[key] = true
					out = append(out, r)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

func divisors(n int64) []int64 {
	var out []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			out = append(out, d)
			if d != n/d {
				out = append(out, n/d)
			}
		}
	}
	return out
}
