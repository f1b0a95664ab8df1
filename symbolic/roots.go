package symbolic

import (
	"math"
	"math/big"
)

// Limits that keep exact power evaluation bounded.
const (
	maxExactExponent = 512
	maxExactBits     = 1 << 16
	maxRootIndex     = 32
	maxRootBits      = 4096
	trialDivisorMax  = 10000
)

// numPow evaluates b**e exactly where possible. Rational exponents extract
// the largest perfect power from the radicand, so sqrt(8) becomes
// 2*sqrt(2) and sqrt(-4) becomes 2*I.
func numPow(b, e *Num) (Expr, bool) {
	if e.IsInteger() {
		k, ok := e.smallInt()
		if !ok || k > maxExactExponent || k < -maxExactExponent || (k < 0 && b.IsZero()) || !powFits(b.val, k) {
			return nil, false
		}
		return &Num{val: ratPowInt(b.val, k)}, true
	}
	r := e.val
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		return nil, false
	}
	p, q := r.Num().Int64(), r.Denom().Int64()
	if q > maxRootIndex || p > maxExactExponent || p < -maxExactExponent || b.IsZero() || !powFits(b.val, p) {
		return nil, false
	}
	if b.IsNegative() {
		if q != 2 {
			return nil, false
		}
		return MulOf(imagPow(p), PowOf(numNeg(b), e)), true
	}

	v := ratPowInt(b.val, p)
	num, den := v.Num(), v.Denom()
	radicand := new(big.Int).Mul(num, new(big.Int).Exp(den, big.NewInt(q-1), nil))
	if radicand.BitLen() > maxRootBits {
		return nil, false
	}
	out, in := extractRoot(radicand, q)
	coeff := new(big.Rat).SetFrac(out, den)
	if in.Cmp(big.NewInt(1)) == 0 {
		return &Num{val: coeff}, true
	}
	for g := int64(2); g <= q; g++ {
		if q%g != 0 {
			continue
		}
		if s, ok := intRoot(in, g); ok {
			in = s
			q /= g
			g = 1
		}
	}
	root := &Pow{base: &Num{val: new(big.Rat).SetInt(in)}, exp: F(1, q)}
	if coeff.Cmp(ratOne) == 0 {
		return root, true
	}
	return &Mul{factors: []Expr{&Num{val: coeff}, root}}, true
}

// powFits reports whether r**k stays within maxExactBits. Larger powers are
// left unevaluated.
func powFits(r *big.Rat, k int64) bool {
	if k < 0 {
		k = -k
	}
	bits := int64(max(r.Num().BitLen(), r.Denom().BitLen()))
	return bits*k <= maxExactBits
}

func ratPowInt(r *big.Rat, k int64) *big.Rat {
	neg := k < 0
	if neg {
		k = -k
	}
	ek := big.NewInt(k)
	num := new(big.Int).Exp(r.Num(), ek, nil)
	den := new(big.Int).Exp(r.Denom(), ek, nil)
	if neg {
		return new(big.Rat).SetFrac(den, num)
	}
	return new(big.Rat).SetFrac(num, den)
}

// extractRoot writes n = out**q * in with in free of q-th power factors
// below trialDivisorMax.
func extractRoot(n *big.Int, q int64) (out, in *big.Int) {
	if r, ok := intRoot(n, q); ok {
		return r, big.NewInt(1)
	}
	out = big.NewInt(1)
	in = new(big.Int).Set(n)
	qq := big.NewInt(q)
	rem := new(big.Int)
	for d := int64(2); d <= trialDivisorMax; d++ {
		bd := big.NewInt(d)
		dq := new(big.Int).Exp(bd, qq, nil)
		if dq.Cmp(in) > 0 {
			break
		}
		for {
			quo, m := new(big.Int).QuoRem(in, dq, rem)
			if m.Sign() != 0 {
				break
			}
			in = quo
			out.Mul(out, bd)
		}
	}
	if r, ok := intRoot(in, q); ok {
		out.Mul(out, r)
		in = big.NewInt(1)
	}
	return out, in
}

// intRoot reports the exact q-th root of a non-negative n.
func intRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	if q == 2 {
		s := new(big.Int).Sqrt(n)
		return s, new(big.Int).Mul(s, s).Cmp(n) == 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return nil, false
	}
	est := int64(math.Round(math.Pow(f, 1/float64(q))))
	qq := big.NewInt(q)
	for c := est - 1; c <= est+1; c++ {
		if c < 0 {
			continue
		}
		bc := big.NewInt(c)
		if new(big.Int).Exp(bc, qq, nil).Cmp(n) == 0 {
			return bc, true
		}
	}
	return nil, false
}
