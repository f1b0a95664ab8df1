package symbolic

import (
	"math"
	"math/big"
)

// ============================================================
// Func: named function applications
// ============================================================

// Func applies one of the supported elementary functions. Natural log is
// named "log"; "ln" is accepted by the parser as an alias.
type Func struct {
	name string
	arg  Expr
}

// funcNames is the closed set of functions the kernel understands.
var funcNames = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"exp": true, "log": true, "abs": true,
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr  { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr   { return funcOf("log", arg).Simplify() }
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }
func AbsOf(arg Expr) Expr  { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr { return funcOf("tanh", arg).Simplify() }

// LogBase is log(x)/log(base).
func LogBase(arg, base Expr) Expr {
	return MulOf(LnOf(arg), PowOf(LnOf(base), N(-1)))
}

// Apply builds name(arg) for a supported function name.
func Apply(name string, arg Expr) (Expr, bool) {
	if name == "ln" {
		name = "log"
	}
	if !funcNames[name] {
		return nil, false
	}
	return funcOf(name, arg).Simplify(), true
}

// Simplify only applies rules that are exact; numeric arguments that have
// no closed form are left unevaluated.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if undefined(arg) {
		return NaN
	}
	coeff, rest := splitCoeff(arg)
	negArg := coeff.IsNegative()
	if n, ok := arg.(*Num); ok {
		negArg = n.IsNegative()
	}
	flipped := func() Expr {
		if n, ok := arg.(*Num); ok {
			return numNeg(n)
		}
		return withCoeff(numNeg(coeff), rest)
	}

	switch f.name {
	case "sin", "cos", "tan":
		if r, ok := piMultiple(arg); ok {
			switch f.name {
			case "sin":
				if v := sinPi(r); v != nil {
					return v
				}
			case "cos":
				if v := cosPi(r); v != nil {
					return v
				}
			case "tan":
				s, c := sinPi(r), cosPi(r)
				if s != nil && c != nil {
					if IsZero(c) {
						return ComplexInfinity
					}
					return MulOf(s, PowOf(c, N(-1)))
				}
			}
		}
		if negArg {
			if f.name == "cos" {
				return CosOf(flipped())
			}
			return MulOf(N(-1), funcOf(f.name, flipped()).Simplify())
		}
	case "asin", "atan", "sinh", "tanh":
		if IsZero(arg) {
			return N(0)
		}
		if negArg {
			return MulOf(N(-1), funcOf(f.name, flipped()).Simplify())
		}
	case "acos":
		if isNumEqual(arg, 1) {
			return N(0)
		}
	case "cosh":
		if IsZero(arg) {
			return N(1)
		}
		if negArg {
			return CoshOf(flipped())
		}
	case "log":
		if isNumEqual(arg, 1) {
			return N(0)
		}
		if IsZero(arg) {
			return ComplexInfinity
		}
		if isConst(arg, E) {
			return N(1)
		}
		if isConst(arg, Infinity) {
			return Infinity
		}
		// log(exp(u)) = u holds only on the principal strip, so complex u
		// keeps the composition.
		if inner, ok := arg.(*Func); ok && inner.name == "exp" && !hasImaginary(inner.arg) {
			return inner.arg
		}
	case "exp":
		if IsZero(arg) {
			return N(1)
		}
		if isNumEqual(arg, 1) {
			return E
		}
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			if n.IsNegative() {
				return numNeg(n)
			}
			return n
		}
		if isConst(arg, Pi) || isConst(arg, E) || isConst(arg, Infinity) {
			return arg
		}
		if isConst(arg, I) {
			return N(1)
		}
		if negArg {
			return AbsOf(flipped())
		}
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner
		}
	}
	return &Func{name: f.name, arg: arg}
}

// piMultiple reports r when arg is exactly r*pi.
func piMultiple(arg Expr) (*big.Rat, bool) {
	if IsZero(arg) {
		return new(big.Rat), true
	}
	if isConst(arg, Pi) {
		return big.NewRat(1, 1), true
	}
	if m, ok := arg.(*Mul); ok && len(m.factors) == 2 && isConst(m.factors[1], Pi) {
		if c, ok2 := m.factors[0].(*Num); ok2 {
			return c.Rat(), true
		}
	}
	return nil, false
}

// sinFirstQuadrant returns sin(r*pi) for the standard angles in [0, pi/2],
// keyed by r.RatString().
func sinFirstQuadrant(r string) (Expr, bool) {
	switch r {
	case "0":
		return N(0), true
	case "1/6":
		return F(1, 2), true
	case "1/4":
		return MulOf(F(1, 2), SqrtOf(N(2))), true
	case "1/3":
		return MulOf(F(1, 2), SqrtOf(N(3))), true
	case "1/2":
		return N(1), true
	}
	return nil, false
}

// sinPi returns sin(r*pi) when r*pi is a standard angle, else nil.
func sinPi(r *big.Rat) Expr {
	x := new(big.Rat).Set(r)
	twoDen := new(big.Int).Mul(x.Denom(), big.NewInt(2))
	turns := new(big.Int).Div(x.Num(), twoDen)
	x.Sub(x, new(big.Rat).SetInt(turns.Mul(turns, big.NewInt(2))))
	sign := int64(1)
	if x.Cmp(ratOne) >= 0 {
		x.Sub(x, ratOne)
		sign = -1
	}
	if x.Cmp(big.NewRat(1, 2)) > 0 {
		x.Sub(ratOne, x)
	}
	v, ok := sinFirstQuadrant(x.RatString())
	if !ok {
		return nil
	}
	return MulOf(N(sign), v)
}

func cosPi(r *big.Rat) Expr {
	return sinPi(new(big.Rat).Add(r, big.NewRat(1, 2)))
}

func hasImaginary(e Expr) bool {
	switch v := e.(type) {
	case *Const:
		return v == I
	case *Add:
		for _, t := range v.terms {
			if hasImaginary(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if hasImaginary(f) {
				return true
			}
		}
	case *Pow:
		return hasImaginary(v.base) || hasImaginary(v.exp)
	case *Func:
		return hasImaginary(v.arg)
	}
	return false
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	if IsZero(du) {
		return N(0)
	}
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "log":
		outer = PowOf(f.arg, N(-1))
	case "abs":
		outer = MulOf(f.arg, PowOf(AbsOf(f.arg), N(-1)))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(f.arg)
	case "cosh":
		outer = SinhOf(f.arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(f.arg), N(2))))
	}
	return MulOf(outer, du)
}

func (f *Func) Eval() (float64, bool) {
	v, ok := f.arg.Eval()
	if !ok {
		return 0, false
	}
	var r float64
	switch f.name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "exp":
		r = math.Exp(v)
	case "log":
		r = math.Log(v)
	case "abs":
		r = math.Abs(v)
	case "asin":
		r = math.Asin(v)
	case "acos":
		r = math.Acos(v)
	case "atan":
		r = math.Atan(v)
	case "sinh":
		r = math.Sinh(v)
	case "cosh":
		r = math.Cosh(v)
	case "tanh":
		r = math.Tanh(v)
	default:
		return 0, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}
