package symbolic_test

import (
	"testing"

	"github.com/njchilds90/solvecheck/symbolic"
)

func mustParse(t *testing.T, s string, extra ...string) symbolic.Expr {
	t.Helper()
	e, err := symbolic.Parse(s, extra...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return e
}

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := symbolic.N(5).Diff("x")
	if result.String() != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", result.String())
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub(t *testing.T) {
	x := symbolic.S("x")
	if got := x.Sub("x", symbolic.N(3)).String(); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
	if got := x.Sub("y", symbolic.N(3)).String(); got != "x" {
		t.Errorf("want x, got %s", got)
	}
}

// ============================================================
// Add / Mul / Pow tests
// ============================================================

func TestAdd_CollectsLikeTerms(t *testing.T) {
	x := symbolic.S("x")
	cases := []struct {
		expr symbolic.Expr
		want string
	}{
		{symbolic.AddOf(x, x), "2*x"},
		{symbolic.AddOf(symbolic.MulOf(symbolic.N(2), x), symbolic.MulOf(symbolic.N(3), x)), "5*x"},
		{symbolic.AddOf(x, symbolic.MulOf(symbolic.N(-1), x)), "0"},
		{symbolic.AddOf(symbolic.N(2), symbolic.N(3)), "5"},
	}
	for _, c := range cases {
		if got := c.expr.String(); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestMul_CombinesLikeBases(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.MulOf(x, x).String(); got != "x**2" {
		t.Errorf("x*x: want x**2, got %s", got)
	}
	if got := symbolic.MulOf(x, symbolic.PowOf(x, symbolic.N(-1))).String(); got != "1" {
		t.Errorf("x/x: want 1, got %s", got)
	}
}

func TestMul_DistributesRationalOverSum(t *testing.T) {
	if got := mustParse(t, "2(x+1)").String(); got != "2*x + 2" {
		t.Errorf("want 2*x + 2, got %s", got)
	}
}

func TestString_Forms(t *testing.T) {
	x := symbolic.S("x")
	cases := []struct {
		expr symbolic.Expr
		want string
	}{
		{symbolic.AddOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.MulOf(symbolic.N(-5), x), symbolic.N(6)), "x**2 - 5*x + 6"},
		{symbolic.MulOf(symbolic.F(1, 2), x), "x/2"},
		{symbolic.MulOf(symbolic.F(-3, 2), x), "-3*x/2"},
		{symbolic.PowOf(x, symbolic.N(-1)), "1/x"},
		{symbolic.SqrtOf(symbolic.N(8)), "2*sqrt(2)"},
		{symbolic.SqrtOf(symbolic.N(-4)), "2*I"},
		{symbolic.PowOf(symbolic.I, symbolic.N(2)), "-1"},
	}
	for _, c := range cases {
		if got := c.expr.String(); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestString_Reparses(t *testing.T) {
	inputs := []string{
		"x**2 - 5*x + 6",
		"x/2",
		"-3*x/2",
		"1/x",
		"2*sqrt(2)",
		"sqrt(x + 1)",
		"2**(x + 1)",
		"sin(x)**2",
		"exp(-x)",
		"x**(1/3)",
		"1/(x + 1)",
		"3*I + 2",
	}
	for _, in := range inputs {
		e := mustParse(t, in)
		again := mustParse(t, e.String())
		if !e.Equal(again) {
			t.Errorf("%q rendered as %q which reparses to %q", in, e.String(), again.String())
		}
	}
}

func TestLaTeX(t *testing.T) {
	if got := mustParse(t, "x/2").LaTeX(); got != `\frac{x}{2}` {
		t.Errorf("want \\frac{x}{2}, got %s", got)
	}
	if got := mustParse(t, "sqrt(x)").LaTeX(); got != `\sqrt{x}` {
		t.Errorf("want \\sqrt{x}, got %s", got)
	}
}

func TestPow_HugeResultLeftUnevaluated(t *testing.T) {
	e := mustParse(t, "((10**500)**500)**500")
	if _, ok := e.(*symbolic.Num); ok {
		t.Fatalf("power beyond the exact bit budget was evaluated")
	}
	if got := mustParse(t, "2**100").String(); got != "1267650600228229401496703205376" {
		t.Errorf("2**100: got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_ExactValues(t *testing.T) {
	cases := map[string]string{
		"sin(pi)":     "0",
		"cos(pi)":     "-1",
		"cos(pi/3)":   "1/2",
		"sin(pi/2)":   "1",
		"log(1)":      "0",
		"exp(0)":      "1",
		"log(exp(x))": "x",
		"abs(-3)":     "3",
	}
	for in, want := range cases {
		if got := mustParse(t, in).String(); got != want {
			t.Errorf("%s: want %s, got %s", in, want, got)
		}
	}
}

func TestFunc_OddEven(t *testing.T) {
	if got := mustParse(t, "sin(-x)").String(); got != "-sin(x)" {
		t.Errorf("sin(-x): want -sin(x), got %s", got)
	}
	if got := mustParse(t, "cos(-x)").String(); got != "cos(x)" {
		t.Errorf("cos(-x): want cos(x), got %s", got)
	}
}

// ============================================================
// Calculus tests
// ============================================================

func TestDiff(t *testing.T) {
	cases := map[string]string{
		"x**3":   "3*x**2",
		"sin(x)": "cos(x)",
		"log(x)": "1/x",
		"7":      "0",
	}
	for in, want := range cases {
		if got := mustParse(t, in).Diff("x").String(); got != want {
			t.Errorf("d/dx %s: want %s, got %s", in, want, got)
		}
	}
}

func TestIntegrate(t *testing.T) {
	cases := map[string]string{
		"x**2":   "x**3/3",
		"cos(x)": "sin(x)",
		"1/x":    "log(x)",
	}
	for in, want := range cases {
		got, ok := symbolic.Integrate(mustParse(t, in), "x")
		if !ok {
			t.Errorf("integrate %s: no rule applied", in)
			continue
		}
		if got.String() != want {
			t.Errorf("integrate %s: want %s, got %s", in, want, got.String())
		}
	}
}

func TestIntegrate_DiffRoundTrip(t *testing.T) {
	for _, in := range []string{"3*x**2 + 2*x", "exp(2*x)", "sin(3*x)", "1/(2*x + 1)", "(x + 1)**2", "acos(x)", "atan(x)"} {
		f := mustParse(t, in)
		F, ok := symbolic.Integrate(f, "x")
		if !ok {
			t.Errorf("integrate %s: no rule applied", in)
			continue
		}
		if !symbolic.Equivalent(F.Diff("x"), f) {
			t.Errorf("d/dx of %s is %s, want %s", F, F.Diff("x"), f)
		}
	}
}
