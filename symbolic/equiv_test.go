package symbolic_test

import (
	"testing"

	"github.com/njchilds90/solvecheck/symbolic"
)

func TestEquivalent(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"2 + 3*4", "14", true},
		{"2 + 3*4", "20", false},
		{"(x+1)^2", "x^2 + 2x + 1", true},
		{"sin(x)^2 + cos(x)^2", "1", true},
		{"1/x + 1/y", "(x + y)/(x*y)", true},
		{"tan(x)", "sin(x)/cos(x)", true},
		{"sqrt(8)", "2*sqrt(2)", true},
		{"exp(x)*exp(-x)", "1", true},
		{"x + 1", "x + 2", false},
		{"2", "3", false},
		{"x/2", "0.5x", true},
		{"log(exp(2*pi*I))", "2*pi*I", false},
		{"1 + tan(x)^2", "1/cos(x)^2", true},
		{"1/cos(x)^2 + 1/cos(x)", "(1 + cos(x))/cos(x)^2", true},
	}
	for _, c := range cases {
		a, b := mustParse(t, c.a), mustParse(t, c.b)
		if got := symbolic.Equivalent(a, b); got != c.want {
			t.Errorf("Equivalent(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := symbolic.Equivalent(b, a); got != c.want {
			t.Errorf("Equivalent(%s, %s) = %v, want %v (symmetry)", c.b, c.a, got, c.want)
		}
	}
}

func TestEquivalent_Nil(t *testing.T) {
	if symbolic.Equivalent(nil, symbolic.N(1)) {
		t.Error("nil is never equivalent")
	}
}

func TestEquivalent_UndefinedNeverEqual(t *testing.T) {
	zoo := mustParse(t, "1/0")
	if symbolic.Equivalent(zoo, zoo) {
		t.Error("complex infinity must not cancel with itself")
	}
}

// ============================================================
// Solver tests
// ============================================================

func TestSolve_Linear(t *testing.T) {
	eq := symbolic.Eq(mustParse(t, "2x + 5"), mustParse(t, "13"))
	roots := symbolic.Solve(eq, "x")
	if len(roots) != 1 || roots[0].String() != "4" {
		t.Errorf("want [4], got %v", roots)
	}
}

func TestSolve_Quadratic(t *testing.T) {
	roots := symbolic.SolveExpr(mustParse(t, "x^2 - 5x + 6"), "x")
	if len(roots) != 2 || roots[0].String() != "2" || roots[1].String() != "3" {
		t.Errorf("want [2 3], got %v", roots)
	}
}

func TestSolve_ComplexRoots(t *testing.T) {
	roots := symbolic.SolveExpr(mustParse(t, "x^2 + 1"), "x")
	if len(roots) != 2 {
		t.Fatalf("want two roots, got %v", roots)
	}
	for _, want := range []string{"I", "-I"} {
		found := false
		for _, r := range roots {
			if symbolic.Equivalent(r, mustParse(t, want)) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing root %s in %v", want, roots)
		}
	}
}

func TestSolve_CubicByRationalRoots(t *testing.T) {
	roots := symbolic.SolveExpr(mustParse(t, "x^3 - 6x^2 + 11x - 6"), "x")
	want := []string{"1", "2", "3"}
	if len(roots) != len(want) {
		t.Fatalf("want %v, got %v", want, roots)
	}
	for i := range want {
		if roots[i].String() != want[i] {
			t.Errorf("root %d: want %s, got %s", i, want[i], roots[i])
		}
	}
}

func TestSolve_RationalEquation(t *testing.T) {
	eq := symbolic.Eq(mustParse(t, "1/x"), mustParse(t, "2"))
	roots := symbolic.Solve(eq, "x")
	if len(roots) != 1 || roots[0].String() != "1/2" {
		t.Errorf("want [1/2], got %v", roots)
	}
}

func TestSolve_NoClosedForm(t *testing.T) {
	if roots := symbolic.SolveExpr(mustParse(t, "sin(x) - x"), "x"); len(roots) != 0 {
		t.Errorf("transcendental equation should yield no roots, got %v", roots)
	}
	if roots := symbolic.SolveExpr(mustParse(t, "5"), "x"); len(roots) != 0 {
		t.Errorf("constant should yield no roots, got %v", roots)
	}
}

func TestQuadraticRoots(t *testing.T) {
	disc, x1, x2 := symbolic.QuadraticRoots(symbolic.N(1), symbolic.N(-5), symbolic.N(6))
	if disc.String() != "1" || x1.String() != "3" || x2.String() != "2" {
		t.Errorf("got D=%s x1=%s x2=%s", disc, x1, x2)
	}
}

func TestTrigSimplify(t *testing.T) {
	e := mustParse(t, "3*sin(x)^2 + 3*cos(x)^2")
	if got := symbolic.TrigSimplify(e).String(); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
}
