package symbolic_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/solvecheck/symbolic"
)

// ============================================================
// Normalize tests
// ============================================================

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"2x^2 + 3x": "2*x**2 + 3*x",
		"√16 × π":   "sqrt(16) * pi",
		"x²":        "x**2",
		"3÷4":       "3/4",
		"２ｘ":        "2*x",
		"∞":         "oo",
		"√(x+1)":    "sqrt(x+1)",
	}
	for in, want := range cases {
		got, ok := symbolic.Normalize(in)
		if !ok || got != want {
			t.Errorf("Normalize(%q): want %q, got %q (ok=%v)", in, want, got, ok)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"2x^2 + 3x", "√16 × π", "x² + y³", "6 ÷ 2 × 3", "2π∞", "√x + √(y)",
		"3x^2y", "12ab", "−5 · 2", "x^(1/2)",
	}
	for _, in := range inputs {
		once, ok := symbolic.Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) failed", in)
		}
		twice, _ := symbolic.Normalize(once)
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := symbolic.Normalize(in); ok {
			t.Errorf("Normalize(%q) should fail", in)
		}
	}
}

// ============================================================
// Parse tests
// ============================================================

func TestParse_ImplicitMultiplication(t *testing.T) {
	a := mustParse(t, "2(x+1)")
	b := mustParse(t, "2*x + 2")
	if !a.Equal(b) {
		t.Errorf("2(x+1) parsed as %s", a)
	}
	if got := mustParse(t, "2x + 3").String(); got != "2*x + 3" {
		t.Errorf("want 2*x + 3, got %s", got)
	}
	if got := mustParse(t, "xy").String(); got != "x*y" {
		t.Errorf("want x*y, got %s", got)
	}
}

func TestParse_PowerForms(t *testing.T) {
	if !mustParse(t, "x^2").Equal(mustParse(t, "x**2")) {
		t.Error("x^2 and x**2 should parse identically")
	}
	if got := mustParse(t, "-x**2").String(); got != "-x**2" {
		t.Errorf("unary minus binds looser than power: got %s", got)
	}
	if got := mustParse(t, "2**3**2").String(); got != "512" {
		t.Errorf("power is right associative: got %s", got)
	}
}

func TestParse_ConstantsAndFunctions(t *testing.T) {
	cases := map[string]string{
		"√16":       "4",
		"π":         "pi",
		"∞":         "oo",
		"e":         "E",
		"ln(e)":     "1",
		"sqrt(x)":   "sqrt(x)",
		"log(8, 2)": "log(8)/log(2)",
		"sin x":     "sin(x)",
		"0.5":       "1/2",
	}
	for in, want := range cases {
		if got := mustParse(t, in).String(); got != want {
			t.Errorf("%s: want %s, got %s", in, want, got)
		}
	}
}

func TestParse_ExtraSymbols(t *testing.T) {
	e := mustParse(t, "theta + 1", "theta")
	if _, ok := symbolic.FreeSymbols(e)["theta"]; !ok {
		t.Errorf("theta should be one symbol, got %s", e)
	}
}

func TestParse_GreekNames(t *testing.T) {
	for in, want := range map[string]string{
		"theta":       "theta",
		"2alpha + 1":  "2*alpha + 1",
		"sin(phi)":    "sin(phi)",
		"beta*lambda": "beta*lambda",
	} {
		if got := mustParse(t, in).String(); got != want {
			t.Errorf("%s: want %s, got %s", in, want, got)
		}
	}
	if _, ok := symbolic.FreeSymbols(mustParse(t, "theta"))["theta"]; !ok {
		t.Error("theta should be one symbol")
	}
}

func TestParse_Failures(t *testing.T) {
	for _, in := range []string{"", "   ", "2 +", "x $ 2", "(x + 1", "sin()", "x = 2", "1.5.2", "1..2", "3.1.4x"} {
		e, err := symbolic.Parse(in)
		if err == nil {
			t.Errorf("Parse(%q) should fail, got %s", in, e)
			continue
		}
		if !errors.Is(err, symbolic.ErrParse) {
			t.Errorf("Parse(%q): want ParseFailure, got %v", in, err)
		}
		if symbolic.KindOf(err) != symbolic.ParseFailure {
			t.Errorf("Parse(%q): KindOf = %v", in, symbolic.KindOf(err))
		}
	}
}

func TestParser_CacheReturnsEqualTrees(t *testing.T) {
	p, err := symbolic.NewParser(8)
	if err != nil {
		t.Fatal(err)
	}
	a, err := p.Parse("x^2 + 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Parse("x**2 + 1")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("cached parse differs: %s vs %s", a, b)
	}
	uncached, err := symbolic.NewParser(0)
	if err != nil {
		t.Fatal(err)
	}
	c, err := uncached.Parse("x^2 + 1")
	if err != nil || !c.Equal(a) {
		t.Errorf("uncached parser: %v %v", c, err)
	}
}

func TestLex(t *testing.T) {
	toks := symbolic.Lex("2*x**2 - sin(y)")
	want := []symbolic.TokenType{
		symbolic.TokenNumber, symbolic.TokenStar, symbolic.TokenWord, symbolic.TokenStarStar,
		symbolic.TokenNumber, symbolic.TokenMinus, symbolic.TokenWord, symbolic.TokenLParen,
		symbolic.TokenWord, symbolic.TokenRParen, symbolic.TokenEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Errorf("token %d: want type %d, got %v", i, want[i], toks[i])
		}
	}
}
