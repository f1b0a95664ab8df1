package verify_test

import (
	"testing"
	"time"

	"github.com/njchilds90/solvecheck/symbolic"
	"github.com/njchilds90/solvecheck/verify"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	v := verify.New()

	res := v.Arithmetic("2 + 3 * 4", "14")
	require.True(t, res.Verified)
	require.True(t, res.Correct())
	require.Equal(t, "14", res.Actual)
	require.Empty(t, res.Error)

	res = v.Arithmetic("2 + 3 * 4", "20")
	require.True(t, res.Verified)
	require.NotNil(t, res.IsCorrect)
	require.False(t, *res.IsCorrect)
	require.Equal(t, "Expected 14, got 20", res.Error)
	require.Equal(t, "14", res.Actual)
}

func TestArithmeticExactFractions(t *testing.T) {
	res := verify.New().Arithmetic("1/3 + 1/6", "0.5")
	require.True(t, res.Correct())
}

func TestArithmeticParseFailure(t *testing.T) {
	res := verify.New().Arithmetic("2 +", "5")
	require.False(t, res.Verified)
	require.Nil(t, res.IsCorrect)
	require.Equal(t, symbolic.ParseFailure, res.Kind())
	require.ErrorIs(t, res.Cause, symbolic.ErrParse)
	require.Contains(t, res.Error, "Could not parse")
}

func TestArithmeticMalformedNumber(t *testing.T) {
	v := verify.New()
	for _, claim := range []string{"1.5.2", "1..2"} {
		res := v.Arithmetic("3/10", claim)
		require.False(t, res.Verified, "claim %q", claim)
		require.Nil(t, res.IsCorrect)
		require.Equal(t, symbolic.ParseFailure, res.Kind())
	}
}

func TestArithmeticReportsClaimAsWritten(t *testing.T) {
	res := verify.New().Arithmetic("1/3", "0.50")
	require.False(t, res.Correct())
	require.Equal(t, "Expected 1/3, got 0.50", res.Error)
}

func TestArithmeticHugePowerStaysBounded(t *testing.T) {
	start := time.Now()
	res := verify.New(verify.WithTimeout(0)).Arithmetic("((10**500)**500)**500", "1")
	require.Less(t, time.Since(start), 2*time.Second)
	require.True(t, res.Verified)
	require.False(t, res.Correct())
}

func TestEquation(t *testing.T) {
	v := verify.New()

	res := v.Equation("2x + 5 = 13", "x", "4")
	require.True(t, res.Correct())
	require.Equal(t, []string{"4"}, res.Solutions)

	res = v.Equation("x^2 - 5x + 6 = 0", "", "3")
	require.True(t, res.Correct())
	require.Equal(t, "x", res.Variable)

	res = v.Equation("x^2 - 5x + 6 = 0", "x", "4")
	require.True(t, res.Verified)
	require.False(t, res.Correct())
	require.Equal(t, "Correct solution(s): [2, 3]", res.Error)
}

func TestEquationUnsupportedForm(t *testing.T) {
	v := verify.New()

	res := v.Equation("2x + 5", "x", "4")
	require.False(t, res.Verified)
	require.Equal(t, symbolic.UnsupportedForm, res.Kind())
	require.Equal(t, "No equals sign found", res.Error)

	res = v.Equation("x = 1 = 2", "x", "1")
	require.False(t, res.Verified)
	require.Equal(t, symbolic.UnsupportedForm, res.Kind())
}

func TestEquationSolverEmpty(t *testing.T) {
	res := verify.New().Equation("sin(x) = x", "x", "0")
	require.True(t, res.Verified)
	require.NotNil(t, res.IsCorrect)
	require.False(t, *res.IsCorrect)
	require.Equal(t, symbolic.SolverEmpty, res.Kind())
	require.Empty(t, res.Solutions)
}

func TestDerivative(t *testing.T) {
	v := verify.New()

	res := v.Derivative("x^3", "x", "3x^2")
	require.True(t, res.Correct())
	require.Equal(t, "3*x**2", res.Actual)

	res = v.Derivative("x^3", "x", "x^2")
	require.False(t, res.Correct())
	require.Equal(t, "Correct derivative: 3*x**2", res.Error)

	res = v.Derivative("sin(x)^2", "x", "2 sin(x) cos(x)")
	require.True(t, res.Correct())

	res = v.Derivative("tan(x)", "x", "1/cos(x)^2")
	require.True(t, res.Correct())
}

func TestIntegralIgnoresConstant(t *testing.T) {
	v := verify.New()
	for _, claim := range []string{"x^2", "x^2 + 5", "x^2 - 17/3", "x^2 + C"} {
		res := v.Integral("2x", "x", claim)
		require.True(t, res.Correct(), "claim %q", claim)
		require.Equal(t, "x**2 + C", res.Actual)
	}

	res := v.Integral("2x", "x", "x^3")
	require.True(t, res.Verified)
	require.False(t, res.Correct())
	require.Equal(t, "Correct integral: x**2 + C", res.Error)
}

func TestQuadratic(t *testing.T) {
	v := verify.New()

	res := v.Quadratic("1", "-5", "6", []string{"2", "3"})
	require.True(t, res.Verified)
	require.Equal(t, "1", res.Discriminant)
	require.Equal(t, []string{"3", "2"}, res.Solutions)
	require.NotNil(t, res.AllCorrect)
	require.True(t, *res.AllCorrect)
	require.Len(t, res.Claims, 2)

	res = v.Quadratic("1", "-5", "6", []string{"2", "4"})
	require.False(t, *res.AllCorrect)
	require.True(t, res.Claims[0].IsCorrect)
	require.False(t, res.Claims[1].IsCorrect)

	res = v.Quadratic("1", "0", "1", []string{"I", "-I"})
	require.Equal(t, "-4", res.Discriminant)
	require.True(t, *res.AllCorrect)

	res = v.Quadratic("1", "0", "-4", nil)
	require.True(t, *res.AllCorrect)
	require.Empty(t, res.Claims)
}

func TestQuadraticRejects(t *testing.T) {
	v := verify.New()

	res := v.Quadratic("0", "2", "1", []string{"-1/2"})
	require.False(t, res.Verified)
	require.Equal(t, symbolic.UnsupportedForm, res.Kind())

	res = v.Quadratic("1", "-5", "6", []string{"2", "3 +"})
	require.False(t, res.Verified)
	require.Equal(t, symbolic.ParseFailure, res.Kind())
	require.Nil(t, res.AllCorrect)
}

func TestSimplify(t *testing.T) {
	v := verify.New()

	res := v.Simplify("sin(x)^2 + cos(x)^2")
	require.True(t, res.Verified)
	require.Equal(t, "1", res.Simplified)
	require.True(t, res.IsDifferent)

	res = v.Simplify("x + 1")
	require.Equal(t, "x + 1", res.Simplified)
	require.False(t, res.IsDifferent)
}

func TestEvaluate(t *testing.T) {
	res := verify.New().Evaluate("x^2 + 2*x + 1", map[string]string{"x": "3"})
	require.True(t, res.Verified)
	require.Equal(t, "16", res.Actual)
	require.NotNil(t, res.Approx)
	require.InDelta(t, 16.0, *res.Approx, 1e-12)

	res = verify.New().Evaluate("a*b + c", map[string]string{"a": "2", "b": "1/2"})
	require.Equal(t, "c + 1", res.Actual)
	require.Nil(t, res.Approx)
}

func TestDeterministic(t *testing.T) {
	v := verify.New()
	a := v.Equation("x^2 - 2 = 0", "x", "sqrt(2)")
	b := v.Equation("x^2 - 2 = 0", "x", "sqrt(2)")
	require.Equal(t, a, b)
	require.True(t, a.Correct())
}

func TestWithParser(t *testing.T) {
	p, err := symbolic.NewParser(4)
	require.NoError(t, err)
	res := verify.New(verify.WithParser(p), verify.WithTimeout(0)).Arithmetic("6 / 4", "3/2")
	require.True(t, res.Correct())
}
