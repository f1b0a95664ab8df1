// Package verify checks arithmetic and symbolic claims found in solution
// text: arithmetic results, equation solutions, derivatives, integrals and
// quadratic roots. Every operation returns a Result; faults inside the
// expression engine, including panics and per-call timeouts, become failed
// results instead of escaping to the caller.
package verify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/njchilds90/solvecheck/symbolic"
)

// DefaultTimeout bounds a single operation when no WithTimeout option is
// given.
const DefaultTimeout = 5 * time.Second

// Verifier runs verification operations. It holds no mutable state and is
// safe for concurrent use.
type Verifier struct {
	parser  *symbolic.Parser
	timeout time.Duration
}

type Option func(*Verifier)

// WithParser makes the Verifier parse through p instead of the package
// default parser.
func WithParser(p *symbolic.Parser) Option {
	return func(v *Verifier) { v.parser = p }
}

// WithTimeout sets the per-call time limit. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(v *Verifier) { v.timeout = d }
}

func New(opts ...Option) *Verifier {
	v := &Verifier{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Parse parses text through the Verifier's parser, so callers share its
// cache.
func (v *Verifier) Parse(text string, extra ...string) (symbolic.Expr, error) {
	if v.parser != nil {
		return v.parser.Parse(text, extra...)
	}
	return symbolic.Parse(text, extra...)
}

// guard runs fn with panic recovery and the per-call time limit. A timed-out
// computation is abandoned, not interrupted; its goroutine finishes on its
// own and the result is discarded.
func (v *Verifier) guard(op Op, fn func() Result) Result {
	done := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- failure(op, &symbolic.Error{
					Kind: symbolic.InternalComputation,
					Op:   string(op),
					Msg:  fmt.Sprintf("internal error: %v", r),
				})
			}
		}()
		done <- fn()
	}()
	if v.timeout <= 0 {
		return <-done
	}
	timer := time.NewTimer(v.timeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res
	case <-timer.C:
		return failure(op, &symbolic.Error{
			Kind: symbolic.InternalComputation,
			Op:   string(op),
			Msg:  fmt.Sprintf("computation exceeded %s", v.timeout),
		})
	}
}

func parseFailure(op Op, what string, err error) Result {
	return failure(op, &symbolic.Error{
		Kind: symbolic.ParseFailure,
		Op:   string(op),
		Msg:  "Could not parse " + what,
		Err:  err,
	})
}

func variableOrDefault(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return "x"
	}
	return name
}

// Arithmetic checks that exprText evaluates to claimedText.
func (v *Verifier) Arithmetic(exprText, claimedText string) Result {
	return v.guard(OpArithmetic, func() Result {
		expr, err := v.Parse(exprText)
		if err != nil {
			return withInput(parseFailure(OpArithmetic, "expression", err), exprText, claimedText)
		}
		claimed, err := v.Parse(claimedText)
		if err != nil {
			return withInput(parseFailure(OpArithmetic, "claimed result", err), exprText, claimedText)
		}
		actual := expr.Simplify()
		ok := symbolic.Equivalent(actual, claimed)
		res := Result{
			Op:          OpArithmetic,
			Verified:    true,
			IsCorrect:   boolPtr(ok),
			Expression:  exprText,
			Claimed:     claimedText,
			Actual:      actual.String(),
			ActualLaTeX: actual.LaTeX(),
		}
		if !ok {
			res.Error = fmt.Sprintf("Expected %s, got %s", actual, claimedText)
		}
		return res
	})
}

func withInput(r Result, expr, claimed string) Result {
	r.Expression = expr
	r.Claimed = claimed
	return r
}

// Equation solves eqText for varName and checks that claimedText is one of
// the solutions. eqText must contain exactly one '='. An empty solution set
// is a verified, incorrect result whose Cause is SolverEmpty.
func (v *Verifier) Equation(eqText, varName, claimedText string) Result {
	varName = variableOrDefault(varName)
	return v.guard(OpEquation, func() Result {
		in := func(r Result) Result {
			r = withInput(r, eqText, claimedText)
			r.Variable = varName
			return r
		}
		switch n := strings.Count(eqText, "="); {
		case n == 0:
			return in(failure(OpEquation, &symbolic.Error{Kind: symbolic.UnsupportedForm, Op: string(OpEquation), Msg: "No equals sign found"}))
		case n > 1:
			return in(failure(OpEquation, &symbolic.Error{Kind: symbolic.UnsupportedForm, Op: string(OpEquation), Msg: fmt.Sprintf("Expected exactly one equals sign, found %d", n)}))
		}
		left, right, _ := strings.Cut(eqText, "=")
		lhs, err := v.Parse(left, varName)
		if err != nil {
			return in(parseFailure(OpEquation, "left side of equation", err))
		}
		rhs, err := v.Parse(right, varName)
		if err != nil {
			return in(parseFailure(OpEquation, "right side of equation", err))
		}
		claimed, err := v.Parse(claimedText, varName)
		if err != nil {
			return in(parseFailure(OpEquation, "claimed solution", err))
		}

		roots := symbolic.Solve(symbolic.Eq(lhs, rhs), varName)
		solutions := make([]string, 0, len(roots))
		ok := false
		for _, r := range roots {
			solutions = append(solutions, r.String())
			if symbolic.Equivalent(claimed, r) {
				ok = true
			}
		}
		res := in(Result{
			Op:        OpEquation,
			Verified:  true,
			IsCorrect: boolPtr(ok),
			Solutions: solutions,
		})
		if len(roots) == 0 {
			res.Cause = &symbolic.Error{Kind: symbolic.SolverEmpty, Op: string(OpEquation), Msg: "no closed-form solution found"}
		}
		if !ok {
			res.Error = fmt.Sprintf("Correct solution(s): [%s]", strings.Join(solutions, ", "))
		}
		return res
	})
}

// Derivative checks claimedText against d(fnText)/d(varName).
func (v *Verifier) Derivative(fnText, varName, claimedText string) Result {
	varName = variableOrDefault(varName)
	return v.guard(OpDerivative, func() Result {
		in := func(r Result) Result {
			r = withInput(r, fnText, claimedText)
			r.Variable = varName
			return r
		}
		f, err := v.Parse(fnText, varName)
		if err != nil {
			return in(parseFailure(OpDerivative, "function", err))
		}
		claimed, err := v.Parse(claimedText, varName)
		if err != nil {
			return in(parseFailure(OpDerivative, "claimed derivative", err))
		}
		d := f.Diff(varName)
		ok := symbolic.Equivalent(d, claimed)
		res := in(Result{
			Op:          OpDerivative,
			Verified:    true,
			IsCorrect:   boolPtr(ok),
			Actual:      d.String(),
			ActualLaTeX: d.LaTeX(),
		})
		if !ok {
			res.Error = fmt.Sprintf("Correct derivative: %s", d)
		}
		return res
	})
}

// Integral checks claimedText by differentiating it and comparing with
// fnText, so any constant of integration is accepted. The reference
// antiderivative in Actual is for display only.
func (v *Verifier) Integral(fnText, varName, claimedText string) Result {
	varName = variableOrDefault(varName)
	return v.guard(OpIntegral, func() Result {
		in := func(r Result) Result {
			r = withInput(r, fnText, claimedText)
			r.Variable = varName
			return r
		}
		f, err := v.Parse(fnText, varName)
		if err != nil {
			return in(parseFailure(OpIntegral, "function", err))
		}
		claimed, err := v.Parse(claimedText, varName)
		if err != nil {
			return in(parseFailure(OpIntegral, "claimed integral", err))
		}
		ok := symbolic.Equivalent(claimed.Diff(varName), f)
		res := in(Result{Op: OpIntegral, Verified: true, IsCorrect: boolPtr(ok)})
		reference, found := symbolic.Integrate(f, varName)
		if found {
			res.Actual = reference.String() + " + C"
			res.ActualLaTeX = reference.LaTeX() + " + C"
		}
		if !ok {
			if found {
				res.Error = fmt.Sprintf("Correct integral: %s + C", reference)
			} else {
				res.Error = fmt.Sprintf("Derivative of the claimed integral is %s, not %s", claimed.Diff(varName), f)
			}
		}
		return res
	})
}

// Quadratic computes the roots of a*x**2 + b*x + c and checks each claimed
// value against them. AllCorrect is the conjunction over all claims and is
// true for an empty claim list.
func (v *Verifier) Quadratic(a, b, c string, claims []string) Result {
	return v.guard(OpQuadratic, func() Result {
		coeffs := make([]symbolic.Expr, 3)
		for i, text := range []string{a, b, c} {
			e, err := v.Parse(text)
			if err != nil {
				return parseFailure(OpQuadratic, "coefficient "+string(rune('a'+i)), err)
			}
			coeffs[i] = e
		}
		if symbolic.IsZero(coeffs[0]) {
			return failure(OpQuadratic, &symbolic.Error{Kind: symbolic.UnsupportedForm, Op: string(OpQuadratic), Msg: "Coefficient a must be nonzero"})
		}
		disc, x1, x2 := symbolic.QuadraticRoots(coeffs[0], coeffs[1], coeffs[2])

		checks := make([]ClaimCheck, 0, len(claims))
		all := true
		for _, text := range claims {
			claimed, err := v.Parse(text)
			if err != nil {
				return parseFailure(OpQuadratic, fmt.Sprintf("claimed solution %q", text), err)
			}
			ok := symbolic.Equivalent(claimed, x1) || symbolic.Equivalent(claimed, x2)
			all = all && ok
			checks = append(checks, ClaimCheck{Claimed: text, IsCorrect: ok})
		}
		return Result{
			Op:           OpQuadratic,
			Verified:     true,
			IsCorrect:    boolPtr(all),
			Expression:   fmt.Sprintf("(%s)*x**2 + (%s)*x + (%s)", a, b, c),
			Discriminant: disc.String(),
			Solutions:    []string{x1.String(), x2.String()},
			Claims:       checks,
			AllCorrect:   boolPtr(all),
		}
	})
}

// Simplify reports the simplified form of text and whether it differs from
// the form the parser produced.
func (v *Verifier) Simplify(text string) Result {
	return v.guard(OpSimplify, func() Result {
		e, err := v.Parse(text)
		if err != nil {
			return withInput(parseFailure(OpSimplify, "expression", err), text, "")
		}
		s := symbolic.DeepSimplify(e)
		return Result{
			Op:          OpSimplify,
			Verified:    true,
			Expression:  text,
			Simplified:  s.String(),
			Actual:      s.String(),
			ActualLaTeX: s.LaTeX(),
			IsDifferent: s.String() != e.String(),
		}
	})
}

// Evaluate substitutes vars (name to value text) into text. Approx is set
// when the result is a real number.
func (v *Verifier) Evaluate(text string, vars map[string]string) Result {
	return v.guard(OpEvaluate, func() Result {
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		e, err := v.Parse(text, names...)
		if err != nil {
			return withInput(parseFailure(OpEvaluate, "expression", err), text, "")
		}
		for _, name := range names {
			val, err := v.Parse(vars[name], names...)
			if err != nil {
				return withInput(parseFailure(OpEvaluate, fmt.Sprintf("value of %s", name), err), text, "")
			}
			e = e.Sub(name, val)
		}
		res := Result{
			Op:          OpEvaluate,
			Verified:    true,
			Expression:  text,
			Actual:      e.String(),
			ActualLaTeX: e.LaTeX(),
		}
		if f, ok := e.Eval(); ok {
			res.Approx = &f
		}
		return res
	})
}
