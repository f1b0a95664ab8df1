package verify

import "github.com/njchilds90/solvecheck/symbolic"

// Op names a verification operation.
type Op string

const (
	OpArithmetic Op = "arithmetic"
	OpEquation   Op = "equation"
	OpDerivative Op = "derivative"
	OpIntegral   Op = "integral"
	OpQuadratic  Op = "quadratic"
	OpSimplify   Op = "simplify"
	OpEvaluate   Op = "evaluate"
)

// ClaimCheck is the verdict on one claimed root of a quadratic.
type ClaimCheck struct {
	Claimed   string `json:"claimed"`
	IsCorrect bool   `json:"is_correct"`
}

// Result is the outcome of one verification operation. Verified is false
// when the operation could not run to a verdict; IsCorrect is then nil and
// Cause holds the classified *symbolic.Error.
type Result struct {
	Op           Op           `json:"op"`
	Verified     bool         `json:"verified"`
	IsCorrect    *bool        `json:"is_correct,omitempty"`
	Expression   string       `json:"expression,omitempty"`
	Variable     string       `json:"variable,omitempty"`
	Claimed      string       `json:"claimed,omitempty"`
	Actual       string       `json:"actual,omitempty"`
	ActualLaTeX  string       `json:"actual_latex,omitempty"`
	Solutions    []string     `json:"correct_solutions,omitempty"`
	Discriminant string       `json:"discriminant,omitempty"`
	Claims       []ClaimCheck `json:"verification,omitempty"`
	AllCorrect   *bool        `json:"all_correct,omitempty"`
	Simplified   string       `json:"simplified,omitempty"`
	IsDifferent  bool         `json:"is_different,omitempty"`
	Approx       *float64     `json:"approx,omitempty"`
	Error        string       `json:"error,omitempty"`
	Cause        error        `json:"-"`
}

// Correct reports a verified, correct claim.
func (r Result) Correct() bool { return r.IsCorrect != nil && *r.IsCorrect }

// Kind returns the error kind behind a failed or empty result, or 0.
func (r Result) Kind() symbolic.ErrorKind { return symbolic.KindOf(r.Cause) }

func boolPtr(b bool) *bool { return &b }

func failure(op Op, err *symbolic.Error) Result {
	msg := err.Msg
	if msg == "" {
		msg = err.Error()
	}
	return Result{Op: op, Error: msg, Cause: err}
}
