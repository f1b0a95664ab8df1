// Package tutor wires the classifier, solution parser and verifier into the
// flow a tutoring front end drives: classify the problem, structure the
// reasoning engine's answer, and check the calculations inside it.
package tutor

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/njchilds90/solvecheck/classify"
	"github.com/njchilds90/solvecheck/solution"
	"github.com/njchilds90/solvecheck/verify"
)

type Analyzer struct {
	verifier *verify.Verifier
	scanner  *verify.Scanner
	logger   *log.Logger
}

type Option func(*analyzerOptions)

type analyzerOptions struct {
	verifier *verify.Verifier
	workers  int
	logger   *log.Logger
}

func WithVerifier(v *verify.Verifier) Option {
	return func(o *analyzerOptions) { o.verifier = v }
}

// WithScanWorkers bounds concurrent verifications per scan.
func WithScanWorkers(n int) Option {
	return func(o *analyzerOptions) { o.workers = n }
}

func WithLogger(l *log.Logger) Option {
	return func(o *analyzerOptions) { o.logger = l }
}

func NewAnalyzer(opts ...Option) *Analyzer {
	o := analyzerOptions{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.verifier == nil {
		o.verifier = verify.New()
	}
	return &Analyzer{
		verifier: o.verifier,
		scanner:  verify.NewScanner(o.verifier, o.workers),
		logger:   o.logger,
	}
}

// Request is the input to Analyze. SolutionText may be empty when only a
// classification is wanted.
type Request struct {
	ProblemText  string               `json:"problem_text"`
	Hint         classify.ProblemType `json:"hint,omitempty"`
	SolutionText string               `json:"solution_text,omitempty"`
	SkipScan     bool                 `json:"skip_scan,omitempty"`
}

type Analysis struct {
	ID             string             `json:"id"`
	Classification classify.Decision  `json:"classification"`
	Solution       *solution.Document `json:"solution,omitempty"`
	Report         *verify.Report     `json:"verification,omitempty"`
	ReportText     string             `json:"verification_report,omitempty"`
}

// Analyze classifies the problem, parses the solution and scans it for
// calculations. Heuristic fallbacks are logged against the analysis ID.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (Analysis, error) {
	hint := req.Hint
	if hint == "" {
		hint = classify.Auto
	}
	out := Analysis{
		ID:             uuid.NewString(),
		Classification: classify.Decide(req.ProblemText, hint),
	}
	if req.Hint != "" && req.Hint != classify.Auto && !req.Hint.Known() {
		a.logger.Printf("analysis %s: unknown hint %q ignored", out.ID, req.Hint)
	}
	if out.Classification.Fallback {
		a.logger.Printf("analysis %s: no domain signal, defaulting to %s", out.ID, out.Classification.Type)
	}
	if req.SolutionText == "" {
		return out, nil
	}

	doc := solution.Parse(req.SolutionText, out.Classification.Type)
	out.Solution = &doc
	if !doc.Structured() {
		a.logger.Printf("analysis %s: solution has no section headers, using full text as explanation", out.ID)
	}
	if req.SkipScan {
		return out, nil
	}

	rep, err := a.scanner.Scan(ctx, req.SolutionText)
	if err != nil {
		return out, err
	}
	for _, f := range rep.Shadowed {
		a.logger.Printf("analysis %s: %s matches skipped, %s family took precedence", out.ID, f, rep.Family)
	}
	for _, it := range rep.Failed() {
		a.logger.Printf("analysis %s: could not verify %q: %s", out.ID, it.Span, it.Result.Error)
	}
	out.Report = &rep
	out.ReportText = rep.Render()
	return out, nil
}
