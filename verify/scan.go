package verify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Family names a shape of calculation the Scanner looks for.
type Family string

const (
	FamilyArithmetic     Family = "arithmetic"
	FamilyAssignment     Family = "assignment"
	FamilyEquationResult Family = "equation_result"
)

// DefaultScanWorkers bounds concurrent verifications per Scan.
const DefaultScanWorkers = 4

type family struct {
	name Family
	re   *regexp.Regexp
	// claim turns submatches into an arithmetic check. Nil means matches of
	// this family are recognised but carry nothing to verify.
	claim func(groups []string) (expr, claimed string)
}

var operatorMap = map[string]string{"+": "+", "-": "-", "*": "*", "/": "/", "×": "*", "÷": "/"}

// families is the precedence order. The first family with any match wins
// the whole scan.
var families = []family{
	{
		name: FamilyArithmetic,
		re:   regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([+\-*/×÷])\s*(\d+(?:\.\d+)?)\s*=\s*(\d+(?:\.\d+)?)`),
		claim: func(g []string) (string, string) {
			return fmt.Sprintf("%s %s %s", g[1], operatorMap[g[2]], g[3]), g[4]
		},
	},
	{
		name: FamilyAssignment,
		re:   regexp.MustCompile(`([a-zA-Z])\s*=\s*([\d\.\-]+)`),
	},
	{
		name: FamilyEquationResult,
		re:   regexp.MustCompile(`([a-zA-Z])\s*=\s*([^=]+)\s*=\s*([\d\.\-]+)`),
		claim: func(g []string) (string, string) {
			return strings.TrimSpace(g[2]), g[3]
		},
	},
}

// Match is one occurrence of a family in the scanned text. Start and End
// are byte offsets.
type Match struct {
	Span     string   `json:"match"`
	Kind     Family   `json:"type"`
	Operands []string `json:"operands,omitempty"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
}

// Item is a verified match.
type Item struct {
	Match
	Result Result `json:"result"`
}

// Report is the outcome of one Scan. Family is the family that won; Matches
// holds every match of it, including those with nothing to verify. Shadowed
// lists lower-priority families that also matched but were skipped.
type Report struct {
	Family   Family   `json:"family,omitempty"`
	Matches  []Match  `json:"matches"`
	Items    []Item   `json:"items"`
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
	Shadowed []Family `json:"shadowed,omitempty"`
}

// Scanner mines free text for checkable calculations.
type Scanner struct {
	verifier *Verifier
	workers  int
}

// NewScanner returns a Scanner verifying through v. workers <= 0 uses
// DefaultScanWorkers.
func NewScanner(v *Verifier, workers int) *Scanner {
	if v == nil {
		v = New()
	}
	if workers <= 0 {
		workers = DefaultScanWorkers
	}
	return &Scanner{verifier: v, workers: workers}
}

// firstMatchingFamily applies families in order and stops at the first one
// with a non-empty match list.
func firstMatchingFamily(text string) (family, [][]int, bool) {
	for _, f := range families {
		if locs := f.re.FindAllStringSubmatchIndex(text, -1); len(locs) > 0 {
			return f, locs, true
		}
	}
	return family{}, nil, false
}

func shadowedBy(winner Family, text string) []Family {
	var out []Family
	passed := false
	for _, f := range families {
		if f.name == winner {
			passed = true
			continue
		}
		if passed && f.re.MatchString(text) {
			out = append(out, f.name)
		}
	}
	return out
}

// Scan finds calculations in text and verifies them. Items keep match
// order regardless of which worker finished first. The only error is ctx
// cancellation.
func (s *Scanner) Scan(ctx context.Context, text string) (Report, error) {
	rep := Report{Matches: []Match{}, Items: []Item{}}
	f, locs, ok := firstMatchingFamily(text)
	if !ok {
		return rep, nil
	}
	rep.Family = f.name
	rep.Shadowed = shadowedBy(f.name, text)

	type pending struct {
		match         Match
		expr, claimed string
	}
	var work []pending
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		m := Match{Span: groups[0], Kind: f.name, Operands: groups[1:], Start: loc[0], End: loc[1]}
		rep.Matches = append(rep.Matches, m)
		if f.claim == nil {
			continue
		}
		expr, claimed := f.claim(groups)
		work = append(work, pending{match: m, expr: expr, claimed: strings.TrimSuffix(claimed, ".")})
	}

	items := make([]Item, len(work))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, w := range work {
		i, w := i, w
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i] = Item{Match: w.match, Result: s.verifier.Arithmetic(w.expr, w.claimed)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	rep.Items = items
	for _, it := range items {
		if it.Result.Correct() {
			rep.Correct++
		}
	}
	rep.Total = len(items)
	return rep, nil
}

// Failed lists items whose verification could not run.
func (r Report) Failed() []Item {
	var out []Item
	for _, it := range r.Items {
		if !it.Result.Verified {
			out = append(out, it)
		}
	}
	return out
}

// Render formats the report as Markdown. Hints appear only on items with a
// negative verdict; items that failed to parse show the cross alone.
func (r Report) Render() string {
	if len(r.Items) == 0 {
		return "No calculations detected for verification."
	}
	lines := []string{
		"## Calculation Verification Report\n",
		fmt.Sprintf("**Result: %d/%d calculations verified correct**\n", r.Correct, r.Total),
	}
	for i, it := range r.Items {
		status := "✗"
		if it.Result.Correct() {
			status = "✓"
		}
		label := it.Span
		if label == "" {
			label = it.Result.Expression
		}
		lines = append(lines, fmt.Sprintf("\n%d. %s `%s`", i+1, status, label))
		if it.Result.IsCorrect != nil && !*it.Result.IsCorrect {
			if it.Result.Error != "" {
				lines = append(lines, "   - Error: "+it.Result.Error)
			}
			if it.Result.Actual != "" {
				lines = append(lines, "   - Expected: "+it.Result.Actual)
			}
		}
	}
	return strings.Join(lines, "\n")
}
