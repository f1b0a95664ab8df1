// Package classify tags problem text with a subject domain. The result
// selects a prompt for the reasoning engine; it is a keyword heuristic and
// never fails.
package classify

import (
	"regexp"
	"strings"
)

// ProblemType is a subject domain.
type ProblemType string

const (
	Math        ProblemType = "math"
	Physics     ProblemType = "physics"
	Chemistry   ProblemType = "chemistry"
	WordProblem ProblemType = "word_problem"
	General     ProblemType = "general"

	// Auto asks Classify to infer the domain from the text.
	Auto ProblemType = "auto"
)

// Known reports whether t is a domain a hint may name.
func (t ProblemType) Known() bool {
	switch t {
	case Math, Physics, Chemistry, WordProblem, General:
		return true
	}
	return false
}

const (
	// StrongSignal is the keyword count that lets physics or chemistry
	// override a structurally present math expression.
	StrongSignal = 3
	// KeywordMinimum is the keyword count a domain needs to win on keywords
	// alone.
	KeywordMinimum = 2
)

// Keywords is the per-domain keyword table. A keyword counts once when it
// occurs anywhere in the lower-cased text, including inside a longer word.
var Keywords = map[ProblemType][]string{
	Physics: {
		"velocity", "acceleration", "force", "mass", "newton",
		"joule", "watt", "energy", "momentum", "friction",
		"gravity", "electric", "magnetic", "wave", "frequency",
		"m/s", "kg", "meters per second",
	},
	Chemistry: {
		"molecule", "atom", "element", "compound", "reaction",
		"mole", "molarity", "concentration", "acid", "base",
		"ph", "oxidation", "reduction", "bond", "ion",
		"h2o", "nacl", "co2", "chemical", "balance equation",
	},
	Math: {
		"solve", "equation", "algebra", "calculus", "geometry",
		"integral", "derivative", "function", "graph",
		"polynomial", "quadratic", "linear", "matrix", "vector",
		"limit", "series", "sum", "product",
		"sin", "cos", "tan", "log", "ln", "sqrt", "√",
	},
}

var wordProblemPhrases = []string{
	"how many", "how much", "find the", "calculate the",
	"what is the", "if", "when", "total", "remaining",
}

var mathShapes = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*[+\-*/×÷^]\s*\d+`),
	regexp.MustCompile(`[a-zA-Z]\s*=\s*\d+`),
	regexp.MustCompile(`\d+\s*=\s*\d+`),
	regexp.MustCompile(`\([^)]+\)`),
	regexp.MustCompile(`x\^?\d*`),
}

// Signals are the measurements a decision is based on.
type Signals struct {
	Physics       int  `json:"physics"`
	Chemistry     int  `json:"chemistry"`
	Math          int  `json:"math"`
	HasExpression bool `json:"has_expression"`
	WordProblem   bool `json:"word_problem"`
}

// Decision is a classification with the reasoning behind it. Fallback is
// set when no signal pointed anywhere and the default domain was chosen.
type Decision struct {
	Type     ProblemType `json:"type"`
	Hinted   bool        `json:"hinted"`
	Fallback bool        `json:"fallback"`
	Signals  Signals     `json:"signals"`
}

// HasMathExpression reports whether text contains any structural math
// shape: binary arithmetic, an assignment, a numeric equality, a
// parenthetical group, or an x term.
func HasMathExpression(text string) bool {
	for _, re := range mathShapes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func count(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func measure(text string) Signals {
	lower := strings.ToLower(text)
	return Signals{
		Physics:       count(lower, Keywords[Physics]),
		Chemistry:     count(lower, Keywords[Chemistry]),
		Math:          count(lower, Keywords[Math]),
		HasExpression: HasMathExpression(text),
		WordProblem:   count(lower, wordProblemPhrases) > 0,
	}
}

// Decide classifies text. A known hint other than Auto is returned as is.
func Decide(text string, hint ProblemType) Decision {
	if hint != Auto && hint.Known() {
		return Decision{Type: hint, Hinted: true}
	}
	s := measure(text)
	d := Decision{Signals: s}

	if s.HasExpression {
		switch {
		case s.Physics >= StrongSignal:
			d.Type = Physics
		case s.Chemistry >= StrongSignal:
			d.Type = Chemistry
		default:
			d.Type = Math
		}
		return d
	}

	top := max(s.Physics, s.Chemistry, s.Math)
	switch {
	case s.Physics >= KeywordMinimum && s.Physics == top:
		d.Type = Physics
	case s.Chemistry >= KeywordMinimum && s.Chemistry == top:
		d.Type = Chemistry
	case s.Math > 0:
		d.Type = Math
	case s.WordProblem:
		d.Type = WordProblem
	default:
		d.Type = Math
		d.Fallback = true
	}
	return d
}

// Classify returns the domain of text, honouring a known hint.
func Classify(text string, hint ProblemType) ProblemType {
	return Decide(text, hint).Type
}
