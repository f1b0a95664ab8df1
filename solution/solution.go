// Package solution turns free-form solution text into a structured
// document of named sections and numbered steps. Parsing never fails: text
// without recognisable structure becomes a document whose explanation is
// the whole input.
package solution

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/njchilds90/solvecheck/classify"
)

const (
	// DefaultSection collects text that precedes the first header.
	DefaultSection = "explanation"
	// AnswerSection is the section the final answer is read from.
	AnswerSection = "final_answer"

	boldMarker = "**"
)

type Step struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Document is a parsed solution.
type Document struct {
	RawText     string               `json:"full_response"`
	Sections    map[string]string    `json:"sections"`
	Steps       []Step               `json:"steps"`
	Explanation string               `json:"explanation"`
	Answer      *string              `json:"answer"`
	ProblemType classify.ProblemType `json:"problem_type,omitempty"`
}

// Structured reports whether the text had at least one section header.
func (d Document) Structured() bool {
	for key := range d.Sections {
		if key != DefaultSection {
			return true
		}
	}
	return false
}

// Parse splits text into sections and steps and tags the result with
// problemType.
func Parse(text string, problemType classify.ProblemType) Document {
	sections := SplitSections(text)
	doc := Document{
		RawText:     text,
		Sections:    sections,
		Steps:       ExtractSteps(text),
		Explanation: text,
		ProblemType: problemType,
	}
	if s, ok := sections[DefaultSection]; ok {
		doc.Explanation = s
	}
	if s, ok := sections[AnswerSection]; ok {
		doc.Answer = &s
	}
	return doc
}

// SplitSections splits text at header lines. A header line starts with a
// bold marker and holds a second one later on the line; the text between
// the markers, lower-cased with spaces turned to underscores, names the
// section. Text after the closing marker opens the section body. A section
// whose body is blank is omitted, and a repeated name keeps the last body.
func SplitSections(text string) map[string]string {
	sections := map[string]string{}
	current := DefaultSection
	var body []string
	flush := func() {
		if b := strings.TrimSpace(strings.Join(body, "\n")); b != "" {
			sections[current] = b
		}
	}
	for _, line := range strings.Split(text, "\n") {
		name, rest, ok := header(line)
		if !ok {
			body = append(body, line)
			continue
		}
		flush()
		current = name
		body = nil
		if rest = strings.TrimSpace(strings.TrimLeft(rest, ": ")); rest != "" {
			body = append(body, rest)
		}
	}
	flush()
	return sections
}

func header(line string) (name, rest string, ok bool) {
	if !strings.HasPrefix(line, boldMarker) {
		return "", "", false
	}
	inner, rest, found := strings.Cut(line[len(boldMarker):], boldMarker)
	if !found {
		return "", "", false
	}
	name = strings.Trim(inner, "*: \t")
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	return name, rest, true
}

// stepShape is a numbered-list layout: header finds a step number and the
// start of its content, boundary finds where the next step could begin.
type stepShape struct {
	header   *regexp.Regexp
	boundary *regexp.Regexp
}

var stepShapes = []stepShape{
	{
		header:   regexp.MustCompile(`(?i)step\s*(\d+)[:.)]\s*`),
		boundary: regexp.MustCompile(`(?i)step\s*\d+`),
	},
	{
		header:   regexp.MustCompile(`(\d+)[:.)]\s*`),
		boundary: regexp.MustCompile(`\d+[:.)]`),
	},
}

// ExtractSteps finds numbered steps in text. "Step N:" is tried first; bare
// "N:" numbering is used only when no "Step N:" occurs. The closing
// punctuation may be ':', '.' or ')'. Numbers are reported as written.
func ExtractSteps(text string) []Step {
	for _, shape := range stepShapes {
		if steps := shape.extract(text); len(steps) > 0 {
			return steps
		}
	}
	return []Step{}
}

// extract returns every step in text. A step's content runs from its header
// to the next boundary or the end of the text, and is never empty.
func (s stepShape) extract(text string) []Step {
	var steps []Step
	pos := 0
	for pos < len(text) {
		loc := s.header.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[1]
		if start >= len(text) {
			break
		}
		end := len(text)
		if next := s.boundary.FindStringIndex(text[start+1:]); next != nil {
			end = start + 1 + next[0]
		}
		n, err := strconv.Atoi(text[pos+loc[2] : pos+loc[3]])
		if err == nil {
			steps = append(steps, Step{Number: n, Content: strings.TrimSpace(text[start:end])})
		}
		pos = end
	}
	return steps
}
