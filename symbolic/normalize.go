package symbolic

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	// √ applied directly to a number or a name gets explicit parentheses.
	radicalOperandRe = regexp.MustCompile(`√\s*(\d+(?:\.\d+)?|[A-Za-z]+)`)
	// A digit immediately followed by a letter is an implicit product.
	digitLetterRe = regexp.MustCompile(`(\d)([A-Za-z])`)

	glyphReplacer = strings.NewReplacer(
		"^", "**",
		"×", "*",
		"÷", "/",
		"·", "*",
		"⋅", "*",
		"−", "-",
		"√", "sqrt",
		"²", "**2",
		"³", "**3",
		"π", "pi",
		"∞", "oo",
	)
)

// Normalize rewrites typeset math into the ASCII form Parse accepts:
// ** for powers, * and / for products and quotients, sqrt, pi and oo, and
// an explicit * wherever a digit is immediately followed by a letter.
// Full-width characters are folded to their ASCII forms first. It reports
// false for blank input. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return "", false
	}
	s = radicalOperandRe.ReplaceAllString(s, "sqrt(${1})")
	s = glyphReplacer.Replace(s)
	s = digitLetterRe.ReplaceAllString(s, "${1}*${2}")
	return s, true
}
