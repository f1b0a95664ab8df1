package solution_test

import (
	"testing"

	"github.com/njchilds90/solvecheck/classify"
	"github.com/njchilds90/solvecheck/solution"
	"github.com/stretchr/testify/require"
)

const worked = `We need to solve the equation.
**Solution**:
Step 1: Subtract 5 from both sides: 2x = 8
Step 2: Divide by 2: x = 4
**Final Answer**: x = 4`

func TestParse(t *testing.T) {
	doc := solution.Parse(worked, classify.Math)

	require.Equal(t, worked, doc.RawText)
	require.Equal(t, classify.Math, doc.ProblemType)
	require.Equal(t, "We need to solve the equation.", doc.Explanation)
	require.Equal(t, "Step 1: Subtract 5 from both sides: 2x = 8\nStep 2: Divide by 2: x = 4", doc.Sections["solution"])
	require.NotNil(t, doc.Answer)
	require.Equal(t, "x = 4", *doc.Answer)
	require.True(t, doc.Structured())

	require.Len(t, doc.Steps, 2)
	require.Equal(t, solution.Step{Number: 1, Content: "Subtract 5 from both sides: 2x = 8"}, doc.Steps[0])
	require.Equal(t, 2, doc.Steps[1].Number)
	require.Contains(t, doc.Steps[1].Content, "Divide by 2: x = 4")
}

func TestParseUnstructured(t *testing.T) {
	doc := solution.Parse("Just an explanation.", classify.General)
	require.Equal(t, "Just an explanation.", doc.Explanation)
	require.Nil(t, doc.Answer)
	require.Empty(t, doc.Steps)
	require.False(t, doc.Structured())
}

func TestParseExplanationFallsBackToRawText(t *testing.T) {
	text := "**Answer**\n42"
	doc := solution.Parse(text, classify.Math)
	require.Equal(t, map[string]string{"answer": "42"}, doc.Sections)
	require.Equal(t, text, doc.Explanation)
}

func TestSplitSections(t *testing.T) {
	got := solution.SplitSections("intro\n**First Part**\n**Second Part:** inline\nmore")
	require.Equal(t, map[string]string{
		"explanation": "intro",
		"second_part": "inline\nmore",
	}, got)

	got = solution.SplitSections("**Solution**\n\n  \n**Answer**: 4")
	require.Equal(t, map[string]string{"answer": "4"}, got)

	got = solution.SplitSections("**not a header\nplain")
	require.Equal(t, map[string]string{"explanation": "**not a header\nplain"}, got)
}

func TestExtractStepsBareNumbers(t *testing.T) {
	steps := solution.ExtractSteps("1) Add the numbers\n2) Divide by two")
	require.Equal(t, []solution.Step{
		{Number: 1, Content: "Add the numbers"},
		{Number: 2, Content: "Divide by two"},
	}, steps)
}

func TestExtractStepsNeverMergesShapes(t *testing.T) {
	steps := solution.ExtractSteps("Step 1: a\n2) b")
	require.Len(t, steps, 1)
	require.Equal(t, "a\n2) b", steps[0].Content)
}

func TestExtractStepsKeepsNumbersAsWritten(t *testing.T) {
	steps := solution.ExtractSteps("step 3. third\nSTEP 1) first")
	require.Equal(t, []solution.Step{
		{Number: 3, Content: "third"},
		{Number: 1, Content: "first"},
	}, steps)
}
