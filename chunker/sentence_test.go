package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{
			description: "simple",
			input:       "Python is great. It is readable! Why? Because.",
			expected:    []string{"Python is great. ", "It is readable! ", "Why? ", "Because."},
		},
		{
			description: "abbreviation and decimal",
			input:       "Dr. Smith paid 3.50 dollars. Then left.",
			expected:    []string{"Dr. Smith paid 3.50 dollars. ", "Then left."},
		},
		{
			description: "lowercase continuation",
			input:       "Version 3. of the tool. Next one.",
			expected:    []string{"Version 3. of the tool. ", "Next one."},
		},
		{
			description: "leading whitespace dropped",
			input:       "  One.  Two.",
			expected:    []string{"One.  ", "Two."},
		},
	}
	for _, tc := range testCases {
		got := splitSentences(tc.input)
		assert.Equal(t, tc.expected, got, tc.description)
		assert.Equal(t, strings.TrimLeft(tc.input, " "), strings.Join(got, ""), tc.description)
	}
}

func TestSubSentenceSplits(t *testing.T) {
	assert.Equal(t, []string{"a,", " b;", " c."}, splitClauses("a, b; c."))
	assert.Equal(t, []string{"a", " b", " c"}, splitKeepSeparator("a b c", " "))
	assert.Equal(t, []string{"one", "\n\n\ntwo"}, splitKeepSeparator("one\n\n\ntwo", "\n\n\n"))
	assert.Equal(t, []string{"h", "é", "!"}, splitChars("hé!"))
}
