package commands

import (
	"testing"

	assert "github.com/stretchr/testify/assert"
)

func groups(names ...string) func(string) bool {
	return func(g string) bool {
		for _, n := range names {
			if n == g {
				return true
			}
		}
		return false
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		groups   []string
		expected ParsedLine
	}{
		{
			name:     "bare command defaults to main",
			line:     "status",
			groups:   []string{"main"},
			expected: ParsedLine{Group: "main", Name: "status", Args: []string{}},
		},
		{
			name:     "group prefix with quoted argument",
			line:     `print greet "John Doe"`,
			groups:   []string{"main", "print"},
			expected: ParsedLine{Group: "print", Name: "greet", Args: []string{"John Doe"}},
		},
		{
			name:     "group name alone is a command in main",
			line:     "print",
			groups:   []string{"main", "print"},
			expected: ParsedLine{Group: "main", Name: "print", Args: []string{}},
		},
		{
			name:     "unknown first token is the command",
			line:     "greet a b",
			groups:   []string{"main", "print"},
			expected: ParsedLine{Group: "main", Name: "greet", Args: []string{"a", "b"}},
		},
		{
			name:     "multiple quoted segments keep their order",
			line:     `say "one two"   plain "  three  " `,
			groups:   []string{"main"},
			expected: ParsedLine{Group: "main", Name: "say", Args: []string{"one two", "plain", "  three  "}},
		},
		{
			name:     "empty quotes give an empty argument",
			line:     `set key ""`,
			groups:   []string{"main"},
			expected: ParsedLine{Group: "main", Name: "set", Args: []string{"key", ""}},
		},
		{
			name:     "quoted segment glued to text",
			line:     `echo pre"fix and"post`,
			groups:   []string{"main"},
			expected: ParsedLine{Group: "main", Name: "echo", Args: []string{"prefix andpost"}},
		},
		{
			name:     "quoted first token is never a group",
			line:     `"print" greet`,
			groups:   []string{"main", "print"},
			expected: ParsedLine{Group: "main", Name: "print", Args: []string{"greet"}},
		},
		{
			name:     "names are lower-cased, args are not",
			line:     "Print Greet Bob",
			groups:   []string{"main", "print"},
			expected: ParsedLine{Group: "print", Name: "greet", Args: []string{"Bob"}},
		},
		{
			name:     "tabs and repeated spaces separate tokens",
			line:     "  add\t1    2  ",
			groups:   []string{"main"},
			expected: ParsedLine{Group: "main", Name: "add", Args: []string{"1", "2"}},
		},
		{
			name:     "empty line",
			line:     "   ",
			groups:   []string{"main"},
			expected: ParsedLine{Group: "main", Name: "", Args: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLine(tt.line, groups(tt.groups...)))
		})
	}
}

func TestParseLine_QuotedInteriorsSurviveAnyLayout(t *testing.T) {
	interiors := []string{"John Doe", "a  b", " lead", "trail ", "x", "", "tab\tinside"}
	layouts := []string{" ", "   ", "\t", " \t "}

	for _, sep := range layouts {
		line := "cmd"
		for _, in := range interiors {
			line += sep + `"` + in + `"`
		}

		parsed := ParseLine(line, nil)
		assert.Equal(t, interiors, parsed.Args, "layout %q", sep)
	}
}
