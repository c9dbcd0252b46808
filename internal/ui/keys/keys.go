package keys

import (
	"regexp"
	"slices"
	"strings"
)

// comboPattern is the combo grammar: token(+token)*, tokens alphanumeric
var comboPattern = regexp.MustCompile(`^[a-z0-9]+(\+[a-z0-9]+)*$`)

// Modifiers are the tokens that may appear before the final key of a combo
var Modifiers = []string{"ctrl", "control", "alt", "shift", "super", "meta", "win", "cmd"}

// NamedKeys are the non-character keys a combo can end with
var NamedKeys = []string{
	"enter", "return", "tab", "space", "backspace", "delete", "escape", "esc",
	"up", "down", "left", "right", "home", "end", "pgup", "pgdn", "insert",
	"backslash", "slash", "minus", "equal", "comma", "period", "semicolon",
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
}

// Normalize lower-cases a combo and strips surrounding whitespace
func Normalize(combo string) string {
	return strings.ToLower(strings.TrimSpace(combo))
}

// IsValidCombo checks a normalized combo against the token(+token)* grammar
func IsValidCombo(combo string) bool {
	return comboPattern.MatchString(combo)
}

// Tokens splits a combo into its ordered tokens
func Tokens(combo string) []string {
	if combo == "" {
		return nil
	}
	return strings.Split(combo, "+")
}

// LastToken returns the final token of a combo; it is the one a press is
// debounced on
func LastToken(combo string) string {
	tokens := Tokens(combo)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// IsModifier checks if a token is a modifier key
func IsModifier(token string) bool {
	return slices.Contains(Modifiers, token)
}

// IsPrintableCharacter checks if a token is a single printable character
func IsPrintableCharacter(token string) bool {
	return len(token) == 1 && token[0] >= ' ' && token[0] <= '~'
}

// IsKnownKey checks if a token names a modifier, a named key or a single character
func IsKnownKey(token string) bool {
	return IsModifier(token) || slices.Contains(NamedKeys, token) || IsPrintableCharacter(token)
}
