package keybinding

import (
	"fmt"
	"slices"

	constants "github.com/inference-gateway/hotcli/internal/constants"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	keys "github.com/inference-gateway/hotcli/internal/ui/keys"
)

// ReservedCombos returns the combos nothing may bind: the mode toggle and the
// terminal interrupt chords
func ReservedCombos() []string {
	return append([]string{constants.ToggleCombo}, constants.InterruptCombos...)
}

// ValidateCombo normalizes a combo and checks grammar and reservation
func ValidateCombo(combo string) (string, error) {
	normalized := keys.Normalize(combo)

	if !keys.IsValidCombo(normalized) {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedCombo, combo)
	}

	if slices.Contains(ReservedCombos(), normalized) {
		return "", fmt.Errorf("%w: %q", domain.ErrReservedCombo, normalized)
	}

	return normalized, nil
}

// UnknownTokens returns the tokens of a combo that no provider is known to map
func UnknownTokens(combo string) []string {
	var unknown []string
	for _, token := range keys.Tokens(keys.Normalize(combo)) {
		if !keys.IsKnownKey(token) {
			unknown = append(unknown, token)
		}
	}
	return unknown
}
