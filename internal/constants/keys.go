package constants

// ToggleCombo flips the console between Interactive and NonInteractive. It is fixed.
const ToggleCombo = "ctrl+c"

// InterruptCombos are the terminal's job-control chords. They can never be bound.
var InterruptCombos = []string{"ctrl+z", "ctrl+backslash"}

// DefaultGroup is the group a command lands in when none is given
const DefaultGroup = "main"

// LiteralPlaceholder stands in for a double-quoted segment while a console line is split
const LiteralPlaceholder = "\x00lit\x00"

// MaxModeHistory bounds the transition history kept by the mode arbiter
const MaxModeHistory = 100
