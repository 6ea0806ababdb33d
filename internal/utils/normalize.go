package utils

import "strings"

// Color modes accepted by NormalizeColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Duration label styles accepted by NormalizeDurationStyle.
const (
	DurationLong  = "long"
	DurationShort = "short"
)

// NormalizeColorMode normalizes color mode values.
// Accepts common aliases:
// - "", "auto", "tty" -> "auto"
// - "always", "on", "force", "true" -> "always"
// - "never", "off", "none", "false" -> "never"
// Returns the normalized mode and a boolean indicating if the input was valid.
func NormalizeColorMode(input string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "auto", "tty":
		return ColorAuto, true
	case "always", "on", "force", "true":
		return ColorAlways, true
	case "never", "off", "none", "false":
		return ColorNever, true
	default:
		return input, false
	}
}

// NormalizeDurationStyle normalizes duration label styles ("long" or "short").
func NormalizeDurationStyle(input string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "long", "full":
		return DurationLong, true
	case "short", "compact":
		return DurationShort, true
	default:
		return input, false
	}
}
