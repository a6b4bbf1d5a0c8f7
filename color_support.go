package typewriter

import (
	"os"
	"strings"
)

// DetectColorProfile guesses the colour support of the current terminal from
// the environment.
func DetectColorProfile() ColorProfile {
	if os.Getenv("NO_COLOR") != "" {
		return ProfileNone
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" {
		return ProfileNone
	}
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ProfileTrueColor
	}
	if os.Getenv("WT_SESSION") != "" {
		return ProfileTrueColor
	}
	termProgram := os.Getenv("TERM_PROGRAM")
	if termProgram == "iTerm.app" || termProgram == "WezTerm" || termProgram == "vscode" {
		return ProfileTrueColor
	}
	if strings.Contains(term, "kitty") || strings.Contains(term, "direct") {
		return ProfileTrueColor
	}
	return Profile256
}

// ParseColorProfile parses auto, none, 256 or truecolor.
func ParseColorProfile(s string) (ColorProfile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorProfile(), true
	case "none", "off", "no":
		return ProfileNone, true
	case "256", "ansi256":
		return Profile256, true
	case "truecolor", "24bit", "true":
		return ProfileTrueColor, true
	}
	return ProfileNone, false
}
