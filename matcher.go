package typewriter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidMatcher reports a matcher whose pattern is missing or does not compile.
var ErrInvalidMatcher = errors.New("invalid matcher")

// Matcher assigns Style to every substring matching Pattern.
// A nil Style keeps the base style for the match.
type Matcher struct {
	Pattern *regexp.Regexp
	Style   *Style
}

// NewMatcher compiles pattern into a Matcher.
func NewMatcher(pattern string, style *Style) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{}, fmt.Errorf("matcher %q: %w: %v", pattern, ErrInvalidMatcher, err)
	}
	return Matcher{Pattern: re, Style: style}, nil
}

// MustMatcher is like NewMatcher but panics on error.
func MustMatcher(pattern string, style *Style) Matcher {
	m, err := NewMatcher(pattern, style)
	if err != nil {
		panic(err)
	}
	return m
}

// combineMatchers ORs the matcher patterns in list order. It returns nil when
// there is nothing to match.
func combineMatchers(matchers []Matcher) (*regexp.Regexp, error) {
	if len(matchers) == 0 {
		return nil, nil
	}
	parts := make([]string, 0, len(matchers))
	for i, m := range matchers {
		if m.Pattern == nil {
			return nil, fmt.Errorf("matcher %d: %w: nil pattern", i, ErrInvalidMatcher)
		}
		if m.Style != nil {
			if err := m.Style.Validate(); err != nil {
				return nil, fmt.Errorf("matcher %d: %w", i, err)
			}
		}
		parts = append(parts, "(?:"+m.Pattern.String()+")")
	}
	re, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("combine matchers: %w: %v", ErrInvalidMatcher, err)
	}
	return re, nil
}

// lookupMatcher returns the index of the first matcher whose own pattern
// matches text.
func lookupMatcher(matchers []Matcher, text string) int {
	for i, m := range matchers {
		if m.Pattern.MatchString(text) {
			return i
		}
	}
	return -1
}
