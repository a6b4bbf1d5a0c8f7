package typewriter

import (
	"log/slog"
	"time"
)

// DefaultSpeed is the delay between two revealed characters.
const DefaultSpeed = 50 * time.Millisecond

// DefaultCursor is drawn after the revealed text.
const DefaultCursor = "_"

// Option configures a Typewriter.
type Option func(*config)

type config struct {
	speed        time.Duration
	showCursor   bool
	cursorChar   string
	matchers     []Matcher
	base         Style
	theme        Theme
	layout       Layout
	controller   *Controller
	scheduler    Scheduler
	logger       *slog.Logger
	onComplete   func()
	skipValidate bool
}

func defaultConfig() config {
	return config{
		speed:      DefaultSpeed,
		showCursor: true,
		cursorChar: DefaultCursor,
		theme:      DefaultTheme(),
	}
}

// WithSpeed sets the delay per character. Zero reveals as fast as the
// scheduler allows; negative values are rejected by New.
func WithSpeed(d time.Duration) Option {
	return func(cfg *config) {
		cfg.speed = d
	}
}

// WithCursor shows or hides the cursor.
func WithCursor(enabled bool) Option {
	return func(cfg *config) {
		cfg.showCursor = enabled
	}
}

// WithCursorCharacter sets the cursor glyph. It must be a single character.
func WithCursorCharacter(c string) Option {
	return func(cfg *config) {
		cfg.cursorChar = c
	}
}

// WithMatchers styles substrings matching any of the matchers. Earlier
// matchers win when several match the same text.
func WithMatchers(matchers ...Matcher) Option {
	return func(cfg *config) {
		cfg.matchers = append(cfg.matchers, matchers...)
	}
}

// WithBaseStyle sets the style of unmatched text, merged over the theme's text style.
func WithBaseStyle(s Style) Option {
	return func(cfg *config) {
		cfg.base = s
	}
}

// WithTheme sets the ambient theme. A nil theme selects DefaultTheme.
func WithTheme(t Theme) Option {
	return func(cfg *config) {
		if t == nil {
			t = DefaultTheme()
		}
		cfg.theme = t
	}
}

// WithLayout sets presentation options forwarded to the painter.
func WithLayout(l Layout) Option {
	return func(cfg *config) {
		cfg.layout = l
	}
}

// WithController attaches an external playback controller.
func WithController(c *Controller) Option {
	return func(cfg *config) {
		cfg.controller = c
	}
}

// WithScheduler replaces the timer scheduler, e.g. with a ManualScheduler.
func WithScheduler(s Scheduler) Option {
	return func(cfg *config) {
		cfg.scheduler = s
	}
}

// WithLogger enables debug logging of the animation lifecycle.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithOnComplete registers fn to run once each time the animation reveals
// the last character. fn runs with the typewriter locked.
func WithOnComplete(fn func()) Option {
	return func(cfg *config) {
		cfg.onComplete = fn
	}
}

// WithoutInputValidation accepts text that looks binary. Invalid UTF-8 is
// still rejected.
func WithoutInputValidation() Option {
	return func(cfg *config) {
		cfg.skipValidate = true
	}
}
