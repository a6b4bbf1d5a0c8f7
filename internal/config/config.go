// Package config reads typewriter settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pkt.systems/typewriter"
)

var (
	// ErrUnknownStyle is returned when a matcher names a style the theme lacks.
	ErrUnknownStyle = errors.New("unknown style")
	ErrUnknownTheme = errors.New("unknown theme")
)

// Config mirrors the file layout:
//
//	speed = "40ms"
//	cursor = true
//	cursor_char = "▌"
//	theme = "dracula"
//	sound = false
//
//	[layout]
//	align = "center"
//	wrap = true
//	width = 60
//	max_lines = 4
//	ellipsis = true
//
//	[[matcher]]
//	pattern = "\\bGo\\b"
//	style = "strong"
//
//	[[matcher]]
//	pattern = "https?://\\S+"
//	fg = "#8be9fd"
//	attrs = ["underline"]
type Config struct {
	Speed      Duration  `toml:"speed"`
	Cursor     *bool     `toml:"cursor"`
	CursorChar string    `toml:"cursor_char"`
	Theme      string    `toml:"theme"`
	Sound      bool      `toml:"sound"`
	Layout     Layout    `toml:"layout"`
	Matchers   []Matcher `toml:"matcher"`
}

// Layout holds presentation settings.
type Layout struct {
	Align     string `toml:"align"`
	Direction string `toml:"direction"`
	Wrap      bool   `toml:"wrap"`
	Width     int    `toml:"width"`
	MaxLines  int    `toml:"max_lines"`
	Ellipsis  bool   `toml:"ellipsis"`
	Label     string `toml:"label"`
}

// Matcher is a pattern with either a named theme style or an inline style.
type Matcher struct {
	Pattern string   `toml:"pattern"`
	Style   string   `toml:"style,omitempty"`
	Fg      string   `toml:"fg,omitempty"`
	Bg      string   `toml:"bg,omitempty"`
	Attrs   []string `toml:"attrs,omitempty"`
}

// Duration decodes TOML strings such as "35ms".
type Duration struct {
	time.Duration
	set bool
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration, d.set = v, true
	return nil
}

// IsSet reports whether the file specified the duration.
func (d Duration) IsSet() bool { return d.set }

// Load reads the file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Decode reads a config from r.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Options translates the file into typewriter options. Named matcher styles
// and the default theme are resolved against theme; a theme named in the
// file wins over the argument.
func (c *Config) Options(theme typewriter.Theme) ([]typewriter.Option, error) {
	if c.Theme != "" {
		t, ok := typewriter.ThemeByName(c.Theme)
		if !ok {
			return nil, fmt.Errorf("theme %q: %w", c.Theme, ErrUnknownTheme)
		}
		theme = t
	}
	if theme == nil {
		theme = typewriter.DefaultTheme()
	}
	opts := []typewriter.Option{typewriter.WithTheme(theme)}
	if c.Speed.IsSet() {
		opts = append(opts, typewriter.WithSpeed(c.Speed.Duration))
	}
	if c.Cursor != nil {
		opts = append(opts, typewriter.WithCursor(*c.Cursor))
	}
	if c.CursorChar != "" {
		opts = append(opts, typewriter.WithCursorCharacter(c.CursorChar))
	}
	layout, err := c.Layout.Build()
	if err != nil {
		return nil, err
	}
	opts = append(opts, typewriter.WithLayout(layout))

	matchers := make([]typewriter.Matcher, 0, len(c.Matchers))
	for i, m := range c.Matchers {
		tm, err := m.matcher(theme.Styles())
		if err != nil {
			return nil, fmt.Errorf("matcher %d: %w", i+1, err)
		}
		matchers = append(matchers, tm)
	}
	if len(matchers) > 0 {
		opts = append(opts, typewriter.WithMatchers(matchers...))
	}
	return opts, nil
}

// Build converts the section into a typewriter layout.
func (l Layout) Build() (typewriter.Layout, error) {
	align, ok := typewriter.ParseAlign(l.Align)
	if !ok {
		return typewriter.Layout{}, fmt.Errorf("layout align %q: invalid value", l.Align)
	}
	dir, ok := typewriter.ParseDirection(l.Direction)
	if !ok {
		return typewriter.Layout{}, fmt.Errorf("layout direction %q: invalid value", l.Direction)
	}
	out := typewriter.Layout{
		Align:     align,
		Direction: dir,
		Wrap:      l.Wrap,
		Width:     l.Width,
		MaxLines:  l.MaxLines,
		Label:     l.Label,
	}
	if l.Ellipsis {
		out.Overflow = typewriter.OverflowEllipsis
	}
	return out, nil
}

func (m Matcher) matcher(styles typewriter.Styles) (typewriter.Matcher, error) {
	re, err := regexp.Compile(m.Pattern)
	if err != nil {
		return typewriter.Matcher{}, fmt.Errorf("%w: %v", typewriter.ErrInvalidMatcher, err)
	}
	var style typewriter.Style
	if m.Style != "" {
		s, ok := styles.Named(m.Style)
		if !ok {
			return typewriter.Matcher{}, fmt.Errorf("style %q: %w", m.Style, ErrUnknownStyle)
		}
		style = s
	}
	inline, err := ParseStyle(m.Fg, m.Bg, m.Attrs)
	if err != nil {
		return typewriter.Matcher{}, err
	}
	style = typewriter.Resolve(style, inline)
	return typewriter.Matcher{Pattern: re, Style: &style}, nil
}

var attrNames = map[string]typewriter.Attr{
	"bold":      typewriter.AttrBold,
	"faint":     typewriter.AttrFaint,
	"dim":       typewriter.AttrFaint,
	"italic":    typewriter.AttrItalic,
	"underline": typewriter.AttrUnderline,
	"blink":     typewriter.AttrBlink,
	"reverse":   typewriter.AttrReverse,
}

// ParseStyle builds a style from colour strings and attribute names.
func ParseStyle(fg, bg string, attrs []string) (typewriter.Style, error) {
	s := typewriter.Style{Foreground: typewriter.Color(fg), Background: typewriter.Color(bg)}
	for _, name := range attrs {
		a, ok := attrNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return typewriter.Style{}, fmt.Errorf("attribute %q: %w", name, ErrUnknownStyle)
		}
		s.Attrs |= a
	}
	if err := s.Validate(); err != nil {
		return typewriter.Style{}, fmt.Errorf("style fg=%q bg=%q: %w", fg, bg, err)
	}
	return s, nil
}
