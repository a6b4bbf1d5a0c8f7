package typewriter

import (
	"sort"
	"strings"

	"pkt.systems/typewriter/internal/palette"
)

// Styles groups the semantic styles a typewriter draws with.
type Styles struct {
	Text     Style
	Cursor   Style
	Emphasis Style
	Strong   Style
	Code     Style
	Link     Style
	Muted    Style
}

// Named returns the style registered under name (case-insensitive).
func (s Styles) Named(name string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "plain":
		return s.Text, true
	case "cursor":
		return s.Cursor, true
	case "emphasis", "em", "italic":
		return s.Emphasis, true
	case "strong", "bold":
		return s.Strong, true
	case "code":
		return s.Code, true
	case "link":
		return s.Link, true
	case "muted", "dim":
		return s.Muted, true
	}
	return Style{}, false
}

// StyleNames lists the names accepted by Styles.Named.
func StyleNames() []string {
	return []string{"text", "cursor", "emphasis", "strong", "code", "link", "muted"}
}

// Theme provides named styles for typewriter rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func fg(hex string, attrs Attr) Style {
	return Style{Foreground: Color(hex), Attrs: attrs}
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Text:     fg(p.Text, 0),
		Cursor:   fg(p.Cursor, AttrBold),
		Emphasis: fg(p.Emphasis, AttrItalic),
		Strong:   fg(p.Strong, AttrBold),
		Code:     fg(p.Code, 0),
		Link:     fg(p.Link, AttrUnderline),
		Muted:    fg(p.Muted, AttrFaint),
	}
}

var builtinThemes = map[string]Theme{
	"default":          theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"outrun-electric":  theme{name: "outrun-electric", styles: stylesFromPalette(palette.PaletteOutrunElectric)},
	"gruvbox":          theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteGruvbox)},
	"gruvbox-light":    theme{name: "gruvbox-light", styles: stylesFromPalette(palette.PaletteGruvboxLight)},
	"dracula":          theme{name: "dracula", styles: stylesFromPalette(palette.PaletteDracula)},
	"nord":             theme{name: "nord", styles: stylesFromPalette(palette.PaletteNord)},
	"tokyo-night":      theme{name: "tokyo-night", styles: stylesFromPalette(palette.PaletteTokyoNight)},
	"solarized-dark":   theme{name: "solarized-dark", styles: stylesFromPalette(palette.PaletteSolarizedDark)},
	"solarized-light":  theme{name: "solarized-light", styles: stylesFromPalette(palette.PaletteSolarizedLight)},
	"catppuccin-mocha": theme{name: "catppuccin-mocha", styles: stylesFromPalette(palette.PaletteCatppuccinMocha)},
	"one-dark":         theme{name: "one-dark", styles: stylesFromPalette(palette.PaletteOneDark)},
	"rose-pine":        theme{name: "rose-pine", styles: stylesFromPalette(palette.PaletteRosePine)},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
