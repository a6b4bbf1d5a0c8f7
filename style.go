package typewriter

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor reports a colour that is neither #rrggbb nor a 0-255 palette index.
var ErrInvalidColor = errors.New("invalid color")

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
)

var attrCodes = [...]struct {
	attr Attr
	code string
}{
	{AttrBold, "1"},
	{AttrFaint, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
}

// Has reports whether all attributes in mask are set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// Color is a terminal colour: "#rrggbb", a palette index "0".."255", or empty for
// the terminal default.
type Color string

// Validate returns ErrInvalidColor when c is set but not parseable.
func (c Color) Validate() error {
	if c == "" {
		return nil
	}
	if _, ok := c.index(); ok {
		return nil
	}
	if _, err := colorful.Hex(string(c)); err != nil {
		return ErrInvalidColor
	}
	return nil
}

// RGB returns the colour as 8-bit channels. Palette indexes report ok=false.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	if c == "" || !strings.HasPrefix(string(c), "#") {
		return 0, 0, 0, false
	}
	col, err := colorful.Hex(string(c))
	if err != nil {
		return 0, 0, 0, false
	}
	r, g, b = col.RGB255()
	return r, g, b, true
}

// Index returns the palette index for indexed colours.
func (c Color) Index() (int, bool) {
	return c.index()
}

func (c Color) index() (int, bool) {
	if c == "" || c[0] == '#' {
		return 0, false
	}
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return n, true
}

// Style describes how a run of text is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attr
}

// IsZero reports whether s carries no styling.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Validate checks both colours.
func (s Style) Validate() error {
	if err := s.Foreground.Validate(); err != nil {
		return err
	}
	return s.Background.Validate()
}

// Resolve merges override onto ambient. Colours present in override win;
// attributes accumulate.
func Resolve(ambient, override Style) Style {
	out := ambient
	if override.Foreground != "" {
		out.Foreground = override.Foreground
	}
	if override.Background != "" {
		out.Background = override.Background
	}
	out.Attrs |= override.Attrs
	return out
}

// ColorProfile selects how colours are encoded as escape sequences.
type ColorProfile uint8

const (
	// ProfileNone emits no escape sequences at all.
	ProfileNone ColorProfile = iota
	// Profile256 maps hex colours onto the xterm 256-colour cube.
	Profile256
	// ProfileTrueColor emits 24-bit colour sequences.
	ProfileTrueColor
)

const sgrReset = "\x1b[0m"

// Prefix returns the SGR sequence that switches the terminal to s.
// An empty string means no change from the default.
func (s Style) Prefix(profile ColorProfile) string {
	if profile == ProfileNone || s.IsZero() {
		return ""
	}
	params := make([]string, 0, 8)
	for _, ac := range attrCodes {
		if s.Attrs.Has(ac.attr) {
			params = append(params, ac.code)
		}
	}
	if p := colorParam(s.Foreground, "38", profile); p != "" {
		params = append(params, p)
	}
	if p := colorParam(s.Background, "48", profile); p != "" {
		params = append(params, p)
	}
	if len(params) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

func colorParam(c Color, base string, profile ColorProfile) string {
	if n, ok := c.index(); ok {
		return base + ";5;" + strconv.Itoa(n)
	}
	r, g, b, ok := c.RGB()
	if !ok {
		return ""
	}
	if profile == Profile256 {
		return base + ";5;" + strconv.Itoa(nearest256(r, g, b))
	}
	return base + ";2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
}

var (
	xtermOnce   sync.Once
	xtermColors [240]colorful.Color
)

// xterm 16..255: a 6x6x6 cube followed by 24 greys. The first 16 entries are
// terminal-defined and are never picked.
func buildXterm() {
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 0
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				xtermColors[i] = colorful.Color{
					R: float64(levels[r]) / 255,
					G: float64(levels[g]) / 255,
					B: float64(levels[b]) / 255,
				}
				i++
			}
		}
	}
	for n := 0; n < 24; n++ {
		v := float64(8+n*10) / 255
		xtermColors[i] = colorful.Color{R: v, G: v, B: v}
		i++
	}
}

func nearest256(r, g, b uint8) int {
	xtermOnce.Do(buildXterm)
	want := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best, bestDist := 0, -1.0
	for i, c := range xtermColors {
		d := want.DistanceLab(c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best + 16
}
