package screen

import (
	"github.com/gdamore/tcell/v2"

	"pkt.systems/typewriter"
)

// Style converts a typewriter style to a tcell style.
func Style(s typewriter.Style) tcell.Style {
	ts := tcell.StyleDefault
	if c, ok := Color(s.Foreground); ok {
		ts = ts.Foreground(c)
	}
	if c, ok := Color(s.Background); ok {
		ts = ts.Background(c)
	}
	return ts.
		Bold(s.Attrs.Has(typewriter.AttrBold)).
		Dim(s.Attrs.Has(typewriter.AttrFaint)).
		Italic(s.Attrs.Has(typewriter.AttrItalic)).
		Underline(s.Attrs.Has(typewriter.AttrUnderline)).
		Blink(s.Attrs.Has(typewriter.AttrBlink)).
		Reverse(s.Attrs.Has(typewriter.AttrReverse))
}

// Color converts a typewriter colour. Unset or invalid colours report false.
func Color(c typewriter.Color) (tcell.Color, bool) {
	if n, ok := c.Index(); ok {
		return tcell.PaletteColor(n), true
	}
	if r, g, b, ok := c.RGB(); ok {
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
	}
	return tcell.ColorDefault, false
}
