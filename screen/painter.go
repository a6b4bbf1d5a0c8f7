// Package screen paints typewriter frames on a full-screen tcell terminal.
package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"pkt.systems/typewriter"
)

// Option configures a Painter.
type Option func(*Painter)

// WithOrigin moves the top-left corner of the drawing area.
func WithOrigin(x, y int) Option {
	return func(p *Painter) {
		p.x, p.y = x, y
	}
}

// Painter draws frames on a tcell screen. Each frame clears the screen.
type Painter struct {
	s    tcell.Screen
	x, y int
}

// NewPainter returns a painter for s. s must already be initialised.
func NewPainter(s tcell.Screen, opts ...Option) *Painter {
	p := &Painter{s: s}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

type cell struct {
	cluster string
	width   int
	style   tcell.Style
}

func (c cell) isSpace() bool   { return c.cluster == " " }
func (c cell) isNewline() bool { return c.cluster == "\n" }

// Paint draws f and shows the screen.
func (p *Painter) Paint(f typewriter.Frame) error {
	sw, sh := p.s.Size()
	width := f.Layout.Width
	if width <= 0 || width > sw-p.x {
		width = sw - p.x
	}
	lines := wrapCells(frameCells(f), width, f.Layout.Wrap)
	maxLines := f.Layout.MaxLines
	if avail := sh - p.y; avail > 0 && (maxLines <= 0 || maxLines > avail) {
		maxLines = avail
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		if f.Layout.Overflow == typewriter.OverflowEllipsis {
			lines[maxLines-1] = ellipsize(lines[maxLines-1], width)
		}
	}
	align := f.Layout.Physical()
	p.s.Clear()
	for row, line := range lines {
		x := p.x + offset(lineWidth(line), width, align)
		for _, c := range line {
			runes := []rune(c.cluster)
			p.s.SetContent(x, p.y+row, runes[0], runes[1:], c.style)
			x += c.width
		}
	}
	p.s.Show()
	return nil
}

func frameCells(f typewriter.Frame) []cell {
	var cells []cell
	for _, span := range f.Spans {
		cells = appendCells(cells, span.Text, Style(span.Style))
	}
	if f.Cursor.Visible && f.Cursor.Char != "" {
		cur := typewriter.Resolve(f.Cursor.Style, typewriter.Style{Attrs: typewriter.AttrBlink})
		cells = appendCells(cells, f.Cursor.Char, Style(cur))
	}
	return cells
}

func appendCells(cells []cell, text string, style tcell.Style) []cell {
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\r\n" {
			cluster = "\n"
		}
		w := runewidth.StringWidth(cluster)
		if cluster == "\t" {
			cluster, w = " ", 1
		}
		if w == 0 && cluster != "\n" {
			continue
		}
		cells = append(cells, cell{cluster: cluster, width: w, style: style})
	}
	return cells
}

// wrapCells breaks cells into lines at most width cells wide. With words
// set, a line breaks after its last space when the next word does not fit.
func wrapCells(cells []cell, width int, words bool) [][]cell {
	var lines [][]cell
	var line []cell
	w := 0
	for _, c := range cells {
		if c.isNewline() {
			lines = append(lines, line)
			line, w = nil, 0
			continue
		}
		if width > 0 && w+c.width > width && len(line) > 0 {
			if c.isSpace() {
				lines = append(lines, line)
				line, w = nil, 0
				continue
			}
			carry := []cell(nil)
			if words {
				if i := lastSpace(line); i >= 0 {
					carry = append(carry, line[i+1:]...)
					line = line[:i]
				}
			}
			lines = append(lines, line)
			line = carry
			w = lineWidth(carry)
		}
		line = append(line, c)
		w += c.width
	}
	return append(lines, line)
}

func lastSpace(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace() {
			return i
		}
	}
	return -1
}

func lineWidth(line []cell) int {
	w := 0
	for _, c := range line {
		w += c.width
	}
	return w
}

func ellipsize(line []cell, width int) []cell {
	style := tcell.StyleDefault
	if len(line) > 0 {
		style = line[len(line)-1].style
	}
	for len(line) > 0 && width > 0 && lineWidth(line)+1 > width {
		line = line[:len(line)-1]
	}
	return append(line, cell{cluster: "…", width: 1, style: style})
}

func offset(lineW, width int, align typewriter.Align) int {
	gap := width - lineW
	if gap <= 0 {
		return 0
	}
	switch align {
	case typewriter.AlignRight:
		return gap
	case typewriter.AlignCenter:
		return gap / 2
	}
	return 0
}
