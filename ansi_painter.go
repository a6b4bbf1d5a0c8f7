package typewriter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"
	eraseDown  = "\r\x1b[J"
)

// ANSIOption configures an ANSIPainter.
type ANSIOption func(*ANSIPainter)

// WithColorProfile selects the colour encoding. The default is DetectColorProfile.
func WithColorProfile(p ColorProfile) ANSIOption {
	return func(a *ANSIPainter) {
		a.profile = p
	}
}

// WithWidth sets the line width used when the frame layout leaves it at zero.
func WithWidth(width int) ANSIOption {
	return func(a *ANSIPainter) {
		a.width = width
	}
}

// ANSIPainter redraws frames in place on a terminal: every paint moves back
// to the first line of the previous frame, erases it and draws the new one.
type ANSIPainter struct {
	w       io.Writer
	profile ColorProfile
	width   int
	lines   int
	started bool
	buf     bytes.Buffer
}

// NewANSIPainter returns a painter writing to w.
func NewANSIPainter(w io.Writer, opts ...ANSIOption) *ANSIPainter {
	a := &ANSIPainter{w: w, profile: DetectColorProfile()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Paint draws f over the previous frame.
func (a *ANSIPainter) Paint(f Frame) error {
	width := f.Layout.Width
	if width <= 0 {
		width = a.width
	}
	lines := layoutLines(a.styled(f), width, f.Layout.Wrap)
	lines = clampLines(lines, f.Layout.MaxLines, f.Layout.Overflow, width)
	align := f.Layout.Physical()
	a.buf.Reset()
	if !a.started {
		a.buf.WriteString(cursorHide)
		a.started = true
	}
	if a.lines > 1 {
		fmt.Fprintf(&a.buf, "\x1b[%dA", a.lines-1)
	}
	a.buf.WriteString(eraseDown)
	for i, line := range lines {
		if i > 0 {
			a.buf.WriteByte('\n')
		}
		a.buf.WriteString(alignLine(line, width, align))
	}
	a.lines = len(lines)
	_, err := a.w.Write(a.buf.Bytes())
	return err
}

// Finish ends the animation output: the terminal cursor is shown again and
// the line is terminated.
func (a *ANSIPainter) Finish() error {
	if !a.started {
		return nil
	}
	a.started = false
	a.lines = 0
	_, err := io.WriteString(a.w, cursorShow+"\n")
	return err
}

func (a *ANSIPainter) styled(f Frame) string {
	var b strings.Builder
	for _, span := range f.Spans {
		writeStyled(&b, span.Text, span.Style.Prefix(a.profile))
	}
	if f.Cursor.Visible && f.Cursor.Char != "" {
		cursor := Resolve(f.Cursor.Style, Style{Attrs: AttrBlink})
		writeStyled(&b, f.Cursor.Char, cursor.Prefix(a.profile))
	}
	return b.String()
}

// writeStyled wraps every line of text in prefix and a reset so that line
// breaks never carry a style into alignment padding.
func writeStyled(b *strings.Builder, text, prefix string) {
	if prefix == "" {
		b.WriteString(text)
		return
	}
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if part == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(part)
		b.WriteString(sgrReset)
	}
}
