package typewriter

// Painter draws frames. Painters are called with the typewriter locked and
// must not call back into it.
type Painter interface {
	Paint(Frame) error
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(Frame) error

// Paint calls f.
func (f PainterFunc) Paint(fr Frame) error { return f(fr) }

// Frame is everything a painter needs to draw one step of the animation.
type Frame struct {
	Spans    []Span
	Cursor   Cursor
	Layout   Layout
	Revealed int
	Length   int
}

// Text returns the visible text.
func (f Frame) Text() string { return SpansText(f.Spans) }

// Complete reports whether the whole source is revealed.
func (f Frame) Complete() bool { return f.Revealed >= f.Length }

// Cursor describes the cursor drawn after the visible text.
type Cursor struct {
	Visible bool
	Char    string
	Style   Style
}

// Align positions lines horizontally.
type Align uint8

const (
	AlignStart Align = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

// Direction is the base text direction, used to resolve AlignStart/AlignEnd.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Overflow selects what happens to text beyond MaxLines.
type Overflow uint8

const (
	OverflowClip Overflow = iota
	OverflowEllipsis
)

// Layout carries presentation options through to painters untouched.
type Layout struct {
	Align     Align
	Direction Direction
	// Wrap breaks lines at word boundaries; otherwise long lines are hard-wrapped.
	Wrap bool
	// Width is the line width in cells; zero lets the painter decide.
	Width int
	// MaxLines limits the number of drawn lines; zero means unlimited.
	MaxLines int
	Overflow Overflow
	// Label is an accessible description of the animated text.
	Label string
}

// Physical resolves AlignStart/AlignEnd against the direction.
func (l Layout) Physical() Align {
	switch l.Align {
	case AlignStart:
		if l.Direction == DirectionRTL {
			return AlignRight
		}
		return AlignLeft
	case AlignEnd:
		if l.Direction == DirectionRTL {
			return AlignLeft
		}
		return AlignRight
	}
	return l.Align
}

// ParseAlign parses left, right, center, start or end.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "", "start":
		return AlignStart, true
	case "end":
		return AlignEnd, true
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center", "centre":
		return AlignCenter, true
	}
	return AlignStart, false
}

// ParseDirection parses ltr or rtl.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "", "ltr":
		return DirectionLTR, true
	case "rtl":
		return DirectionRTL, true
	}
	return DirectionLTR, false
}
