package typewriter

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const ellipsis = "…"

// layoutLines breaks styled text into lines no wider than width. Word
// wrapping runs first so that only words longer than a line get split.
func layoutLines(text string, width int, words bool) []string {
	if width > 0 {
		if words {
			text = wordwrap.String(text, width)
		}
		text = wrap.String(text, width)
	}
	return strings.Split(text, "\n")
}

// clampLines keeps at most maxLines lines, marking the cut with an ellipsis when
// asked to.
func clampLines(lines []string, maxLines int, overflow Overflow, width int) []string {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	if overflow == OverflowEllipsis {
		lines[maxLines-1] = appendEllipsis(lines[maxLines-1], width)
	}
	return lines
}

func appendEllipsis(line string, limit int) string {
	if limit <= 0 || ansi.PrintableRuneWidth(line)+1 <= limit {
		return line + ellipsis
	}
	if limit == 1 {
		return ellipsis
	}
	return truncate.StringWithTail(line, uint(limit), ellipsis)
}

// alignLine pads line on the left so it sits at align within width.
func alignLine(line string, width int, align Align) string {
	if width <= 0 {
		return line
	}
	gap := width - ansi.PrintableRuneWidth(line)
	if gap <= 0 {
		return line
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + line
	case AlignCenter:
		return strings.Repeat(" ", gap/2) + line
	}
	return line
}
