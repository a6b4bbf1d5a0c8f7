package typewriter

import "strings"

// Span is visible text with the style it is drawn in.
type Span struct {
	Text  string
	Style Style
}

// Compose returns the visible part of segments when revealed characters are
// shown. Visible text is always a prefix of the joined segments.
//
// When the reveal boundary falls right before a space inside a segment, extra
// is true: the caller should reveal one more character so the animation does
// not stall in front of the space. The returned spans still stop at revealed.
func Compose(segments []Segment, revealed int) (spans []Span, extra bool) {
	return composeWith(segments, revealed, Style{})
}

func composeWith(segments []Segment, revealed int, ambient Style) ([]Span, bool) {
	if revealed <= 0 || len(segments) == 0 {
		return nil, false
	}
	spans := make([]Span, 0, len(segments))
	shown := 0
	for _, seg := range segments {
		seg = seg.ensureBounds()
		n := seg.Len()
		if shown+n <= revealed {
			spans = append(spans, Span{Text: seg.Text, Style: Resolve(ambient, seg.Style)})
			shown += n
			continue
		}
		cut := revealed - shown
		extra := false
		if cut >= 1 && seg.charAt(cut) == " " {
			extra = true
		}
		if cut > 0 {
			spans = append(spans, Span{Text: seg.prefix(cut), Style: Resolve(ambient, seg.Style)})
		}
		return spans, extra
	}
	return spans, false
}

// SpansText concatenates the span texts.
func SpansText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
