package typewriter

import "strings"

// Segment is a maximal run of source text drawn with one style.
type Segment struct {
	Text  string
	Style Style
	// Matcher is the index of the matcher that styled the run, or -1 for plain text.
	Matcher int

	bounds []int
}

func newSegment(text string, style Style, matcher int) Segment {
	return Segment{Text: text, Style: style, Matcher: matcher, bounds: graphemeBounds(text)}
}

// Len returns the number of characters in the segment.
func (s Segment) Len() int {
	if s.bounds == nil {
		return CharCount(s.Text)
	}
	return len(s.bounds) - 1
}

// Matched reports whether a matcher styled this segment.
func (s Segment) Matched() bool { return s.Matcher >= 0 }

func (s Segment) ensureBounds() Segment {
	if s.bounds == nil {
		s.bounds = graphemeBounds(s.Text)
	}
	return s
}

// prefix returns the first n characters.
func (s Segment) prefix(n int) string {
	return s.Text[:s.bounds[n]]
}

// charAt returns character i.
func (s Segment) charAt(i int) string {
	return s.Text[s.bounds[i]:s.bounds[i+1]]
}

// SegmentText partitions source into styled segments. Runs matching one of
// the matchers take that matcher's style resolved over base; everything else
// takes base. Concatenating the segment texts yields source.
func SegmentText(source string, matchers []Matcher, base Style) ([]Segment, error) {
	combined, err := combineMatchers(matchers)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return nil, nil
	}
	if combined == nil {
		return []Segment{newSegment(source, base, -1)}, nil
	}
	var segments []Segment
	last := 0
	for _, loc := range combined.FindAllStringIndex(source, -1) {
		start, end := loc[0], loc[1]
		if start == end {
			continue
		}
		if start > last {
			segments = append(segments, newSegment(source[last:start], base, -1))
		}
		text := source[start:end]
		idx := lookupMatcher(matchers, text)
		style := base
		if idx >= 0 && matchers[idx].Style != nil {
			style = Resolve(base, *matchers[idx].Style)
		}
		segments = append(segments, newSegment(text, style, idx))
		last = end
	}
	if last < len(source) {
		segments = append(segments, newSegment(source[last:], base, -1))
	}
	return segments, nil
}

// JoinSegments concatenates the segment texts.
func JoinSegments(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func segmentsLen(segments []Segment) int {
	n := 0
	for _, s := range segments {
		n += s.Len()
	}
	return n
}
