package typewriter

import (
	"errors"
	"regexp"
	"testing"
)

var bold = Style{Attrs: AttrBold}

func segmentPairs(segs []Segment) [][2]string {
	out := make([][2]string, 0, len(segs))
	for _, s := range segs {
		kind := "base"
		if s.Matched() {
			kind = "match"
		}
		out = append(out, [2]string{s.Text, kind})
	}
	return out
}

func TestSegmentTextMatcherSplitsRuns(t *testing.T) {
	segs, err := SegmentText("ab cd", []Matcher{MustMatcher("cd", &bold)}, Style{})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segs), segmentPairs(segs))
	}
	if segs[0].Text != "ab " || segs[0].Matched() || segs[0].Style != (Style{}) {
		t.Fatalf("unexpected first segment %+v", segs[0])
	}
	if segs[1].Text != "cd" || segs[1].Matcher != 0 || segs[1].Style != bold {
		t.Fatalf("unexpected second segment %+v", segs[1])
	}
}

func TestSegmentTextEdgeCases(t *testing.T) {
	segs, err := SegmentText("", []Matcher{MustMatcher("x", nil)}, Style{})
	if err != nil || len(segs) != 0 {
		t.Fatalf("expected no segments for empty source, got %v %v", segs, err)
	}
	segs, err = SegmentText("plain text", nil, bold)
	if err != nil || len(segs) != 1 || segs[0].Text != "plain text" || segs[0].Style != bold {
		t.Fatalf("expected one base segment, got %v %v", segs, err)
	}
}

func TestSegmentTextAdjacentMatchesHaveNoGap(t *testing.T) {
	segs, err := SegmentText("aabb", []Matcher{MustMatcher("a", nil), MustMatcher("b", &bold)}, Style{})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	want := [][2]string{{"a", "match"}, {"a", "match"}, {"b", "match"}, {"b", "match"}}
	got := segmentPairs(segs)
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
		if segs[i].Text == "" {
			t.Fatalf("empty segment emitted at %d", i)
		}
	}
}

func TestSegmentTextFirstRegisteredMatcherWins(t *testing.T) {
	italic := Style{Attrs: AttrItalic}
	segs, err := SegmentText("say hello", []Matcher{
		MustMatcher(`h\w+`, &bold),
		MustMatcher(`hello`, &italic),
	}, Style{})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	last := segs[len(segs)-1]
	if last.Text != "hello" || last.Matcher != 0 || last.Style != bold {
		t.Fatalf("expected first matcher to style %q, got %+v", "hello", last)
	}
}

func TestSegmentTextMatcherStyleResolvesOverBase(t *testing.T) {
	base := Style{Foreground: "#112233"}
	segs, err := SegmentText("x!", []Matcher{MustMatcher(`!`, &bold)}, base)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	want := Style{Foreground: "#112233", Attrs: AttrBold}
	if segs[1].Style != want {
		t.Fatalf("want %+v, got %+v", want, segs[1].Style)
	}
}

func TestSegmentTextSkipsEmptyMatches(t *testing.T) {
	segs, err := SegmentText("abc", []Matcher{MustMatcher(`x*`, &bold)}, Style{})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "abc" {
		t.Fatalf("expected a single plain segment, got %v", segmentPairs(segs))
	}
}

func TestSegmentTextRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"Hello world",
		"ab cd",
		"  leading and trailing  ",
		"naïve café 👩‍👩‍👧 done",
		"https://example.com and #tags #more",
	}
	matcherSets := [][]Matcher{
		nil,
		{MustMatcher(`\s+`, nil)},
		{MustMatcher(`#\w+`, &bold), MustMatcher(`https?://\S+`, nil)},
		{MustMatcher(`.`, nil)},
		{MustMatcher(`(?i)[aeiou]`, &bold), MustMatcher(`é`, nil)},
	}
	for _, src := range sources {
		for i, ms := range matcherSets {
			segs, err := SegmentText(src, ms, Style{})
			if err != nil {
				t.Fatalf("set %d %q: %v", i, src, err)
			}
			if got := JoinSegments(segs); got != src {
				t.Fatalf("set %d: round trip mismatch\nwant: %q\n got: %q", i, src, got)
			}
			// A per-rune matcher may split a multi-rune cluster, so only the
			// unsplit sets are held to the grapheme count.
			if i != 3 && segmentsLen(segs) != CharCount(src) {
				t.Fatalf("set %d %q: length %d != %d", i, src, segmentsLen(segs), CharCount(src))
			}
		}
	}
}

func TestNewMatcherRejectsBadPattern(t *testing.T) {
	if _, err := NewMatcher("(unclosed", nil); !errors.Is(err, ErrInvalidMatcher) {
		t.Fatalf("expected ErrInvalidMatcher, got %v", err)
	}
	if _, err := SegmentText("x", []Matcher{{}}, Style{}); !errors.Is(err, ErrInvalidMatcher) {
		t.Fatalf("expected ErrInvalidMatcher for nil pattern, got %v", err)
	}
	bad := Style{Foreground: "puce"}
	m := Matcher{Pattern: regexp.MustCompile("x"), Style: &bad}
	if _, err := SegmentText("x", []Matcher{m}, Style{}); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}
