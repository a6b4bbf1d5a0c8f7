package sound

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"pkt.systems/typewriter"
)

func TestClickDecaysAndEnds(t *testing.T) {
	s := Click(sampleRate, 1)
	total := sampleRate.N(clickDuration)
	buf := make([][2]float64, total+64)
	n, ok := s.Stream(buf)
	if !ok || n != total {
		t.Fatalf("expected %d samples, got %d ok=%v", total, n, ok)
	}
	for i := 0; i < n; i++ {
		if math.Abs(buf[i][0]) > 1 {
			t.Fatalf("sample %d out of range: %f", i, buf[i][0])
		}
	}
	if math.Abs(buf[n-1][0]) > 0.05 {
		t.Fatalf("click should decay, last sample %f", buf[n-1][0])
	}
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Fatalf("drained click should stop, got n=%d ok=%v", n, ok)
	}
}

func TestPainterClicksOnPrintableReveals(t *testing.T) {
	c := NewClicker(0.5, nil)
	clicks := 0
	c.play = func(beep.Streamer) { clicks++ }
	c.ready = true

	var painted int
	p := c.Painter(typewriter.PainterFunc(func(typewriter.Frame) error {
		painted++
		return nil
	}))
	frame := func(text string, revealed int) typewriter.Frame {
		return typewriter.Frame{Spans: []typewriter.Span{{Text: text}}, Revealed: revealed, Length: 5}
	}
	_ = p.Paint(frame("", 0))
	_ = p.Paint(frame("H", 1))
	_ = p.Paint(frame("Hi", 2))
	_ = p.Paint(frame("Hi ", 3))
	_ = p.Paint(frame("Hi ", 3))
	_ = p.Paint(frame("Hi y", 4))
	if clicks != 3 {
		t.Fatalf("expected 3 clicks, got %d", clicks)
	}
	if painted != 6 {
		t.Fatalf("expected every frame forwarded, got %d", painted)
	}
}

func TestClickerSilentUntilOpened(t *testing.T) {
	c := NewClicker(1, nil)
	clicks := 0
	c.play = func(beep.Streamer) { clicks++ }
	c.Click()
	c.Close()
	if clicks != 0 {
		t.Fatalf("unopened clicker must stay silent")
	}
}
