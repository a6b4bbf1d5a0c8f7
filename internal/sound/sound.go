// Package sound plays a typewriter key click for every revealed character.
package sound

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"pkt.systems/typewriter"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 18 * time.Millisecond
	clickFreq     = 1800.0
)

// Clicker plays clicks through the system speaker.
type Clicker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
	log    *slog.Logger

	// play queues a streamer; replaced in tests.
	play func(beep.Streamer)
}

// NewClicker returns a silent clicker; call Open to reach the speaker.
// volume is linear, 1 being full scale.
func NewClicker(volume float64, log *slog.Logger) *Clicker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Clicker{mixer: &beep.Mixer{}, volume: volume, log: log}
	c.play = func(s beep.Streamer) {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	}
	return c
}

// Open initialises the speaker. A failure leaves the clicker silent.
func (c *Clicker) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(20*time.Millisecond)); err != nil {
		c.log.Warn("audio unavailable", "error", err)
		return err
	}
	speaker.Play(c.mixer)
	c.ready = true
	return nil
}

// Close silences pending clicks and releases the speaker.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.ready = false
}

// Click plays one click. It is a no-op until Open succeeds.
func (c *Clicker) Click() {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return
	}
	c.play(Click(sampleRate, c.volume))
}

// Painter wraps next and clicks whenever a frame reveals a new printable
// character.
func (c *Clicker) Painter(next typewriter.Painter) typewriter.Painter {
	last := 0
	return typewriter.PainterFunc(func(f typewriter.Frame) error {
		if f.Revealed > last && audible(f.Text()) {
			c.Click()
		}
		last = f.Revealed
		if next == nil {
			return nil
		}
		return next.Paint(f)
	})
}

func audible(text string) bool {
	text = strings.TrimRight(text, "‍️")
	r, _ := utf8.DecodeLastRuneInString(text)
	return r != utf8.RuneError && !unicode.IsSpace(r)
}

// Click returns a short decaying burst of a tone mixed with noise.
func Click(rate beep.SampleRate, volume float64) beep.Streamer {
	s := &click{rate: rate, total: rate.N(clickDuration)}
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

type click struct {
	rate  beep.SampleRate
	pos   int
	total int
}

func (c *click) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.total {
		return 0, false
	}
	for i := range samples {
		if c.pos >= c.total {
			return i, true
		}
		t := float64(c.pos) / float64(c.rate)
		decay := math.Exp(-t * 300)
		v := decay * (0.6*math.Sin(2*math.Pi*clickFreq*t) + 0.4*(rand.Float64()*2-1))
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *click) Err() error { return nil }
