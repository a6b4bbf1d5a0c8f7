package typewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

var (
	// ErrNegativeSpeed reports a negative per-character delay.
	ErrNegativeSpeed = errors.New("negative speed")
	// ErrInvalidCursor reports a cursor that is not exactly one visible character.
	ErrInvalidCursor = errors.New("invalid cursor character")
	// ErrMounted reports a second Mount without an Unmount in between.
	ErrMounted = errors.New("typewriter already mounted")
	// ErrNotMounted reports waiting on a typewriter that was never mounted.
	ErrNotMounted = errors.New("typewriter not mounted")
	// ErrUnmounted reports that the typewriter was unmounted before it completed.
	ErrUnmounted = errors.New("typewriter unmounted")
)

// State is a snapshot of the animation.
type State struct {
	// Revealed is the number of visible characters, 0 <= Revealed <= Length.
	Revealed int
	Length   int
	// Running is true while a tick is armed.
	Running bool
}

// Typewriter reveals a string one character at a time.
//
// All state changes (ticks, controller signals, mount and unmount) are
// serialized on the typewriter's mutex. Painters run under that mutex.
type Typewriter struct {
	mu sync.Mutex

	text     string
	segments []Segment
	length   int
	cfg      config
	log      *slog.Logger

	clock   revealClock
	painter Painter
	state   State
	frame   Frame
	mounted bool

	done        chan struct{}
	doneClosed  bool
	gone        chan struct{}
	unsubscribe func()
}

// New validates the configuration and segments text. The animation does not
// start until Mount.
func New(text string, opts ...Option) (*Typewriter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("typewriter: %w", ErrInvalidUTF8)
	}
	if !cfg.skipValidate {
		if err := ValidateInput([]byte(text)); err != nil {
			return nil, fmt.Errorf("typewriter: %w", err)
		}
	}
	if cfg.speed < 0 {
		return nil, fmt.Errorf("typewriter: speed %v: %w", cfg.speed, ErrNegativeSpeed)
	}
	if cfg.showCursor || cfg.cursorChar != DefaultCursor {
		if CharCount(cfg.cursorChar) != 1 || runewidth.StringWidth(cfg.cursorChar) == 0 {
			return nil, fmt.Errorf("typewriter: cursor %q: %w", cfg.cursorChar, ErrInvalidCursor)
		}
	}
	if err := cfg.base.Validate(); err != nil {
		return nil, fmt.Errorf("typewriter: base style: %w", err)
	}
	segments, err := SegmentText(text, cfg.matchers, cfg.base)
	if err != nil {
		return nil, fmt.Errorf("typewriter: %w", err)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = NewTimerScheduler()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tw := &Typewriter{
		text:     text,
		segments: segments,
		length:   segmentsLen(segments),
		cfg:      cfg,
		log:      logger.With("component", "typewriter"),
	}
	tw.clock = revealClock{sched: cfg.scheduler, speed: cfg.speed}
	tw.state = State{Length: tw.length}
	return tw, nil
}

// Text returns the source string.
func (tw *Typewriter) Text() string { return tw.text }

// Len returns the number of characters in the source string.
func (tw *Typewriter) Len() int { return tw.length }

// Segments returns a copy of the styled segments.
func (tw *Typewriter) Segments() []Segment {
	out := make([]Segment, len(tw.segments))
	copy(out, tw.segments)
	return out
}

// Mount starts the animation, painting every frame with p. A nil painter
// discards frames.
func (tw *Typewriter) Mount(p Painter) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.mounted {
		return ErrMounted
	}
	if p == nil {
		p = PainterFunc(func(Frame) error { return nil })
	}
	tw.mounted = true
	tw.painter = p
	tw.gone = make(chan struct{})
	tw.done = make(chan struct{})
	tw.doneClosed = false
	tw.log.Debug("mount", "length", tw.length, "speed", tw.cfg.speed, "segments", len(tw.segments))
	tw.begin()
	if tw.cfg.controller != nil {
		tw.unsubscribe = tw.cfg.controller.Subscribe(tw.handleSignal)
	}
	return nil
}

// Unmount cancels the clock and detaches from the controller. It is safe to
// call more than once.
func (tw *Typewriter) Unmount() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if !tw.mounted {
		return
	}
	tw.clock.stop()
	if tw.unsubscribe != nil {
		tw.unsubscribe()
		tw.unsubscribe = nil
	}
	tw.mounted = false
	tw.state.Running = false
	tw.painter = nil
	close(tw.gone)
	tw.log.Debug("unmount", "revealed", tw.state.Revealed)
}

// State returns a snapshot of the animation state.
func (tw *Typewriter) State() State {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.state
}

// Frame returns the most recently painted frame.
func (tw *Typewriter) Frame() Frame {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.frame
}

// Done returns a channel closed when the current run reveals the last
// character. A restart after completion installs a fresh channel.
func (tw *Typewriter) Done() <-chan struct{} {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.done
}

// Wait blocks until the current run completes, the typewriter is unmounted,
// or ctx ends.
func (tw *Typewriter) Wait(ctx context.Context) error {
	tw.mu.Lock()
	done, gone := tw.done, tw.gone
	tw.mu.Unlock()
	if done == nil {
		return ErrNotMounted
	}
	select {
	case <-done:
		return nil
	default:
	}
	select {
	case <-done:
		return nil
	case <-gone:
		return ErrUnmounted
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Controller signal handling follows the playback table: Start always
// restarts, Freeze only stops a running clock, Resume only restarts a frozen
// and incomplete one.
func (tw *Typewriter) handleSignal(sig Signal) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if !tw.mounted {
		return
	}
	tw.log.Debug("signal", "signal", sig.String(), "revealed", tw.state.Revealed, "running", tw.state.Running)
	switch sig {
	case SignalStart:
		tw.clock.stop()
		tw.begin()
	case SignalFreeze:
		if !tw.clock.armed() {
			return
		}
		tw.clock.stop()
		tw.state.Running = false
	case SignalResume:
		if tw.clock.armed() || tw.state.Revealed >= tw.length {
			return
		}
		tw.state.Running = true
		tw.clock.start(tw.tick)
	}
}

// begin resets to the first character and arms the clock. Callers hold mu
// and have stopped any previous clock.
func (tw *Typewriter) begin() {
	tw.state.Revealed = 0
	if tw.doneClosed {
		tw.done = make(chan struct{})
		tw.doneClosed = false
	}
	tw.render()
	if tw.length == 0 {
		tw.finish()
		return
	}
	tw.state.Running = true
	tw.clock.start(tw.tick)
	tw.log.Debug("clock start", "speed", tw.cfg.speed)
}

func (tw *Typewriter) tick(gen uint64) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if !tw.mounted || !tw.clock.current(gen) {
		return
	}
	if tw.state.Revealed < tw.length {
		tw.state.Revealed++
	}
	tw.render()
	if tw.state.Revealed >= tw.length {
		tw.finish()
	}
}

// render composes and paints the frame for the current reveal count, then
// applies the one extra reveal composition may request.
func (tw *Typewriter) render() {
	styles := tw.cfg.theme.Styles()
	spans, extra := composeWith(tw.segments, tw.state.Revealed, styles.Text)
	tw.frame = Frame{
		Spans: spans,
		Cursor: Cursor{
			Visible: tw.cfg.showCursor,
			Char:    tw.cfg.cursorChar,
			Style:   styles.Cursor,
		},
		Layout:   tw.cfg.layout,
		Revealed: tw.state.Revealed,
		Length:   tw.length,
	}
	if tw.painter != nil {
		if err := tw.painter.Paint(tw.frame); err != nil {
			tw.log.Warn("paint failed", "error", err, "revealed", tw.state.Revealed)
		}
	}
	if extra && tw.state.Revealed < tw.length {
		tw.state.Revealed++
	}
}

// finish is the single completion path: it paints the full text if the last
// frame fell short, stops the clock and signals completion.
func (tw *Typewriter) finish() {
	if tw.frame.Revealed < tw.length {
		tw.render()
	}
	tw.clock.stop()
	tw.state.Running = false
	if !tw.doneClosed {
		close(tw.done)
		tw.doneClosed = true
	}
	tw.log.Debug("complete", "length", tw.length)
	if tw.cfg.onComplete != nil {
		tw.cfg.onComplete()
	}
}
