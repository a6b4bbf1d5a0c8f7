package typewriter

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordPainter struct {
	frames []Frame
	err    error
}

func (r *recordPainter) Paint(f Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func (r *recordPainter) last() Frame {
	if len(r.frames) == 0 {
		return Frame{}
	}
	return r.frames[len(r.frames)-1]
}

func mount(t *testing.T, text string, opts ...Option) (*Typewriter, *ManualScheduler, *recordPainter) {
	t.Helper()
	sched := NewManualScheduler()
	tw, err := New(text, append([]Option{WithScheduler(sched)}, opts...)...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p := &recordPainter{}
	if err := tw.Mount(p); err != nil {
		t.Fatalf("mount: %v", err)
	}
	t.Cleanup(tw.Unmount)
	return tw, sched, p
}

func TestMountStartsEmptyAndRunning(t *testing.T) {
	tw, sched, p := mount(t, "Hello world")
	st := tw.State()
	if st.Revealed != 0 || !st.Running || st.Length != 11 {
		t.Fatalf("unexpected state after mount %+v", st)
	}
	if len(p.frames) != 1 || p.last().Text() != "" {
		t.Fatalf("expected one empty frame, got %d frames %q", len(p.frames), p.last().Text())
	}
	if sched.Armed() != 1 {
		t.Fatalf("expected the clock to be armed")
	}
}

func TestHelloWorldScenario(t *testing.T) {
	tw, sched, p := mount(t, "Hello world", WithSpeed(50*time.Millisecond))
	sched.Advance(250 * time.Millisecond)
	if got := p.last().Text(); got != "Hello" {
		t.Fatalf("after 250ms want %q, got %q", "Hello", got)
	}
	// The frame ending right before the space reveals the space early.
	if st := tw.State(); st.Revealed != 6 {
		t.Fatalf("expected smoothing to reveal the space, revealed=%d", st.Revealed)
	}
	sched.Settle(10 * time.Second)
	f := tw.Frame()
	if f.Text() != "Hello world" || !f.Complete() {
		t.Fatalf("after settle want full text, got %q", f.Text())
	}
	if !f.Cursor.Visible || f.Cursor.Char != DefaultCursor {
		t.Fatalf("cursor should stay visible after completion, got %+v", f.Cursor)
	}
	if st := tw.State(); st.Running || st.Revealed != 11 {
		t.Fatalf("unexpected final state %+v", st)
	}
	if sched.Armed() != 0 {
		t.Fatalf("clock still armed after completion")
	}
	ticks := len(p.frames)
	sched.Advance(time.Second)
	if len(p.frames) != ticks {
		t.Fatalf("frames painted after completion")
	}
	select {
	case <-tw.Done():
	default:
		t.Fatalf("done channel not closed")
	}
}

func TestRevealedAfterWholeTicks(t *testing.T) {
	const src = "typewriter"
	tw, sched, p := mount(t, src, WithSpeed(40*time.Millisecond))
	for k := 1; k <= len(src); k++ {
		sched.Advance(40 * time.Millisecond)
		if st := tw.State(); st.Revealed != k {
			t.Fatalf("after %d ticks revealed=%d", k, st.Revealed)
		}
		if got := p.last().Text(); got != src[:k] {
			t.Fatalf("after %d ticks want %q, got %q", k, src[:k], got)
		}
	}
	if tw.State().Running {
		t.Fatalf("clock should stop at the end")
	}
}

func TestTrailingSpaceCompletesWithFullFrame(t *testing.T) {
	tw, sched, p := mount(t, "ab ", WithSpeed(10*time.Millisecond))
	sched.Settle(time.Second)
	if got := p.last().Text(); got != "ab " {
		t.Fatalf("want %q, got %q", "ab ", got)
	}
	if st := tw.State(); st.Running || st.Revealed != 3 {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestMatchersSmoothingScenario(t *testing.T) {
	tw, sched, p := mount(t, "ab cd",
		WithSpeed(10*time.Millisecond),
		WithTheme(NewTheme("plain", Styles{})),
		WithMatchers(MustMatcher("cd", &bold)),
	)
	sched.Advance(20 * time.Millisecond)
	f := p.last()
	if f.Text() != "ab" || len(f.Spans) != 1 || f.Spans[0].Style != (Style{}) {
		t.Fatalf("unexpected frame at revealed=2: %+v", f.Spans)
	}
	if tw.State().Revealed != 3 {
		t.Fatalf("expected smoothing to advance to 3, got %d", tw.State().Revealed)
	}
	sched.Advance(10 * time.Millisecond)
	f = p.last()
	if f.Text() != "ab c" || f.Spans[1].Style != bold {
		t.Fatalf("unexpected frame at revealed=4: %+v", f.Spans)
	}
}

func TestZeroSpeedRevealsEverything(t *testing.T) {
	tw, sched, _ := mount(t, "instant text", WithSpeed(0))
	sched.Settle(time.Second)
	if got := tw.Frame().Text(); got != "instant text" {
		t.Fatalf("want full text, got %q", got)
	}
	if tw.State().Running {
		t.Fatalf("clock should be stopped")
	}
}

func TestEmptyTextCompletesOnMount(t *testing.T) {
	done := 0
	tw, sched, p := mount(t, "", WithOnComplete(func() { done++ }))
	if st := tw.State(); st.Running || st.Revealed != 0 || st.Length != 0 {
		t.Fatalf("unexpected state %+v", st)
	}
	if sched.Armed() != 0 || done != 1 || len(p.frames) != 1 {
		t.Fatalf("expected immediate completion, armed=%d done=%d frames=%d", sched.Armed(), done, len(p.frames))
	}
	if err := tw.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestControllerFreezeResumeScenario(t *testing.T) {
	c := NewController()
	const src = "freeze-frame"
	tw, sched, _ := mount(t, src, WithSpeed(50*time.Millisecond), WithController(c))
	c.Start()
	sched.Advance(100 * time.Millisecond)
	if got := tw.State().Revealed; got != 2 {
		t.Fatalf("expected 2 revealed, got %d", got)
	}
	c.Freeze()
	if st := tw.State(); st.Running || sched.Armed() != 0 {
		t.Fatalf("freeze should cancel the clock: %+v", st)
	}
	sched.Advance(500 * time.Millisecond)
	if got := tw.State().Revealed; got != 2 {
		t.Fatalf("revealed moved while frozen: %d", got)
	}
	c.Resume()
	if !tw.State().Running {
		t.Fatalf("resume should restart the clock")
	}
	sched.Advance(50 * time.Millisecond)
	if got := tw.State().Revealed; got != 3 {
		t.Fatalf("resume should continue from 2, got %d", got)
	}
	sched.Settle(10 * time.Second)
	if got := tw.Frame().Text(); got != src {
		t.Fatalf("want %q, got %q", src, got)
	}
}

func TestFreezeIsIdempotent(t *testing.T) {
	c := NewController()
	tw, sched, _ := mount(t, "steady", WithSpeed(10*time.Millisecond), WithController(c))
	sched.Advance(30 * time.Millisecond)
	c.Freeze()
	once := tw.State()
	c.Freeze()
	twice := tw.State()
	if once != twice || once.Revealed != 3 || once.Running {
		t.Fatalf("double freeze changed state: %+v vs %+v", once, twice)
	}
}

func TestResumeIsNoopWhileRunningOrComplete(t *testing.T) {
	c := NewController()
	tw, sched, _ := mount(t, "abc", WithSpeed(10*time.Millisecond), WithController(c))
	c.Resume()
	if sched.Armed() != 1 {
		t.Fatalf("resume while running must not arm a second clock, armed=%d", sched.Armed())
	}
	sched.Settle(time.Second)
	c.Freeze()
	c.Resume()
	if st := tw.State(); st.Running || sched.Armed() != 0 || st.Revealed != 3 {
		t.Fatalf("resume after completion must be a no-op: %+v", st)
	}
}

func TestStartResetsAndIgnoresStaleTicks(t *testing.T) {
	c := NewController()
	tw, sched, p := mount(t, "restart me", WithSpeed(10*time.Millisecond), WithController(c))
	sched.Advance(35 * time.Millisecond)
	c.Start()
	if st := tw.State(); st.Revealed != 0 || !st.Running {
		t.Fatalf("start should reset: %+v", st)
	}
	if p.last().Text() != "" {
		t.Fatalf("start should paint an empty frame, got %q", p.last().Text())
	}
	if sched.Armed() != 1 {
		t.Fatalf("expected exactly one armed clock, got %d", sched.Armed())
	}
	sched.Advance(10 * time.Millisecond)
	if got := tw.State().Revealed; got != 1 {
		t.Fatalf("expected one tick after restart, got %d", got)
	}
}

func TestStartAfterCompletionRestarts(t *testing.T) {
	c := NewController()
	runs := 0
	tw, sched, _ := mount(t, "again", WithSpeed(5*time.Millisecond), WithController(c), WithOnComplete(func() { runs++ }))
	sched.Settle(time.Second)
	first := tw.Done()
	c.Start()
	if tw.Done() == first {
		t.Fatalf("restart should install a fresh done channel")
	}
	sched.Settle(time.Second)
	if runs != 2 || tw.Frame().Text() != "again" {
		t.Fatalf("expected two completed runs, got %d", runs)
	}
}

func TestOneControllerDrivesManyTypewriters(t *testing.T) {
	c := NewController()
	a, schedA, _ := mount(t, "first", WithSpeed(10*time.Millisecond), WithController(c))
	b, schedB, _ := mount(t, "second", WithSpeed(10*time.Millisecond), WithController(c))
	schedA.Advance(20 * time.Millisecond)
	schedB.Advance(30 * time.Millisecond)
	c.Freeze()
	if a.State().Running || b.State().Running {
		t.Fatalf("both typewriters should be frozen")
	}
	if a.State().Revealed != 2 || b.State().Revealed != 3 {
		t.Fatalf("freeze must keep progress: %+v %+v", a.State(), b.State())
	}
	if c.Subscribers() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", c.Subscribers())
	}
}

func TestUnmountCancelsClockAndDetaches(t *testing.T) {
	c := NewController()
	tw, sched, p := mount(t, "goodbye", WithSpeed(10*time.Millisecond), WithController(c))
	sched.Advance(20 * time.Millisecond)
	tw.Unmount()
	tw.Unmount()
	if sched.Armed() != 0 {
		t.Fatalf("unmount must cancel the clock")
	}
	if c.Subscribers() != 0 {
		t.Fatalf("unmount must unsubscribe")
	}
	frames := len(p.frames)
	c.Start()
	sched.Advance(time.Second)
	if len(p.frames) != frames {
		t.Fatalf("painted after unmount")
	}
	if err := tw.Wait(context.Background()); !errors.Is(err, ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted, got %v", err)
	}
}

func TestControllerClosedWhileMounted(t *testing.T) {
	c := NewController()
	tw, sched, _ := mount(t, "orphan", WithSpeed(10*time.Millisecond), WithController(c))
	c.Close()
	sched.Settle(time.Second)
	if tw.Frame().Text() != "orphan" {
		t.Fatalf("animation should finish without its controller")
	}
	tw.Unmount()
}

func TestMountTwice(t *testing.T) {
	tw, _, _ := mount(t, "x")
	if err := tw.Mount(nil); !errors.Is(err, ErrMounted) {
		t.Fatalf("expected ErrMounted, got %v", err)
	}
}

func TestPainterErrorsDoNotStopTheClock(t *testing.T) {
	sched := NewManualScheduler()
	tw, err := New("abc", WithScheduler(sched), WithSpeed(time.Millisecond))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p := &recordPainter{err: errors.New("broken pipe")}
	if err := tw.Mount(p); err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer tw.Unmount()
	sched.Settle(time.Second)
	if tw.State().Revealed != 3 {
		t.Fatalf("expected completion despite paint errors")
	}
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want error
	}{
		{"negative speed", []Option{WithSpeed(-time.Millisecond)}, ErrNegativeSpeed},
		{"empty cursor", []Option{WithCursorCharacter("")}, ErrInvalidCursor},
		{"long cursor", []Option{WithCursorCharacter("ab")}, ErrInvalidCursor},
		{"bad matcher", []Option{WithMatchers(Matcher{})}, ErrInvalidMatcher},
		{"bad base", []Option{WithBaseStyle(Style{Background: "teal"})}, ErrInvalidColor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New("text", tc.opts...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if _, err := New("text", WithCursorCharacter("█")); err != nil {
		t.Fatalf("block cursor should be accepted: %v", err)
	}
	if _, err := New("text", WithCursor(false), WithCursorCharacter("")); err == nil {
		t.Fatalf("explicit empty cursor should be rejected even when hidden")
	}
}

func TestWaitWithTimerScheduler(t *testing.T) {
	tw, err := New("real time", WithSpeed(time.Millisecond))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := tw.Mount(nil); err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer tw.Unmount()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tw.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := tw.Frame().Text(); got != "real time" {
		t.Fatalf("want full text, got %q", got)
	}
}

func TestWaitBeforeMount(t *testing.T) {
	tw, err := New("later")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := tw.Wait(context.Background()); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("expected ErrNotMounted, got %v", err)
	}
}
