package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"pkt.systems/typewriter"
	"pkt.systems/typewriter/internal/config"
	"pkt.systems/typewriter/internal/sound"
	"pkt.systems/typewriter/screen"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/typewriter")
}

type cliOptions struct {
	speed      time.Duration
	cursor     bool
	noCursor   bool
	cursorChar string
	themeName  string
	listThemes bool
	matches    []string
	configPath string
	width      int
	maxLines   int
	align      string
	wrap       bool
	fullScreen bool
	boring     bool
	sound      bool
	debug      bool
	outPath    string

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// usageError marks errors that exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	var o cliOptions
	flags := pflag.NewFlagSet("typewriter", pflag.ExitOnError)
	flags.DurationVar(&o.speed, "speed", typewriter.DefaultSpeed, "Delay per revealed character")
	flags.BoolVar(&o.cursor, "cursor", true, "Draw the cursor after the revealed text")
	flags.BoolVar(&o.noCursor, "no-cursor", false, "Hide the cursor")
	flags.StringVar(&o.cursorChar, "cursor-char", typewriter.DefaultCursor, "Cursor character")
	flags.StringVarP(&o.themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.BoolVar(&o.listThemes, "list-themes", false, "List available themes")
	flags.StringArrayVar(&o.matches, "match", nil, "Highlight pattern=style (style name or fg,bg,attrs); repeatable")
	flags.StringVar(&o.configPath, "config", "", "TOML config file")
	flags.IntVarP(&o.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.IntVar(&o.maxLines, "max-lines", 0, "Maximum lines drawn (0 is unlimited)")
	flags.StringVar(&o.align, "align", "start", "Alignment: start|end|left|right|center")
	flags.BoolVar(&o.wrap, "wrap", false, "Wrap at word boundaries")
	flags.BoolVar(&o.fullScreen, "screen", false, "Full-screen mode")
	flags.BoolVarP(&o.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&o.sound, "sound", false, "Play a key click per character")
	flags.BoolVar(&o.debug, "debug", false, "Debug logging on stderr")
	flags.StringVarP(&o.outPath, "output", "o", "", "Output file instead of stdout")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: typewriter [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, text is read from stdin.")
		fmt.Fprintln(os.Stderr, "Keys: space freezes or resumes, r restarts, q quits.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	o.changed = func(name string) bool { return flags.Changed(name) }

	if o.listThemes {
		printThemes(os.Stdout)
		return
	}

	log := newLogger(os.Stderr, o.debug)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, flags.Args(), log); err != nil {
		fmt.Fprintf(os.Stderr, "typewriter: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

// settings is everything derived from flags and the config file before the
// input is read.
type settings struct {
	opts  []typewriter.Option
	sound bool
}

func buildSettings(o cliOptions, log *slog.Logger) (settings, error) {
	changed := o.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	theme, ok := typewriter.ThemeByName(o.themeName)
	if !ok {
		return settings{}, usageError{fmt.Errorf("unknown theme %q", o.themeName)}
	}

	var s settings
	var layout typewriter.Layout
	if o.configPath != "" {
		cfg, err := config.Load(normalizePath(o.configPath))
		if err != nil {
			return settings{}, fmt.Errorf("config: %w", err)
		}
		if cfg.Theme != "" && !changed("theme") {
			t, ok := typewriter.ThemeByName(cfg.Theme)
			if !ok {
				return settings{}, fmt.Errorf("config: theme %q: %w", cfg.Theme, config.ErrUnknownTheme)
			}
			theme = t
		}
		cfg.Theme = theme.Name()
		opts, err := cfg.Options(theme)
		if err != nil {
			return settings{}, fmt.Errorf("config: %w", err)
		}
		if layout, err = cfg.Layout.Build(); err != nil {
			return settings{}, fmt.Errorf("config: %w", err)
		}
		s.opts = append(s.opts, opts...)
		s.sound = cfg.Sound
	}
	if o.boring {
		theme = typewriter.NewTheme("boring", typewriter.Styles{})
	}
	s.opts = append(s.opts, typewriter.WithTheme(theme), typewriter.WithLogger(log))

	if changed("speed") {
		s.opts = append(s.opts, typewriter.WithSpeed(o.speed))
	}
	if changed("cursor") {
		s.opts = append(s.opts, typewriter.WithCursor(o.cursor))
	}
	if o.noCursor {
		s.opts = append(s.opts, typewriter.WithCursor(false))
	}
	if changed("cursor-char") {
		s.opts = append(s.opts, typewriter.WithCursorCharacter(o.cursorChar))
	}
	if changed("sound") {
		s.sound = o.sound
	}

	if changed("align") {
		align, ok := typewriter.ParseAlign(strings.ToLower(o.align))
		if !ok {
			return settings{}, usageError{fmt.Errorf("invalid --align %q", o.align)}
		}
		layout.Align = align
	}
	if changed("wrap") {
		layout.Wrap = o.wrap
	}
	if changed("max-lines") {
		layout.MaxLines = o.maxLines
		layout.Overflow = typewriter.OverflowEllipsis
	}
	if o.width > 0 {
		layout.Width = o.width
	}
	s.opts = append(s.opts, typewriter.WithLayout(layout))

	matchers := make([]typewriter.Matcher, 0, len(o.matches))
	for _, raw := range o.matches {
		m, err := parseMatch(raw, theme.Styles())
		if err != nil {
			return settings{}, usageError{fmt.Errorf("--match %q: %w", raw, err)}
		}
		matchers = append(matchers, m)
	}
	if len(matchers) > 0 {
		s.opts = append(s.opts, typewriter.WithMatchers(matchers...))
	}
	return s, nil
}

// parseMatch parses "pattern=style". style is a theme style name or a comma
// separated list of colours (foreground first) and attributes.
func parseMatch(raw string, styles typewriter.Styles) (typewriter.Matcher, error) {
	idx := strings.LastIndex(raw, "=")
	if idx <= 0 {
		return typewriter.Matcher{}, fmt.Errorf("expected pattern=style")
	}
	pattern, spec := raw[:idx], strings.TrimSpace(raw[idx+1:])
	style, ok := styles.Named(spec)
	if !ok {
		var colors, attrs []string
		for _, part := range strings.Split(spec, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.HasPrefix(part, "#") || isDigits(part) {
				colors = append(colors, part)
				continue
			}
			attrs = append(attrs, part)
		}
		if len(colors) > 2 {
			return typewriter.Matcher{}, fmt.Errorf("at most two colours")
		}
		colors = append(colors, "", "")
		parsed, err := config.ParseStyle(colors[0], colors[1], attrs)
		if err != nil {
			return typewriter.Matcher{}, err
		}
		style = parsed
	}
	return typewriter.NewMatcher(pattern, &style)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

type finisher interface {
	Finish() error
}

func run(ctx context.Context, o cliOptions, args []string, log *slog.Logger) error {
	s, err := buildSettings(o, log)
	if err != nil {
		return err
	}

	reader, closer, err := openInputs(ctx, args)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	text, err := readText(reader)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	writer, closeOut, err := resolveOutput(o.outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	ctrl := typewriter.NewController()
	defer ctrl.Close()
	s.opts = append(s.opts, typewriter.WithController(ctrl))
	tw, err := typewriter.New(text, s.opts...)
	if err != nil {
		return err
	}

	if o.fullScreen {
		return runScreen(ctx, tw, ctrl, s, log)
	}
	interactive := len(args) > 0 && !slices.Contains(args, "-") && isTerminal(os.Stdin) && isTerminal(writer)
	return runInline(ctx, tw, ctrl, writer, o, s, interactive, log)
}

func readText(r io.Reader) (string, error) {
	data, err := readAllLimited(r, maxInputBytes)
	if err != nil {
		return "", err
	}
	if err := typewriter.ValidateInput(data); err != nil {
		return "", err
	}
	return strings.TrimRight(typewriter.Sanitize(string(data)), "\n"), nil
}

func withSound(p typewriter.Painter, enabled bool, log *slog.Logger) (typewriter.Painter, func()) {
	if !enabled {
		return p, func() {}
	}
	c := sound.NewClicker(0.4, log)
	if err := c.Open(); err != nil {
		return p, func() {}
	}
	return c.Painter(p), c.Close
}

func runInline(ctx context.Context, tw *typewriter.Typewriter, ctrl *typewriter.Controller, w io.Writer, o cliOptions, s settings, interactive bool, log *slog.Logger) error {
	var painter typewriter.Painter
	var fin finisher
	if isTerminal(w) {
		if interactive {
			f := w.(*os.File)
			restore, err := makeRaw(os.Stdin)
			if err != nil {
				log.Warn("raw mode unavailable", "error", err)
				interactive = false
			} else {
				defer restore()
				w = &crlfWriter{w: f}
			}
		}
		profile := typewriter.DetectColorProfile()
		if o.boring {
			profile = typewriter.ProfileNone
		}
		ap := typewriter.NewANSIPainter(w,
			typewriter.WithColorProfile(profile),
			typewriter.WithWidth(resolveWidth(o.width)))
		painter, fin = ap, ap
	} else {
		sp := typewriter.NewStreamPainter(w, typewriter.ProfileNone)
		painter, fin = sp, sp
		interactive = false
	}
	painter, closeSound := withSound(painter, s.sound, log)
	defer closeSound()

	if err := tw.Mount(painter); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := tw.Wait(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if interactive {
		keys := screen.NewKeys(ctrl)
		runes := readRunes(os.Stdin)
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case r, ok := <-runes:
					if !ok {
						return nil
					}
					if keys.HandleRune(r) {
						cancel()
						return nil
					}
				}
			}
		})
	}
	err := g.Wait()
	tw.Unmount()
	if ferr := fin.Finish(); err == nil {
		err = ferr
	}
	return err
}

func runScreen(ctx context.Context, tw *typewriter.Typewriter, ctrl *typewriter.Controller, s settings, log *slog.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	defer scr.Fini()

	painter, closeSound := withSound(screen.NewPainter(scr, screen.WithOrigin(1, 1)), s.sound, log)
	defer closeSound()
	if err := tw.Mount(painter); err != nil {
		return err
	}
	defer tw.Unmount()

	keys := screen.NewKeys(ctrl)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			switch ev := scr.PollEvent().(type) {
			case nil, *tcell.EventInterrupt:
				return nil
			case *tcell.EventResize:
				scr.Sync()
			default:
				if keys.Handle(ev) {
					return errQuit
				}
			}
		}
	})
	go func() {
		<-gctx.Done()
		_ = scr.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

var errQuit = errors.New("quit")

func makeRaw(f *os.File) (func(), error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, state) }, nil
}

// readRunes delivers bytes typed on r. The reader goroutine ends with the
// process since a terminal read cannot be interrupted.
func readRunes(r io.Reader) <-chan rune {
	ch := make(chan rune)
	go func() {
		defer close(ch)
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				ch <- rune(buf[0])
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// crlfWriter restores carriage returns that raw mode stops the terminal from
// adding after a newline.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

func printThemes(w io.Writer) {
	names := typewriter.AvailableThemes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func strconvAtoi(value string) (int, error) {
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
