// Package typewriter animates text one character at a time for terminal display.
//
// A Typewriter splits its source into styled segments once, then a reveal
// clock advances a character count at a fixed speed and every step is
// composed into a Frame and handed to a Painter. Playback can be driven from
// outside with a Controller shared by any number of typewriters.
//
// Core properties:
//   - Characters are grapheme clusters, not bytes or runes
//   - Regex matchers style substrings; the first registered matcher wins
//   - Frames ending right before a space reveal the space one step early
//   - Start, freeze and resume with a synchronous Controller
//   - Deterministic virtual time via ManualScheduler
//
// Example:
//
//	tw, err := typewriter.New("Hello world",
//		typewriter.WithSpeed(40*time.Millisecond),
//		typewriter.WithMatchers(typewriter.MustMatcher(`world`, &typewriter.Style{Attrs: typewriter.AttrBold})),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	painter := typewriter.NewANSIPainter(os.Stdout)
//	if err := tw.Mount(painter); err != nil {
//		log.Fatal(err)
//	}
//	_ = tw.Wait(context.Background())
//	tw.Unmount()
//	_ = painter.Finish()
//
// Painters for full-screen terminals live in the screen package.
package typewriter
