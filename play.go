package typewriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// PlayRequest configures Play.
type PlayRequest struct {
	Reader io.Reader
	// Writer receives plain append-only output when Painter is nil.
	Writer  io.Writer
	Painter Painter
	Options []Option
}

// Play reads all of req.Reader and animates it, blocking until the text is
// fully revealed or ctx ends. Painters with a Finish method are finished
// afterwards.
func Play(ctx context.Context, req PlayRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("play: reader is nil")
	}
	painter := req.Painter
	if painter == nil {
		if req.Writer == nil {
			return fmt.Errorf("play: writer is nil")
		}
		painter = NewStreamPainter(req.Writer, ProfileNone)
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("play: read: %w", err)
	}
	tw, err := New(string(src), req.Options...)
	if err != nil {
		return err
	}
	if err := tw.Mount(painter); err != nil {
		return err
	}
	err = tw.Wait(ctx)
	tw.Unmount()
	if f, ok := painter.(interface{ Finish() error }); ok {
		if ferr := f.Finish(); err == nil {
			err = ferr
		}
	}
	if errors.Is(err, ErrUnmounted) {
		err = nil
	}
	return err
}

// HTTPPlayRequest configures HTTPPlay.
type HTTPPlayRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Painter Painter
	Options []Option
}

// HTTPPlay fetches text over HTTP(S) and plays it.
func HTTPPlay(ctx context.Context, req HTTPPlayRequest) error {
	if req.URL == "" {
		return fmt.Errorf("play http: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("play http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("play http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("play http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("play http: status %s", resp.Status)
	}
	return Play(ctx, PlayRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Painter: req.Painter,
		Options: req.Options,
	})
}
