package typewriter

import (
	"bytes"
	"io"
)

// StreamPainter appends newly revealed text to w and never rewrites it,
// which suits pipes, logs and files. The cursor is not drawn. A frame that
// shows less than what was already written (a restart) begins a new line.
type StreamPainter struct {
	w       io.Writer
	profile ColorProfile
	written int
	buf     bytes.Buffer
}

// NewStreamPainter returns an append-only painter. Use ProfileNone for plain text.
func NewStreamPainter(w io.Writer, profile ColorProfile) *StreamPainter {
	return &StreamPainter{w: w, profile: profile}
}

// Paint writes the part of f not yet written.
func (s *StreamPainter) Paint(f Frame) error {
	total := 0
	for _, span := range f.Spans {
		total += len(span.Text)
	}
	s.buf.Reset()
	if total < s.written {
		if s.written > 0 {
			s.buf.WriteByte('\n')
		}
		s.written = 0
	}
	offset := 0
	for _, span := range f.Spans {
		end := offset + len(span.Text)
		if end > s.written {
			from := 0
			if s.written > offset {
				from = s.written - offset
			}
			part := span.Text[from:]
			if prefix := span.Style.Prefix(s.profile); prefix != "" {
				s.buf.WriteString(prefix)
				s.buf.WriteString(part)
				s.buf.WriteString(sgrReset)
			} else {
				s.buf.WriteString(part)
			}
		}
		offset = end
	}
	s.written = total
	if s.buf.Len() == 0 {
		return nil
	}
	_, err := s.w.Write(s.buf.Bytes())
	return err
}

// Finish terminates the output line.
func (s *StreamPainter) Finish() error {
	if s.written == 0 {
		return nil
	}
	s.written = 0
	_, err := io.WriteString(s.w, "\n")
	return err
}
