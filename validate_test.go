package typewriter

import (
	"errors"
	"testing"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xfd}
	if err := ValidateInput(data); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateInputRejectsBinary(t *testing.T) {
	data := append([]byte("hello"), 0x00)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestSanitizeDropsControlRunes(t *testing.T) {
	got := Sanitize("a\x1b[31mb\r\nc\td\x7f")
	want := "a[31mb\nc\td"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
	if Sanitize("plain") != "plain" {
		t.Fatalf("clean input must pass through")
	}
}

func TestNewRejectsBinaryText(t *testing.T) {
	if _, err := New("bad\x00text"); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
	if _, err := New(string([]byte{0xff})); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}
