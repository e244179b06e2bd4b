package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/term-snake/internal/core"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		action   core.Action
		consumed int
	}{
		{"up", []byte("\x1b[A"), core.ActionUp, 3},
		{"down", []byte("\x1b[B"), core.ActionDown, 3},
		{"right", []byte("\x1b[C"), core.ActionRight, 3},
		{"left", []byte("\x1b[D"), core.ActionLeft, 3},
		{"arrow with trailing bytes", []byte("\x1b[Axyz"), core.ActionUp, 3},
		{"plain letter", []byte("w"), core.ActionNone, 1},
		{"ctrl+c byte", []byte{0x03}, core.ActionNone, 1},
		{"unknown csi", []byte("\x1b[H"), core.ActionNone, 3},
		{"ss3 arrow", []byte("\x1bOA"), core.ActionNone, 1},
		{"esc before arrow", []byte("\x1b\x1b[A"), core.ActionNone, 1},
		{"incomplete", []byte("\x1b["), core.ActionNone, 0},
		{"lone esc", []byte{0x1b}, core.ActionNone, 0},
		{"empty", nil, core.ActionNone, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, n := decodeKey(tc.in)
			if action != tc.action || n != tc.consumed {
				t.Errorf("decodeKey(%q) = (%v, %d), expected (%v, %d)", tc.in, action, n, tc.action, tc.consumed)
			}
		})
	}
}

// scriptedSource returns one chunk per fill call.
type scriptedSource struct {
	chunks   [][]byte
	err      error
	timeouts []time.Duration
}

func (s *scriptedSource) fill(buf []byte, timeout time.Duration) (int, error) {
	s.timeouts = append(s.timeouts, timeout)
	if s.err != nil {
		return 0, s.err
	}
	if len(s.chunks) == 0 {
		return 0, nil
	}
	n := copy(buf, s.chunks[0])
	s.chunks = s.chunks[1:]
	return n, nil
}

func TestKeyReaderNoInput(t *testing.T) {
	src := &scriptedSource{}
	k := newKeyReader(src)

	if a, ok := k.next(); ok {
		t.Errorf("next() = (%v, true), expected no key", a)
	}
	if src.timeouts[0] != 0 {
		t.Errorf("Polling should not wait, got timeout %v", src.timeouts[0])
	}
}

func TestKeyReaderOneKeyPerCall(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("\x1b[A\x1b[D")}}
	k := newKeyReader(src)

	if a, ok := k.next(); !ok || a != core.ActionUp {
		t.Errorf("first next() = (%v, %v), expected Up", a, ok)
	}
	if a, ok := k.next(); !ok || a != core.ActionLeft {
		t.Errorf("second next() = (%v, %v), expected Left", a, ok)
	}
	if _, ok := k.next(); ok {
		t.Error("third next() should report no key")
	}
}

func TestKeyReaderIgnoredBytes(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("q\x1b[B")}}
	k := newKeyReader(src)

	// 'q' is consumed on its own tick without producing a key.
	if _, ok := k.next(); ok {
		t.Error("'q' should be ignored")
	}
	if a, ok := k.next(); !ok || a != core.ActionDown {
		t.Errorf("next() = (%v, %v), expected Down", a, ok)
	}
}

func TestKeyReaderStrayEscKeepsArrow(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("\x1b\x1b[A")}}
	k := newKeyReader(src)

	if _, ok := k.next(); ok {
		t.Error("Stray ESC should not produce a key")
	}
	if a, ok := k.next(); !ok || a != core.ActionUp {
		t.Errorf("next() = (%v, %v), expected Up after the stray ESC", a, ok)
	}
	if len(k.pending) != 0 {
		t.Errorf("Nothing should remain pending, got %q", k.pending)
	}
}

func TestKeyReaderSplitSequence(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{{0x1b}, []byte("[C")}}
	k := newKeyReader(src)

	if a, ok := k.next(); !ok || a != core.ActionRight {
		t.Errorf("next() = (%v, %v), expected Right", a, ok)
	}
	if len(src.timeouts) != 2 || src.timeouts[1] != escapeTimeout {
		t.Errorf("Expected a short wait for the rest of the sequence, got %v", src.timeouts)
	}
}

func TestKeyReaderDropsTruncatedSequence(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("\x1b[")}}
	k := newKeyReader(src)

	if _, ok := k.next(); ok {
		t.Error("Truncated sequence should not produce a key")
	}
	if len(k.pending) != 0 {
		t.Errorf("Truncated sequence should be dropped, pending %q", k.pending)
	}
}

func TestKeyReaderReadErrorIsNoKey(t *testing.T) {
	src := &scriptedSource{err: errors.New("EIO")}
	k := newKeyReader(src)

	if _, ok := k.next(); ok {
		t.Error("Read errors should count as no key")
	}
}

func TestSessionRender(t *testing.T) {
	var buf bytes.Buffer
	s := &Session{out: &buf}

	if err := s.Render("frame\n"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got := buf.String(); got != ClearScreen+"frame\n" {
		t.Errorf("Render wrote %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestSessionRenderError(t *testing.T) {
	s := &Session{out: failingWriter{}}
	err := s.Render("x")
	if err == nil || !strings.Contains(err.Error(), "console: write frame") {
		t.Errorf("Render() error = %v", err)
	}
}

func TestCheckFits(t *testing.T) {
	size := func() (int, int) { return 80, 24 }

	if err := checkFits(20, 21, size); err != nil {
		t.Errorf("20x21 should fit in 80x24: %v", err)
	}
	if err := checkFits(100, 21, size); err == nil {
		t.Error("100 columns should not fit in 80")
	}
	if err := checkFits(20, 25, size); err == nil {
		t.Error("25 rows should not fit in 24")
	}
}
