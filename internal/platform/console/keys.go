package console

import (
	"time"

	"github.com/vovakirdan/term-snake/internal/core"
)

const (
	keyEsc = 0x1b

	// escapeTimeout is how long to wait for the rest of a sequence after a
	// lone ESC byte.
	escapeTimeout = 10 * time.Millisecond
)

// arrowKeys maps the final byte of ESC [ <code> to an action.
var arrowKeys = map[byte]core.Action{
	'A': core.ActionUp,
	'B': core.ActionDown,
	'C': core.ActionRight,
	'D': core.ActionLeft,
}

// decodeKey decodes the key at the start of buf.
// It returns the action (ActionNone for ignored input) and the number of
// bytes consumed. A consumed count of 0 means buf holds an incomplete
// escape sequence.
func decodeKey(buf []byte) (core.Action, int) {
	if len(buf) == 0 {
		return core.ActionNone, 0
	}
	if buf[0] != keyEsc {
		return core.ActionNone, 1
	}
	if len(buf) < 3 {
		return core.ActionNone, 0
	}
	if buf[1] != '[' {
		// Lone ESC; whatever follows is decoded on its own.
		return core.ActionNone, 1
	}
	if a, ok := arrowKeys[buf[2]]; ok {
		return a, 3
	}
	return core.ActionNone, 3
}

// byteSource yields whatever input bytes arrive within timeout.
// A zero timeout must not block.
type byteSource interface {
	fill(buf []byte, timeout time.Duration) (int, error)
}

// keyReader hands out one key per call, keeping unread bytes queued.
type keyReader struct {
	src     byteSource
	pending []byte
	buf     [64]byte
}

func newKeyReader(src byteSource) *keyReader {
	return &keyReader{src: src}
}

// next consumes one key. Read errors count as no input.
func (k *keyReader) next() (core.Action, bool) {
	if len(k.pending) == 0 {
		k.read(0)
	}
	if len(k.pending) == 0 {
		return core.ActionNone, false
	}

	action, n := decodeKey(k.pending)
	if n == 0 {
		// Partial sequence: give the terminal a moment to send the rest.
		k.read(escapeTimeout)
		action, n = decodeKey(k.pending)
		if n == 0 {
			n = len(k.pending)
		}
	}
	k.pending = k.pending[n:]

	if action == core.ActionNone {
		return core.ActionNone, false
	}
	return action, true
}

func (k *keyReader) read(timeout time.Duration) {
	n, err := k.src.fill(k.buf[:], timeout)
	if err != nil || n <= 0 {
		return
	}
	k.pending = append(k.pending, k.buf[:n]...)
}
