// Package console is the terminal adapter for the game loop: it switches the
// controlling terminal into cbreak mode, reads single keys without blocking,
// and writes whole frames.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/vovakirdan/term-snake/internal/core"
)

// ClearScreen moves the cursor home and clears the display.
const ClearScreen = "\x1b[H\x1b[2J"

// ErrNotTerminal is returned when input is not an interactive terminal.
var ErrNotTerminal = errors.New("console: stdin is not a terminal")

// Session is an acquired terminal. The saved settings it holds are put back
// by Close, which is safe to call more than once.
type Session struct {
	out   io.Writer
	inFd  int
	outFd int
	saved *unix.Termios
	keys  *keyReader

	closeOnce sync.Once
	closeErr  error
}

// Open saves the terminal settings of in and disables canonical mode and
// echo. Signal generation stays on, so Ctrl+C still raises SIGINT.
func Open(in, out *os.File) (*Session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	saved, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("console: read terminal settings: %w", err)
	}

	cbreak := *saved
	cbreak.Lflag &^= unix.ICANON | unix.ECHO
	cbreak.Cc[unix.VMIN] = 1
	cbreak.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &cbreak); err != nil {
		return nil, fmt.Errorf("console: enter cbreak mode: %w", err)
	}

	return &Session{
		out:   out,
		inFd:  fd,
		outFd: int(out.Fd()),
		saved: saved,
		keys:  newKeyReader(fdSource{fd: fd}),
	}, nil
}

// Close restores the saved terminal settings.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := unix.IoctlSetTermios(s.inFd, ioctlWriteTermios, s.saved); err != nil {
			s.closeErr = fmt.Errorf("console: restore terminal settings: %w", err)
		}
	})
	return s.closeErr
}

// PollKey returns the next pending arrow key without blocking.
// Any other input is dropped.
func (s *Session) PollKey() (core.Action, bool) {
	return s.keys.next()
}

// Render clears the screen and writes frame.
func (s *Session) Render(frame string) error {
	if _, err := io.WriteString(s.out, ClearScreen+frame); err != nil {
		return fmt.Errorf("console: write frame: %w", err)
	}
	return nil
}

// Size returns the output terminal size, falling back to 80x24.
func (s *Session) Size() (width, height int) {
	w, h, err := term.GetSize(s.outFd)
	if err != nil {
		return 80, 24
	}
	return w, h
}

// Fits returns an error when the terminal is smaller than width x height.
func (s *Session) Fits(width, height int) error {
	return checkFits(width, height, s.Size)
}

func checkFits(width, height int, size func() (int, int)) error {
	w, h := size()
	if w < width || h < height {
		return fmt.Errorf("console: terminal is %dx%d, need at least %dx%d", w, h, width, height)
	}
	return nil
}

// fdSource reads raw bytes from a file descriptor, using poll(2) so a zero
// timeout never blocks.
type fdSource struct {
	fd int
}

func (f fdSource) fill(buf []byte, timeout time.Duration) (int, error) {
	fds := []unix.PollFd{{Fd: int32(f.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return 0, nil
	}

	rn, err := unix.Read(f.fd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, nil
		}
		return 0, err
	}
	return rn, nil
}
