package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TermIO adapts the real stdin/stdout terminal to shell.CharIo, putting
// the terminal into raw mode so individual keystrokes (including
// backspace, tab, and escape sequences) reach ProcessChar un-cooked —
// the same use of golang.org/x/term the teacher reaches for to read a
// masked password (cmd/dittofs/commands/user.go), generalized here to
// a whole raw-mode session instead of one field.
type TermIO struct {
	in       *os.File
	out      *os.File
	oldState *term.State
	bytes    chan byte
}

// NewTermIO puts os.Stdin into raw mode and starts a background reader
// goroutine so GetChar can be non-blocking, per spec.md section 6
// ("GetChar ... must not block waiting for one").
func NewTermIO() (*TermIO, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}

	t := &TermIO{
		in:       os.Stdin,
		out:      os.Stdout,
		oldState: oldState,
		bytes:    make(chan byte, 256),
	}
	go t.readLoop()
	return t, nil
}

func (t *TermIO) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			t.bytes <- buf[0]
		}
		if err != nil {
			close(t.bytes)
			return
		}
	}
}

// GetChar implements shell.CharIo: non-blocking, Ok=false when no byte
// has arrived yet.
func (t *TermIO) GetChar() (rune, bool, error) {
	select {
	case b, ok := <-t.bytes:
		if !ok {
			return 0, false, io.EOF
		}
		return rune(b), true, nil
	default:
		return 0, false, nil
	}
}

// PutChar implements shell.CharIo by writing directly to stdout; a
// terminal's write side is effectively always ready, so this never
// blocks meaningfully.
func (t *TermIO) PutChar(c rune) error {
	_, err := t.out.WriteString(string(c))
	return err
}

// WriteString implements shell.CharIo directly rather than looping
// PutChar, since os.File.WriteString is a single syscall.
func (t *TermIO) WriteString(s string) error {
	_, err := t.out.WriteString(s)
	return err
}

// Restore puts the terminal back into its original (cooked) mode. The
// caller must call this before the process exits.
func (t *TermIO) Restore() error {
	return term.Restore(int(os.Stdin.Fd()), t.oldState)
}
