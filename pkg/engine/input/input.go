package input

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/samber/oops"
	"golang.org/x/term"
)

// Terminal reads single key presses from a terminal in raw mode.
type Terminal struct {
	in       *bufio.Reader
	fd       int
	oldState *term.State
}

// OpenTerminal puts f into raw mode. Close restores it.
func OpenTerminal(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, oops.Code("TERMINAL_RAW_MODE").Wrapf(err, "cannot set terminal to raw mode")
	}
	return &Terminal{in: bufio.NewReader(f), fd: fd, oldState: oldState}, nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	return err
}

// Events reads keys until ctx is done or input ends, sending each as a
// RawInput. The channel is closed when reading stops.
func (t *Terminal) Events(ctx context.Context) <-chan RawInput {
	out := make(chan RawInput, 16)
	go func() {
		defer close(out)
		for {
			code, err := ReadKey(t.in)
			if err != nil {
				return
			}
			if code == "" {
				continue
			}
			select {
			case out <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// ReadKey reads one key press from r and returns its code: a printable
// character ("e", "?"), or a named key ("arrow_up", "enter", "escape",
// "ctrl_c", "tab", "backspace"). Unknown escape sequences return "".
func ReadKey(r *bufio.Reader) (string, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == 0x1b:
		return readEscape(r)
	case b == 3:
		return "ctrl_c", nil
	case b == '\r' || b == '\n':
		return "enter", nil
	case b == '\t':
		return "tab", nil
	case b == 127 || b == 8:
		return "backspace", nil
	case b == ' ':
		return "space", nil
	case b > 32 && b < 127:
		return string(rune(b)), nil
	}
	return "", nil
}

// readEscape decodes the rest of an escape sequence. A lone ESC with nothing
// buffered behind it is the escape key itself.
func readEscape(r *bufio.Reader) (string, error) {
	if r.Buffered() == 0 {
		return "escape", nil
	}
	b2, err := r.ReadByte()
	if err != nil {
		return "escape", nil
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape", nil
	}
	b3, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}

	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}
