// Package tty adapts the virtual machine's I/O port to a real terminal
// using raw-mode console I/O[^1].
//
// [1]: See: tty(4), termios(4).
package tty

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/smoynes/coder/internal/vm"
)

// ErrNoTTY is returned if standard input is not a terminal, in which case
// raw-mode console I/O is not available.
var ErrNoTTY = errors.New("tty: stdin is not a terminal")

// Console realizes vm.Port over the process's own terminal: it puts the
// terminal into raw mode, maps SCREEN output to cursor-addressed ANSI
// writes, and has a background goroutine read single keystrokes into a
// buffered channel that ReadKey and ProcessMessages drain.
//
// [1]: See: tty(4), termios(4).
type Console struct {
	in  *os.File
	fd  int

	state *term.State
	term  *term.Terminal

	geometry vm.Geometry
	keys     chan int

	cancelReader context.CancelFunc
	cancelLoop   context.CancelFunc
}

var _ vm.Port = (*Console)(nil)

// NewConsole puts stdin into raw mode and returns a Console sized to
// geometry's character grid. Callers must call Close to restore the
// terminal when done.
func NewConsole(geometry vm.Geometry) (*Console, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Console{
		in:       os.Stdin,
		fd:       fd,
		state:    saved,
		term:     term.NewTerminal(os.Stdin, ""),
		geometry:     geometry,
		keys:         make(chan int, 16),
		cancelReader: cancel,
	}

	if err := c.setNonBlocking(); err != nil {
		_ = term.Restore(fd, saved)
		return nil, err
	}

	go c.readKeys(ctx)

	return c, nil
}

// setNonBlocking configures VMIN/VTIME so terminal reads return
// immediately with whatever bytes are available, rather than blocking
// until a full line arrives.
func (c *Console) setNonBlocking() error {
	termios, err := unix.IoctlGetTermios(c.fd, unix.TCGETS)
	if err != nil {
		return err
	}

	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(c.fd, unix.TCSETS, termios)
}

func (c *Console) readKeys(ctx context.Context) {
	buf := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := c.in.Read(buf)
		if err != nil || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}

		select {
		case c.keys <- int(buf[0]):
		default: // drop the key rather than block the reader
		}
	}
}

// ReadKey returns the next buffered keystroke, or vm.NoKey if none is
// waiting. It never blocks, per the VM's non-blocking INPUT contract.
func (c *Console) ReadKey() int {
	select {
	case k := <-c.keys:
		return k
	default:
		return vm.NoKey
	}
}

// OutputText writes text at the terminal cell corresponding to the pixel
// coordinates, converted using the console's configured letter size.
func (c *Console) OutputText(text string, px, py int, fg vm.Color) error {
	col := px/c.geometry.LetterW + 1
	row := py/c.geometry.LetterH + 1

	_, err := fmt.Fprintf(c.term, "\x1b[%d;%dH\x1b[38;2;%d;%d;%dm%s", row, col, fg.R, fg.G, fg.B, text)

	return err
}

// Color sets the background color applied to subsequent output.
func (c *Console) Color(bg vm.Color) error {
	_, err := fmt.Fprintf(c.term, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)
	return err
}

// Refresh is a no-op: terminal writes take effect immediately.
func (c *Console) Refresh() error { return nil }

// Timeout sleeps the calling goroutine, synchronously, for ms
// milliseconds -- the VM's TIMEOUT interrupt calls this directly.
func (c *Console) Timeout(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ProcessMessages runs the console's event loop: every tick interval it
// calls onTick, and for every buffered keystroke it calls onKey. It
// blocks until Close cancels its context.
func (c *Console) ProcessMessages(onTick func(), onKey func(code int)) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLoop = cancel

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			onTick()
		case k := <-c.keys:
			onKey(k)
		}
	}
}

// Close restores the terminal to its original state and stops the
// key-reading goroutine and, if running, the ProcessMessages loop.
func (c *Console) Close() error {
	c.cancelReader()

	if c.cancelLoop != nil {
		c.cancelLoop()
	}

	return term.Restore(c.fd, c.state)
}
