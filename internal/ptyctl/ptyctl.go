// Package ptyctl supervises one pseudo-terminal-backed child process: a
// reader goroutine drains the PTY into a bounded channel, Read hands bytes
// back to the caller without ever dropping a partial chunk, and liveness is
// tracked off a Wait goroutine since the underlying library exposes no
// non-blocking try_wait.
package ptyctl

import (
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/x/xpty"

	"github.com/quietcompute/splitterm/internal/apperror"
)

// chunkQueueCapacity bounds the reader-to-main channel so a bursty child
// process applies backpressure instead of growing memory without bound.
const chunkQueueCapacity = 256

// readChunkSize is how much the reader goroutine asks the PTY for per read.
const readChunkSize = 4096

// Controller owns one PTY and the child process attached to it.
type Controller struct {
	pty xpty.Pty

	chunks chan []byte
	done   chan struct{}

	writeMu sync.Mutex

	exited  chan struct{}
	alive   bool
	aliveMu sync.Mutex

	residual []byte
}

// Spawn creates a PTY of the given size, starts shell as the child process
// attached to it, and launches the reader goroutine.
func Spawn(cols, rows int, shell string) (*Controller, error) {
	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, apperror.Pty("failed to open pty", err)
	}

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, apperror.Pty("failed to spawn shell "+shell, err)
	}

	c := &Controller{
		pty:    pty,
		chunks: make(chan []byte, chunkQueueCapacity),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		alive:  true,
	}

	go c.readLoop()
	go c.waitLoop(cmd)

	return c, nil
}

func (c *Controller) readLoop() {
	buf := make([]byte, readChunkSize)
	for {
		n, err := c.pty.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case c.chunks <- chunk:
			case <-c.done:
				return
			}
		}
		if err != nil {
			close(c.chunks)
			return
		}
	}
}

func (c *Controller) waitLoop(cmd *exec.Cmd) {
	_ = cmd.Wait()
	c.aliveMu.Lock()
	c.alive = false
	c.aliveMu.Unlock()
	close(c.exited)
}

// NewForTest builds a Controller around a caller-owned chunk channel, with
// no backing PTY or child process. It exists so other packages can exercise
// Read's residual-queue behavior without spawning a real shell.
func NewForTest(chunks chan []byte) *Controller {
	return &Controller{
		chunks: chunks,
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		alive:  true,
	}
}

// Read copies queued PTY output into buf. It first drains any residual bytes
// left over from a chunk that didn't fit a previous call, so no byte is ever
// dropped regardless of the caller's buffer size. When no data is queued it
// returns (0, ErrWouldBlock) rather than blocking.
func (c *Controller) Read(buf []byte) (int, error) {
	if len(c.residual) > 0 {
		n := copy(buf, c.residual)
		c.residual = c.residual[n:]
		return n, nil
	}

	select {
	case chunk, ok := <-c.chunks:
		if !ok {
			return 0, nil // EOF
		}
		n := copy(buf, chunk)
		if n < len(chunk) {
			c.residual = append(c.residual[:0], chunk[n:]...)
		}
		return n, nil
	default:
		return 0, ErrWouldBlock
	}
}

// Write sends data to the child process's stdin.
func (c *Controller) Write(data []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	n, err := c.pty.Write(data)
	if err != nil {
		return n, apperror.Pty("failed to write to pty", err)
	}
	return n, nil
}

// Resize changes the PTY's reported terminal size.
func (c *Controller) Resize(cols, rows int) error {
	if err := c.pty.Resize(cols, rows); err != nil {
		return apperror.Pty("failed to resize pty", err)
	}
	return nil
}

// IsAlive reports whether the child process has not yet exited.
func (c *Controller) IsAlive() bool {
	c.aliveMu.Lock()
	defer c.aliveMu.Unlock()
	return c.alive
}

// Close stops the reader goroutine and closes the PTY.
func (c *Controller) Close() error {
	close(c.done)
	return c.pty.Close()
}
