// Package pane ties one emulator.Emulator to one ptyctl.Controller under a
// stable ID, and pumps PTY output into the emulator each tick.
package pane

import (
	"errors"
	"log"

	"github.com/quietcompute/splitterm/internal/apperror"
	"github.com/quietcompute/splitterm/internal/emulator"
	"github.com/quietcompute/splitterm/internal/layout"
	"github.com/quietcompute/splitterm/internal/ptyctl"
)

// maxReadPerFrame bounds how much PTY output a single ProcessOutput call
// will drain before yielding, so one bursty pane can't starve its siblings.
const maxReadPerFrame = 64 * 1024

const readChunkSize = 4096

// Pane is one independent terminal: its own emulator and PTY.
type Pane struct {
	id          layout.PaneID
	term        *emulator.Emulator
	pty         *ptyctl.Controller
	active      bool
	needsRedraw bool
}

// New spawns a shell and creates a pane around it.
func New(id layout.PaneID, cols, rows, scrollback int, shell string) (*Pane, error) {
	log.Printf("creating pane %d with size %dx%d, shell %s", id, cols, rows, shell)

	term := emulator.New(cols, rows, scrollback)

	pty, err := ptyctl.Spawn(cols, rows, shell)
	if err != nil {
		log.Printf("failed to create pty for pane %d: %v", id, err)
		return nil, err
	}

	return &Pane{
		id:          id,
		term:        term,
		pty:         pty,
		needsRedraw: true,
	}, nil
}

// ID returns the pane's stable identifier.
func (p *Pane) ID() layout.PaneID { return p.id }

// Terminal returns the pane's emulator.
func (p *Pane) Terminal() *emulator.Emulator { return p.term }

// IsActive reports whether this pane currently has focus.
func (p *Pane) IsActive() bool { return p.active }

// SetActive sets focus state.
func (p *Pane) SetActive(active bool) { p.active = active }

// Resize changes both the emulator grid and the PTY's reported size.
func (p *Pane) Resize(cols, rows int) error {
	p.term.Resize(cols, rows)
	if err := p.pty.Resize(cols, rows); err != nil {
		log.Printf("failed to resize pty for pane %d: %v", p.id, err)
		return err
	}
	return nil
}

// IsAlive reports whether the pane's child process is still running.
func (p *Pane) IsAlive() bool {
	alive := p.pty.IsAlive()
	if !alive {
		log.Printf("pane %d pty process has exited", p.id)
	}
	return alive
}

// ProcessOutput drains queued PTY output into the emulator, up to
// maxReadPerFrame bytes, and reports whether anything was read. Draining
// also stops after the first read shorter than readChunkSize; any output
// still queued is left for the next call.
func (p *Pane) ProcessOutput() (bool, error) {
	buf := make([]byte, readChunkSize)
	hasOutput := false
	totalRead := 0

	for {
		n, err := p.pty.Read(buf)
		if n > 0 {
			p.term.ProcessBytes(buf[:n])
			hasOutput = true
			totalRead += n

			if totalRead >= maxReadPerFrame {
				break
			}
			if n < len(buf) {
				break
			}
			continue
		}
		if err != nil {
			if errors.Is(err, ptyctl.ErrWouldBlock) {
				break
			}
			return hasOutput, apperror.Pty("pane read failed", err)
		}
		break
	}

	if hasOutput {
		p.needsRedraw = true
	}
	return hasOutput, nil
}

// WriteInput sends bytes to the pane's PTY.
func (p *Pane) WriteInput(data []byte) error {
	_, err := p.pty.Write(data)
	return err
}

// NeedsRedraw reports whether the pane has unrendered output.
func (p *Pane) NeedsRedraw() bool { return p.needsRedraw }

// MarkDirty forces a redraw next frame.
func (p *Pane) MarkDirty() { p.needsRedraw = true }

// ClearRedrawFlag clears the redraw flag after rendering.
func (p *Pane) ClearRedrawFlag() { p.needsRedraw = false }

// Close releases the pane's PTY resources.
func (p *Pane) Close() error { return p.pty.Close() }
