// Package vtparse adapts github.com/charmbracelet/x/ansi's VT500-series
// byte-stream parser to the narrow callback shape internal/emulator
// actually dispatches against: printable runes, C0 controls, CSI, a plain
// ESC sequence, and an OSC string. It exists so emulator.go never has to
// learn ansi.Cmd's marker/intermediate/final encoding or ansi.Params'
// subparameter layout directly — the same role the charm stack's own
// terminal emulator gives its wrapper around ansi.Parser.
package vtparse

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"
)

const maxCSIParams = parser.MaxParamsSize

// Handler receives decoded events from the parser. Every field is optional;
// a nil field silently discards that kind of event.
type Handler struct {
	// Print is called for each printable rune decoded in the GROUND state.
	Print func(r rune)
	// Execute is called for C0/C1 control bytes (BEL, BS, HT, LF, CR, ...).
	Execute func(b byte)
	// HandleCsi is called once a CSI sequence's final byte arrives.
	HandleCsi func(params Params, intermediate byte, final byte)
	// HandleEsc is called for a plain (non-CSI, non-OSC, non-DCS) escape
	// sequence once its final byte arrives.
	HandleEsc func(intermediate byte, final byte)
	// HandleOsc is called once an OSC string is terminated (by BEL or ST).
	// data is the raw bytes between "ESC ]" and the terminator.
	HandleOsc func(data []byte)
}

// Params is a read-only view over ansi.Params, applying the VT convention
// the emulator's CSI dispatch relies on: an omitted parameter and an
// explicit zero both mean "use the default" unless the caller asks for the
// raw value via Raw.
type Params struct {
	p ansi.Params
}

// Len reports how many parameters were present.
func (p Params) Len() int {
	n := 0
	for i := 0; i < maxCSIParams; i++ {
		if _, _, ok := p.p.Param(i, 0); !ok {
			break
		}
		n++
	}
	return n
}

// ParamOr returns the i'th parameter, or def if absent or zero.
func (p Params) ParamOr(i, def int) int {
	v, _, ok := p.p.Param(i, def)
	if !ok || v == 0 {
		return def
	}
	return v
}

// Raw returns the i'th parameter verbatim (0 if absent), with no default
// substitution — used where 0 and "absent" must be distinguished, such as
// the subparameters of SGR 38/48.
func (p Params) Raw(i int) int {
	v, _, ok := p.p.Param(i, 0)
	if !ok {
		return 0
	}
	return v
}

// Parser drives Handler callbacks from a stream of input bytes, delegating
// the actual VT500 state machine to ansi.Parser.
type Parser struct {
	ap *ansi.Parser
	h  Handler
}

// New creates a Parser that dispatches to h.
func New(h Handler) *Parser {
	p := &Parser{h: h}
	p.ap = ansi.NewParser()
	p.ap.SetParamsSize(parser.MaxParamsSize)
	p.ap.SetDataSize(1024 * 1024)
	p.ap.SetHandler(ansi.Handler{
		Print:     h.Print,
		Execute:   h.Execute,
		HandleCsi: p.handleCsi,
		HandleEsc: p.handleEsc,
		HandleOsc: p.handleOsc,
	})
	return p
}

func (p *Parser) handleCsi(cmd ansi.Cmd, params ansi.Params) {
	if p.h.HandleCsi != nil {
		p.h.HandleCsi(Params{params}, cmd.Intermediate(), cmd.Final())
	}
}

func (p *Parser) handleEsc(cmd ansi.Cmd) {
	if p.h.HandleEsc != nil {
		p.h.HandleEsc(cmd.Intermediate(), cmd.Final())
	}
}

func (p *Parser) handleOsc(cmd int, data []byte) {
	if p.h.HandleOsc != nil {
		p.h.HandleOsc(data)
	}
}

// Advance feeds a single input byte to the state machine.
func (p *Parser) Advance(b byte) { p.ap.Advance(b) }

// Write feeds a byte slice to the state machine.
func (p *Parser) Write(data []byte) {
	for _, b := range data {
		p.Advance(b)
	}
}
