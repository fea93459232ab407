// Package apperror is the typed error taxonomy used throughout the module:
// one Kind per failure domain, always wrapping the underlying cause so
// errors.Is and errors.As see through to it.
package apperror

import "fmt"

// Kind classifies the failure domain of an Error.
type Kind int

const (
	KindRendering Kind = iota
	KindTerminal
	KindPty
	KindConfig
	KindIO
	KindYAML
	KindWindow
	KindBackendInit
	KindUTF8
)

func (k Kind) String() string {
	switch k {
	case KindRendering:
		return "rendering"
	case KindTerminal:
		return "terminal"
	case KindPty:
		return "pty"
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	case KindYAML:
		return "yaml"
	case KindWindow:
		return "window"
	case KindBackendInit:
		return "backend init"
	case KindUTF8:
		return "utf8"
	default:
		return "unknown"
	}
}

// Error is a Kind-tagged error that wraps an optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Rendering builds a KindRendering error.
func Rendering(msg string, err error) *Error { return newError(KindRendering, msg, err) }

// Terminal builds a KindTerminal error.
func Terminal(msg string, err error) *Error { return newError(KindTerminal, msg, err) }

// Pty builds a KindPty error.
func Pty(msg string, err error) *Error { return newError(KindPty, msg, err) }

// Config builds a KindConfig error.
func Config(msg string, err error) *Error { return newError(KindConfig, msg, err) }

// IO builds a KindIO error.
func IO(msg string, err error) *Error { return newError(KindIO, msg, err) }

// YAML builds a KindYAML error.
func YAML(msg string, err error) *Error { return newError(KindYAML, msg, err) }

// Window builds a KindWindow error.
func Window(msg string, err error) *Error { return newError(KindWindow, msg, err) }

// BackendInit builds a KindBackendInit error.
func BackendInit(msg string, err error) *Error { return newError(KindBackendInit, msg, err) }

// UTF8 builds a KindUTF8 error.
func UTF8(msg string, err error) *Error { return newError(KindUTF8, msg, err) }
