package ptyctl

import "errors"

// ErrWouldBlock is returned by Read when no PTY output is currently queued.
var ErrWouldBlock = errors.New("ptyctl: read would block")
