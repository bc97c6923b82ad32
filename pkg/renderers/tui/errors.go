package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C or the cancel
	// action).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned when Run is called without a session.
	ErrNoSession = errors.New("tui: session is required")
)
