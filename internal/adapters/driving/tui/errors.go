package tui

import "errors"

// ErrMissingSession is returned when the query session is not provided.
var ErrMissingSession = errors.New("tui: query session is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
