package renderer

import "errors"

var (
	ErrInvalidRate     = errors.New("renderer: tick rate must be positive")
	ErrServerClosed    = errors.New("renderer: stream server closed")
	ErrInvalidViewport = errors.New("renderer: invalid viewport dimensions")
)
