package httpserver

import "errors"

var (
	// ErrStart wraps listener failures.
	ErrStart = errors.New("failed to start server")
	// ErrShutdown wraps graceful shutdown failures.
	ErrShutdown = errors.New("failed to shut down server")
)
