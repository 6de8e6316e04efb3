// Package httpserver provides a small HTTP server wrapper with
// context-driven graceful shutdown. It backs the local development server
// that serves the in-memory HireDesk API.
package httpserver
