package handler

import (
	"school-erp-service/internal/session"
)

var (
	sessions *session.Manager
	scoped   *session.Accessor
)

// Initialize wires the handlers to the session context. Must be called
// before any route is served.
func Initialize(m *session.Manager) {
	sessions = m
	scoped = m.Scoped()
}
