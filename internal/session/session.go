// Package session ties one authenticated Robot client to the config store
// for the lifetime of a single invocation.
package session

import (
	"sync"

	"hetznerctl/internal/robot"
)

// Flusher persists state at session teardown. *config.Store satisfies it.
type Flusher interface {
	Save() error
}

// Session is owned by the command dispatcher and handed to leaf commands
// by parameter. It is never shared across invocations.
type Session struct {
	Robot *robot.Client

	store     Flusher
	closeOnce sync.Once
	closeErr  error
}

// New builds a session around an authenticated client and the store its
// credentials came from.
func New(client *robot.Client, store Flusher) *Session {
	return &Session{Robot: client, store: store}
}

// Close flushes the config store. Safe to call more than once; the flush
// happens exactly once and later calls return the first result. Runs on
// both the success and the error path of a command.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.store.Save()
	})
	return s.closeErr
}
