package headless5250

import (
	"fmt"
	"sync"
)

// SessionState is the connection lifecycle state of a host session.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnecting
	StateConnected
	StateDisconnecting
	// StateError is reachable from any other state when a session error
	// is recorded.
	StateError
)

// String returns the lowercase state name.
func (st SessionState) String() string {
	switch st {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	case StateError:
		return "error"
	}
	return "unknown"
}

// ErrorKind classifies a session error for recovery selection.
type ErrorKind int

const (
	ErrorProtocol   ErrorKind = iota // malformed order or invalid address
	ErrorConnection                  // transport failure
	ErrorTimeout                     // no response or stall
	ErrorParse                       // structured field or header decode failure
	ErrorState                       // illegal operation for the current state
)

// String returns the lowercase error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorProtocol:
		return "protocol"
	case ErrorConnection:
		return "connection"
	case ErrorTimeout:
		return "timeout"
	case ErrorParse:
		return "parse"
	case ErrorState:
		return "state"
	}
	return "unknown"
}

// RecoveryAction is what the session should do about an error.
type RecoveryAction int

const (
	// ActionRetry re-attempts the failed operation, bounded by the
	// session's retry limit.
	ActionRetry RecoveryAction = iota
	// ActionReconnect tears down and re-establishes the transport.
	ActionReconnect
	// ActionReset clears local buffers and state but keeps the session.
	ActionReset
	// ActionAbort forces the session to disconnected and releases
	// resources.
	ActionAbort
)

// RecoveryFor returns the default recovery action for an error kind.
func RecoveryFor(kind ErrorKind) RecoveryAction {
	switch kind {
	case ErrorConnection:
		return ActionReconnect
	case ErrorParse:
		return ActionReset
	case ErrorState:
		return ActionAbort
	default:
		return ActionRetry
	}
}

// DefaultMaxRetries bounds ActionRetry before the session is aborted.
const DefaultMaxRetries = 3

// Session is the error/recovery state machine for one host connection.
// It owns the lifecycle state; the screen and transport are collaborators.
type Session struct {
	mu sync.Mutex

	state      SessionState
	lastKind   ErrorKind
	lastErr    error
	retries    int
	maxRetries int

	screen    *Screen
	transport TransportProvider
}

// SessionOption configures a Session during construction.
type SessionOption func(*Session)

// WithMaxRetries bounds how many times Retry may re-attempt before the
// session aborts. Values < 0 are treated as zero (no retries).
func WithMaxRetries(n int) SessionOption {
	if n < 0 {
		n = 0
	}
	return func(s *Session) {
		s.maxRetries = n
	}
}

// NewSession creates a disconnected session over the given screen and
// transport. A nil transport falls back to the screen's transport.
func NewSession(screen *Screen, transport TransportProvider, opts ...SessionOption) *Session {
	if transport == nil {
		transport = screen.transport
	}
	s := &Session{
		state:      StateDisconnected,
		maxRetries: DefaultMaxRetries,
		screen:     screen,
		transport:  transport,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsConnected returns true only in the connected state.
func (s *Session) IsConnected() bool {
	return s.State() == StateConnected
}

// LastError returns the most recent recorded error and its kind.
func (s *Session) LastError() (ErrorKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastKind, s.lastErr
}

// Connecting marks the session as establishing a connection. Only valid
// from disconnected.
func (s *Session) Connecting() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDisconnected {
		return fmt.Errorf("headless5250: connect from %s", s.state)
	}
	s.state = StateConnecting
	return nil
}

// Connected marks the session as established and clears the retry count.
func (s *Session) Connected() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting && s.state != StateError {
		return fmt.Errorf("headless5250: connected from %s", s.state)
	}
	s.state = StateConnected
	s.retries = 0
	s.lastErr = nil
	return nil
}

// Disconnecting marks the session as tearing down.
func (s *Session) Disconnecting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDisconnecting
}

// Fail records an error and moves the session to the error state. The
// error state is reachable from every other state.
func (s *Session) Fail(kind ErrorKind, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.lastKind = kind
	s.lastErr = err
}

// Retry accounts one retry attempt. It returns true while attempts
// remain; once the bound is exhausted the session is aborted and Retry
// returns false. Retrying can never loop indefinitely.
func (s *Session) Retry() bool {
	s.mu.Lock()
	s.retries++
	exhausted := s.retries > s.maxRetries
	s.mu.Unlock()
	if exhausted {
		s.Abort()
		return false
	}
	return true
}

// Retries returns the number of retry attempts since the last successful
// connect or reset.
func (s *Session) Retries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retries
}

// Reconnect tears down and re-establishes the transport. On success the
// session is connected with cleared error state; on failure it stays in
// the error state with the failure recorded.
func (s *Session) Reconnect() error {
	s.mu.Lock()
	s.state = StateConnecting
	s.mu.Unlock()

	if err := s.transport.Reconnect(); err != nil {
		s.Fail(ErrorConnection, err)
		return err
	}

	s.mu.Lock()
	s.state = StateConnected
	s.retries = 0
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Reset clears the screen and local decode state while keeping the
// session. After a reset the buffer state is reproducibly empty and
// valid; Reset itself cannot fail.
func (s *Session) Reset() {
	s.screen.Clear()
	s.mu.Lock()
	s.retries = 0
	if s.state == StateError {
		s.state = StateConnected
	}
	s.mu.Unlock()
}

// Abort forces the session to disconnected and releases the transport.
// Abort is a local guarantee: the transport close result is ignored, and
// the session always leaves the error state.
func (s *Session) Abort() {
	s.mu.Lock()
	s.state = StateDisconnecting
	s.mu.Unlock()

	_ = s.transport.Close()

	s.mu.Lock()
	s.state = StateDisconnected
	s.retries = 0
	s.mu.Unlock()
}

// SupportsAction reports whether the action is meaningful in the current
// state. Abort and reset are always available; retry and reconnect need
// an error or live connection context.
func (s *Session) SupportsAction(a RecoveryAction) bool {
	st := s.State()
	switch a {
	case ActionAbort, ActionReset:
		return true
	case ActionRetry:
		return st == StateConnected || st == StateError
	case ActionReconnect:
		return st != StateDisconnecting
	}
	return false
}

// Recover applies the given action. It is a convenience dispatcher over
// Retry, Reconnect, Reset and Abort; it reports whether the session is
// usable (connected) afterwards.
func (s *Session) Recover(action RecoveryAction) bool {
	switch action {
	case ActionRetry:
		if !s.Retry() {
			return false
		}
		return s.State() == StateConnected || s.State() == StateError
	case ActionReconnect:
		return s.Reconnect() == nil
	case ActionReset:
		s.Reset()
		return s.State() == StateConnected
	case ActionAbort:
		s.Abort()
		return false
	}
	return false
}
