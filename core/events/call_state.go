package events

import "github.com/koscakluka/hotline-core/core/call"

const (
	// KindSessionSnapshot identifies the relay's view of the session.
	KindSessionSnapshot Kind = "call_state.snapshot"
	// KindCallConnected identifies the hotline picking up.
	KindCallConnected Kind = "call_state.connected"
	// KindCallEnded identifies termination by the remote side or relay.
	KindCallEnded Kind = "call_state.ended"
	// KindSessionError identifies a session-level failure.
	KindSessionError Kind = "call_state.error"
)

// SessionSnapshot carries the phase, target and question as known by the
// relay. Fields are applied verbatim.
type SessionSnapshot struct {
	Base
	Phase    call.Phase
	Target   call.Target
	Question string
}

// NewSessionSnapshot creates a session snapshot event.
func NewSessionSnapshot(phase call.Phase, target call.Target, question string, opts ...RebaseOption) SessionSnapshot {
	return SessionSnapshot{Base: NewBase(KindSessionSnapshot, opts...), Phase: phase, Target: target, Question: question}
}

// CallConnected marks the hotline picking up.
type CallConnected struct{ Base }

// NewCallConnected creates a call connected event.
func NewCallConnected(opts ...RebaseOption) CallConnected {
	return CallConnected{Base: NewBase(KindCallConnected, opts...)}
}

// CallEnded marks termination of the call by the remote side or the relay.
type CallEnded struct{ Base }

// NewCallEnded creates a call ended event.
func NewCallEnded(opts ...RebaseOption) CallEnded {
	return CallEnded{Base: NewBase(KindCallEnded, opts...)}
}

// SessionError carries a session-level failure reported by the relay.
type SessionError struct {
	Base
	Message string
}

// NewSessionError creates a session error event.
func NewSessionError(message string, opts ...RebaseOption) SessionError {
	return SessionError{Base: NewBase(KindSessionError, opts...), Message: message}
}
