package events

import "github.com/koscakluka/hotline-core/core/call"

const (
	KindStartRequested Kind = "lifecycle.start_requested"
	KindSessionCreated Kind = "lifecycle.session_created"
	KindDialStarted    Kind = "lifecycle.dial_started"
	KindJoinRequested  Kind = "lifecycle.join_requested"
	KindStartupFailed  Kind = "lifecycle.startup_failed"
)

// StartRequested opens a self-initiated call.
type StartRequested struct {
	Base
	Target   call.Target
	Question string
}

func NewStartRequested(target call.Target, question string, opts ...RebaseOption) StartRequested {
	return StartRequested{Base: NewBase(KindStartRequested, opts...), Target: target, Question: question}
}

// SessionCreated carries the call id and phase issued by the relay.
type SessionCreated struct {
	Base
	CallID string
	Phase  call.Phase
}

func NewSessionCreated(callID string, phase call.Phase, opts ...RebaseOption) SessionCreated {
	return SessionCreated{Base: NewBase(KindSessionCreated, opts...), CallID: callID, Phase: phase}
}

type DialStarted struct{ Base }

func NewDialStarted(opts ...RebaseOption) DialStarted {
	return DialStarted{Base: NewBase(KindDialStarted, opts...)}
}

// JoinRequested attaches the session to a call already created and dialed
// by another initiator.
type JoinRequested struct {
	Base
	CallID   string
	Target   call.Target
	Question string
}

func NewJoinRequested(callID string, target call.Target, question string, opts ...RebaseOption) JoinRequested {
	return JoinRequested{Base: NewBase(KindJoinRequested, opts...), CallID: callID, Target: target, Question: question}
}

// StartupFailed carries a locally constructed message for a failed REST call.
type StartupFailed struct {
	Base
	Message string
}

func NewStartupFailed(message string, opts ...RebaseOption) StartupFailed {
	return StartupFailed{Base: NewBase(KindStartupFailed, opts...), Message: message}
}
