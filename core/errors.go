package orchestration

import "errors"

var (
	// ErrSessionInUse is returned when the orchestrator already started or
	// joined a different call.
	ErrSessionInUse    = errors.New("session already in use")
	ErrSessionTerminal = errors.New("session has ended")
	ErrEmptyResponse   = errors.New("response is empty")
	ErrCallFailed      = errors.New("call failed to start, not joining")
	ErrInvalidTarget   = errors.New("invalid call target")
	ErrClosed          = errors.New("orchestrator closed")
)
