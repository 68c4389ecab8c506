package events

import "time"

const (
	// KindAgentThinking identifies an automated reply in progress.
	KindAgentThinking Kind = "agent.thinking"
	// KindAgentSuggestion identifies a produced automated reply.
	KindAgentSuggestion Kind = "agent.suggestion"
)

// AgentThinking marks that the reasoning service is preparing a reply.
type AgentThinking struct {
	Base
	Message string
}

// NewAgentThinking creates an agent thinking event.
func NewAgentThinking(message string, opts ...RebaseOption) AgentThinking {
	return AgentThinking{Base: NewBase(KindAgentThinking, opts...), Message: message}
}

// AgentSuggestion carries the reply produced for the user. AutoSend and
// AutoSendDelay describe whether the relay speaks it without confirmation.
type AgentSuggestion struct {
	Base
	Text          string
	AutoSend      bool
	AutoSendDelay time.Duration
}

// NewAgentSuggestion creates an agent suggestion event.
func NewAgentSuggestion(text string, opts ...RebaseOption) AgentSuggestion {
	return AgentSuggestion{Base: NewBase(KindAgentSuggestion, opts...), Text: text}
}
