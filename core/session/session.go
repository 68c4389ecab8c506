// Package session holds the state of one mediated call and the pure
// functions that fold events into it.
//
// A CallSession is a value. Reduce never mutates the session it is given,
// the transcript slice of a returned session is never shared with the input
// when it changed, so snapshots handed to observers stay stable.
package session

import (
	"slices"
	"time"

	"github.com/jinzhu/copier"
	"github.com/koscakluka/hotline-core/core/call"
)

type CallSession struct {
	// CallID is issued by the call-creation collaborator, empty until then.
	CallID   string
	Phase    call.Phase
	Target   call.Target
	Question string

	Transcript []TranscriptEntry

	// WaitingForUser is true exactly when local input should be accepted.
	WaitingForUser bool
	// InputPrompt is the hint sent with the last awaiting-input frame. It is
	// only meaningful while WaitingForUser is true.
	InputPrompt string

	AgentThinking   bool
	AgentSuggestion string
	// AutoSend reports that the relay speaks AgentSuggestion on its own
	// after AutoSendDelay.
	AutoSend      bool
	AutoSendDelay time.Duration

	// Error is set only on the transition into [call.PhaseFailed].
	Error string
}

type TranscriptEntry struct {
	// ID is the id of the event that created the entry. Amendments keep it.
	ID             string
	Speaker        call.Speaker
	SourceText     string
	TranslatedText string
	Timestamp      time.Time
	IsFinal        bool
}

// New returns a session for a self-initiated call, before anything was
// requested from the relay.
func New() CallSession {
	return CallSession{Phase: call.PhaseGatheringInfo, Target: call.DefaultTarget}
}

// IsTerminal reports whether the session has ended or failed.
func (s CallSession) IsTerminal() bool { return s.Phase.IsTerminal() }

// AcceptsInput reports whether a typed reply should be offered to the user.
func (s CallSession) AcceptsInput() bool { return s.WaitingForUser && !s.IsTerminal() }

// LastEntry returns the trailing transcript entry.
func (s CallSession) LastEntry() (TranscriptEntry, bool) {
	if len(s.Transcript) == 0 {
		return TranscriptEntry{}, false
	}
	return s.Transcript[len(s.Transcript)-1], true
}

// PendingEntry returns the streaming entry that is still being amended, if
// there is one.
func (s CallSession) PendingEntry() (TranscriptEntry, bool) {
	last, ok := s.LastEntry()
	if !ok || last.IsFinal {
		return TranscriptEntry{}, false
	}
	return last, true
}

// Clone returns a deep copy of the session.
func (s CallSession) Clone() CallSession {
	var clone CallSession
	if err := copier.CopyWithOption(&clone, &s, copier.Option{DeepCopy: true}); err != nil {
		clone = s
		clone.Transcript = slices.Clone(s.Transcript)
	}
	return clone
}
