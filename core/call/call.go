// Package call holds the enumerations shared by every layer of a mediated
// call: phases of the session, hotline targets and transcript speakers.
package call

// Phase is the discrete stage of a call session.
//
// Phases reported by the relay are stored verbatim, so a Phase value is not
// guaranteed to be one of the constants below.
type Phase string

const (
	PhaseGatheringInfo Phase = "gathering_info"
	PhaseReadyToCall   Phase = "ready_to_call"
	PhaseDialing       Phase = "dialing"
	PhaseConnected     Phase = "connected"
	PhaseCAFSpeaking   Phase = "caf_speaking"
	PhaseWaitingUser   Phase = "waiting_user"
	PhaseUserSpeaking  Phase = "user_speaking"
	PhaseEnded         Phase = "ended"
	PhaseFailed        Phase = "failed"
)

// IsTerminal reports whether the phase absorbs every further update.
func (p Phase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseFailed
}

func (p Phase) String() string { return string(p) }

// Target identifies the hotline being called.
type Target string

const (
	TargetCAF        Target = "caf"
	TargetPrefecture Target = "prefecture"
	TargetImpots     Target = "impots"
)

// DefaultTarget is used when a caller does not name a hotline.
const DefaultTarget = TargetCAF

func Targets() []Target {
	return []Target{TargetCAF, TargetPrefecture, TargetImpots}
}

// IsValid reports whether t is one of the known hotlines.
func (t Target) IsValid() bool {
	switch t {
	case TargetCAF, TargetPrefecture, TargetImpots:
		return true
	default:
		return false
	}
}

func (t Target) String() string { return string(t) }

// Speaker attributes a transcript entry to one side of the call.
type Speaker string

const (
	// SpeakerHotline is the remote, foreign-language side.
	SpeakerHotline Speaker = "caf"
	// SpeakerUser is the local side, either the user or the agent replying
	// for them.
	SpeakerUser Speaker = "user"
)

func (s Speaker) String() string { return string(s) }
