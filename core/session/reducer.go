package session

import (
	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/events"
)

// Reduce returns the session that results from applying event to state.
//
// Reduce is pure: timestamps and entry ids come from the event. Terminal
// sessions absorb every event unchanged, and unknown event types are
// ignored.
//
// Local events (response submitted, hang up requested, lifecycle events) are
// applied optimistically. The local view may diverge from the relay until
// its next frames arrive and it is never rolled back.
func Reduce(state CallSession, event events.Event) CallSession {
	if event == nil || state.IsTerminal() {
		return state
	}

	next := state
	switch e := event.(type) {
	case events.SessionSnapshot:
		next.Phase = e.Phase
		next.Target = e.Target
		next.Question = e.Question

	case events.CallConnected:
		next.Phase = call.PhaseConnected

	case events.RemoteSpeakingStarted:
		next.Phase = call.PhaseCAFSpeaking

	case events.RemoteUtterance:
		next.Transcript = MergeUtterance(state.Transcript, TranscriptEntry{
			ID:             e.ID(),
			Speaker:        e.Speaker,
			SourceText:     e.SourceText,
			TranslatedText: e.TranslatedText,
			Timestamp:      e.Timestamp(),
			IsFinal:        e.IsFinal,
		})

	case events.RemoteTurnComplete:
		next.Transcript = CompleteTurn(state.Transcript, e.Speaker, e.SourceText, e.TranslatedText)

	case events.AwaitingInput:
		next.Phase = call.PhaseWaitingUser
		next.WaitingForUser = true
		next.InputPrompt = e.Prompt
		next.AgentThinking = false
		next = clearSuggestion(next)

	case events.AgentThinking:
		next.AgentThinking = true
		next = clearSuggestion(next)

	case events.AgentSuggestion:
		next.Transcript = AppendEntry(state.Transcript, userEntry(e, e.Text))
		next.AgentThinking = false
		next.AgentSuggestion = e.Text
		next.AutoSend = e.AutoSend
		next.AutoSendDelay = e.AutoSendDelay
		next.WaitingForUser = false
		next.InputPrompt = ""
		next.Phase = call.PhaseUserSpeaking

	case events.LocalSpeaking:
		next.WaitingForUser = false
		next.InputPrompt = ""
		next.Phase = call.PhaseUserSpeaking

	case events.LocalFinishedSpeaking:
		next.Phase = call.PhaseCAFSpeaking

	case events.CallEnded:
		next.Phase = call.PhaseEnded

	case events.SessionError:
		next.Phase = call.PhaseFailed
		next.Error = e.Message

	case events.ResponseSubmitted:
		next.Transcript = AppendEntry(state.Transcript, userEntry(e, e.Text))

	case events.HangUpRequested:
		next.Phase = call.PhaseEnded

	case events.StartRequested:
		next.Phase = call.PhaseGatheringInfo
		next.Target = e.Target
		next.Question = e.Question

	case events.SessionCreated:
		next.CallID = e.CallID
		if e.Phase != "" {
			next.Phase = e.Phase
		}

	case events.DialStarted:
		next.Phase = call.PhaseDialing

	case events.JoinRequested:
		next.CallID = e.CallID
		next.Target = e.Target
		if e.Question != "" {
			next.Question = e.Question
		}
		next.Phase = call.PhaseDialing

	case events.StartupFailed:
		next.Phase = call.PhaseFailed
		next.Error = e.Message

	default:
		return state
	}

	if next.IsTerminal() {
		next.WaitingForUser = false
		next.InputPrompt = ""
	}

	return next
}

// ReduceAll folds events into state in order.
func ReduceAll(state CallSession, evs ...events.Event) CallSession {
	for _, event := range evs {
		state = Reduce(state, event)
	}
	return state
}

func clearSuggestion(state CallSession) CallSession {
	state.AgentSuggestion = ""
	state.AutoSend = false
	state.AutoSendDelay = 0
	return state
}

func userEntry(event events.Event, text string) TranscriptEntry {
	return TranscriptEntry{
		ID:         event.ID(),
		Speaker:    call.SpeakerUser,
		SourceText: text,
		Timestamp:  event.Timestamp(),
		IsFinal:    true,
	}
}
