// Package events defines the typed event contract folded into a call session.
//
// Event kinds are grouped by namespace:
//
//   - call_state.*
//   - remote_speech.*
//   - agent.*
//   - user_input.*
//   - lifecycle.*
//
// The first four namespaces are decoded from relay frames, with the
// exception of user_input.response_submitted and user_input.hang_up_requested
// which are issued locally. lifecycle events are produced by the start and
// join workflows and never arrive over the wire.
//
// call_state events
//
//   - SessionSnapshot (call_state.snapshot): phase, target and question as
//     known by the relay.
//   - CallConnected (call_state.connected): the hotline picked up.
//   - CallEnded (call_state.ended): the call was terminated by the remote
//     side or the relay.
//   - SessionError (call_state.error): session-level failure with a message.
//
// remote_speech events
//
//   - RemoteSpeakingStarted (remote_speech.started): hotline started talking.
//   - RemoteUtterance (remote_speech.utterance): partial or final utterance
//     with original and translated text. Partials coalesce into one entry.
//   - RemoteTurnComplete (remote_speech.turn_complete): final text of the
//     hotline's turn.
//
// agent events
//
//   - AgentThinking (agent.thinking): an automated reply is being prepared.
//   - AgentSuggestion (agent.suggestion): the automated reply that will be
//     spoken on the user's behalf.
//
// user_input events
//
//   - AwaitingInput (user_input.awaiting): the relay waits for the user.
//   - LocalSpeaking (user_input.speaking): the user's reply is being spoken.
//   - LocalFinishedSpeaking (user_input.finished_speaking): playback of the
//     reply finished.
//   - ResponseSubmitted (user_input.response_submitted): local, the user typed
//     a reply.
//   - HangUpRequested (user_input.hang_up_requested): local, the user ended
//     the call.
//
// lifecycle events
//
//   - StartRequested (lifecycle.start_requested): a self-initiated call is
//     being set up.
//   - SessionCreated (lifecycle.session_created): the relay issued a call id.
//   - DialStarted (lifecycle.dial_started): the dial request was accepted.
//   - JoinRequested (lifecycle.join_requested): attaching to a call dialed by
//     another initiator.
//   - StartupFailed (lifecycle.startup_failed): a REST call of the start
//     workflow failed.
package events
