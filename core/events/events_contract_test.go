package events

import (
	"testing"
	"time"

	"github.com/koscakluka/hotline-core/core/call"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "session snapshot", event: NewSessionSnapshot(call.PhaseDialing, call.TargetCAF, "q"), expected: KindSessionSnapshot},
		{name: "call connected", event: NewCallConnected(), expected: KindCallConnected},
		{name: "call ended", event: NewCallEnded(), expected: KindCallEnded},
		{name: "session error", event: NewSessionError("line busy"), expected: KindSessionError},
		{name: "remote speaking started", event: NewRemoteSpeakingStarted(), expected: KindRemoteSpeakingStarted},
		{name: "remote utterance", event: NewRemoteUtterance(call.SpeakerHotline, "bonjour", "hello", false), expected: KindRemoteUtterance},
		{name: "remote turn complete", event: NewRemoteTurnComplete(call.SpeakerHotline, "bonjour", "hello"), expected: KindRemoteTurnComplete},
		{name: "agent thinking", event: NewAgentThinking("crafting"), expected: KindAgentThinking},
		{name: "agent suggestion", event: NewAgentSuggestion("my number is 42"), expected: KindAgentSuggestion},
		{name: "awaiting input", event: NewAwaitingInput("what now?"), expected: KindAwaitingInput},
		{name: "local speaking", event: NewLocalSpeaking("oui"), expected: KindLocalSpeaking},
		{name: "local finished speaking", event: NewLocalFinishedSpeaking(), expected: KindLocalFinishedSpeaking},
		{name: "response submitted", event: NewResponseSubmitted("yes"), expected: KindResponseSubmitted},
		{name: "hang up requested", event: NewHangUpRequested(), expected: KindHangUpRequested},
		{name: "start requested", event: NewStartRequested(call.TargetCAF, "q"), expected: KindStartRequested},
		{name: "session created", event: NewSessionCreated("abc123", call.PhaseGatheringInfo), expected: KindSessionCreated},
		{name: "dial started", event: NewDialStarted(), expected: KindDialStarted},
		{name: "join requested", event: NewJoinRequested("abc123", call.TargetCAF, ""), expected: KindJoinRequested},
		{name: "startup failed", event: NewStartupFailed("boom"), expected: KindStartupFailed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
			if testCase.event.ID() == "" {
				t.Fatalf("expected a generated event id")
			}
			if testCase.event.Timestamp().IsZero() {
				t.Fatalf("expected a timestamp")
			}
		})
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	first := NewCallConnected()
	second := NewCallConnected()

	if first.ID() == second.ID() {
		t.Fatalf("expected distinct ids, both were %q", first.ID())
	}
}

func TestRebaseOptionsOverrideBase(t *testing.T) {
	timestamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := NewCallEnded(WithID("fixed"), WithTimestamp(timestamp))

	if event.ID() != "fixed" {
		t.Fatalf("expected id %q, got %q", "fixed", event.ID())
	}
	if !event.Timestamp().Equal(timestamp) {
		t.Fatalf("expected timestamp %v, got %v", timestamp, event.Timestamp())
	}

	if NewCallEnded(WithID("")).ID() == "" {
		t.Fatalf("expected empty id override to keep the generated id")
	}
}
