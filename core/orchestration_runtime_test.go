package orchestration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/core/triggers"
)

func TestSubscribeReceivesCurrentSession(t *testing.T) {
	o := newTestOrchestrator(newStubCallAPI(""), &stubChannels{})
	defer o.Close()

	updates, unsubscribe := o.Subscribe()
	defer unsubscribe()

	select {
	case state := <-updates:
		if state.Phase != call.PhaseGatheringInfo {
			t.Fatalf("expected initial session, got %q", state.Phase)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for initial session")
	}
}

func TestSubscribeIsLatestWins(t *testing.T) {
	channels := &stubChannels{}
	o := newTestOrchestrator(newStubCallAPI(""), channels)
	defer o.Close()
	_ = o.Join(context.Background(), triggers.JoinTrigger{CallID: "abc123"})

	updates, unsubscribe := o.Subscribe()
	defer unsubscribe()

	for i := range 50 {
		channels.deliverEvent(events.NewRemoteUtterance(call.SpeakerHotline, fmt.Sprintf("partial %d", i), "", false))
	}

	state := <-updates
	pending, ok := state.PendingEntry()
	if !ok || pending.SourceText != "partial 49" {
		t.Fatalf("expected the newest session, got %+v", state.Transcript)
	}

	select {
	case extra := <-updates:
		t.Fatalf("expected no stale session left, got %+v", extra.Transcript)
	default:
	}
}

func TestSlowSubscriberDoesNotBlockReduction(t *testing.T) {
	channels := &stubChannels{}
	o := newTestOrchestrator(newStubCallAPI(""), channels)
	defer o.Close()
	_ = o.Join(context.Background(), triggers.JoinTrigger{CallID: "abc123"})

	_, unsubscribe := o.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 1000 {
			channels.deliverEvent(events.NewAgentThinking(""))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("reduction blocked on a subscriber that never reads")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	o := newTestOrchestrator(newStubCallAPI(""), &stubChannels{})
	defer o.Close()

	updates, unsubscribe := o.Subscribe()
	<-updates
	unsubscribe()
	unsubscribe()

	if _, ok := <-updates; ok {
		t.Fatalf("expected closed channel after unsubscribe")
	}
}

func TestCloseClosesSubscriptions(t *testing.T) {
	o := newTestOrchestrator(newStubCallAPI(""), &stubChannels{})

	updates, unsubscribe := o.Subscribe()
	defer unsubscribe()
	<-updates

	o.Close()

	if _, ok := <-updates; ok {
		t.Fatalf("expected closed channel after close")
	}

	late, _ := o.Subscribe()
	if _, ok := <-late; !ok {
		t.Fatalf("expected a late subscriber to still get the final session")
	}
	if _, ok := <-late; ok {
		t.Fatalf("expected late subscription to be closed")
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	channels := &stubChannels{}
	o := newTestOrchestrator(newStubCallAPI(""), channels)
	defer o.Close()
	_ = o.Join(context.Background(), triggers.JoinTrigger{CallID: "abc123"})
	channels.deliverEvent(events.NewRemoteUtterance(call.SpeakerHotline, "Allô", "Hello", false))

	snapshot := o.Snapshot()
	snapshot.Transcript[0].SourceText = "changed"

	if text := o.Snapshot().Transcript[0].SourceText; text != "Allô" {
		t.Fatalf("expected orchestrator state untouched, got %q", text)
	}
}

func TestConcurrentFramesAndCommandsAreSerialized(t *testing.T) {
	channels := &stubChannels{open: true}
	o := newTestOrchestrator(newStubCallAPI(""), channels)
	defer o.Close()
	_ = o.Join(context.Background(), triggers.JoinTrigger{CallID: "abc123"})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 100 {
			channels.deliverEvent(events.NewRemoteUtterance(call.SpeakerHotline, fmt.Sprintf("delta %d", i), "", i%10 == 9))
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 20 {
			_ = o.SubmitResponse(fmt.Sprintf("reply %d", i))
		}
	}()
	wg.Wait()

	state := o.Snapshot()
	nonFinal := 0
	for i, entry := range state.Transcript {
		if !entry.IsFinal {
			nonFinal++
			if i != len(state.Transcript)-1 {
				t.Fatalf("expected the non-final entry to be last, found it at %d", i)
			}
		}
	}
	if nonFinal > 1 {
		t.Fatalf("expected at most one non-final entry, got %d", nonFinal)
	}
	if sent := len(channels.sentCommands()); sent != 20 {
		t.Fatalf("expected 20 responses sent, got %d", sent)
	}
}

func TestAgentSuggestionFlow(t *testing.T) {
	channels := &stubChannels{open: true}
	o := newTestOrchestrator(newStubCallAPI(""), channels)
	defer o.Close()
	_ = o.Join(context.Background(), triggers.JoinTrigger{CallID: "abc123"})

	_ = channels.deliver(`{"type":"caf_finished","french":"Votre nom ?","english":"Your name?"}`)
	_ = channels.deliver(`{"type":"agent_thinking","message":"Crafting response..."}`)
	if state := o.Snapshot(); !state.AgentThinking {
		t.Fatalf("expected agent thinking")
	}

	before := len(o.Snapshot().Transcript)
	_ = channels.deliver(`{"type":"agent_suggests","english":"My name is John","auto_send":true,"auto_send_delay":3000}`)

	state := o.Snapshot()
	if len(state.Transcript) != before+1 {
		t.Fatalf("expected one appended entry, got %d -> %d", before, len(state.Transcript))
	}
	if state.AgentThinking || state.AgentSuggestion != "My name is John" || state.Phase != call.PhaseUserSpeaking {
		t.Fatalf("unexpected agent state %+v", state)
	}
}

func waitForCondition(t *testing.T, timeout time.Duration, description string, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s", description)
}
