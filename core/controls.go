package orchestration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/core/protocol"
)

const endCallTimeout = 5 * time.Second

// SubmitResponse sends a typed reply to the hotline. The reply is added to
// the transcript before it is sent and stays there if sending fails.
func (o *Orchestrator) SubmitResponse(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyResponse
	}

	o.mu.Lock()
	if o.state.IsTerminal() {
		o.mu.Unlock()
		return ErrSessionTerminal
	}
	callID := o.state.CallID
	o.applyLocked(events.NewResponseSubmitted(text))
	o.mu.Unlock()

	if err := o.channels.Send(callID, protocol.SubmitResponse(text)); err != nil {
		logger.Warn("failed to send response", "call_id", callID, "error", err)
		return fmt.Errorf("failed to send response: %w", err)
	}
	return nil
}

// HangUp ends the session. The hang up command is sent best effort; the
// session is ended when HangUp returns whatever the channel state.
func (o *Orchestrator) HangUp() {
	o.mu.Lock()
	if o.state.IsTerminal() {
		o.mu.Unlock()
		return
	}
	callID := o.state.CallID
	o.mu.Unlock()

	if err := o.channels.Send(callID, protocol.HangUp()); err != nil {
		logger.Warn("failed to send hang up", "call_id", callID, "error", err)
		o.endCallInBackground(callID)
	}

	o.apply(events.NewHangUpRequested())
}

func (o *Orchestrator) endCallInBackground(callID string) {
	if callID == "" {
		return
	}
	go o.endCall(callID)
}

// endCall ends the relay session through the REST collaborator when it
// supports it. Failures are only logged.
func (o *Orchestrator) endCall(callID string) {
	ender, ok := o.callAPI.(CallEnder)
	if !ok || callID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), endCallTimeout)
	defer cancel()

	if _, err := ender.End(ctx, callID); err != nil {
		logger.Error("failed to end call", "call_id", callID, "error", err)
	}
}
