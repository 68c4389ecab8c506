package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/callapi"
	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/core/triggers"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Start creates a call session on the relay, opens its channel and dials
// the hotline. An empty target means [call.DefaultTarget].
//
// Any failure moves the session to failed with the reason and is returned.
// Start and Join may be used once per orchestrator.
//
// A session that ends or an orchestrator that is closed while Start runs
// stops the workflow before the next step; a call the relay already created
// is then ended through [CallEnder] when the collaborator supports it.
func (o *Orchestrator) Start(ctx context.Context, target call.Target, question string) error {
	if target == "" {
		target = call.DefaultTarget
	}
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}

	ctx, span := tracer.Start(ctx, "start call session", trace.WithAttributes(
		attribute.String("call.target", string(target)),
	))
	defer span.End()

	if err := o.claim(events.NewStartRequested(target, question)); err != nil {
		recordSpanError(span, err)
		return err
	}

	resp, err := o.callAPI.Start(ctx, callapi.StartRequest{Target: target, Question: question})
	if err != nil {
		return o.failStartup(span, fmt.Errorf("failed to start call: %w", err))
	}
	span.SetAttributes(attribute.String("call.id", resp.CallID))

	o.mu.Lock()
	o.activeCallID = resp.CallID
	o.applyLocked(events.NewSessionCreated(resp.CallID, resp.Phase))
	closed, terminal := o.closed, o.state.IsTerminal()
	o.mu.Unlock()

	switch {
	case closed:
		o.endCall(resp.CallID)
		return ErrClosed
	case terminal:
		logger.Info("session ended before connecting", "call_id", resp.CallID)
		o.endCall(resp.CallID)
		return nil
	}

	if err := o.channels.Connect(ctx, resp.CallID, o.handleEvent); err != nil {
		return o.failStartup(span, fmt.Errorf("failed to connect to call: %w", err))
	}
	if o.isClosed() {
		o.channels.Close(resp.CallID)
		o.endCall(resp.CallID)
		return ErrClosed
	}

	if err := sleepContext(ctx, *o.dialSettleDelay); err != nil {
		return o.failStartup(span, fmt.Errorf("failed to dial call: %w", err))
	}
	switch closed, terminal = o.status(); {
	case closed:
		o.endCall(resp.CallID)
		return ErrClosed
	case terminal:
		logger.Info("session ended before dialing", "call_id", resp.CallID)
		return nil
	}

	if _, err := o.callAPI.Dial(ctx, resp.CallID); err != nil {
		return o.failStartup(span, fmt.Errorf("failed to dial call: %w", err))
	}
	o.apply(events.NewDialStarted())

	logger.Info("call started", "call_id", resp.CallID, "target", target)
	return nil
}

// Join observes a call that was placed elsewhere. Joining the same call
// again is a no-op; joining a different one, or joining after Start, fails
// with [ErrSessionInUse].
func (o *Orchestrator) Join(ctx context.Context, trigger triggers.JoinTrigger) error {
	if trigger.CallID == "" {
		return triggers.ErrMissingCallID
	}
	if trigger.Failed() {
		return fmt.Errorf("%w: %s", ErrCallFailed, trigger.CallID)
	}
	if trigger.Target == "" {
		trigger.Target = call.DefaultTarget
	}
	if !trigger.Target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, trigger.Target)
	}

	ctx, span := tracer.Start(ctx, "join call session", trace.WithAttributes(
		attribute.String("call.id", trigger.CallID),
		attribute.String("call.target", string(trigger.Target)),
	))
	defer span.End()

	o.mu.Lock()
	switch {
	case o.closed:
		o.mu.Unlock()
		return ErrClosed
	case o.claimed && o.joinedCallID == trigger.CallID:
		o.mu.Unlock()
		return nil
	case o.claimed:
		o.mu.Unlock()
		recordSpanError(span, ErrSessionInUse)
		return ErrSessionInUse
	}
	o.claimed = true
	o.joinedCallID = trigger.CallID
	o.activeCallID = trigger.CallID
	o.applyLocked(events.NewJoinRequested(trigger.CallID, trigger.Target, trigger.Question))
	o.mu.Unlock()

	if err := o.channels.Connect(ctx, trigger.CallID, o.handleEvent); err != nil {
		return o.failStartup(span, fmt.Errorf("failed to join call: %w", err))
	}
	if o.isClosed() {
		o.channels.Close(trigger.CallID)
		return ErrClosed
	}

	logger.Info("joined call", "call_id", trigger.CallID, "target", trigger.Target)
	return nil
}

func (o *Orchestrator) claim(event events.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	if o.claimed {
		return ErrSessionInUse
	}
	o.claimed = true
	o.applyLocked(event)
	return nil
}

func (o *Orchestrator) failStartup(span trace.Span, err error) error {
	recordSpanError(span, err)
	logger.Error("call startup failed", "call_id", o.callID(), "error", err)

	var statusErr *callapi.StatusError
	if errors.As(err, &statusErr) {
		span.SetAttributes(attribute.Int("response.status_code", statusErr.StatusCode))
	}

	o.apply(events.NewStartupFailed(err.Error()))
	return err
}
