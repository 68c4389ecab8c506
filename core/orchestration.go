package orchestration

import (
	"sync"
	"time"

	"github.com/koscakluka/hotline-core/core/config"
	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/core/session"
)

// Orchestrator drives one mediated call session: it creates or joins the
// call, folds every relay frame and local command into the session and
// publishes the result to observers.
//
// All reduction happens under one mutex in arrival order, whether the event
// came from the channel read goroutine or from a local command.
type Orchestrator struct {
	callAPI         CallAPI
	channels        ChannelManager
	config          config.Config
	dialSettleDelay *time.Duration

	mu    sync.Mutex
	state session.CallSession
	// claimed is set by the first Start or Join.
	claimed      bool
	joinedCallID string
	// activeCallID is the relay call this orchestrator owns a channel for.
	// It is set as soon as the relay issues the id, even when the session
	// has already ended and absorbed the creation.
	activeCallID string
	closed       bool

	publisher *snapshotPublisher
	closeOnce sync.Once
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		config:    config.Default(),
		state:     session.New(),
		publisher: newSnapshotPublisher(),
	}

	for _, opt := range opts {
		opt(o)
	}
	o.applyDefaults()

	return o
}

// Close closes the call channel and every subscription. The session is left
// as it is and no later event changes it. Close is idempotent.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.mu.Lock()
		o.closed = true
		callID := o.activeCallID
		o.mu.Unlock()

		if callID != "" {
			o.channels.Close(callID)
		}
		o.publisher.close()
	})
}

// Snapshot returns a deep copy of the current session.
func (o *Orchestrator) Snapshot() session.CallSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Clone()
}

// Subscribe returns a channel that receives the current session and then
// every later one. Delivery is latest-wins: a slow subscriber only misses
// intermediate sessions, never the newest. The returned function
// unsubscribes and closes the channel.
func (o *Orchestrator) Subscribe() (<-chan session.CallSession, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.publisher.subscribe(o.state)
}

func (o *Orchestrator) handleEvent(event events.Event) {
	if sessionErr, ok := event.(events.SessionError); ok {
		logger.Warn("relay reported an error", "call_id", o.callID(), "message", sessionErr.Message)
	}
	o.apply(event)
}

func (o *Orchestrator) apply(event events.Event) session.CallSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.applyLocked(event)
}

func (o *Orchestrator) applyLocked(event events.Event) session.CallSession {
	if o.closed || o.state.IsTerminal() {
		return o.state
	}

	o.state = session.Reduce(o.state, event)
	o.publisher.publish(o.state)
	return o.state
}

func (o *Orchestrator) callID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.CallID
}

func (o *Orchestrator) status() (closed, terminal bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed, o.state.IsTerminal()
}

func (o *Orchestrator) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}
