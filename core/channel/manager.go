// Package channel keeps one realtime channel per call and turns its frames
// into session events.
package channel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/core/protocol"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type State string

const (
	StateConnecting State = "connecting"
	StateOpen       State = "open"
	StateClosed     State = "closed"
)

var (
	ErrChannelNotOpen = errors.New("channel not open")
	ErrMissingCallID  = errors.New("call id is required")
)

// EventHandler receives decoded events of one channel, in delivery order,
// from a single goroutine.
type EventHandler func(events.Event)

// Manager is the registry of realtime channels keyed by call id.
type Manager struct {
	baseURL   string
	dialer    Dialer
	reconnect ReconnectPolicy

	mu       sync.Mutex
	channels map[string]*channel
}

type ManagerOption func(*Manager)

// WithDialer replaces the gorilla/websocket dialer.
func WithDialer(dialer Dialer) ManagerOption {
	return func(m *Manager) {
		if dialer != nil {
			m.dialer = dialer
		}
	}
}

// WithReconnectPolicy enables redialing channels that close unexpectedly.
func WithReconnectPolicy(policy ReconnectPolicy) ManagerOption {
	return func(m *Manager) { m.reconnect = policy }
}

// NewManager returns a manager dialing <baseURL>/<callID>.
func NewManager(baseURL string, opts ...ManagerOption) *Manager {
	m := &Manager{
		baseURL:  strings.TrimRight(baseURL, "/"),
		dialer:   NewWebsocketDialer(nil),
		channels: map[string]*channel{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect opens the channel for callID in the background. It is a no-op
// while a channel for callID is connecting or open.
//
// The channel outlives ctx cancellation; only [Manager.Close] stops it.
func (m *Manager) Connect(ctx context.Context, callID string, onEvent EventHandler) error {
	if callID == "" {
		return ErrMissingCallID
	}
	if onEvent == nil {
		onEvent = func(events.Event) {}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.channels[callID]; ok {
		if existing.State() != StateClosed {
			return nil
		}
		existing.closeLocally()
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	ch := &channel{
		callID:  callID,
		url:     m.baseURL + "/" + url.PathEscape(callID),
		onEvent: onEvent,
		state:   StateConnecting,
		cancel:  cancel,
	}
	m.channels[callID] = ch

	go m.run(runCtx, ch)
	return nil
}

// Send writes cmd to the channel of callID. Commands are neither queued nor
// retried: when the channel is not open the command is dropped and
// ErrChannelNotOpen is returned.
func (m *Manager) Send(callID string, cmd protocol.Command) error {
	ch := m.lookup(callID)
	if ch == nil || ch.State() != StateOpen {
		logger.Warn("dropped command, channel not open", "call_id", callID, "command", cmd.Type)
		commandsDropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("command", cmd.Type)))
		return fmt.Errorf("%w: %s", ErrChannelNotOpen, cmd.Type)
	}

	data, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return err
	}

	if err := ch.write(data); err != nil {
		logger.Error("failed to send command", "call_id", callID, "command", cmd.Type, "error", err)
		return fmt.Errorf("failed to send %s command: %w", cmd.Type, err)
	}
	return nil
}

// Close closes the channel of callID without waiting and forgets it.
func (m *Manager) Close(callID string) {
	m.mu.Lock()
	ch, ok := m.channels[callID]
	delete(m.channels, callID)
	m.mu.Unlock()

	if ok {
		ch.closeLocally()
	}
}

// State reports the state of the channel of callID. Unknown calls are closed.
func (m *Manager) State(callID string) State {
	ch := m.lookup(callID)
	if ch == nil {
		return StateClosed
	}
	return ch.State()
}

func (m *Manager) lookup(callID string) *channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[callID]
}

func (m *Manager) run(ctx context.Context, ch *channel) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.reconnect.delay(attempt)):
			}
			logger.Info("reconnecting channel", "call_id", ch.callID, "attempt", attempt)
		}

		conn, err := m.dial(ctx, ch)
		if err != nil {
			if ch.isClosedLocally() {
				return
			}
			logger.Error("failed to open channel", "call_id", ch.callID, "url", ch.url, "error", err)
		} else {
			if !ch.opened(conn) {
				_ = conn.Close()
				return
			}
			logger.Info("channel open", "call_id", ch.callID)
			attempt = 0

			err = m.read(ctx, ch, conn)
			_ = conn.Close()
			if ch.isClosedLocally() {
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("channel closed by relay", "call_id", ch.callID)
				ch.setState(StateClosed)
				return
			}
			logger.Warn("channel closed unexpectedly", "call_id", ch.callID, "error", err)
		}

		if !m.reconnect.allows(attempt+1) || !ch.reconnecting() {
			ch.setState(StateClosed)
			return
		}
	}
}

func (m *Manager) dial(ctx context.Context, ch *channel) (Conn, error) {
	ctx, span := tracer.Start(ctx, "dial call channel", trace.WithAttributes(
		attribute.String("call.id", ch.callID),
		attribute.String("channel.url", ch.url),
	))
	defer span.End()

	conn, err := m.dialer.DialContext(ctx, ch.url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return nil, fmt.Errorf("failed to dial %s: %w", ch.url, err)
	}
	return conn, nil
}

func (m *Manager) read(ctx context.Context, ch *channel, conn Conn) error {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		if msgType != websocket.TextMessage {
			continue
		}
		framesReceived.Add(ctx, 1)

		event, err := protocol.DecodeServerMessage(data)
		switch {
		case errors.Is(err, protocol.ErrUnknownMessageType):
			logger.Debug("ignored frame", "call_id", ch.callID, "error", err)
			continue
		case err != nil:
			logger.Warn("dropped malformed frame", "call_id", ch.callID, "error", err)
			framesDropped.Add(ctx, 1)
			continue
		}

		if ch.isClosedLocally() {
			return nil
		}
		ch.onEvent(event)
	}
}

type channel struct {
	callID  string
	url     string
	onEvent EventHandler
	cancel  context.CancelFunc

	mu            sync.Mutex
	state         State
	conn          Conn
	closedLocally bool

	writeMu sync.Mutex
}

func (c *channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *channel) setState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closedLocally {
		c.state = state
	}
}

// opened records conn as the live connection. It reports false when the
// channel was closed while dialing.
func (c *channel) opened(conn Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closedLocally {
		return false
	}
	c.conn = conn
	c.state = StateOpen
	return true
}

func (c *channel) reconnecting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closedLocally {
		return false
	}
	c.conn = nil
	c.state = StateConnecting
	return true
}

func (c *channel) isClosedLocally() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closedLocally
}

func (c *channel) closeLocally() {
	c.mu.Lock()
	c.closedLocally = true
	c.state = StateClosed
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.cancel()
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Debug("failed to close channel", "call_id", c.callID, "error", err)
		}
	}
}

func (c *channel) write(data []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrChannelNotOpen
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}
