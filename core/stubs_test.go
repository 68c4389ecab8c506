package orchestration

import (
	"context"
	"errors"
	"sync"

	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/callapi"
	"github.com/koscakluka/hotline-core/core/channel"
	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/core/protocol"
)

type stubCallAPI struct {
	mu sync.Mutex

	startResponse callapi.StartResponse
	startErr      error
	dialErr       error
	// startEntered and startRelease, when set, hold Start until the test
	// releases it.
	startEntered chan struct{}
	startRelease chan struct{}

	startRequests []callapi.StartRequest
	dialed        []string
	ended         []string
}

func newStubCallAPI(callID string) *stubCallAPI {
	return &stubCallAPI{startResponse: callapi.StartResponse{CallID: callID, Phase: call.PhaseReadyToCall}}
}

func (s *stubCallAPI) Start(_ context.Context, req callapi.StartRequest) (callapi.StartResponse, error) {
	if s.startEntered != nil {
		close(s.startEntered)
		<-s.startRelease
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startRequests = append(s.startRequests, req)
	if s.startErr != nil {
		return callapi.StartResponse{}, s.startErr
	}
	return s.startResponse, nil
}

func (s *stubCallAPI) Dial(_ context.Context, callID string) (callapi.DialResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialed = append(s.dialed, callID)
	if s.dialErr != nil {
		return callapi.DialResponse{}, s.dialErr
	}
	return callapi.DialResponse{CallID: callID, Status: "dialing"}, nil
}

func (s *stubCallAPI) End(_ context.Context, callID string) (callapi.EndResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, callID)
	return callapi.EndResponse{CallID: callID, Status: "ended"}, nil
}

func (s *stubCallAPI) dialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dialed)
}

func (s *stubCallAPI) endCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ended)
}

func (s *stubCallAPI) endedCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ended...)
}

type stubChannels struct {
	mu sync.Mutex

	open     bool
	connects []string
	closed   []string
	sent     []protocol.Command
	handler  channel.EventHandler
}

func (s *stubChannels) Connect(_ context.Context, callID string, onEvent channel.EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connects = append(s.connects, callID)
	s.handler = onEvent
	return nil
}

func (s *stubChannels) Send(_ string, cmd protocol.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return channel.ErrChannelNotOpen
	}
	s.sent = append(s.sent, cmd)
	return nil
}

func (s *stubChannels) Close(callID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, callID)
}

// deliver hands a relay frame to the orchestrator the way the channel read
// goroutine does.
func (s *stubChannels) deliver(frame string) error {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler == nil {
		return errors.New("channel not connected")
	}

	event, err := protocol.DecodeServerMessage([]byte(frame))
	if err != nil {
		return err
	}
	handler(event)
	return nil
}

func (s *stubChannels) deliverEvent(event events.Event) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	handler(event)
}

func (s *stubChannels) connectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connects)
}

func (s *stubChannels) closedCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.closed...)
}

func (s *stubChannels) sentCommands() []protocol.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]protocol.Command(nil), s.sent...)
}

func newTestOrchestrator(api *stubCallAPI, channels *stubChannels) *Orchestrator {
	return NewOrchestrator(
		WithCallAPI(api),
		WithChannelManager(channels),
		WithDialSettleDelay(0),
	)
}
