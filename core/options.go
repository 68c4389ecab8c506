package orchestration

import (
	"context"
	"time"

	"github.com/koscakluka/hotline-core/core/callapi"
	"github.com/koscakluka/hotline-core/core/channel"
	"github.com/koscakluka/hotline-core/core/config"
	"github.com/koscakluka/hotline-core/core/protocol"
	"github.com/koscakluka/hotline-core/internal/utils"
)

type OrchestratorOption func(*Orchestrator)

// CallAPI creates and dials call sessions on the relay.
type CallAPI interface {
	Start(ctx context.Context, req callapi.StartRequest) (callapi.StartResponse, error)
	Dial(ctx context.Context, callID string) (callapi.DialResponse, error)
}

// CallEnder is optionally implemented by a CallAPI. It is used to end the
// call when the hang up command cannot be sent over the channel.
type CallEnder interface {
	End(ctx context.Context, callID string) (callapi.EndResponse, error)
}

// ChannelManager owns the realtime channels. *channel.Manager implements it.
type ChannelManager interface {
	Connect(ctx context.Context, callID string, onEvent channel.EventHandler) error
	Send(callID string, cmd protocol.Command) error
	Close(callID string)
}

func WithCallAPI(api CallAPI) OrchestratorOption {
	return func(o *Orchestrator) { o.callAPI = api }
}

func WithChannelManager(manager ChannelManager) OrchestratorOption {
	return func(o *Orchestrator) { o.channels = manager }
}

// WithDialSettleDelay sets the pause between opening the channel and
// dialing, so that the relay has the channel before the call is placed.
func WithDialSettleDelay(delay time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.dialSettleDelay = utils.Ptr(delay) }
}

// WithConfig sets the configuration the default collaborators are built
// from. Collaborators passed explicitly take precedence.
func WithConfig(cfg config.Config) OrchestratorOption {
	return func(o *Orchestrator) { o.config = cfg }
}

func (o *Orchestrator) applyDefaults() {
	if o.callAPI == nil {
		o.callAPI = callapi.NewClient(o.config.APIBaseURL, callapi.WithTimeout(o.config.RequestTimeout))
	}
	if o.channels == nil {
		o.channels = channel.NewManager(o.config.WebsocketBaseURL, channel.WithReconnectPolicy(o.config.ReconnectPolicy()))
	}
	if o.dialSettleDelay == nil {
		o.dialSettleDelay = utils.Ptr(o.config.DialSettleDelay)
	}
}
