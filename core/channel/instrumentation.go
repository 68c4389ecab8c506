package channel

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/koscakluka/hotline-core/core/channel"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

var (
	framesReceived, _  = meter.Int64Counter("hotline.channel.frames_received", metric.WithDescription("Text frames received from the relay"))
	framesDropped, _   = meter.Int64Counter("hotline.channel.frames_dropped", metric.WithDescription("Inbound frames that could not be decoded"))
	commandsDropped, _ = meter.Int64Counter("hotline.channel.commands_dropped", metric.WithDescription("Commands dropped because the channel was not open"))
)
