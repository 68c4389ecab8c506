package events

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

type Event interface {
	Kind() Kind
	// ID uniquely identifies the event. Transcript entries created by an
	// event keep its ID for their whole lifetime.
	ID() string
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	id        string
	timestamp time.Time
}

func NewBase(kind Kind, opts ...RebaseOption) Base {
	base := Base{kind: kind, id: uuid.NewString(), timestamp: time.Now()}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) ID() string {
	return b.id
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

type RebaseOption func(*Base)

// WithTimestamp overrides the time the event was created at.
func WithTimestamp(timestamp time.Time) RebaseOption {
	return func(b *Base) { b.timestamp = timestamp }
}

// WithID overrides the generated event ID.
func WithID(id string) RebaseOption {
	return func(b *Base) {
		if id != "" {
			b.id = id
		}
	}
}
