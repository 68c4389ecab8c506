package channel

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// Conn is the subset of a websocket connection the manager needs.
// *websocket.Conn satisfies it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens channel connections. Tests substitute it to avoid sockets.
type Dialer interface {
	DialContext(ctx context.Context, url string) (Conn, error)
}

type websocketDialer struct {
	dialer *websocket.Dialer
	header http.Header
}

// NewWebsocketDialer returns a Dialer backed by gorilla/websocket. The header
// is sent with every handshake and may be nil.
func NewWebsocketDialer(header http.Header) Dialer {
	return websocketDialer{dialer: websocket.DefaultDialer, header: header}
}

func (d websocketDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	conn, _, err := d.dialer.DialContext(ctx, url, d.header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
