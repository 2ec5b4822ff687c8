package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	subscribeOpcode = 5
	jsonAPIEvent    = "OnJsonApiEvent"
)

var ErrConnectionClosed = errors.New("connection closed")

type conn struct {
	conn *websocket.Conn
}

func newConn(c *websocket.Conn) conn {
	return conn{conn: c}
}

// Start subscribes to every JSON API event the remote side publishes.
func (c conn) Start(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer func() {
			_ = c.conn.SetWriteDeadline(time.Time{})
		}()
	}
	if err := c.conn.WriteJSON([]any{subscribeOpcode, jsonAPIEvent}); err != nil {
		return errors.WithMessage(err, "websocket conn write subscribe")
	}
	return nil
}

// ReadFrame returns the next non-empty text frame. Binary and control frames
// are skipped.
func (c conn) ReadFrame() ([]byte, error) {
	for {
		messageType, data, err := c.conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, ErrConnectionClosed
		}
		if err != nil {
			return nil, errors.WithMessage(err, "websocket conn read message")
		}
		if messageType != websocket.TextMessage || len(data) == 0 {
			continue
		}
		return data, nil
	}
}

func (c conn) Close() error {
	return c.conn.Close()
}
