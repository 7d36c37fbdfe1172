package gateway

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Transport is the raw frame pipe under a session. The production
// implementation is a websocket; tests substitute their own.
type Transport interface {
	// ReadFrame blocks until the next text frame arrives.
	ReadFrame() ([]byte, error)
	WriteJSON(v any) error
	Close() error
}

type DialFunc func(url string) (Transport, error)

type wsTransport struct {
	conn *websocket.Conn
}

// Dial opens a websocket connection to the gateway.
func Dial(url string) (Transport, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing gateway %s: %w", url, err)
	}
	return &wsTransport{conn: conn}, nil
}

func (t *wsTransport) ReadFrame() ([]byte, error) {
	for {
		messageType, data, err := t.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		return data, nil
	}
}

func (t *wsTransport) WriteJSON(v any) error {
	return t.conn.WriteJSON(v)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}
