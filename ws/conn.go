package ws

import "github.com/gorilla/websocket"

// ConnInterface is the part of a websocket connection the hub uses.
type ConnInterface interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type RealConn struct {
	*websocket.Conn
}

func (r *RealConn) WriteMessage(messageType int, data []byte) error {
	return r.Conn.WriteMessage(messageType, data)
}

func (r *RealConn) ReadMessage() (int, []byte, error) {
	return r.Conn.ReadMessage()
}

func (r *RealConn) Close() error {
	return r.Conn.Close()
}
