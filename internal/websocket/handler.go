package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches conn to the hub and blocks until the reader goes away.
func ServeWs(hub *Hub, conn *websocket.Conn, author uuid.UUID) {
	client := NewClient(hub, conn, author)
	if !hub.add(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
