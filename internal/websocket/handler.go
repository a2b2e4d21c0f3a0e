package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches conn to the hub and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, sessionKey string) {
	client := &Client{Hub: hub, Conn: c, SessionKey: sessionKey, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
