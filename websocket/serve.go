package websocket

import "net/http"

// ServeWs upgrades an HTTP request and attaches the client to a room.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, room string) error {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(hub, conn, userID, room)
	hub.RegisterClient(client)

	go client.WritePump()
	go client.ReadPump()
	return nil
}
