package controllers

import (
	"net/http"
	"strconv"

	"PelicanChat/middlewares"
	"PelicanChat/websocket"

	"github.com/gin-gonic/gin"
)

var WebSocketHub *websocket.Hub

func SetWebSocketHub(hub *websocket.Hub) {
	WebSocketHub = hub
	go WebSocketHub.Run()
}

// ServeWs attaches the caller to a scope's realtime room after the
// same membership check the read API runs.
func ServeWs(c *gin.Context) {
	scopeType := c.Query("scope_type")
	scopeID, err := strconv.Atoi(c.Query("scope_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := chatService.CanReadScope(actorID, scopeType, uint(scopeID)); err != nil {
		respondError(c, err)
		return
	}

	room := websocket.RoomID(scopeType, uint(scopeID))
	if err := websocket.ServeWs(WebSocketHub, c.Writer, c.Request, actorID, room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}
