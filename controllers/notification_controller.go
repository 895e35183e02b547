package controllers

import (
	"net/http"

	"PelicanChat/middlewares"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

var notificationService *services.NotificationService

func SetNotificationService(service *services.NotificationService) {
	notificationService = service
}

// GetNotifications returns the caller's assembled feed: pending friend
// requests plus unread mentions, newest first.
func GetNotifications(c *gin.Context) {
	actorID := middlewares.ActorID(c)
	items, err := notificationService.Feed(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}
