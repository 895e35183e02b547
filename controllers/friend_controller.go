package controllers

import (
	"net/http"
	"strconv"

	"PelicanChat/middlewares"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

var friendService *services.FriendService

func SetFriendService(service *services.FriendService) {
	friendService = service
}

// SendFriendRequest targets a user by name and tag.
func SendFriendRequest(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		UserTag string `json:"user_tag" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	request, err := friendService.SendRequest(actorID, input.Name, input.UserTag)
	if err != nil {
		respondError(c, err)
		return
	}

	if notificationService != nil {
		go notificationService.PushFriendRequest(request, senderName(c))
	}

	c.JSON(http.StatusOK, gin.H{"data": request})
}

// AcceptFriendRequest makes the friendship mutual.
func AcceptFriendRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := friendService.AcceptRequest(actorID, uint(requestID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeclineFriendRequest drops the request.
func DeclineFriendRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := friendService.DeclineRequest(actorID, uint(requestID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListFriends returns the caller's friends.
func ListFriends(c *gin.Context) {
	actorID := middlewares.ActorID(c)
	friends, err := friendService.ListFriends(actorID, storageService)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": friends})
}
