package controllers

import (
	"net/http"
	"strconv"

	"PelicanChat/middlewares"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

var conversationService *services.ConversationService

func SetConversationService(service *services.ConversationService) {
	conversationService = service
}

// StartConversation finds or creates the conversation for a
// participant set.
func StartConversation(c *gin.Context) {
	var input struct {
		ParticipantIDs []uint `json:"participant_ids" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	conversation, err := conversationService.StartConversation(actorID, input.ParticipantIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conversation})
}

// ListConversations returns the caller's conversations with unread
// counts, newest activity first.
func ListConversations(c *gin.Context) {
	actorID := middlewares.ActorID(c)
	summaries, err := conversationService.ListForUser(actorID, storageService)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// SetConversationArchived flips the caller's archive flag.
func SetConversationArchived(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	var input struct {
		Archived bool `json:"archived"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := conversationService.SetArchived(actorID, uint(conversationID), input.Archived); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
