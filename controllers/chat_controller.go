package controllers

import (
	"net/http"
	"strconv"

	"PelicanChat/middlewares"
	"PelicanChat/services"
	"PelicanChat/websocket"

	"github.com/gin-gonic/gin"
)

var chatService *services.ChatService
var storageService *services.StorageService

func SetChatService(service *services.ChatService) {
	chatService = service
}

func SetStorageService(service *services.StorageService) {
	storageService = service
}

// SendMessage appends a text message to a scope, fans it out to the
// scope's websocket room and pushes mention notifications.
func SendMessage(c *gin.Context) {
	var input struct {
		ScopeType string `json:"scope_type" binding:"required"`
		ScopeID   uint   `json:"scope_id" binding:"required"`
		Content   string `json:"content"`
		ImageRef  string `json:"image_ref"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	message, err := chatService.SendMessage(actorID, input.ScopeType, input.ScopeID, input.Content, input.ImageRef)
	if err != nil {
		respondError(c, err)
		return
	}

	if WebSocketHub != nil {
		WebSocketHub.Broadcast(websocket.Event{
			Type:    "message",
			Room:    websocket.RoomID(message.ScopeType, message.ScopeID),
			Payload: message,
		})
	}
	if notificationService != nil && len(message.MentionIDs()) > 0 {
		go notificationService.PushMention(message, senderName(c))
	}

	c.JSON(http.StatusOK, gin.H{"data": message})
}

// UploadAttachment stores an image and returns its ref for a later
// SendMessage call.
func UploadAttachment(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	ref, err := storageService.SaveUpload(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_ref": ref, "image_url": storageService.ResolveURL(ref)})
}

// GetMessages serves one page of a scope's timeline.
func GetMessages(c *gin.Context) {
	scopeType := c.Param("scope_type")
	scopeID, err := strconv.Atoi(c.Param("scope_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope id"})
		return
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	cursor := c.Query("cursor")

	actorID := middlewares.ActorID(c)
	page, err := chatService.PageMessages(actorID, scopeType, uint(scopeID), cursor, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// SearchMessages returns the top content matches within a scope.
func SearchMessages(c *gin.Context) {
	scopeType := c.Param("scope_type")
	scopeID, err := strconv.Atoi(c.Param("scope_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope id"})
		return
	}

	actorID := middlewares.ActorID(c)
	results, err := chatService.SearchMessages(actorID, scopeType, uint(scopeID), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

// EditMessage replaces a message's content.
func EditMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := chatService.EditMessage(actorID, uint(messageID), input.Content); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMessage removes a message.
func DeleteMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := chatService.DeleteMessage(actorID, uint(messageID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkMentionRead acknowledges one mention for the calling user.
func MarkMentionRead(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := chatService.MarkMentionRead(actorID, uint(messageID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkConversationRead advances the caller's read position.
func MarkConversationRead(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := chatService.MarkConversationRead(actorID, uint(conversationID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUnreadCount returns unread message count for one conversation.
func GetUnreadCount(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	actorID := middlewares.ActorID(c)
	count, err := chatService.UnreadCount(actorID, uint(conversationID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func senderName(c *gin.Context) string {
	if authService == nil {
		return ""
	}
	user, err := authService.UserRepo.FindByID(middlewares.ActorID(c))
	if err != nil {
		return ""
	}
	return user.Name
}
