package controllers

import (
	"net/http"
	"strconv"

	"PelicanChat/middlewares"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

var communityService *services.CommunityService

func SetCommunityService(service *services.CommunityService) {
	communityService = service
}

// CreateCommunity makes the caller the owner of a new community.
func CreateCommunity(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
		ImageRef string `json:"image_ref"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	community, err := communityService.CreateCommunity(actorID, input.Name, input.Category, input.ImageRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": community})
}

// GenerateInviteLink mints a fresh invite link.
func GenerateInviteLink(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	actorID := middlewares.ActorID(c)
	link, err := communityService.GenerateInviteLink(actorID, uint(communityID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite_link": link})
}

// JoinByInvite adds the caller as a member via an invite link.
func JoinByInvite(c *gin.Context) {
	var input struct {
		InviteLink string `json:"invite_link" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	community, err := communityService.JoinByInvite(actorID, input.InviteLink)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": community})
}

// KickMember removes a member from a community.
func KickMember(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := communityService.KickMember(actorID, uint(communityID), uint(userID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateChannel adds a channel to a community.
func CreateChannel(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	var input struct {
		Name         string   `json:"name" binding:"required"`
		Type         string   `json:"type" binding:"required"`
		VisibleType  string   `json:"visible_type" binding:"required"`
		VisibleRoles []string `json:"visible_roles"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	channel, err := communityService.CreateChannel(actorID, uint(communityID), input.Name, input.Type, input.VisibleType, input.VisibleRoles)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": channel})
}

// UpdateChannelVisibility switches a channel between open and
// role-gated.
func UpdateChannelVisibility(c *gin.Context) {
	channelID, err := strconv.Atoi(c.Param("channel_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	var input struct {
		VisibleType  string   `json:"visible_type" binding:"required"`
		VisibleRoles []string `json:"visible_roles"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := communityService.UpdateChannelVisibility(actorID, uint(channelID), input.VisibleType, input.VisibleRoles); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteChannel removes a channel and its messages.
func DeleteChannel(c *gin.Context) {
	channelID, err := strconv.Atoi(c.Param("channel_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := communityService.DeleteChannel(actorID, uint(channelID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListChannels returns the channels the caller can see.
func ListChannels(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	actorID := middlewares.ActorID(c)
	channels, err := communityService.ListChannels(actorID, uint(communityID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": channels})
}

// PinMessage pins one message to a channel.
func PinMessage(c *gin.Context) {
	channelID, err := strconv.Atoi(c.Param("channel_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	var input struct {
		MessageID uint `json:"message_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := communityService.PinMessage(actorID, uint(channelID), input.MessageID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnpinMessage clears a channel's pin.
func UnpinMessage(c *gin.Context) {
	channelID, err := strconv.Atoi(c.Param("channel_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := communityService.UnpinMessage(actorID, uint(channelID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
