package controllers

import (
	"net/http"

	"PelicanChat/middlewares"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

var authService *services.AuthService

func SetAuthService(service *services.AuthService) {
	authService = service
}

// Login exchanges a Firebase ID token for a session JWT.
func Login(c *gin.Context) {
	var input struct {
		IDToken     string `json:"id_token" binding:"required"`
		DeviceToken string `json:"device_token"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := authService.Login(c.Request.Context(), input.IDToken, input.DeviceToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
}

// UpdateStatus sets the caller's presence.
func UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := authService.UpdateStatus(actorID, input.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the caller's own record.
func Me(c *gin.Context) {
	actorID := middlewares.ActorID(c)
	user, err := authService.UserRepo.FindByID(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
