package controllers

import (
	"net/http"
	"strconv"

	"PelicanChat/middlewares"
	"PelicanChat/models"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

var (
	roleService       *services.RoleService
	permissionService *services.PermissionService
)

func SetRoleService(service *services.RoleService) {
	roleService = service
}

func SetPermissionService(service *services.PermissionService) {
	permissionService = service
}

// CreateRole registers a role name on a community.
func CreateRole(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := roleService.CreateRole(actorID, uint(communityID), input.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteRole removes a role and cascades over assignments, permission
// sets and channel visibility lists.
func DeleteRole(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := roleService.DeleteRole(actorID, uint(communityID), c.Param("role")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignRole binds a member to a role.
func AssignRole(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	var input struct {
		UserID uint   `json:"user_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := roleService.AssignRole(actorID, uint(communityID), input.UserID, input.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnassignRole removes one role from one member.
func UnassignRole(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	var input struct {
		UserID uint   `json:"user_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := roleService.UnassignRole(actorID, uint(communityID), input.UserID, input.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetRolePermissions replaces a role's permission set.
func SetRolePermissions(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	var input struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middlewares.ActorID(c)
	if err := roleService.SetRolePermissions(actorID, uint(communityID), c.Param("role"), input.Permissions); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckPermission answers whether the calling actor holds a permission
// in a community. Advisory for clients; every mutating endpoint
// re-checks server-side.
func CheckPermission(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	permission := c.Query("permission")
	if !models.ValidPermission(permission) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown permission"})
		return
	}

	actorID := middlewares.ActorID(c)
	allowed, err := permissionService.HasPermission(uint(communityID), actorID, permission)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

// GetRolePermissions returns a role's permission set.
func GetRolePermissions(c *gin.Context) {
	communityID, err := strconv.Atoi(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	actorID := middlewares.ActorID(c)
	permissions, err := roleService.RolePermissions(actorID, uint(communityID), c.Param("role"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"permissions": permissions})
}
