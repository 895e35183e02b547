package routes

import (
	"PelicanChat/controllers"
	"PelicanChat/middlewares"
	"PelicanChat/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, authService *services.AuthService) {
	// Public routes
	r.POST("/auth/login", controllers.Login)

	auth := middlewares.AuthMiddleware(authService)

	r.GET("/ws", auth, controllers.ServeWs)

	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", controllers.Me)
		users.PUT("/me/status", controllers.UpdateStatus)
	}

	chat := r.Group("/chat")
	chat.Use(auth)
	{
		chat.POST("/messages", controllers.SendMessage)
		chat.POST("/attachments", controllers.UploadAttachment)
		chat.GET("/:scope_type/:scope_id/messages", controllers.GetMessages)
		chat.GET("/:scope_type/:scope_id/search", controllers.SearchMessages)
		chat.PUT("/messages/:message_id", controllers.EditMessage)
		chat.DELETE("/messages/:message_id", controllers.DeleteMessage)
		chat.PUT("/messages/:message_id/mention-read", controllers.MarkMentionRead)
	}

	conversations := r.Group("/conversations")
	conversations.Use(auth)
	{
		conversations.POST("/", controllers.StartConversation)
		conversations.GET("/", controllers.ListConversations)
		conversations.PUT("/:conversation_id/read", controllers.MarkConversationRead)
		conversations.GET("/:conversation_id/unread", controllers.GetUnreadCount)
		conversations.PUT("/:conversation_id/archive", controllers.SetConversationArchived)
	}

	communities := r.Group("/communities")
	communities.Use(auth)
	{
		communities.POST("/", controllers.CreateCommunity)
		communities.POST("/join", controllers.JoinByInvite)
		communities.POST("/:community_id/invite-link", controllers.GenerateInviteLink)
		communities.DELETE("/:community_id/members/:user_id", controllers.KickMember)

		communities.GET("/:community_id/channels", controllers.ListChannels)
		communities.POST("/:community_id/channels", controllers.CreateChannel)

		communities.GET("/:community_id/permissions", controllers.CheckPermission)

		communities.POST("/:community_id/roles", controllers.CreateRole)
		communities.DELETE("/:community_id/roles/:role", controllers.DeleteRole)
		communities.POST("/:community_id/roles/assign", controllers.AssignRole)
		communities.POST("/:community_id/roles/unassign", controllers.UnassignRole)
		communities.PUT("/:community_id/roles/:role/permissions", controllers.SetRolePermissions)
		communities.GET("/:community_id/roles/:role/permissions", controllers.GetRolePermissions)
	}

	channels := r.Group("/channels")
	channels.Use(auth)
	{
		channels.PUT("/:channel_id/visibility", controllers.UpdateChannelVisibility)
		channels.DELETE("/:channel_id", controllers.DeleteChannel)
		channels.POST("/:channel_id/pin", controllers.PinMessage)
		channels.DELETE("/:channel_id/pin", controllers.UnpinMessage)
	}

	friends := r.Group("/friends")
	friends.Use(auth)
	{
		friends.GET("/", controllers.ListFriends)
		friends.POST("/requests", controllers.SendFriendRequest)
		friends.PUT("/requests/:request_id/accept", controllers.AcceptFriendRequest)
		friends.PUT("/requests/:request_id/decline", controllers.DeclineFriendRequest)
	}

	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("/", controllers.GetNotifications)
	}
}
