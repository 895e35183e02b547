package repositories

import (
	"time"

	"PelicanChat/models"
)

type ConversationRepository interface {
	Save(conversation *models.Conversation) error
	FindByID(conversationID uint) (models.Conversation, error)
	FindByParticipants(participants string) (models.Conversation, error)

	// Touch bumps last_message_at after an append.
	Touch(conversationID uint, at time.Time) error

	ListForUser(userID uint) ([]models.Conversation, error)

	SaveUserConversation(uc *models.UserConversation) error
	FindUserConversation(userID, conversationID uint) (models.UserConversation, error)
}
