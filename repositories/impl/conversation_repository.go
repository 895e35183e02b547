package impl

import (
	"time"

	"PelicanChat/models"

	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepositoryImpl {
	return &ConversationRepositoryImpl{DB: db}
}

func (r *ConversationRepositoryImpl) Save(conversation *models.Conversation) error {
	return r.DB.Save(conversation).Error
}

func (r *ConversationRepositoryImpl) FindByID(conversationID uint) (models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.First(&conversation, conversationID).Error
	return conversation, err
}

func (r *ConversationRepositoryImpl) FindByParticipants(participants string) (models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.Where("participants = ?", participants).First(&conversation).Error
	return conversation, err
}

func (r *ConversationRepositoryImpl) Touch(conversationID uint, at time.Time) error {
	return r.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", at).Error
}

// ListForUser matches on the JSON participants column; participant
// lists are small (direct conversations), so a LIKE scan is enough.
func (r *ConversationRepositoryImpl) ListForUser(userID uint) ([]models.Conversation, error) {
	var all []models.Conversation
	err := r.DB.Order("last_message_at DESC").Find(&all).Error
	if err != nil {
		return nil, err
	}
	conversations := make([]models.Conversation, 0, len(all))
	for _, c := range all {
		if c.HasParticipant(userID) {
			conversations = append(conversations, c)
		}
	}
	return conversations, nil
}

func (r *ConversationRepositoryImpl) SaveUserConversation(uc *models.UserConversation) error {
	return r.DB.Save(uc).Error
}

func (r *ConversationRepositoryImpl) FindUserConversation(userID, conversationID uint) (models.UserConversation, error) {
	var uc models.UserConversation
	err := r.DB.
		Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		First(&uc).Error
	return uc, err
}
