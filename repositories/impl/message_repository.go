package impl

import (
	"time"

	"PelicanChat/models"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{DB: db}
}

func (r *MessageRepositoryImpl) Save(message *models.Message) error {
	return r.DB.Save(message).Error
}

func (r *MessageRepositoryImpl) FindByID(messageID uint) (models.Message, error) {
	var message models.Message
	err := r.DB.First(&message, messageID).Error
	return message, err
}

func (r *MessageRepositoryImpl) Delete(messageID uint) error {
	return r.DB.Delete(&models.Message{}, messageID).Error
}

func (r *MessageRepositoryImpl) DeleteByScope(scopeType string, scopeID uint) error {
	return r.DB.
		Where("scope_type = ? AND scope_id = ?", scopeType, scopeID).
		Delete(&models.Message{}).Error
}

// ListScopePage pages strictly ascending by (timestamp, id). Keyset
// predicates keep already-served pages stable under concurrent
// appends, unlike limit/offset.
func (r *MessageRepositoryImpl) ListScopePage(scopeType string, scopeID uint, afterTime time.Time, afterID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := r.DB.Where("scope_type = ? AND scope_id = ?", scopeType, scopeID)

	if !afterTime.IsZero() || afterID > 0 {
		query = query.Where("(timestamp > ?) OR (timestamp = ? AND id > ?)", afterTime, afterTime, afterID)
	}

	err := query.
		Order("timestamp ASC, id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) Search(scopeType string, scopeID uint, term string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Where("scope_type = ? AND scope_id = ?", scopeType, scopeID).
		Where("content ILIKE ?", "%"+term+"%").
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) RecentByScopeType(scopeType string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Where("scope_type = ?", scopeType).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) CountUnread(conversationID uint, userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Message{}).
		Where("scope_type = ? AND scope_id = ?", models.ScopeConversation, conversationID).
		Where("sender_id != ? AND timestamp > ?", userID, since).
		Count(&count).Error
	return count, err
}
