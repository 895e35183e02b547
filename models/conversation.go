package models

import "time"

// Conversation is a direct-message scope. Participants are fixed at
// creation and stored sorted so the same pair always maps to the same
// conversation.
type Conversation struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Name          string    `json:"name,omitempty"`
	Participants  string    `json:"-"` // JSON array of user IDs, sorted
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Conversation) ParticipantIDs() []uint {
	return decodeIDSet(c.Participants)
}

func (c *Conversation) SetParticipantIDs(ids []uint) {
	c.Participants = encodeIDSet(ids)
}

func (c *Conversation) HasParticipant(userID uint) bool {
	return idSetContains(c.Participants, userID)
}

// UserConversation tracks per-user read position and archive state,
// separate from per-mention read tracking on messages.
type UserConversation struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	UserID           uint      `json:"user_id" gorm:"index:idx_user_conversation,priority:1"`
	ConversationID   uint      `json:"conversation_id" gorm:"index:idx_user_conversation,priority:2"`
	LastReadAt       time.Time `json:"last_read_at"`
	IsArchived       bool      `json:"is_archived"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
