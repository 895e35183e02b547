package models

import (
	"time"
)

// Scope types a message can belong to.
const (
	ScopeConversation = "conversation"
	ScopeChannel      = "channel"
)

// Message is append-only: once created, only content (edit) and
// read_by_mentions (mark-read) ever change. Ordering inside a scope is
// (timestamp, id); the auto-increment ID breaks timestamp ties.
type Message struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	ScopeType      string    `json:"scope_type" gorm:"column:scope_type;index:idx_scope_time,priority:1"`
	ScopeID        uint      `json:"scope_id" gorm:"column:scope_id;index:idx_scope_time,priority:2"`
	SenderID       uint      `json:"sender_id" gorm:"column:sender_id"`
	Content        string    `json:"content"`
	ImageRef       string    `json:"image_ref,omitempty" gorm:"column:image_ref"`
	Timestamp      time.Time `json:"timestamp" gorm:"index:idx_scope_time,priority:3"`
	Mentions       string    `json:"-" gorm:"column:mentions"`
	ReadByMentions string    `json:"-" gorm:"column:read_by_mentions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (m *Message) MentionIDs() []uint {
	return decodeIDSet(m.Mentions)
}

func (m *Message) SetMentionIDs(ids []uint) {
	m.Mentions = encodeIDSet(ids)
}

func (m *Message) ReadByMentionIDs() []uint {
	return decodeIDSet(m.ReadByMentions)
}

// IsMentioned reports whether userID is a mention target.
func (m *Message) IsMentioned(userID uint) bool {
	return idSetContains(m.Mentions, userID)
}

// MentionReadBy reports whether userID already acknowledged its mention.
func (m *Message) MentionReadBy(userID uint) bool {
	return idSetContains(m.ReadByMentions, userID)
}

// MarkMentionRead appends userID to read_by_mentions. Returns false
// when the call was a no-op (already read). Callers must have checked
// IsMentioned first so read_by_mentions stays a subset of mentions.
func (m *Message) MarkMentionRead(userID uint) bool {
	if idSetContains(m.ReadByMentions, userID) {
		return false
	}
	m.ReadByMentions = idSetAppend(m.ReadByMentions, userID)
	return true
}

// PagedMessage is a message enriched for clients: sender snapshot and
// resolved image URL are computed per read.
type PagedMessage struct {
	Message
	Sender   PublicProfile `json:"sender"`
	ImageURL string        `json:"image_url,omitempty"`
	Mentions []uint        `json:"mentions"`
	ReadBy   []uint        `json:"read_by_mentions"`
}
