package models

import "time"

// Notification kinds in the unified feed.
const (
	NotificationFriendRequest       = "friend_request"
	NotificationConversationMention = "conversation_mention"
	NotificationChannelMention      = "channel_mention"
)

// NotificationItem is a feed entry: either a pending friend request or
// an unread mention. It is assembled per read and never persisted;
// acknowledgement goes through the underlying record (accept/decline
// for requests, mark-mention-read for mentions).
type NotificationItem struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`

	// Friend request fields.
	RequestID  uint   `json:"request_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	SenderTag  string `json:"sender_tag,omitempty"`

	// Mention fields.
	MessageID uint   `json:"message_id,omitempty"`
	ScopeID   uint   `json:"scope_id,omitempty"`
	SenderID  uint   `json:"sender_id,omitempty"`
	Content   string `json:"content,omitempty"`
}
