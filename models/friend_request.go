package models

import "time"

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestDeclined = "declined"
)

// FriendRequest lives until accepted or declined; both outcomes
// remove the row.
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	SenderID   uint      `json:"sender_id" gorm:"index:idx_sender_receiver,priority:1"`
	ReceiverID uint      `json:"receiver_id" gorm:"index:idx_sender_receiver,priority:2;index"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
