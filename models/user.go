package models

import "time"

// User statuses mirrored by the presence dropdown.
const (
	StatusOnline  = "online"
	StatusAway    = "away"
	StatusOffline = "offline"
	StatusDND     = "dnd"
)

type User struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name"`
	UserTag     string    `json:"user_tag" gorm:"size:8"`
	Email       string    `json:"email" gorm:"index"`
	ImageRef    string    `json:"image_ref"`
	Status      string    `json:"status"`
	FirebaseUID string    `json:"firebase_uid" gorm:"uniqueIndex"`
	DeviceToken string    `json:"-"`
	Friends     string    `json:"-"` // JSON array of user IDs
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FriendIDs decodes the friends column.
func (u *User) FriendIDs() []uint {
	return decodeIDSet(u.Friends)
}

// SetFriendIDs encodes ids back into the friends column.
func (u *User) SetFriendIDs(ids []uint) {
	u.Friends = encodeIDSet(ids)
}

// AddFriend is a no-op if the id is already present.
func (u *User) AddFriend(id uint) {
	u.Friends = idSetAppend(u.Friends, id)
}

// PublicProfile is the sender snapshot attached to paged messages.
// Computed per read, never persisted with a message.
type PublicProfile struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	UserTag  string `json:"user_tag"`
	ImageURL string `json:"image_url,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (u *User) Profile(imageURL string) PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Name:     u.Name,
		UserTag:  u.UserTag,
		ImageURL: imageURL,
		Status:   u.Status,
	}
}
