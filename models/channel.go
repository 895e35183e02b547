package models

import "time"

const (
	ChannelText  = "text"
	ChannelVoice = "voice"

	VisibleEveryone = "everyone"
	VisibleRoles    = "roles"
)

// Channel is a community-owned scope. Only text channels accept
// messages; voice channels exist for the calling service, which is
// outside this core.
type Channel struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	CommunityID     uint      `json:"community_id" gorm:"index"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	CreatorID       uint      `json:"creator_id"`
	VisibleType     string    `json:"visible_type"`
	VisibleRoles    string    `json:"-"` // JSON array of role names, when visible_type = roles
	PinnedMessageID *uint     `json:"pinned_message_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c *Channel) VisibleRoleNames() []string {
	return decodeStringSet(c.VisibleRoles)
}

func (c *Channel) SetVisibleRoleNames(roles []string) {
	c.VisibleRoles = encodeStringSet(roles)
}

// RoleGated reports whether the channel restricts access to a role list.
func (c *Channel) RoleGated() bool {
	return c.VisibleType == VisibleRoles
}

// StripRole removes role from the visibility list. Returns true when
// the list changed.
func (c *Channel) StripRole(role string) bool {
	if !c.RoleGated() {
		return false
	}
	roles := c.VisibleRoleNames()
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r != role {
			out = append(out, r)
		}
	}
	if len(out) == len(roles) {
		return false
	}
	c.SetVisibleRoleNames(out)
	return true
}
