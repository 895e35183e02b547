package models

import "time"

const (
	CommunityOpen   = "open"
	CommunityLocked = "locked"
	CommunityInvite = "inv"
)

// Community is a named space owning channels, roles and members
// (a "server" in product language). The owner passes every permission
// check unconditionally and cannot be stripped.
type Community struct {
	ID                uint       `json:"id" gorm:"primarykey"`
	Name              string     `json:"name" gorm:"index"`
	ImageRef          string     `json:"image_ref,omitempty"`
	Status            string     `json:"status"`
	Category          string     `json:"category"`
	OwnerID           uint       `json:"owner_id"`
	Members           string     `json:"-"` // JSON array of user IDs
	Roles             string     `json:"-"` // JSON array of role names
	InviteLink        string     `json:"invite_link,omitempty"`
	InviteLinkExpires *time.Time `json:"invite_link_expires,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (s *Community) MemberIDs() []uint {
	return decodeIDSet(s.Members)
}

func (s *Community) HasMember(userID uint) bool {
	return userID == s.OwnerID || idSetContains(s.Members, userID)
}

func (s *Community) AddMember(userID uint) {
	s.Members = idSetAppend(s.Members, userID)
}

func (s *Community) RemoveMember(userID uint) {
	s.Members = idSetRemove(s.Members, userID)
}

func (s *Community) RoleNames() []string {
	return decodeStringSet(s.Roles)
}

func (s *Community) HasRole(role string) bool {
	for _, r := range s.RoleNames() {
		if r == role {
			return true
		}
	}
	return false
}

func (s *Community) AddRole(role string) {
	s.Roles = encodeStringSet(append(s.RoleNames(), role))
}

func (s *Community) RemoveRole(role string) {
	names := s.RoleNames()
	out := make([]string, 0, len(names))
	for _, r := range names {
		if r != role {
			out = append(out, r)
		}
	}
	s.Roles = encodeStringSet(out)
}

func (s *Community) InviteLinkValid() bool {
	return s.InviteLink != "" && s.InviteLinkExpires != nil && time.Now().Before(*s.InviteLinkExpires)
}
