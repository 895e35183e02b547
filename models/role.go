package models

import "time"

// Permission IDs grantable to community roles. The model is additive:
// an actor's effective set is the union over all held roles, with no
// explicit deny.
const (
	PermViewChannels   = "VIEW_CHANNELS"
	PermManageChannels = "MANAGE_CHANNELS"
	PermManageRoles    = "MANAGE_ROLES"
	PermManageServer   = "MANAGE_SERVER"
	PermKickMembers    = "KICK_MEMBERS"
	PermManageMessages = "MANAGE_MESSAGES"
	PermTextToSpeech   = "TEXT_TO_SPEECH"
)

// AllPermissions lists every grantable permission ID.
var AllPermissions = []string{
	PermViewChannels,
	PermManageChannels,
	PermManageRoles,
	PermManageServer,
	PermKickMembers,
	PermManageMessages,
	PermTextToSpeech,
}

// ValidPermission reports whether id names a known permission.
func ValidPermission(id string) bool {
	for _, p := range AllPermissions {
		if p == id {
			return true
		}
	}
	return false
}

// RolePermission holds the permission set of one community role.
type RolePermission struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CommunityID uint      `json:"community_id" gorm:"index:idx_community_role,priority:1"`
	Role        string    `json:"role" gorm:"index:idx_community_role,priority:2"`
	Permissions string    `json:"-"` // JSON array of permission IDs
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (rp *RolePermission) PermissionIDs() []string {
	return decodeStringSet(rp.Permissions)
}

func (rp *RolePermission) SetPermissionIDs(ids []string) {
	rp.Permissions = encodeStringSet(ids)
}

func (rp *RolePermission) Grants(permission string) bool {
	for _, p := range rp.PermissionIDs() {
		if p == permission {
			return true
		}
	}
	return false
}

// RoleAssignment binds a user to a community role. Assignments may
// only reference roles that exist on the community; deleting a role
// cascades over its assignments.
type RoleAssignment struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CommunityID uint      `json:"community_id" gorm:"index:idx_assign_user,priority:1"`
	UserID      uint      `json:"user_id" gorm:"index:idx_assign_user,priority:2"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
