package repositories

import "PelicanChat/models"

type RoleRepository interface {
	// UserRoles returns the role names assigned to a user in a
	// community.
	UserRoles(communityID, userID uint) ([]string, error)

	FindAssignment(communityID, userID uint, role string) (models.RoleAssignment, error)
	SaveAssignment(assignment *models.RoleAssignment) error
	DeleteAssignment(communityID, userID uint, role string) error
	DeleteAssignmentsByRole(communityID uint, role string) error
	CountAssignments(communityID uint, role string) (int64, error)

	FindPermission(communityID uint, role string) (models.RolePermission, error)
	SavePermission(permission *models.RolePermission) error
	DeletePermissionsByRole(communityID uint, role string) error
}
