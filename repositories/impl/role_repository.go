package impl

import (
	"PelicanChat/models"

	"gorm.io/gorm"
)

type RoleRepositoryImpl struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepositoryImpl {
	return &RoleRepositoryImpl{DB: db}
}

func (r *RoleRepositoryImpl) UserRoles(communityID, userID uint) ([]string, error) {
	var roles []string
	err := r.DB.Model(&models.RoleAssignment{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Pluck("role", &roles).Error
	return roles, err
}

func (r *RoleRepositoryImpl) FindAssignment(communityID, userID uint, role string) (models.RoleAssignment, error) {
	var assignment models.RoleAssignment
	err := r.DB.
		Where("community_id = ? AND user_id = ? AND role = ?", communityID, userID, role).
		First(&assignment).Error
	return assignment, err
}

func (r *RoleRepositoryImpl) SaveAssignment(assignment *models.RoleAssignment) error {
	return r.DB.Save(assignment).Error
}

func (r *RoleRepositoryImpl) DeleteAssignment(communityID, userID uint, role string) error {
	return r.DB.
		Where("community_id = ? AND user_id = ? AND role = ?", communityID, userID, role).
		Delete(&models.RoleAssignment{}).Error
}

func (r *RoleRepositoryImpl) DeleteAssignmentsByRole(communityID uint, role string) error {
	return r.DB.
		Where("community_id = ? AND role = ?", communityID, role).
		Delete(&models.RoleAssignment{}).Error
}

func (r *RoleRepositoryImpl) CountAssignments(communityID uint, role string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.RoleAssignment{}).
		Where("community_id = ? AND role = ?", communityID, role).
		Count(&count).Error
	return count, err
}

func (r *RoleRepositoryImpl) FindPermission(communityID uint, role string) (models.RolePermission, error) {
	var permission models.RolePermission
	err := r.DB.
		Where("community_id = ? AND role = ?", communityID, role).
		First(&permission).Error
	return permission, err
}

func (r *RoleRepositoryImpl) SavePermission(permission *models.RolePermission) error {
	return r.DB.Save(permission).Error
}

func (r *RoleRepositoryImpl) DeletePermissionsByRole(communityID uint, role string) error {
	return r.DB.
		Where("community_id = ? AND role = ?", communityID, role).
		Delete(&models.RolePermission{}).Error
}
