package services

import (
	"testing"

	"PelicanChat/models"
	"PelicanChat/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newRoleService() (*RoleService, *mocks.CommunityRepository, *mocks.RoleRepository, *mocks.ChannelRepository) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	channelRepo := new(mocks.ChannelRepository)
	service := NewRoleService(communityRepo, roleRepo, channelRepo, NewPermissionService(communityRepo, roleRepo))
	return service, communityRepo, roleRepo, channelRepo
}

func TestDeleteRoleCascades(t *testing.T) {
	service, communityRepo, roleRepo, channelRepo := newRoleService()

	community := models.Community{ID: 1, OwnerID: 99}
	community.AddRole("VIP")
	communityRepo.On("FindByID", uint(1)).Return(community, nil)

	gated := models.Channel{ID: 5, CommunityID: 1, VisibleType: models.VisibleRoles}
	gated.SetVisibleRoleNames([]string{"VIP", "Mod"})
	open := models.Channel{ID: 6, CommunityID: 1, VisibleType: models.VisibleEveryone}
	channelRepo.On("ListByCommunity", uint(1)).Return([]models.Channel{gated, open}, nil)

	roleRepo.On("CountAssignments", uint(1), "VIP").Return(int64(2), nil)
	roleRepo.On("DeleteAssignmentsByRole", uint(1), "VIP").Return(nil)
	roleRepo.On("DeletePermissionsByRole", uint(1), "VIP").Return(nil)
	channelRepo.On("Save", mock.MatchedBy(func(c *models.Channel) bool {
		// Only the gated channel is rewritten, with VIP stripped.
		names := c.VisibleRoleNames()
		return c.ID == 5 && len(names) == 1 && names[0] == "Mod"
	})).Return(nil)
	communityRepo.On("Save", mock.MatchedBy(func(c *models.Community) bool {
		return !c.HasRole("VIP")
	})).Return(nil)

	err := service.DeleteRole(99, 1, "VIP")
	assert.NoError(t, err)
	roleRepo.AssertExpectations(t)
	channelRepo.AssertExpectations(t)
	communityRepo.AssertExpectations(t)
}

func TestDeleteRoleUnknown(t *testing.T) {
	service, communityRepo, _, _ := newRoleService()

	communityRepo.On("FindByID", uint(1)).Return(models.Community{ID: 1, OwnerID: 99}, nil)

	err := service.DeleteRole(99, 1, "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRoleDuplicate(t *testing.T) {
	service, communityRepo, _, _ := newRoleService()

	community := models.Community{ID: 1, OwnerID: 99}
	community.AddRole("VIP")
	communityRepo.On("FindByID", uint(1)).Return(community, nil)

	err := service.CreateRole(99, 1, "VIP")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignRoleAlreadyHeld(t *testing.T) {
	service, communityRepo, roleRepo, _ := newRoleService()

	community := models.Community{ID: 1, OwnerID: 99, Members: `[7]`}
	community.AddRole("VIP")
	communityRepo.On("FindByID", uint(1)).Return(community, nil)
	roleRepo.On("FindAssignment", uint(1), uint(7), "VIP").
		Return(models.RoleAssignment{ID: 3, CommunityID: 1, UserID: 7, Role: "VIP"}, nil)

	err := service.AssignRole(99, 1, 7, "VIP")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignRoleNonexistentRole(t *testing.T) {
	service, communityRepo, _, _ := newRoleService()

	communityRepo.On("FindByID", uint(1)).Return(models.Community{ID: 1, OwnerID: 99, Members: `[7]`}, nil)

	err := service.AssignRole(99, 1, 7, "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignRoleRequiresManageRoles(t *testing.T) {
	service, communityRepo, roleRepo, _ := newRoleService()

	communityRepo.On("FindByID", uint(1)).Return(models.Community{ID: 1, OwnerID: 99, Members: `[7,8]`}, nil)
	roleRepo.On("UserRoles", uint(1), uint(8)).Return([]string{}, nil)

	err := service.AssignRole(8, 1, 7, "VIP")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSetRolePermissionsRejectsUnknownID(t *testing.T) {
	service, communityRepo, _, _ := newRoleService()

	community := models.Community{ID: 1, OwnerID: 99}
	community.AddRole("VIP")
	communityRepo.On("FindByID", uint(1)).Return(community, nil)

	err := service.SetRolePermissions(99, 1, "VIP", []string{"FLY_TO_MOON"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetRolePermissionsUpsert(t *testing.T) {
	service, communityRepo, roleRepo, _ := newRoleService()

	community := models.Community{ID: 1, OwnerID: 99}
	community.AddRole("VIP")
	communityRepo.On("FindByID", uint(1)).Return(community, nil)
	roleRepo.On("FindPermission", uint(1), "VIP").Return(models.RolePermission{}, gorm.ErrRecordNotFound)
	roleRepo.On("SavePermission", mock.MatchedBy(func(rp *models.RolePermission) bool {
		return rp.CommunityID == 1 && rp.Role == "VIP" && rp.Grants(models.PermManageMessages)
	})).Return(nil)

	err := service.SetRolePermissions(99, 1, "VIP", []string{models.PermManageMessages})
	assert.NoError(t, err)
	roleRepo.AssertExpectations(t)
}
