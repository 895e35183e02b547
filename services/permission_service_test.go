package services

import (
	"testing"

	"PelicanChat/models"
	"PelicanChat/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func permissionSet(communityID uint, role string, permissions ...string) models.RolePermission {
	rp := models.RolePermission{CommunityID: communityID, Role: role}
	rp.SetPermissionIDs(permissions)
	return rp
}

func TestHasPermissionUnionAcrossRoles(t *testing.T) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	service := NewPermissionService(communityRepo, roleRepo)

	community := models.Community{ID: 1, OwnerID: 99}
	communityRepo.On("FindByID", uint(1)).Return(community, nil)
	roleRepo.On("UserRoles", uint(1), uint(7)).Return([]string{"Mod", "Helper"}, nil)
	roleRepo.On("FindPermission", uint(1), "Mod").Return(permissionSet(1, "Mod", models.PermManageMessages), nil)
	roleRepo.On("FindPermission", uint(1), "Helper").Return(permissionSet(1, "Helper", models.PermManageChannels), nil)

	// Both grants from the union pass.
	ok, err := service.HasPermission(1, 7, models.PermManageMessages)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.HasPermission(1, 7, models.PermManageChannels)
	assert.NoError(t, err)
	assert.True(t, ok)

	// Anything outside the union fails.
	ok, err = service.HasPermission(1, 7, models.PermManageServer)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionOwnerBypass(t *testing.T) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	service := NewPermissionService(communityRepo, roleRepo)

	community := models.Community{ID: 1, OwnerID: 99}
	communityRepo.On("FindByID", uint(1)).Return(community, nil)

	// The owner passes every permission with zero roles; the role repo
	// is never consulted.
	for _, permission := range models.AllPermissions {
		ok, err := service.HasPermission(1, 99, permission)
		assert.NoError(t, err)
		assert.True(t, ok, permission)
	}
	roleRepo.AssertNotCalled(t, "UserRoles")
}

func TestHasPermissionNoRoles(t *testing.T) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	service := NewPermissionService(communityRepo, roleRepo)

	community := models.Community{ID: 1, OwnerID: 99}
	communityRepo.On("FindByID", uint(1)).Return(community, nil)
	roleRepo.On("UserRoles", uint(1), uint(7)).Return([]string{}, nil)

	ok, err := service.HasPermission(1, 7, models.PermManageMessages)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionRoleWithoutPermissionSet(t *testing.T) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	service := NewPermissionService(communityRepo, roleRepo)

	community := models.Community{ID: 1, OwnerID: 99}
	communityRepo.On("FindByID", uint(1)).Return(community, nil)
	roleRepo.On("UserRoles", uint(1), uint(7)).Return([]string{"New"}, nil)
	roleRepo.On("FindPermission", uint(1), "New").Return(models.RolePermission{}, gorm.ErrRecordNotFound)

	ok, err := service.HasPermission(1, 7, models.PermManageMessages)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAccessChannelRoleGated(t *testing.T) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	service := NewPermissionService(communityRepo, roleRepo)

	community := models.Community{ID: 1, OwnerID: 99, Members: `[7,8]`}
	communityRepo.On("FindByID", uint(1)).Return(community, nil)

	channel := models.Channel{ID: 5, CommunityID: 1, VisibleType: models.VisibleRoles}
	channel.SetVisibleRoleNames([]string{"VIP"})

	// Member without the role is shut out.
	roleRepo.On("UserRoles", uint(1), uint(7)).Return([]string{}, nil)
	ok, err := service.CanAccessChannel(channel, 7)
	assert.NoError(t, err)
	assert.False(t, ok)

	// Member holding the listed role gets in.
	roleRepo.On("UserRoles", uint(1), uint(8)).Return([]string{"VIP"}, nil)
	ok, err = service.CanAccessChannel(channel, 8)
	assert.NoError(t, err)
	assert.True(t, ok)

	// The owner sees role-gated channels regardless.
	ok, err = service.CanAccessChannel(channel, 99)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAccessChannelNonMember(t *testing.T) {
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	service := NewPermissionService(communityRepo, roleRepo)

	community := models.Community{ID: 1, OwnerID: 99, Members: `[7]`}
	communityRepo.On("FindByID", uint(1)).Return(community, nil)

	channel := models.Channel{ID: 5, CommunityID: 1, VisibleType: models.VisibleEveryone}
	ok, err := service.CanAccessChannel(channel, 42)
	assert.NoError(t, err)
	assert.False(t, ok)
}
