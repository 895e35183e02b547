package services

import (
	"errors"
	"fmt"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"gorm.io/gorm"
)

type PermissionService struct {
	CommunityRepo repositories.CommunityRepository
	RoleRepo      repositories.RoleRepository
}

func NewPermissionService(communityRepo repositories.CommunityRepository, roleRepo repositories.RoleRepository) *PermissionService {
	return &PermissionService{
		CommunityRepo: communityRepo,
		RoleRepo:      roleRepo,
	}
}

// HasPermission answers the capability question for one actor in one
// community. The owner passes unconditionally. Everyone else gets the
// union of the permission sets of all roles they hold; additive only,
// there is no deny. Callers re-run this on every mutating request;
// client-side answers are advisory.
func (s *PermissionService) HasPermission(communityID, actorID uint, permission string) (bool, error) {
	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: community %d", ErrNotFound, communityID)
		}
		return false, err
	}

	if community.OwnerID == actorID {
		return true, nil
	}

	roles, err := s.RoleRepo.UserRoles(communityID, actorID)
	if err != nil {
		return false, err
	}

	for _, role := range roles {
		rp, err := s.RoleRepo.FindPermission(communityID, role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // role exists but has no permission set yet
			}
			return false, err
		}
		if rp.Grants(permission) {
			return true, nil
		}
	}

	return false, nil
}

// CanAccessChannel decides channel visibility. Independent of
// HasPermission: a role-gated channel needs one of the listed roles
// (or ownership) regardless of what capabilities those roles grant.
func (s *PermissionService) CanAccessChannel(channel models.Channel, actorID uint) (bool, error) {
	community, err := s.CommunityRepo.FindByID(channel.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: community %d", ErrNotFound, channel.CommunityID)
		}
		return false, err
	}

	if !community.HasMember(actorID) {
		return false, nil
	}

	if !channel.RoleGated() {
		return true, nil
	}

	if community.OwnerID == actorID {
		return true, nil
	}

	roles, err := s.RoleRepo.UserRoles(channel.CommunityID, actorID)
	if err != nil {
		return false, err
	}

	allowed := channel.VisibleRoleNames()
	for _, held := range roles {
		for _, want := range allowed {
			if held == want {
				return true, nil
			}
		}
	}
	return false, nil
}

// IsOwner reports community ownership.
func (s *PermissionService) IsOwner(communityID, actorID uint) (bool, error) {
	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: community %d", ErrNotFound, communityID)
		}
		return false, err
	}
	return community.OwnerID == actorID, nil
}
