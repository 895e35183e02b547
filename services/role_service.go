package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"gorm.io/gorm"
)

type RoleService struct {
	CommunityRepo repositories.CommunityRepository
	RoleRepo      repositories.RoleRepository
	ChannelRepo   repositories.ChannelRepository
	Permissions   *PermissionService
}

func NewRoleService(
	communityRepo repositories.CommunityRepository,
	roleRepo repositories.RoleRepository,
	channelRepo repositories.ChannelRepository,
	permissions *PermissionService,
) *RoleService {
	return &RoleService{
		CommunityRepo: communityRepo,
		RoleRepo:      roleRepo,
		ChannelRepo:   channelRepo,
		Permissions:   permissions,
	}
}

func (s *RoleService) requireManageRoles(communityID, actorID uint) error {
	ok, err := s.Permissions.HasPermission(communityID, actorID, models.PermManageRoles)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot manage roles", ErrUnauthorized)
	}
	return nil
}

// CreateRole registers a role name on the community with an empty
// permission set.
func (s *RoleService) CreateRole(actorID, communityID uint, role string) error {
	if strings.TrimSpace(role) == "" {
		return fmt.Errorf("%w: role name cannot be empty", ErrValidation)
	}
	if err := s.requireManageRoles(communityID, actorID); err != nil {
		return err
	}

	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return err
	}
	if community.HasRole(role) {
		return fmt.Errorf("%w: role %q already exists", ErrConflict, role)
	}

	community.AddRole(role)
	if err := s.CommunityRepo.Save(&community); err != nil {
		return err
	}

	rp := &models.RolePermission{CommunityID: communityID, Role: role}
	rp.SetPermissionIDs(nil)
	return s.RoleRepo.SavePermission(rp)
}

// DeleteRole removes the role and everything hanging off it: its
// assignments, its permission set, and its entries in channel
// visibility lists. Channels left with an empty role list stay
// role-gated and owner-only until reconfigured.
func (s *RoleService) DeleteRole(actorID, communityID uint, role string) error {
	if err := s.requireManageRoles(communityID, actorID); err != nil {
		return err
	}

	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return err
	}
	if !community.HasRole(role) {
		return fmt.Errorf("%w: role %q", ErrNotFound, role)
	}

	assigned, err := s.RoleRepo.CountAssignments(communityID, role)
	if err != nil {
		return err
	}
	if assigned > 0 {
		log.Printf("[Roles] Deleting role %q from community %d, held by %d members", role, communityID, assigned)
	}

	if err := s.RoleRepo.DeleteAssignmentsByRole(communityID, role); err != nil {
		return err
	}
	if err := s.RoleRepo.DeletePermissionsByRole(communityID, role); err != nil {
		return err
	}

	channels, err := s.ChannelRepo.ListByCommunity(communityID)
	if err != nil {
		return err
	}
	for i := range channels {
		if channels[i].StripRole(role) {
			if err := s.ChannelRepo.Save(&channels[i]); err != nil {
				return err
			}
		}
	}

	community.RemoveRole(role)
	return s.CommunityRepo.Save(&community)
}

// AssignRole binds a member to an existing role. Assigning a role the
// user already holds is a conflict.
func (s *RoleService) AssignRole(actorID, communityID, userID uint, role string) error {
	if err := s.requireManageRoles(communityID, actorID); err != nil {
		return err
	}

	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return err
	}
	if !community.HasRole(role) {
		return fmt.Errorf("%w: role %q", ErrNotFound, role)
	}
	if !community.HasMember(userID) {
		return fmt.Errorf("%w: user %d is not a member", ErrNotFound, userID)
	}

	_, err = s.RoleRepo.FindAssignment(communityID, userID, role)
	if err == nil {
		return fmt.Errorf("%w: user already holds role %q", ErrConflict, role)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.RoleRepo.SaveAssignment(&models.RoleAssignment{
		CommunityID: communityID,
		UserID:      userID,
		Role:        role,
	})
}

// UnassignRole removes one role from one member.
func (s *RoleService) UnassignRole(actorID, communityID, userID uint, role string) error {
	if err := s.requireManageRoles(communityID, actorID); err != nil {
		return err
	}

	if _, err := s.RoleRepo.FindAssignment(communityID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user does not hold role %q", ErrNotFound, role)
		}
		return err
	}
	return s.RoleRepo.DeleteAssignment(communityID, userID, role)
}

// SetRolePermissions replaces the role's permission set. Unknown
// permission IDs are rejected, not silently dropped.
func (s *RoleService) SetRolePermissions(actorID, communityID uint, role string, permissions []string) error {
	if err := s.requireManageRoles(communityID, actorID); err != nil {
		return err
	}

	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return err
	}
	if !community.HasRole(role) {
		return fmt.Errorf("%w: role %q", ErrNotFound, role)
	}

	for _, p := range permissions {
		if !models.ValidPermission(p) {
			return fmt.Errorf("%w: unknown permission %q", ErrValidation, p)
		}
	}

	rp, err := s.RoleRepo.FindPermission(communityID, role)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rp = models.RolePermission{CommunityID: communityID, Role: role}
	}
	rp.SetPermissionIDs(permissions)
	return s.RoleRepo.SavePermission(&rp)
}

// RolePermissions returns the permission set of one role, for members.
func (s *RoleService) RolePermissions(actorID, communityID uint, role string) ([]string, error) {
	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: community %d", ErrNotFound, communityID)
		}
		return nil, err
	}
	if !community.HasMember(actorID) {
		return nil, fmt.Errorf("%w: not a member", ErrUnauthorized)
	}
	if !community.HasRole(role) {
		return nil, fmt.Errorf("%w: role %q", ErrNotFound, role)
	}

	rp, err := s.RoleRepo.FindPermission(communityID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rp.PermissionIDs(), nil
}
