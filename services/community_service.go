package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const inviteLinkTTL = 7 * 24 * time.Hour

type CommunityService struct {
	CommunityRepo repositories.CommunityRepository
	ChannelRepo   repositories.ChannelRepository
	MessageRepo   repositories.MessageRepository
	Permissions   *PermissionService
}

func NewCommunityService(
	communityRepo repositories.CommunityRepository,
	channelRepo repositories.ChannelRepository,
	messageRepo repositories.MessageRepository,
	permissions *PermissionService,
) *CommunityService {
	return &CommunityService{
		CommunityRepo: communityRepo,
		ChannelRepo:   channelRepo,
		MessageRepo:   messageRepo,
		Permissions:   permissions,
	}
}

// CreateCommunity makes ownerID the owner and seeds a default text
// channel so the space is usable immediately.
func (s *CommunityService) CreateCommunity(ownerID uint, name, category, imageRef string) (*models.Community, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: community name cannot be empty", ErrValidation)
	}

	community := &models.Community{
		Name:     name,
		Category: category,
		ImageRef: imageRef,
		Status:   models.CommunityOpen,
		OwnerID:  ownerID,
	}
	if err := s.CommunityRepo.Save(community); err != nil {
		return nil, err
	}

	general := &models.Channel{
		CommunityID: community.ID,
		Name:        "general",
		Type:        models.ChannelText,
		CreatorID:   ownerID,
		VisibleType: models.VisibleEveryone,
	}
	if err := s.ChannelRepo.Save(general); err != nil {
		return nil, err
	}

	return community, nil
}

// GenerateInviteLink mints a fresh link, replacing any previous one.
// Only the owner or a MANAGE_SERVER holder may mint.
func (s *CommunityService) GenerateInviteLink(actorID, communityID uint) (string, error) {
	ok, err := s.Permissions.HasPermission(communityID, actorID, models.PermManageServer)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: cannot manage this community", ErrUnauthorized)
	}

	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return "", err
	}

	expires := time.Now().Add(inviteLinkTTL)
	community.InviteLink = uuid.NewString()
	community.InviteLinkExpires = &expires
	if err := s.CommunityRepo.Save(&community); err != nil {
		return "", err
	}
	return community.InviteLink, nil
}

// JoinByInvite adds the actor as a member via a live invite link.
// Expired or unknown links fail the same way, so links do not leak
// community existence.
func (s *CommunityService) JoinByInvite(actorID uint, link string) (*models.Community, error) {
	community, err := s.CommunityRepo.FindByInviteLink(link)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invite link", ErrNotFound)
		}
		return nil, err
	}
	if !community.InviteLinkValid() {
		return nil, fmt.Errorf("%w: invite link", ErrNotFound)
	}
	if community.HasMember(actorID) {
		return nil, fmt.Errorf("%w: already a member", ErrConflict)
	}

	community.AddMember(actorID)
	if err := s.CommunityRepo.Save(&community); err != nil {
		return nil, err
	}
	return &community, nil
}

// KickMember removes a member. The owner cannot be kicked.
func (s *CommunityService) KickMember(actorID, communityID, targetID uint) error {
	ok, err := s.Permissions.HasPermission(communityID, actorID, models.PermKickMembers)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot kick members", ErrUnauthorized)
	}

	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return err
	}
	if targetID == community.OwnerID {
		return fmt.Errorf("%w: cannot kick the owner", ErrValidation)
	}
	if !community.HasMember(targetID) {
		return fmt.Errorf("%w: user %d is not a member", ErrNotFound, targetID)
	}

	community.RemoveMember(targetID)
	return s.CommunityRepo.Save(&community)
}

// CreateChannel requires MANAGE_CHANNELS or ownership. Role-gated
// channels may only reference roles the community has.
func (s *CommunityService) CreateChannel(actorID, communityID uint, name, channelType, visibleType string, visibleRoles []string) (*models.Channel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: channel name cannot be empty", ErrValidation)
	}
	if channelType != models.ChannelText && channelType != models.ChannelVoice {
		return nil, fmt.Errorf("%w: unknown channel type %q", ErrValidation, channelType)
	}
	if visibleType != models.VisibleEveryone && visibleType != models.VisibleRoles {
		return nil, fmt.Errorf("%w: unknown visibility %q", ErrValidation, visibleType)
	}

	ok, err := s.Permissions.HasPermission(communityID, actorID, models.PermManageChannels)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot manage channels", ErrUnauthorized)
	}

	if visibleType == models.VisibleRoles {
		if err := s.checkRolesExist(communityID, visibleRoles); err != nil {
			return nil, err
		}
	}

	channel := &models.Channel{
		CommunityID: communityID,
		Name:        name,
		Type:        channelType,
		CreatorID:   actorID,
		VisibleType: visibleType,
	}
	if visibleType == models.VisibleRoles {
		channel.SetVisibleRoleNames(visibleRoles)
	}
	if err := s.ChannelRepo.Save(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// UpdateChannelVisibility switches a channel between open and
// role-gated.
func (s *CommunityService) UpdateChannelVisibility(actorID, channelID uint, visibleType string, visibleRoles []string) error {
	if visibleType != models.VisibleEveryone && visibleType != models.VisibleRoles {
		return fmt.Errorf("%w: unknown visibility %q", ErrValidation, visibleType)
	}

	channel, err := s.ChannelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: channel %d", ErrNotFound, channelID)
		}
		return err
	}

	ok, err := s.Permissions.HasPermission(channel.CommunityID, actorID, models.PermManageChannels)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot manage channels", ErrUnauthorized)
	}

	channel.VisibleType = visibleType
	if visibleType == models.VisibleRoles {
		if err := s.checkRolesExist(channel.CommunityID, visibleRoles); err != nil {
			return err
		}
		channel.SetVisibleRoleNames(visibleRoles)
	} else {
		channel.SetVisibleRoleNames(nil)
	}
	return s.ChannelRepo.Save(&channel)
}

// DeleteChannel removes the channel and its messages.
func (s *CommunityService) DeleteChannel(actorID, channelID uint) error {
	channel, err := s.ChannelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: channel %d", ErrNotFound, channelID)
		}
		return err
	}

	ok, err := s.Permissions.HasPermission(channel.CommunityID, actorID, models.PermManageChannels)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot manage channels", ErrUnauthorized)
	}

	if err := s.MessageRepo.DeleteByScope(models.ScopeChannel, channelID); err != nil {
		return err
	}
	return s.ChannelRepo.Delete(channelID)
}

// ListChannels returns the community's channels the actor can see.
func (s *CommunityService) ListChannels(actorID, communityID uint) ([]models.Channel, error) {
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

	channels, err := s.ChannelRepo.ListByCommunity(communityID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Channel, 0, len(channels))
	for _, channel := range channels {
		ok, err := s.Permissions.CanAccessChannel(channel, actorID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, channel)
		}
	}
	return visible, nil
}

// PinMessage pins one message per channel. Pinning over an existing
// pin is a conflict; callers unpin first.
func (s *CommunityService) PinMessage(actorID, channelID, messageID uint) error {
	channel, err := s.ChannelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: channel %d", ErrNotFound, channelID)
		}
		return err
	}

	ok, err := s.Permissions.HasPermission(channel.CommunityID, actorID, models.PermManageMessages)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot manage messages", ErrUnauthorized)
	}

	if channel.PinnedMessageID != nil {
		return fmt.Errorf("%w: channel already has a pinned message", ErrConflict)
	}

	message, err := s.MessageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
		}
		return err
	}
	if message.ScopeType != models.ScopeChannel || message.ScopeID != channelID {
		return fmt.Errorf("%w: message does not belong to this channel", ErrValidation)
	}

	channel.PinnedMessageID = &messageID
	return s.ChannelRepo.Save(&channel)
}

// UnpinMessage clears the channel's pin.
func (s *CommunityService) UnpinMessage(actorID, channelID uint) error {
	channel, err := s.ChannelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: channel %d", ErrNotFound, channelID)
		}
		return err
	}

	ok, err := s.Permissions.HasPermission(channel.CommunityID, actorID, models.PermManageMessages)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot manage messages", ErrUnauthorized)
	}

	if channel.PinnedMessageID == nil {
		return fmt.Errorf("%w: channel has no pinned message", ErrConflict)
	}

	channel.PinnedMessageID = nil
	return s.ChannelRepo.Save(&channel)
}

func (s *CommunityService) checkRolesExist(communityID uint, roles []string) error {
	community, err := s.CommunityRepo.FindByID(communityID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if !community.HasRole(role) {
			return fmt.Errorf("%w: role %q", ErrNotFound, role)
		}
	}
	return nil
}
