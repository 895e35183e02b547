package services

import (
	"testing"
	"time"

	"PelicanChat/models"
	"PelicanChat/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type communityFixture struct {
	communityRepo *mocks.CommunityRepository
	channelRepo   *mocks.ChannelRepository
	messageRepo   *mocks.MessageRepository
	roleRepo      *mocks.RoleRepository
	service       *CommunityService
}

func newCommunityFixture() *communityFixture {
	f := &communityFixture{
		communityRepo: new(mocks.CommunityRepository),
		channelRepo:   new(mocks.ChannelRepository),
		messageRepo:   new(mocks.MessageRepository),
		roleRepo:      new(mocks.RoleRepository),
	}
	f.service = NewCommunityService(
		f.communityRepo, f.channelRepo, f.messageRepo,
		NewPermissionService(f.communityRepo, f.roleRepo),
	)
	return f
}

func TestCreateCommunitySeedsGeneralChannel(t *testing.T) {
	f := newCommunityFixture()

	f.communityRepo.On("Save", mock.AnythingOfType("*models.Community")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Community).ID = 5
		}).Return(nil)
	f.channelRepo.On("Save", mock.MatchedBy(func(ch *models.Channel) bool {
		return ch.CommunityID == 5 && ch.Name == "general" &&
			ch.Type == models.ChannelText && ch.VisibleType == models.VisibleEveryone
	})).Return(nil)

	community, err := f.service.CreateCommunity(1, "gophers", "tech", "")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), community.OwnerID)
	f.channelRepo.AssertExpectations(t)
}

func TestCreateCommunityEmptyName(t *testing.T) {
	f := newCommunityFixture()

	_, err := f.service.CreateCommunity(1, "  ", "tech", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateInviteLinkRequiresManageServer(t *testing.T) {
	f := newCommunityFixture()

	community := models.Community{ID: 5, OwnerID: 1}
	community.AddMember(2)
	f.communityRepo.On("FindByID", uint(5)).Return(community, nil)
	f.roleRepo.On("UserRoles", uint(5), uint(2)).Return(nil, nil)

	_, err := f.service.GenerateInviteLink(2, 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGenerateInviteLinkSetsExpiry(t *testing.T) {
	f := newCommunityFixture()

	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)
	f.communityRepo.On("Save", mock.MatchedBy(func(c *models.Community) bool {
		return c.InviteLink != "" && c.InviteLinkExpires != nil && c.InviteLinkExpires.After(time.Now())
	})).Return(nil)

	link, err := f.service.GenerateInviteLink(1, 5)
	assert.NoError(t, err)
	assert.NotEmpty(t, link)
}

func TestJoinByExpiredInviteLooksUnknown(t *testing.T) {
	f := newCommunityFixture()

	expired := time.Now().Add(-time.Hour)
	community := models.Community{ID: 5, OwnerID: 1, InviteLink: "dead", InviteLinkExpires: &expired}
	f.communityRepo.On("FindByInviteLink", "dead").Return(community, nil)

	_, err := f.service.JoinByInvite(9, "dead")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinByInviteTwiceConflicts(t *testing.T) {
	f := newCommunityFixture()

	expires := time.Now().Add(time.Hour)
	community := models.Community{ID: 5, OwnerID: 1, InviteLink: "live", InviteLinkExpires: &expires}
	community.AddMember(9)
	f.communityRepo.On("FindByInviteLink", "live").Return(community, nil)

	_, err := f.service.JoinByInvite(9, "live")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestKickOwnerRejected(t *testing.T) {
	f := newCommunityFixture()

	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)

	err := f.service.KickMember(1, 5, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestKickMemberRemovesFromList(t *testing.T) {
	f := newCommunityFixture()

	community := models.Community{ID: 5, OwnerID: 1}
	community.AddMember(2)
	community.AddMember(3)
	f.communityRepo.On("FindByID", uint(5)).Return(community, nil)
	f.communityRepo.On("Save", mock.MatchedBy(func(c *models.Community) bool {
		return !c.HasMember(2) && c.HasMember(3)
	})).Return(nil)

	err := f.service.KickMember(1, 5, 2)
	assert.NoError(t, err)
	f.communityRepo.AssertExpectations(t)
}

func TestCreateChannelUnknownVisibilityRole(t *testing.T) {
	f := newCommunityFixture()

	community := models.Community{ID: 5, OwnerID: 1}
	community.AddRole("Mod")
	f.communityRepo.On("FindByID", uint(5)).Return(community, nil)

	_, err := f.service.CreateChannel(1, 5, "ops", models.ChannelText, models.VisibleRoles, []string{"VIP"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPinMessageSecondPinConflicts(t *testing.T) {
	f := newCommunityFixture()

	pinned := uint(10)
	channel := models.Channel{ID: 3, CommunityID: 5, PinnedMessageID: &pinned}
	f.channelRepo.On("FindByID", uint(3)).Return(channel, nil)
	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)

	err := f.service.PinMessage(1, 3, 11)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPinMessageWrongScopeRejected(t *testing.T) {
	f := newCommunityFixture()

	f.channelRepo.On("FindByID", uint(3)).Return(models.Channel{ID: 3, CommunityID: 5}, nil)
	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)
	f.messageRepo.On("FindByID", uint(11)).
		Return(models.Message{ID: 11, ScopeType: models.ScopeConversation, ScopeID: 3}, nil)

	err := f.service.PinMessage(1, 3, 11)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUnpinWithoutPinConflicts(t *testing.T) {
	f := newCommunityFixture()

	f.channelRepo.On("FindByID", uint(3)).Return(models.Channel{ID: 3, CommunityID: 5}, nil)
	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)

	err := f.service.UnpinMessage(1, 3)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteChannelRemovesMessages(t *testing.T) {
	f := newCommunityFixture()

	f.channelRepo.On("FindByID", uint(3)).Return(models.Channel{ID: 3, CommunityID: 5}, nil)
	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)
	f.messageRepo.On("DeleteByScope", models.ScopeChannel, uint(3)).Return(nil)
	f.channelRepo.On("Delete", uint(3)).Return(nil)

	err := f.service.DeleteChannel(1, 3)
	assert.NoError(t, err)
	f.messageRepo.AssertExpectations(t)
	f.channelRepo.AssertExpectations(t)
}

func TestListChannelsFiltersRoleGated(t *testing.T) {
	f := newCommunityFixture()

	community := models.Community{ID: 5, OwnerID: 1}
	community.AddMember(2)
	f.communityRepo.On("FindByID", uint(5)).Return(community, nil)

	open := models.Channel{ID: 1, CommunityID: 5, Name: "general", VisibleType: models.VisibleEveryone}
	gated := models.Channel{ID: 2, CommunityID: 5, Name: "mods", VisibleType: models.VisibleRoles}
	gated.SetVisibleRoleNames([]string{"Mod"})
	f.channelRepo.On("ListByCommunity", uint(5)).Return([]models.Channel{open, gated}, nil)
	f.roleRepo.On("UserRoles", uint(5), uint(2)).Return(nil, nil)

	visible, err := f.service.ListChannels(2, 5)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, "general", visible[0].Name)
}

func TestListChannelsNonMember(t *testing.T) {
	f := newCommunityFixture()

	f.communityRepo.On("FindByID", uint(5)).Return(models.Community{ID: 5, OwnerID: 1}, nil)

	_, err := f.service.ListChannels(9, 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListChannelsUnknownCommunity(t *testing.T) {
	f := newCommunityFixture()

	f.communityRepo.On("FindByID", uint(77)).Return(models.Community{}, gorm.ErrRecordNotFound)

	_, err := f.service.ListChannels(1, 77)
	assert.ErrorIs(t, err, ErrNotFound)
}
