package services

import (
	"sort"
	"strings"
	"testing"
	"time"

	"PelicanChat/models"
	"PelicanChat/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// fakeMessageRepo is an in-memory message store with real ordering
// semantics, for tests that exercise pagination traversals.
type fakeMessageRepo struct {
	messages []models.Message
	nextID   uint
}

func (f *fakeMessageRepo) Save(message *models.Message) error {
	if message.ID == 0 {
		f.nextID++
		message.ID = f.nextID
		f.messages = append(f.messages, *message)
		return nil
	}
	for i := range f.messages {
		if f.messages[i].ID == message.ID {
			f.messages[i] = *message
			return nil
		}
	}
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) FindByID(messageID uint) (models.Message, error) {
	for _, m := range f.messages {
		if m.ID == messageID {
			return m, nil
		}
	}
	return models.Message{}, gorm.ErrRecordNotFound
}

func (f *fakeMessageRepo) Delete(messageID uint) error {
	out := f.messages[:0]
	for _, m := range f.messages {
		if m.ID != messageID {
			out = append(out, m)
		}
	}
	f.messages = out
	return nil
}

func (f *fakeMessageRepo) DeleteByScope(scopeType string, scopeID uint) error {
	out := f.messages[:0]
	for _, m := range f.messages {
		if m.ScopeType != scopeType || m.ScopeID != scopeID {
			out = append(out, m)
		}
	}
	f.messages = out
	return nil
}

func (f *fakeMessageRepo) ListScopePage(scopeType string, scopeID uint, afterTime time.Time, afterID uint, limit int) ([]models.Message, error) {
	var in []models.Message
	for _, m := range f.messages {
		if m.ScopeType != scopeType || m.ScopeID != scopeID {
			continue
		}
		if m.Timestamp.After(afterTime) || (m.Timestamp.Equal(afterTime) && m.ID > afterID) {
			in = append(in, m)
		}
	}
	sort.Slice(in, func(i, j int) bool {
		if !in[i].Timestamp.Equal(in[j].Timestamp) {
			return in[i].Timestamp.Before(in[j].Timestamp)
		}
		return in[i].ID < in[j].ID
	})
	if len(in) > limit {
		in = in[:limit]
	}
	return in, nil
}

func (f *fakeMessageRepo) Search(scopeType string, scopeID uint, term string, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.ScopeType == scopeType && m.ScopeID == scopeID &&
			strings.Contains(strings.ToLower(m.Content), strings.ToLower(term)) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMessageRepo) RecentByScopeType(scopeType string, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.ScopeType == scopeType {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMessageRepo) CountUnread(conversationID uint, userID uint, since time.Time) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.ScopeType == models.ScopeConversation && m.ScopeID == conversationID &&
			m.SenderID != userID && m.Timestamp.After(since) {
			n++
		}
	}
	return n, nil
}

func conversationWith(participants ...uint) models.Conversation {
	c := models.Conversation{ID: 1}
	c.SetParticipantIDs(participants)
	return c
}

func newConversationChatService(messageRepo *fakeMessageRepo) (*ChatService, *mocks.ConversationRepository, *mocks.UserRepository) {
	conversationRepo := new(mocks.ConversationRepository)
	userRepo := new(mocks.UserRepository)
	service := NewChatService(
		messageRepo, conversationRepo, new(mocks.ChannelRepository),
		new(mocks.CommunityRepository), userRepo,
		NewPermissionService(new(mocks.CommunityRepository), new(mocks.RoleRepository)),
		NewMentionService(),
		NewStorageService("/tmp/uploads", "http://localhost:8000"),
	)
	return service, conversationRepo, userRepo
}

func TestPageMessagesFullTraversal(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	conversationRepo.On("Touch", uint(1), mock.Anything).Return(nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7, Name: "Grace"}, {ID: 8, Name: "Linus"}}, nil)

	base := time.Now()
	for i := 0; i < 12; i++ {
		messageRepo.Save(&models.Message{
			ScopeType: models.ScopeConversation,
			ScopeID:   1,
			SenderID:  7,
			Content:   "msg",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	// Three windows of 5: 5, 5, 2 with done on the short page.
	page1, err := service.PageMessages(8, models.ScopeConversation, 1, "", 5)
	assert.NoError(t, err)
	assert.Len(t, page1.Items, 5)
	assert.False(t, page1.Done)

	page2, err := service.PageMessages(8, models.ScopeConversation, 1, page1.NextCursor, 5)
	assert.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.False(t, page2.Done)

	page3, err := service.PageMessages(8, models.ScopeConversation, 1, page2.NextCursor, 5)
	assert.NoError(t, err)
	assert.Len(t, page3.Items, 2)
	assert.True(t, page3.Done)

	// Every message exactly once, strictly ascending.
	var all []models.PagedMessage
	all = append(all, page1.Items...)
	all = append(all, page2.Items...)
	all = append(all, page3.Items...)
	assert.Len(t, all, 12)

	seen := make(map[uint]bool)
	for i, item := range all {
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
		if i > 0 {
			prev := all[i-1]
			assert.True(t, item.Timestamp.After(prev.Timestamp) ||
				(item.Timestamp.Equal(prev.Timestamp) && item.ID > prev.ID))
		}
	}
}

func TestPageMessagesSubMicrosecondTimestamps(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7, Name: "Grace"}, {ID: 8, Name: "Linus"}}, nil)

	// 500ns offset: the ordering key does not sit on a microsecond
	// boundary, so any rounding in the cursor would replay the last
	// item of each window.
	base := time.Unix(1700000000, 500)
	for i := 0; i < 5; i++ {
		messageRepo.Save(&models.Message{
			ScopeType: models.ScopeConversation, ScopeID: 1, SenderID: 7,
			Content: "msg", Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	seen := make(map[uint]bool)
	cursor := ""
	for {
		page, err := service.PageMessages(8, models.ScopeConversation, 1, cursor, 2)
		assert.NoError(t, err)
		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "message %d served twice", item.ID)
			seen[item.ID] = true
		}
		if page.Done {
			break
		}
		cursor = page.NextCursor
	}
	assert.Len(t, seen, 5)
}

func TestPageMessagesMidTraversalAppend(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	conversationRepo.On("Touch", uint(1), mock.Anything).Return(nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7, Name: "Grace"}, {ID: 8, Name: "Linus"}}, nil)

	base := time.Now()
	for i := 0; i < 4; i++ {
		messageRepo.Save(&models.Message{
			ScopeType: models.ScopeConversation, ScopeID: 1, SenderID: 7,
			Content: "old", Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	page1, err := service.PageMessages(8, models.ScopeConversation, 1, "", 3)
	assert.NoError(t, err)
	assert.Len(t, page1.Items, 3)

	// An append mid-traversal lands after the cursor, never inside an
	// already-served page.
	messageRepo.Save(&models.Message{
		ScopeType: models.ScopeConversation, ScopeID: 1, SenderID: 8,
		Content: "new", Timestamp: base.Add(10 * time.Second),
	})

	page2, err := service.PageMessages(8, models.ScopeConversation, 1, page1.NextCursor, 3)
	assert.NoError(t, err)
	assert.Len(t, page2.Items, 2)
	assert.Equal(t, "old", page2.Items[0].Content)
	assert.Equal(t, "new", page2.Items[1].Content)
}

func TestPageMessagesMalformedCursor(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7}, {ID: 8}}, nil)

	_, err := service.PageMessages(8, models.ScopeConversation, 1, "not-a-cursor", 5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPageMessagesNonMember(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7}, {ID: 8}}, nil)

	_, err := service.PageMessages(42, models.ScopeConversation, 1, "", 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSendMessageResolvesMentions(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	conversationRepo.On("Touch", uint(1), mock.Anything).Return(nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7, Name: "Grace"}, {ID: 8, Name: "Linus"}}, nil)

	message, err := service.SendMessage(7, models.ScopeConversation, 1, "hi @Linus", "")
	assert.NoError(t, err)
	assert.Equal(t, []uint{8}, message.MentionIDs())
	conversationRepo.AssertCalled(t, "Touch", uint(1), mock.Anything)
}

func TestSendMessageEmptyContentRejected(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, _, _ := newConversationChatService(messageRepo)

	_, err := service.SendMessage(7, models.ScopeConversation, 1, "   ", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, messageRepo.messages)
}

func TestSendMessageImageOnlyAllowed(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	conversationRepo.On("Touch", uint(1), mock.Anything).Return(nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7}, {ID: 8}}, nil)

	message, err := service.SendMessage(7, models.ScopeConversation, 1, "", "ref123.png")
	assert.NoError(t, err)
	assert.Equal(t, "ref123.png", message.ImageRef)
}

func TestSendMessageNonParticipantRejected(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, _ := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)

	_, err := service.SendMessage(42, models.ScopeConversation, 1, "hello", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, messageRepo.messages)
}

func newChannelChatService(messageRepo *fakeMessageRepo) (*ChatService, *mocks.ChannelRepository, *mocks.CommunityRepository, *mocks.RoleRepository, *mocks.UserRepository) {
	channelRepo := new(mocks.ChannelRepository)
	communityRepo := new(mocks.CommunityRepository)
	roleRepo := new(mocks.RoleRepository)
	userRepo := new(mocks.UserRepository)
	service := NewChatService(
		messageRepo, new(mocks.ConversationRepository), channelRepo,
		communityRepo, userRepo,
		NewPermissionService(communityRepo, roleRepo),
		NewMentionService(),
		NewStorageService("/tmp/uploads", "http://localhost:8000"),
	)
	return service, channelRepo, communityRepo, roleRepo, userRepo
}

func TestSendMessageRoleGatedChannelRejected(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, channelRepo, communityRepo, roleRepo, _ := newChannelChatService(messageRepo)

	channel := models.Channel{ID: 5, CommunityID: 1, Type: models.ChannelText, VisibleType: models.VisibleRoles}
	channel.SetVisibleRoleNames([]string{"VIP"})
	channelRepo.On("FindByID", uint(5)).Return(channel, nil)
	communityRepo.On("FindByID", uint(1)).Return(models.Community{ID: 1, OwnerID: 99, Members: `[7]`}, nil)
	roleRepo.On("UserRoles", uint(1), uint(7)).Return([]string{}, nil)

	_, err := service.SendMessage(7, models.ScopeChannel, 5, "let me in", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, messageRepo.messages)
}

func TestSendMessageVoiceChannelRejected(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, channelRepo, _, _, _ := newChannelChatService(messageRepo)

	channel := models.Channel{ID: 5, CommunityID: 1, Type: models.ChannelVoice, VisibleType: models.VisibleEveryone}
	channelRepo.On("FindByID", uint(5)).Return(channel, nil)

	_, err := service.SendMessage(7, models.ScopeChannel, 5, "hello", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteMessageByManageMessagesHolder(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, channelRepo, communityRepo, roleRepo, _ := newChannelChatService(messageRepo)

	messageRepo.Save(&models.Message{
		ScopeType: models.ScopeChannel, ScopeID: 5, SenderID: 7,
		Content: "offensive", Timestamp: time.Now(),
	})

	channel := models.Channel{ID: 5, CommunityID: 1, Type: models.ChannelText, VisibleType: models.VisibleEveryone}
	channelRepo.On("FindByID", uint(5)).Return(channel, nil)
	communityRepo.On("FindByID", uint(1)).Return(models.Community{ID: 1, OwnerID: 99, Members: `[7,8]`}, nil)
	roleRepo.On("UserRoles", uint(1), uint(8)).Return([]string{"Mod"}, nil)
	roleRepo.On("FindPermission", uint(1), "Mod").Return(permissionSet(1, "Mod", models.PermManageMessages), nil)

	// Actor 8 is not the sender but holds MANAGE_MESSAGES.
	err := service.DeleteMessage(8, 1)
	assert.NoError(t, err)
	assert.Empty(t, messageRepo.messages)
}

func TestDeleteMessageWithoutPermissionRejected(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, channelRepo, communityRepo, roleRepo, _ := newChannelChatService(messageRepo)

	messageRepo.Save(&models.Message{
		ScopeType: models.ScopeChannel, ScopeID: 5, SenderID: 7,
		Content: "mine", Timestamp: time.Now(),
	})

	channel := models.Channel{ID: 5, CommunityID: 1, Type: models.ChannelText, VisibleType: models.VisibleEveryone}
	channelRepo.On("FindByID", uint(5)).Return(channel, nil)
	communityRepo.On("FindByID", uint(1)).Return(models.Community{ID: 1, OwnerID: 99, Members: `[7,8]`}, nil)
	roleRepo.On("UserRoles", uint(1), uint(8)).Return([]string{}, nil)

	err := service.DeleteMessage(8, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, messageRepo.messages, 1)
}

func TestEditMessageConversationSenderOnly(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, _, _ := newConversationChatService(messageRepo)

	messageRepo.Save(&models.Message{
		ScopeType: models.ScopeConversation, ScopeID: 1, SenderID: 7,
		Content: "typo", Timestamp: time.Now(),
	})

	assert.NoError(t, service.EditMessage(7, 1, "fixed"))

	err := service.EditMessage(8, 1, "hijack")
	assert.ErrorIs(t, err, ErrUnauthorized)

	stored, _ := messageRepo.FindByID(1)
	assert.Equal(t, "fixed", stored.Content)
}

func TestMarkMentionReadIdempotent(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, _, _ := newConversationChatService(messageRepo)

	message := &models.Message{
		ScopeType: models.ScopeConversation, ScopeID: 1, SenderID: 7,
		Content: "@Linus hi", Timestamp: time.Now(),
	}
	message.SetMentionIDs([]uint{8})
	messageRepo.Save(message)

	assert.NoError(t, service.MarkMentionRead(8, message.ID))
	first, _ := messageRepo.FindByID(message.ID)

	assert.NoError(t, service.MarkMentionRead(8, message.ID))
	second, _ := messageRepo.FindByID(message.ID)

	assert.Equal(t, first.ReadByMentions, second.ReadByMentions)
	assert.Equal(t, []uint{8}, second.ReadByMentionIDs())
}

func TestMarkMentionReadNotMentioned(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, _, _ := newConversationChatService(messageRepo)

	message := &models.Message{
		ScopeType: models.ScopeConversation, ScopeID: 1, SenderID: 7,
		Content: "@Linus hi", Timestamp: time.Now(),
	}
	message.SetMentionIDs([]uint{8})
	messageRepo.Save(message)

	err := service.MarkMentionRead(9, message.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSearchMessagesEmptyTerm(t *testing.T) {
	messageRepo := &fakeMessageRepo{}
	service, conversationRepo, userRepo := newConversationChatService(messageRepo)

	conversationRepo.On("FindByID", uint(1)).Return(conversationWith(7, 8), nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]models.User{{ID: 7}, {ID: 8}}, nil)

	results, err := service.SearchMessages(7, models.ScopeConversation, 1, "  ")
	assert.NoError(t, err)
	assert.Empty(t, results)
}
