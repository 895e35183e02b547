package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is used when a page request carries no size.
	DefaultPageSize = 20
	maxPageSize     = 100

	searchLimit = 5
)

type ChatService struct {
	MessageRepo      repositories.MessageRepository
	ConversationRepo repositories.ConversationRepository
	ChannelRepo      repositories.ChannelRepository
	CommunityRepo    repositories.CommunityRepository
	UserRepo         repositories.UserRepository
	Permissions      *PermissionService
	Mentions         *MentionService
	Storage          *StorageService
}

func NewChatService(
	messageRepo repositories.MessageRepository,
	conversationRepo repositories.ConversationRepository,
	channelRepo repositories.ChannelRepository,
	communityRepo repositories.CommunityRepository,
	userRepo repositories.UserRepository,
	permissions *PermissionService,
	mentions *MentionService,
	storage *StorageService,
) *ChatService {
	return &ChatService{
		MessageRepo:      messageRepo,
		ConversationRepo: conversationRepo,
		ChannelRepo:      channelRepo,
		CommunityRepo:    communityRepo,
		UserRepo:         userRepo,
		Permissions:      permissions,
		Mentions:         mentions,
		Storage:          storage,
	}
}

// scopeMembers returns the users eligible to read a scope: conversation
// participants, or community members for a channel. Used for both
// membership checks and mention resolution.
func (s *ChatService) scopeMembers(scopeType string, scopeID uint) ([]models.User, error) {
	switch scopeType {
	case models.ScopeConversation:
		conversation, err := s.ConversationRepo.FindByID(scopeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: conversation %d", ErrNotFound, scopeID)
			}
			return nil, err
		}
		return s.UserRepo.FindByIDs(conversation.ParticipantIDs())

	case models.ScopeChannel:
		channel, err := s.ChannelRepo.FindByID(scopeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: channel %d", ErrNotFound, scopeID)
			}
			return nil, err
		}
		community, err := s.CommunityRepo.FindByID(channel.CommunityID)
		if err != nil {
			return nil, err
		}
		memberIDs := community.MemberIDs()
		memberIDs = append(memberIDs, community.OwnerID)
		return s.UserRepo.FindByIDs(memberIDs)

	default:
		return nil, fmt.Errorf("%w: unknown scope type %q", ErrValidation, scopeType)
	}
}

// authorizeSend runs the write-side checks for a scope: membership for
// conversations; text type, membership and visibility for channels.
func (s *ChatService) authorizeSend(scopeType string, scopeID uint, senderID uint) error {
	switch scopeType {
	case models.ScopeConversation:
		conversation, err := s.ConversationRepo.FindByID(scopeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: conversation %d", ErrNotFound, scopeID)
			}
			return err
		}
		if !conversation.HasParticipant(senderID) {
			return fmt.Errorf("%w: not a participant", ErrUnauthorized)
		}
		return nil

	case models.ScopeChannel:
		channel, err := s.ChannelRepo.FindByID(scopeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: channel %d", ErrNotFound, scopeID)
			}
			return err
		}
		if channel.Type != models.ChannelText {
			return fmt.Errorf("%w: cannot send messages to a voice channel", ErrValidation)
		}
		ok, err := s.Permissions.CanAccessChannel(channel, senderID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no access to this channel", ErrUnauthorized)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown scope type %q", ErrValidation, scopeType)
	}
}

// SendMessage validates, authorizes, resolves mentions and appends;
// in that order, so a failed check never leaves partial state.
// Appending to a conversation bumps its recency.
func (s *ChatService) SendMessage(senderID uint, scopeType string, scopeID uint, content, imageRef string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" && imageRef == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", ErrValidation)
	}

	if err := s.authorizeSend(scopeType, scopeID, senderID); err != nil {
		return nil, err
	}

	members, err := s.scopeMembers(scopeType, scopeID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ScopeType: scopeType,
		ScopeID:   scopeID,
		SenderID:  senderID,
		Content:   content,
		ImageRef:  imageRef,
		Timestamp: time.Now(),
	}
	message.SetMentionIDs(s.Mentions.Resolve(content, members, senderID))

	if err := s.MessageRepo.Save(message); err != nil {
		return nil, err
	}

	if scopeType == models.ScopeConversation {
		if err := s.ConversationRepo.Touch(scopeID, message.Timestamp); err != nil {
			// Recency bump is best-effort; the append already happened.
			log.Printf("[Chat] Failed to touch conversation %d: %v", scopeID, err)
		}
	}

	return message, nil
}

// canManageMessage implements the edit/delete rule: the sender always
// may; in channel scopes a MANAGE_MESSAGES holder or the community
// owner may as well. Conversations have no roles, so sender-only.
func (s *ChatService) canManageMessage(message models.Message, actorID uint) (bool, error) {
	if message.SenderID == actorID {
		return true, nil
	}
	if message.ScopeType != models.ScopeChannel {
		return false, nil
	}
	channel, err := s.ChannelRepo.FindByID(message.ScopeID)
	if err != nil {
		return false, err
	}
	return s.Permissions.HasPermission(channel.CommunityID, actorID, models.PermManageMessages)
}

func (s *ChatService) EditMessage(actorID, messageID uint, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: message cannot be empty", ErrValidation)
	}

	message, err := s.MessageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
		}
		return err
	}

	ok, err := s.canManageMessage(message, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot edit this message", ErrUnauthorized)
	}

	// Mentions are fixed at write time; edits change content only.
	message.Content = content
	return s.MessageRepo.Save(&message)
}

func (s *ChatService) DeleteMessage(actorID, messageID uint) error {
	message, err := s.MessageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
		}
		return err
	}

	ok, err := s.canManageMessage(message, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot delete this message", ErrUnauthorized)
	}

	return s.MessageRepo.Delete(messageID)
}

// MarkMentionRead is idempotent: the second call for the same
// message/actor pair is a successful no-op. Actors who are not
// mention targets are rejected, which keeps read_by_mentions a subset
// of mentions.
func (s *ChatService) MarkMentionRead(actorID, messageID uint) error {
	message, err := s.MessageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
		}
		return err
	}

	if !message.IsMentioned(actorID) {
		return fmt.Errorf("%w: not a mention target", ErrUnauthorized)
	}

	if !message.MarkMentionRead(actorID) {
		return nil // already read
	}
	return s.MessageRepo.Save(&message)
}

// CanReadScope reports whether the actor may read a scope. Used by the
// realtime layer before attaching a subscription.
func (s *ChatService) CanReadScope(actorID uint, scopeType string, scopeID uint) error {
	return s.requireScopeMember(scopeType, scopeID, actorID)
}

// requireScopeMember gates read paths.
func (s *ChatService) requireScopeMember(scopeType string, scopeID uint, actorID uint) error {
	members, err := s.scopeMembers(scopeType, scopeID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.ID == actorID {
			return nil
		}
	}
	return fmt.Errorf("%w: not a member of this scope", ErrUnauthorized)
}

// PageMessages serves one ascending window and enriches each item with
// the sender's profile snapshot and a resolved image URL. Pages served
// from the same traversal are disjoint: the cursor pins the position,
// and later appends sort strictly after it.
func (s *ChatService) PageMessages(actorID uint, scopeType string, scopeID uint, cursor string, pageSize int) (Page, error) {
	if err := s.requireScopeMember(scopeType, scopeID, actorID); err != nil {
		return Page{}, err
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	afterTime, afterID, err := decodeCursor(cursor)
	if err != nil {
		return Page{}, err
	}

	messages, err := s.MessageRepo.ListScopePage(scopeType, scopeID, afterTime, afterID, pageSize)
	if err != nil {
		return Page{}, err
	}

	items, err := s.enrich(messages)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Items:      items,
		NextCursor: cursor,
		Done:       len(messages) < pageSize,
	}
	if len(messages) > 0 {
		last := messages[len(messages)-1]
		page.NextCursor = encodeCursor(last.Timestamp, last.ID)
	}
	return page, nil
}

// SearchMessages returns the top matches for a term within a scope.
func (s *ChatService) SearchMessages(actorID uint, scopeType string, scopeID uint, term string) ([]models.PagedMessage, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	if err := s.requireScopeMember(scopeType, scopeID, actorID); err != nil {
		return nil, err
	}

	messages, err := s.MessageRepo.Search(scopeType, scopeID, term, searchLimit)
	if err != nil {
		return nil, err
	}
	return s.enrich(messages)
}

// enrich attaches sender snapshots and image URLs. One user lookup per
// page regardless of how many messages each sender has.
func (s *ChatService) enrich(messages []models.Message) ([]models.PagedMessage, error) {
	senderIDs := make([]uint, 0, len(messages))
	seen := make(map[uint]bool)
	for _, m := range messages {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	senders, err := s.UserRepo.FindByIDs(senderIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uint]models.PublicProfile, len(senders))
	for _, u := range senders {
		profiles[u.ID] = u.Profile(s.Storage.ResolveURL(u.ImageRef))
	}

	items := make([]models.PagedMessage, 0, len(messages))
	for _, m := range messages {
		items = append(items, models.PagedMessage{
			Message:  m,
			Sender:   profiles[m.SenderID],
			ImageURL: s.Storage.ResolveURL(m.ImageRef),
			Mentions: m.MentionIDs(),
			ReadBy:   m.ReadByMentionIDs(),
		})
	}
	return items, nil
}

// MarkConversationRead advances the per-user read position. Distinct
// from mention read tracking.
func (s *ChatService) MarkConversationRead(actorID, conversationID uint) error {
	conversation, err := s.ConversationRepo.FindByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: conversation %d", ErrNotFound, conversationID)
		}
		return err
	}
	if !conversation.HasParticipant(actorID) {
		return fmt.Errorf("%w: not a participant", ErrUnauthorized)
	}

	uc, err := s.ConversationRepo.FindUserConversation(actorID, conversationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	uc.UserID = actorID
	uc.ConversationID = conversationID
	uc.LastReadAt = time.Now()
	return s.ConversationRepo.SaveUserConversation(&uc)
}

// UnreadCount counts messages from others since the actor's read
// position.
func (s *ChatService) UnreadCount(actorID, conversationID uint) (int64, error) {
	conversation, err := s.ConversationRepo.FindByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: conversation %d", ErrNotFound, conversationID)
		}
		return 0, err
	}
	if !conversation.HasParticipant(actorID) {
		return 0, fmt.Errorf("%w: not a participant", ErrUnauthorized)
	}

	uc, err := s.ConversationRepo.FindUserConversation(actorID, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uc.LastReadAt = time.Time{}
		} else {
			return 0, err
		}
	}
	return s.MessageRepo.CountUnread(conversationID, actorID, uc.LastReadAt)
}
