package services

import (
	"errors"
	"fmt"
	"sort"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"gorm.io/gorm"
)

type ConversationService struct {
	ConversationRepo repositories.ConversationRepository
	UserRepo         repositories.UserRepository
	MessageRepo      repositories.MessageRepository
}

func NewConversationService(
	conversationRepo repositories.ConversationRepository,
	userRepo repositories.UserRepository,
	messageRepo repositories.MessageRepository,
) *ConversationService {
	return &ConversationService{
		ConversationRepo: conversationRepo,
		UserRepo:         userRepo,
		MessageRepo:      messageRepo,
	}
}

// StartConversation returns the conversation for a participant set,
// creating it when none exists. Participants are stored sorted so the
// lookup is canonical regardless of who initiates.
func (s *ConversationService) StartConversation(actorID uint, participantIDs []uint) (*models.Conversation, error) {
	ids := append([]uint{actorID}, participantIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	ids = dedupeIDs(ids)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: conversation needs at least two participants", ErrValidation)
	}

	for _, id := range ids {
		if id == actorID {
			continue
		}
		if _, err := s.UserRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
			}
			return nil, err
		}
	}

	probe := models.Conversation{}
	probe.SetParticipantIDs(ids)

	existing, err := s.ConversationRepo.FindByParticipants(probe.Participants)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation := &models.Conversation{Participants: probe.Participants}
	if err := s.ConversationRepo.Save(conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// ConversationSummary is one row of a user's conversation list.
type ConversationSummary struct {
	Conversation models.Conversation    `json:"conversation"`
	Others       []models.PublicProfile `json:"others"`
	UnreadCount  int64                  `json:"unread_count"`
	IsArchived   bool                   `json:"is_archived"`
}

// ListForUser returns the actor's conversations newest-activity first,
// with the other participants' profiles and unread counts attached.
func (s *ConversationService) ListForUser(actorID uint, storage *StorageService) ([]ConversationSummary, error) {
	conversations, err := s.ConversationRepo.ListForUser(actorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		others := make([]uint, 0)
		for _, id := range conversation.ParticipantIDs() {
			if id != actorID {
				others = append(others, id)
			}
		}
		users, err := s.UserRepo.FindByIDs(others)
		if err != nil {
			return nil, err
		}
		profiles := make([]models.PublicProfile, 0, len(users))
		for _, u := range users {
			profiles = append(profiles, u.Profile(storage.ResolveURL(u.ImageRef)))
		}

		uc, err := s.ConversationRepo.FindUserConversation(actorID, conversation.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		unread, err := s.MessageRepo.CountUnread(conversation.ID, actorID, uc.LastReadAt)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, ConversationSummary{
			Conversation: conversation,
			Others:       profiles,
			UnreadCount:  unread,
			IsArchived:   uc.IsArchived,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Conversation.LastMessageAt.After(summaries[j].Conversation.LastMessageAt)
	})
	return summaries, nil
}

// SetArchived flips the actor's archive flag for one conversation.
func (s *ConversationService) SetArchived(actorID, conversationID uint, archived bool) error {
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
	uc.IsArchived = archived
	return s.ConversationRepo.SaveUserConversation(&uc)
}

func dedupeIDs(sorted []uint) []uint {
	out := sorted[:0]
	var last uint
	for i, id := range sorted {
		if i == 0 || id != last {
			out = append(out, id)
		}
		last = id
	}
	return out
}
