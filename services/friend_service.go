package services

import (
	"errors"
	"fmt"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"gorm.io/gorm"
)

type FriendService struct {
	FriendRequestRepo repositories.FriendRequestRepository
	UserRepo          repositories.UserRepository
}

func NewFriendService(friendRequestRepo repositories.FriendRequestRepository, userRepo repositories.UserRepository) *FriendService {
	return &FriendService{
		FriendRequestRepo: friendRequestRepo,
		UserRepo:          userRepo,
	}
}

// SendRequest targets a user by name and tag. A duplicate pending
// request, an existing friendship, or a self-target all fail fast.
func (s *FriendService) SendRequest(senderID uint, name, userTag string) (*models.FriendRequest, error) {
	receiver, err := s.UserRepo.FindByNameAndTag(name, userTag)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s#%s", ErrNotFound, name, userTag)
		}
		return nil, err
	}
	if receiver.ID == senderID {
		return nil, fmt.Errorf("%w: cannot befriend yourself", ErrValidation)
	}

	sender, err := s.UserRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}
	for _, id := range sender.FriendIDs() {
		if id == receiver.ID {
			return nil, fmt.Errorf("%w: already friends", ErrConflict)
		}
	}

	if _, err := s.FriendRequestRepo.FindBySenderAndReceiver(senderID, receiver.ID); err == nil {
		return nil, fmt.Errorf("%w: request already pending", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	// A pending request in the other direction also blocks: accept that
	// one instead.
	if _, err := s.FriendRequestRepo.FindBySenderAndReceiver(receiver.ID, senderID); err == nil {
		return nil, fmt.Errorf("%w: request already pending", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.FriendRequestPending,
	}
	if err := s.FriendRequestRepo.Save(request); err != nil {
		return nil, err
	}
	return request, nil
}

// AcceptRequest makes the friendship mutual and removes the request.
// Only the receiver may accept.
func (s *FriendService) AcceptRequest(actorID, requestID uint) error {
	request, err := s.FriendRequestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: friend request %d", ErrNotFound, requestID)
		}
		return err
	}
	if request.ReceiverID != actorID {
		return fmt.Errorf("%w: not the receiver of this request", ErrUnauthorized)
	}

	sender, err := s.UserRepo.FindByID(request.SenderID)
	if err != nil {
		return err
	}
	receiver, err := s.UserRepo.FindByID(request.ReceiverID)
	if err != nil {
		return err
	}

	sender.AddFriend(receiver.ID)
	receiver.AddFriend(sender.ID)
	if err := s.UserRepo.Save(&sender); err != nil {
		return err
	}
	if err := s.UserRepo.Save(&receiver); err != nil {
		return err
	}

	return s.FriendRequestRepo.Delete(requestID)
}

// DeclineRequest drops the request without side effects. Only the
// receiver may decline.
func (s *FriendService) DeclineRequest(actorID, requestID uint) error {
	request, err := s.FriendRequestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: friend request %d", ErrNotFound, requestID)
		}
		return err
	}
	if request.ReceiverID != actorID {
		return fmt.Errorf("%w: not the receiver of this request", ErrUnauthorized)
	}
	return s.FriendRequestRepo.Delete(requestID)
}

// ListFriends returns the actor's friends as public profiles.
func (s *FriendService) ListFriends(actorID uint, storage *StorageService) ([]models.PublicProfile, error) {
	actor, err := s.UserRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	friends, err := s.UserRepo.FindByIDs(actor.FriendIDs())
	if err != nil {
		return nil, err
	}
	profiles := make([]models.PublicProfile, 0, len(friends))
	for _, f := range friends {
		profiles = append(profiles, f.Profile(storage.ResolveURL(f.ImageRef)))
	}
	return profiles, nil
}
