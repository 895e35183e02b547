package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"PelicanChat/models"
	"PelicanChat/repositories"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// mentionScanWindow bounds how far back the feed looks for unread
// mentions in each scope class.
const mentionScanWindow = 100

type NotificationService struct {
	FCMClient         *messaging.Client
	MessageRepo       repositories.MessageRepository
	FriendRequestRepo repositories.FriendRequestRepository
	UserRepo          repositories.UserRepository
}

func NewNotificationService(
	app *firebase.App,
	messageRepo repositories.MessageRepository,
	friendRequestRepo repositories.FriendRequestRepository,
	userRepo repositories.UserRepository,
) (*NotificationService, error) {
	var client *messaging.Client
	if app != nil {
		ctx := context.Background()
		c, err := app.Messaging(ctx)
		if err != nil {
			return nil, fmt.Errorf("error initializing FCM client: %w", err)
		}
		client = c
	}

	return &NotificationService{
		FCMClient:         client,
		MessageRepo:       messageRepo,
		FriendRequestRepo: friendRequestRepo,
		UserRepo:          userRepo,
	}, nil
}

// Feed assembles the actor's notification list on demand: pending
// friend requests plus unread mentions from the recent window of each
// scope class, newest first. Nothing here is stored; items disappear
// when their source record is acknowledged.
func (s *NotificationService) Feed(actorID uint) ([]models.NotificationItem, error) {
	var items []models.NotificationItem

	requests, err := s.FriendRequestRepo.PendingForReceiver(actorID)
	if err != nil {
		return nil, err
	}
	for _, request := range requests {
		sender, err := s.UserRepo.FindByID(request.SenderID)
		if err != nil {
			log.Printf("[Notifications] Skipping request %d, sender lookup failed: %v", request.ID, err)
			continue
		}
		items = append(items, models.NotificationItem{
			Type:       models.NotificationFriendRequest,
			CreatedAt:  request.CreatedAt,
			RequestID:  request.ID,
			SenderName: sender.Name,
			SenderTag:  sender.UserTag,
		})
	}

	for _, scopeType := range []string{models.ScopeConversation, models.ScopeChannel} {
		mentionType := models.NotificationConversationMention
		if scopeType == models.ScopeChannel {
			mentionType = models.NotificationChannelMention
		}

		messages, err := s.MessageRepo.RecentByScopeType(scopeType, mentionScanWindow)
		if err != nil {
			return nil, err
		}
		for _, message := range messages {
			if !message.IsMentioned(actorID) || message.MentionReadBy(actorID) {
				continue
			}
			items = append(items, models.NotificationItem{
				Type:      mentionType,
				CreatedAt: message.Timestamp,
				MessageID: message.ID,
				ScopeID:   message.ScopeID,
				SenderID:  message.SenderID,
				Content:   message.Content,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// PushMention sends an FCM notification for one fresh mention. Users
// without a registered device token are skipped, as is everything when
// no FCM client is configured.
func (s *NotificationService) PushMention(message *models.Message, senderName string) {
	if s.FCMClient == nil {
		return
	}

	for _, userID := range message.MentionIDs() {
		user, err := s.UserRepo.FindByID(userID)
		if err != nil {
			log.Printf("[FCM] Skipping mention push, user %d lookup failed: %v", userID, err)
			continue
		}
		if user.DeviceToken == "" {
			continue
		}

		push := &messaging.Message{
			Notification: &messaging.Notification{
				Title: senderName + " mentioned you",
				Body:  message.Content,
			},
			Data: map[string]string{
				"scope_type": message.ScopeType,
				"scope_id":   strconv.FormatUint(uint64(message.ScopeID), 10),
				"message_id": strconv.FormatUint(uint64(message.ID), 10),
			},
			Token: user.DeviceToken,
		}

		ctx := context.Background()
		resp, err := s.FCMClient.Send(ctx, push)
		if err != nil {
			log.Printf("[FCM] Error sending mention push to user %d: %v", userID, err)
			continue
		}
		log.Printf("[FCM] Mention push sent to user %d. ID: %s", userID, resp)
	}
}

// PushFriendRequest notifies the receiver of a new pending request.
func (s *NotificationService) PushFriendRequest(request *models.FriendRequest, senderName string) {
	if s.FCMClient == nil {
		return
	}

	receiver, err := s.UserRepo.FindByID(request.ReceiverID)
	if err != nil {
		log.Printf("[FCM] Skipping friend request push, receiver lookup failed: %v", err)
		return
	}
	if receiver.DeviceToken == "" {
		return
	}

	push := &messaging.Message{
		Notification: &messaging.Notification{
			Title: "New friend request",
			Body:  senderName + " wants to be your friend",
		},
		Data: map[string]string{
			"request_id": strconv.FormatUint(uint64(request.ID), 10),
		},
		Token: receiver.DeviceToken,
	}

	ctx := context.Background()
	resp, err := s.FCMClient.Send(ctx, push)
	if err != nil {
		log.Printf("[FCM] Error sending friend request push: %v", err)
		return
	}
	log.Printf("[FCM] Friend request push sent. ID: %s", resp)
}
