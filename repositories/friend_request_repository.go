package repositories

import "PelicanChat/models"

type FriendRequestRepository interface {
	Save(request *models.FriendRequest) error
	FindByID(requestID uint) (models.FriendRequest, error)
	FindBySenderAndReceiver(senderID, receiverID uint) (models.FriendRequest, error)
	PendingForReceiver(receiverID uint) ([]models.FriendRequest, error)
	Delete(requestID uint) error
}
