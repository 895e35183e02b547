package impl

import (
	"PelicanChat/models"

	"gorm.io/gorm"
)

type FriendRequestRepositoryImpl struct {
	DB *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepositoryImpl {
	return &FriendRequestRepositoryImpl{DB: db}
}

func (r *FriendRequestRepositoryImpl) Save(request *models.FriendRequest) error {
	return r.DB.Save(request).Error
}

func (r *FriendRequestRepositoryImpl) FindByID(requestID uint) (models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.DB.First(&request, requestID).Error
	return request, err
}

func (r *FriendRequestRepositoryImpl) FindBySenderAndReceiver(senderID, receiverID uint) (models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.DB.
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		First(&request).Error
	return request, err
}

func (r *FriendRequestRepositoryImpl) PendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.DB.
		Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *FriendRequestRepositoryImpl) Delete(requestID uint) error {
	return r.DB.Delete(&models.FriendRequest{}, requestID).Error
}
