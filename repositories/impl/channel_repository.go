package impl

import (
	"PelicanChat/models"

	"gorm.io/gorm"
)

type ChannelRepositoryImpl struct {
	DB *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepositoryImpl {
	return &ChannelRepositoryImpl{DB: db}
}

func (r *ChannelRepositoryImpl) Save(channel *models.Channel) error {
	return r.DB.Save(channel).Error
}

func (r *ChannelRepositoryImpl) FindByID(channelID uint) (models.Channel, error) {
	var channel models.Channel
	err := r.DB.First(&channel, channelID).Error
	return channel, err
}

// ListByCommunity returns text channels before voice channels.
func (r *ChannelRepositoryImpl) ListByCommunity(communityID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.DB.
		Where("community_id = ?", communityID).
		Order("type DESC, id ASC").
		Find(&channels).Error
	return channels, err
}

func (r *ChannelRepositoryImpl) Delete(channelID uint) error {
	return r.DB.Delete(&models.Channel{}, channelID).Error
}
