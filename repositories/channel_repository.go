package repositories

import "PelicanChat/models"

type ChannelRepository interface {
	Save(channel *models.Channel) error
	FindByID(channelID uint) (models.Channel, error)
	ListByCommunity(communityID uint) ([]models.Channel, error)
	Delete(channelID uint) error
}
