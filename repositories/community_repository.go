package repositories

import "PelicanChat/models"

type CommunityRepository interface {
	Save(community *models.Community) error
	FindByID(communityID uint) (models.Community, error)
	FindByInviteLink(link string) (models.Community, error)
}
