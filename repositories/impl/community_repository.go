package impl

import (
	"PelicanChat/models"

	"gorm.io/gorm"
)

type CommunityRepositoryImpl struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepositoryImpl {
	return &CommunityRepositoryImpl{DB: db}
}

func (r *CommunityRepositoryImpl) Save(community *models.Community) error {
	return r.DB.Save(community).Error
}

func (r *CommunityRepositoryImpl) FindByID(communityID uint) (models.Community, error) {
	var community models.Community
	err := r.DB.First(&community, communityID).Error
	return community, err
}

func (r *CommunityRepositoryImpl) FindByInviteLink(link string) (models.Community, error) {
	var community models.Community
	err := r.DB.Where("invite_link = ?", link).First(&community).Error
	return community, err
}
