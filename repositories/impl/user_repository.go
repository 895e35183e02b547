package impl

import (
	"PelicanChat/models"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{DB: db}
}

func (r *UserRepositoryImpl) Save(user *models.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepositoryImpl) FindByID(userID uint) (models.User, error) {
	var user models.User
	err := r.DB.First(&user, userID).Error
	return user, err
}

func (r *UserRepositoryImpl) FindByIDs(userIDs []uint) ([]models.User, error) {
	var users []models.User
	if len(userIDs) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", userIDs).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindByFirebaseUID(firebaseUID string) (models.User, error) {
	var user models.User
	err := r.DB.Where("firebase_uid = ?", firebaseUID).First(&user).Error
	return user, err
}

func (r *UserRepositoryImpl) FindByNameAndTag(name, userTag string) (models.User, error) {
	var user models.User
	err := r.DB.Where("name = ? AND user_tag = ?", name, userTag).First(&user).Error
	return user, err
}
