package repositories

import "PelicanChat/models"

type UserRepository interface {
	Save(user *models.User) error
	FindByID(userID uint) (models.User, error)
	FindByIDs(userIDs []uint) ([]models.User, error)
	FindByFirebaseUID(firebaseUID string) (models.User, error)
	FindByNameAndTag(name, userTag string) (models.User, error)
}
