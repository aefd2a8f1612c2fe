package repositories

import (
	"errors"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// ExistsByEmail reports whether a user with this email is already registered.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var user models.User
	err := r.db.Select("id").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Role returns the role of the given user, re-read from the database.
func (r *UserRepository) Role(id uint) (int, error) {
	var user models.User
	if err := r.db.Select("role").First(&user, id).Error; err != nil {
		return 0, err
	}
	return user.Role, nil
}
