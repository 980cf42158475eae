package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := r.db.Create(user).Error; err != nil {
		return models.WrapError(models.KindInternal, "failed to create user", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewError(models.KindNotFound, fmt.Sprintf("user with email %s not found", email))
		}
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to get user by email %s", email), err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewError(models.KindNotFound, fmt.Sprintf("user with ID %s not found", id))
		}
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to get user by ID %s", id), err)
	}
	return &user, nil
}

// GetAdmins retrieves all users with the admin role.
func (r *GORMUserRepository) GetAdmins() ([]models.User, error) {
	var admins []models.User
	if err := r.db.Find(&admins, "role = ?", models.RoleAdmin).Error; err != nil {
		return nil, models.WrapError(models.KindInternal, "failed to get admin users", err)
	}
	return admins, nil
}
