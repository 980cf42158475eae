package repositories

import "lapak/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// GetAdmins returns every user holding the admin role. Used by the
	// notification dispatcher for new-order fan-out.
	GetAdmins() ([]models.User, error)
}
