package repositories

import (
	"fmt"
	"sync"

	"lapak/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return models.NewError(models.KindValidation, fmt.Sprintf("email %s already registered", user.Email))
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, models.NewError(models.KindNotFound, fmt.Sprintf("user with email %s not found", email))
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, models.NewError(models.KindNotFound, fmt.Sprintf("user with ID %s not found", id))
	}
	return &user, nil
}

// GetAdmins returns all users with the admin role.
func (r *MockUserRepository) GetAdmins() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var admins []models.User
	for _, user := range r.users {
		if user.IsAdmin() {
			admins = append(admins, user)
		}
	}
	return admins, nil
}
