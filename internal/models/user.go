package models

import "gorm.io/gorm"

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user of the store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(16);default:user" validate:"omitempty,oneof=user admin"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthUser is the authenticated actor resolved from a request by the auth
// middleware. It carries everything the services need for authorization.
type AuthUser struct {
	ID   string `json:"user_id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a AuthUser) IsAdmin() bool {
	return a.Role == RoleAdmin
}
