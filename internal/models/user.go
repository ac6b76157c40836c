package models

import "gorm.io/gorm"

// Session is the authenticated user's identity as held by the client.
// AuthToken is never serialized back to the API; it travels in the
// Authorization header only.
type Session struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	AuthToken string `json:"-"`
}

// User is the account entity persisted by the backend.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName  string `json:"firstName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	LastName   string `json:"lastName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Session projects the persisted user into the client-facing identity.
func (u *User) Session() Session {
	return Session{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// AuthResponse is the body returned by login and register: the session
// identity plus a bearer token.
type AuthResponse struct {
	User  Session `json:"user"`
	Token string  `json:"token"`
}

// LoginRequest is the credentials payload for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /users/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}
