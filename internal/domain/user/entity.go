package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Accounts are created by registration or minted on first Google
// sign-in (passwordHash empty, googleID set).
type User struct {
	id           uuid.UUID
	name         string
	email        Email
	passwordHash string
	googleID     string
	picture      string
	role         Role
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name string, email Email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func NewGoogleUser(name string, email Email, googleID, picture string) *User {
	return &User{
		id:       uuid.New(),
		name:     name,
		email:    email,
		googleID: googleID,
		picture:  picture,
		role:     RoleCustomer,
		isActive: true,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Name() string          { return u.name }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) GoogleID() string      { return u.googleID }
func (u *User) Picture() string       { return u.picture }
func (u *User) Role() Role            { return u.role }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
