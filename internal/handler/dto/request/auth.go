package request

import (
	"metromobiles/internal/domain/user"
	"metromobiles/internal/usecase/commands"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (r *RegisterRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

type GoogleSignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Picture  string `json:"picture"`
	GoogleID string `json:"google_id" binding:"required"`
}

func (r *GoogleSignInRequest) ToProfile() commands.GoogleProfile {
	return commands.GoogleProfile{
		Email:    r.Email,
		Name:     r.Name,
		Picture:  r.Picture,
		GoogleID: r.GoogleID,
	}
}
