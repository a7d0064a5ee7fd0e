package user

import "clinicbook/models"

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// RegistrationInput carries the signup fields.
type RegistrationInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UserService manages accounts: registration, login, profile and password.
type UserService interface {
	Register(input RegistrationInput) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetProfile(id string) (*models.User, error)
	UpdateProfile(id string, update ProfileUpdate) (*models.User, error)
	ChangePassword(id, currentPassword, newPassword string) error
}
