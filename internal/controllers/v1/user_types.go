package v1

import (
	"errors"
	"strings"

	"github.com/pkoka888/budget-control/internal/models"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name     string `json:"name" example:"morre" default:""`            // Name used for login
	Email    string `json:"email" example:"morre@example.com"`          // Email address
	Password string `json:"password" example:"correct horse battery staple"` // Password, only used on registration
}

func (editable UserEditable) valid() error {
	if strings.TrimSpace(editable.Name) == "" {
		return errors.New("the username must not be empty")
	}

	if !strings.Contains(editable.Email, "@") {
		return errors.New("the email address is invalid")
	}

	if len(editable.Password) < 8 {
		return errors.New("the password must be at least 8 characters long")
	}

	return nil
}

type User struct {
	models.DefaultModel
	Name  string `json:"name" example:"morre"`
	Email string `json:"email" example:"morre@example.com"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Email:        model.Email,
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`                                             // Data for the user
	Error *string `json:"error" example:"the username must not be empty"` // The error, if any occurred
}

type LoginRequest struct {
	Name     string `json:"name" example:"morre"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginData struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."` // Bearer token for the Authorization header
	User  User   `json:"user"`
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`                                                // Token and user data
	Error *string    `json:"error" example:"the username or password is incorrect"` // The error, if any occurred
}
