package auth

import (
	"time"

	"github.com/metadots/core/internal/models"
)

// LoginDTO is the credential payload.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginDTO) missingFields() []string {
	var missing []string
	if d.Email == "" {
		missing = append(missing, "email")
	}
	if d.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

// LoginResult carries the signed token and its subject.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *sessionUser `json:"user"`
}

// sessionUser is the account shape returned to the dashboard.
type sessionUser struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Avatar      string     `json:"avatar"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func toSessionUser(u *models.UserModel) *sessionUser {
	return &sessionUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Avatar:      u.Avatar,
		LastLoginAt: u.LastLoginAt,
	}
}
