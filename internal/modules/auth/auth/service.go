package auth

import (
	"errors"
	"time"

	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/jwt"
	"github.com/metadots/core/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers unknown email, wrong password and
// deactivated accounts alike, so responses never leak which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// failureDelay slows down credential guessing.
const failureDelay = 500 * time.Millisecond

// Service handles session business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies credentials and issues a session token.
func (s *Service) Login(dto *LoginDTO) (*LoginResult, error) {
	if err := validate.Missing(dto.missingFields()); err != nil {
		return nil, err
	}

	var user models.UserModel
	err := s.db.First(&user, "email = ?", dto.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		time.Sleep(failureDelay)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		time.Sleep(failureDelay)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		time.Sleep(failureDelay)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, err := jwt.Sign(user.ID, jwt.DefaultTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(jwt.DefaultTTL),
		User:      toSessionUser(&user),
	}, nil
}
