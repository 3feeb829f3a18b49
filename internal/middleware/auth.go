package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/jwt"
	"github.com/metadots/core/internal/pkg/response"
	"gorm.io/gorm"
)

const ContextKeyUser = "current_user"

// Auth returns a middleware that verifies the bearer token, resolves the
// user and enforces role membership. Fails closed on any verification
// error, a missing or inactive user, or a role outside the permitted set.
func Auth(db *gorm.DB, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user, err := ResolveUser(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			response.Forbidden(c)
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// ResolveUser validates a token and loads the active user it references.
func ResolveUser(db *gorm.DB, rawToken string) (*models.UserModel, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("user is deactivated")
	}
	return &user, nil
}

// CurrentUser extracts the authenticated user from context. Returns nil on
// routes that did not pass through Auth.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	user, _ := v.(*models.UserModel)
	return user
}

func extractToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips the optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
