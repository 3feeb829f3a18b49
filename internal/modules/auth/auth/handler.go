package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/middleware"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"go.uber.org/zap"
)

// Handler handles session HTTP requests.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts login publicly and /auth/me behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/login", h.login)
	grp.GET("/me", authMW, h.me)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Login(&dto)
	if err != nil {
		if _, ok := validate.AsError(err); ok {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c)
			return
		}
		h.log.Error("login", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

func (h *Handler) me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, toSessionUser(user))
}
