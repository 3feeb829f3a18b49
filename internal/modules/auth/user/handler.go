package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/middleware"
	"github.com/metadots/core/internal/pkg/pagination"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"go.uber.org/zap"
)

// Handler handles account management HTTP requests.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the account surface. Admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	users := rg.Group("/users", adminMW)
	users.GET("", h.list)
	users.POST("", h.create)
	users.GET("/:id", h.get)
	users.PUT("/:id", h.update)
	users.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, pag, stats, err := h.svc.List(pagination.FromContext(c), q)
	if err != nil {
		if errors.Is(err, ErrInvalidRole) {
			response.BadRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.List(c, items, pag, stats)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.Create(&dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrWeakPassword):
			response.BadRequest(c, err.Error())
		default:
			if _, ok := validate.AsError(err); ok {
				response.BadRequest(c, err.Error())
				return
			}
			h.fail(c, err)
		}
		return
	}
	response.Created(c, "user created", u)
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.Update(middleware.CurrentUser(c), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, ErrEmailTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrWeakPassword), errors.Is(err, ErrSelfForbidden):
			response.BadRequest(c, err.Error())
		default:
			h.fail(c, err)
		}
		return
	}
	response.OK(c, u)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, ErrSelfForbidden):
			response.BadRequest(c, err.Error())
		default:
			h.fail(c, err)
		}
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("user handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
