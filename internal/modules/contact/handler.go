package contact

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/pkg/pagination"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"go.uber.org/zap"
)

// Handler handles contact HTTP requests.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterPublicRoutes mounts the contact-form endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit)
}

// RegisterAdminRoutes mounts the inbox. Admin only: submissions carry
// visitor PII that authors have no business reading.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	contacts := rg.Group("/contacts", adminMW)
	contacts.GET("", h.adminList)
	contacts.GET("/:id", h.adminGet)
	contacts.PUT("/:id/status", h.updateStatus)
	contacts.DELETE("/:id", h.delete)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	m, err := h.svc.Submit(&dto)
	if err != nil {
		if _, ok := validate.AsError(err); ok {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidEmail) {
			response.BadRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.Created(c, "message received", gin.H{"id": m.ID})
}

func (h *Handler) adminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, pag, stats, err := h.svc.AdminList(pagination.FromContext(c), q)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.List(c, items, pag, stats)
}

func (h *Handler) adminGet(c *gin.Context) {
	m, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var dto UpdateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	m, err := h.svc.UpdateStatus(c.Param("id"), dto.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, ErrInvalidStatus):
			response.BadRequest(c, err.Error())
		default:
			h.fail(c, err)
		}
		return
	}
	response.OK(c, m)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("contact handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
