package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/middleware"
	"github.com/metadots/core/internal/pkg/pagination"
	pkgredis "github.com/metadots/core/internal/pkg/redis"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"go.uber.org/zap"
)

// Handler handles project HTTP requests.
type Handler struct {
	svc *Service
	rc  *pkgredis.Client
	log *zap.Logger
}

func NewHandler(svc *Service, rc *pkgredis.Client, log *zap.Logger) *Handler {
	return &Handler{svc: svc, rc: rc, log: log}
}

// RegisterPublicRoutes mounts the portfolio read path.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.GET("", h.publicList)
	projects.GET("/:slug", h.publicGet)
	projects.POST("/:id/like", h.like)
	projects.POST("/:id/share", h.share)
}

// RegisterAdminRoutes mounts the dashboard CRUD surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	projects := rg.Group("/projects", authMW)
	projects.GET("", h.adminList)
	projects.POST("", h.create)
	projects.GET("/:id", h.adminGet)
	projects.PUT("/:id", h.update)
	projects.DELETE("/:id", h.delete)
}

func (h *Handler) adminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, pag, stats, err := h.svc.AdminList(middleware.CurrentUser(c), pagination.FromContext(c), q)
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

func (h *Handler) create(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Create(middleware.CurrentUser(c), &dto)
	if err != nil {
		if _, ok := validate.AsError(err); ok {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.Created(c, "project created", p)
}

func (h *Handler) adminGet(c *gin.Context) {
	p, err := h.svc.GetForCaller(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Update(middleware.CurrentUser(c), c.Param("id"), &dto)
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
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) publicList(c *gin.Context) {
	var q PublicListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	projects, err := h.svc.PublicList(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]publicProject, len(projects))
	for i, p := range projects {
		items[i] = toPublic(&p)
	}
	response.OK(c, gin.H{"items": items})
}

func (h *Handler) publicGet(c *gin.Context) {
	p, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	if h.shouldCountView(c, p.ID) {
		go h.countView(p.ID)
	}
	response.OK(c, toPublic(p))
}

func (h *Handler) like(c *gin.Context)  { h.bump(c, "stat_likes") }
func (h *Handler) share(c *gin.Context) { h.bump(c, "stat_shares") }

func (h *Handler) bump(c *gin.Context, column string) {
	if err := h.svc.IncrementCounter(c.Param("id"), column); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) countView(id string) {
	if err := h.svc.IncrementCounter(id, "stat_views"); err != nil {
		h.log.Warn("project view count", zap.Error(err), zap.String("id", id))
	}
}

func (h *Handler) shouldCountView(c *gin.Context, id string) bool {
	if h.rc == nil {
		return true
	}
	key := fmt.Sprintf("md:viewed:projects:%s:%s:%s", id, c.ClientIP(), time.Now().Format("2006-01-02"))
	ok, err := h.rc.Once(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		return true
	}
	return ok
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("project handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
