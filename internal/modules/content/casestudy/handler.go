package casestudy

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

// Handler handles case study HTTP requests.
type Handler struct {
	svc *Service
	rc  *pkgredis.Client
	log *zap.Logger
}

func NewHandler(svc *Service, rc *pkgredis.Client, log *zap.Logger) *Handler {
	return &Handler{svc: svc, rc: rc, log: log}
}

// RegisterPublicRoutes mounts the case study read path.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	studies := rg.Group("/case-studies")
	studies.GET("", h.publicList)
	studies.GET("/:slug", h.publicGet)
	studies.POST("/:id/like", h.like)
	studies.POST("/:id/share", h.share)
	studies.POST("/:id/download", h.download)
}

// RegisterAdminRoutes mounts the dashboard CRUD surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	studies := rg.Group("/case-studies", authMW)
	studies.GET("", h.adminList)
	studies.POST("", h.create)
	studies.GET("/:id", h.adminGet)
	studies.PUT("/:id", h.update)
	studies.DELETE("/:id", h.delete)
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
	var dto CreateCaseStudyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cs, err := h.svc.Create(middleware.CurrentUser(c), &dto)
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
	response.Created(c, "case study created", cs)
}

func (h *Handler) adminGet(c *gin.Context) {
	cs, err := h.svc.GetForCaller(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, cs)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCaseStudyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cs, err := h.svc.Update(middleware.CurrentUser(c), c.Param("id"), &dto)
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
	response.OK(c, cs)
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

	studies, err := h.svc.PublicList(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]publicCaseStudy, len(studies))
	for i, cs := range studies {
		items[i] = toPublic(&cs)
	}
	response.OK(c, gin.H{"items": items})
}

func (h *Handler) publicGet(c *gin.Context) {
	cs, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	if h.shouldCountView(c, cs.ID) {
		go h.countView(cs.ID)
	}
	response.OK(c, toPublic(cs))
}

func (h *Handler) like(c *gin.Context)     { h.bump(c, "stat_likes") }
func (h *Handler) share(c *gin.Context)    { h.bump(c, "stat_shares") }
func (h *Handler) download(c *gin.Context) { h.bump(c, "stat_downloads") }

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
		h.log.Warn("case study view count", zap.Error(err), zap.String("id", id))
	}
}

func (h *Handler) shouldCountView(c *gin.Context, id string) bool {
	if h.rc == nil {
		return true
	}
	key := fmt.Sprintf("md:viewed:case_studies:%s:%s:%s", id, c.ClientIP(), time.Now().Format("2006-01-02"))
	ok, err := h.rc.Once(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		return true
	}
	return ok
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("case study handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
