package job

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

// Handler handles job HTTP requests.
type Handler struct {
	svc *Service
	rc  *pkgredis.Client // optional, dedupes public view counting
	log *zap.Logger
}

func NewHandler(svc *Service, rc *pkgredis.Client, log *zap.Logger) *Handler {
	return &Handler{svc: svc, rc: rc, log: log}
}

// RegisterPublicRoutes mounts the careers-page read path.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	jobs.GET("", h.publicList)
	jobs.GET("/:slug", h.publicGet)
	jobs.POST("/:id/apply", h.apply)
	jobs.POST("/:id/like", h.like)
	jobs.POST("/:id/share", h.share)
}

// RegisterAdminRoutes mounts the dashboard CRUD surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	jobs := rg.Group("/jobs", authMW)
	jobs.GET("", h.adminList)
	jobs.POST("", h.create)
	jobs.GET("/:id", h.adminGet)
	jobs.PUT("/:id", h.update)
	jobs.DELETE("/:id", h.delete)
}

// adminList GET /admin/jobs  [auth]
func (h *Handler) adminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	caller := middleware.CurrentUser(c)
	items, pag, stats, err := h.svc.AdminList(caller, pagination.FromContext(c), q)
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

// create POST /admin/jobs  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto CreateJobDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	j, err := h.svc.Create(middleware.CurrentUser(c), &dto)
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
	response.Created(c, "job created", j)
}

// adminGet GET /admin/jobs/:id  [auth]
func (h *Handler) adminGet(c *gin.Context) {
	j, err := h.svc.GetForCaller(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, j)
}

// update PUT /admin/jobs/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateJobDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	j, err := h.svc.Update(middleware.CurrentUser(c), c.Param("id"), &dto)
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
	response.OK(c, j)
}

// delete DELETE /admin/jobs/:id  [auth]
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

// publicList GET /jobs
func (h *Handler) publicList(c *gin.Context) {
	var q PublicListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	jobs, err := h.svc.PublicList(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]publicJob, len(jobs))
	for i, j := range jobs {
		items[i] = toPublic(&j)
	}
	response.OK(c, gin.H{"items": items})
}

// publicGet GET /jobs/:slug
func (h *Handler) publicGet(c *gin.Context) {
	j, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	if h.shouldCountView(c, j.ID) {
		go h.countView(j.ID)
	}
	response.OK(c, toPublic(j))
}

// apply POST /jobs/:id/apply
func (h *Handler) apply(c *gin.Context) {
	h.bump(c, "stat_applications")
}

// like POST /jobs/:id/like
func (h *Handler) like(c *gin.Context) {
	h.bump(c, "stat_likes")
}

// share POST /jobs/:id/share
func (h *Handler) share(c *gin.Context) {
	h.bump(c, "stat_shares")
}

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

// shouldCountView gates the view counter to one per ip per document per day
// when Redis is available; without Redis every hit counts.
func (h *Handler) countView(id string) {
	if err := h.svc.IncrementCounter(id, "stat_views"); err != nil {
		h.log.Warn("job view count", zap.Error(err), zap.String("id", id))
	}
}

func (h *Handler) shouldCountView(c *gin.Context, id string) bool {
	if h.rc == nil {
		return true
	}
	key := fmt.Sprintf("md:viewed:jobs:%s:%s:%s", id, c.ClientIP(), time.Now().Format("2006-01-02"))
	ok, err := h.rc.Once(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		return true
	}
	return ok
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("job handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
