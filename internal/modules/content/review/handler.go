package review

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

// Handler handles review HTTP requests.
type Handler struct {
	svc *Service
	rc  *pkgredis.Client
	log *zap.Logger
}

func NewHandler(svc *Service, rc *pkgredis.Client, log *zap.Logger) *Handler {
	return &Handler{svc: svc, rc: rc, log: log}
}

// RegisterPublicRoutes mounts the testimonial read path.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	reviews.GET("", h.publicList)
	reviews.GET("/:slug", h.publicGet)
	reviews.POST("/:id/like", h.like)
	reviews.POST("/:id/share", h.share)
}

// RegisterAdminRoutes mounts the dashboard CRUD surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	reviews := rg.Group("/reviews", authMW)
	reviews.GET("", h.adminList)
	reviews.POST("", h.create)
	reviews.GET("/:id", h.adminGet)
	reviews.PUT("/:id", h.update)
	reviews.DELETE("/:id", h.delete)
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
	var dto CreateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	r, err := h.svc.Create(middleware.CurrentUser(c), &dto)
	if err != nil {
		if _, ok := validate.AsError(err); ok {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidRating) {
			response.BadRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.Created(c, "review created", r)
}

func (h *Handler) adminGet(c *gin.Context) {
	r, err := h.svc.GetForCaller(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, r)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	r, err := h.svc.Update(middleware.CurrentUser(c), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidRating):
			response.BadRequest(c, err.Error())
		default:
			h.fail(c, err)
		}
		return
	}
	response.OK(c, r)
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

	reviews, err := h.svc.PublicList(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]publicReview, len(reviews))
	for i, r := range reviews {
		items[i] = toPublic(&r)
	}
	response.OK(c, gin.H{"items": items})
}

func (h *Handler) publicGet(c *gin.Context) {
	r, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	if h.shouldCountView(c, r.ID) {
		go h.countView(r.ID)
	}
	response.OK(c, toPublic(r))
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
		h.log.Warn("review view count", zap.Error(err), zap.String("id", id))
	}
}

func (h *Handler) shouldCountView(c *gin.Context, id string) bool {
	if h.rc == nil {
		return true
	}
	key := fmt.Sprintf("md:viewed:reviews:%s:%s:%s", id, c.ClientIP(), time.Now().Format("2006-01-02"))
	ok, err := h.rc.Once(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		return true
	}
	return ok
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("review handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
