package blog

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/middleware"
	"github.com/metadots/core/internal/modules/markdown"
	"github.com/metadots/core/internal/pkg/pagination"
	pkgredis "github.com/metadots/core/internal/pkg/redis"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"go.uber.org/zap"
)

// Handler handles blog HTTP requests.
type Handler struct {
	svc *Service
	rc  *pkgredis.Client
	log *zap.Logger
}

func NewHandler(svc *Service, rc *pkgredis.Client, log *zap.Logger) *Handler {
	return &Handler{svc: svc, rc: rc, log: log}
}

// RegisterPublicRoutes mounts the blog read path.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	blogs := rg.Group("/blogs")
	blogs.GET("", h.publicList)
	blogs.GET("/:slug", h.publicGet)
	blogs.POST("/:id/like", h.like)
	blogs.POST("/:id/share", h.share)
	blogs.POST("/:id/comment", h.comment)
}

// RegisterAdminRoutes mounts the dashboard CRUD surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	blogs := rg.Group("/blogs", authMW)
	blogs.GET("", h.adminList)
	blogs.POST("", h.create)
	blogs.GET("/:id", h.adminGet)
	blogs.PUT("/:id", h.update)
	blogs.DELETE("/:id", h.delete)
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
	var dto CreateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.svc.Create(middleware.CurrentUser(c), &dto)
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
	response.Created(c, "article created", b)
}

func (h *Handler) adminGet(c *gin.Context) {
	b, err := h.svc.GetForCaller(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.svc.Update(middleware.CurrentUser(c), c.Param("id"), &dto)
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
	response.OK(c, b)
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

	articles, err := h.svc.PublicList(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]publicBlog, len(articles))
	for i, b := range articles {
		items[i] = toPublic(&b)
	}
	response.OK(c, gin.H{"items": items})
}

// publicGet GET /blogs/:slug — returns the article with rendered HTML.
func (h *Handler) publicGet(c *gin.Context) {
	b, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	html, err := markdown.Render(b.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	if h.shouldCountView(c, b.ID) {
		go h.countView(b.ID)
	}
	response.OK(c, publicBlogDetail{
		publicBlog: toPublic(b),
		Content:    b.Content,
		HTML:       html,
	})
}

func (h *Handler) like(c *gin.Context)    { h.bump(c, "stat_likes") }
func (h *Handler) share(c *gin.Context)   { h.bump(c, "stat_shares") }
func (h *Handler) comment(c *gin.Context) { h.bump(c, "stat_comments") }

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
		h.log.Warn("blog view count", zap.Error(err), zap.String("id", id))
	}
}

func (h *Handler) shouldCountView(c *gin.Context, id string) bool {
	if h.rc == nil {
		return true
	}
	key := fmt.Sprintf("md:viewed:blogs:%s:%s:%s", id, c.ClientIP(), time.Now().Format("2006-01-02"))
	ok, err := h.rc.Once(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		return true
	}
	return ok
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("blog handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}
