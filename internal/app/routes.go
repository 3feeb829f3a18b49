package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/middleware"
	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/modules/aggregate"
	"github.com/metadots/core/internal/modules/auth/auth"
	"github.com/metadots/core/internal/modules/auth/user"
	"github.com/metadots/core/internal/modules/backup"
	"github.com/metadots/core/internal/modules/contact"
	"github.com/metadots/core/internal/modules/content/blog"
	"github.com/metadots/core/internal/modules/content/casestudy"
	"github.com/metadots/core/internal/modules/content/job"
	"github.com/metadots/core/internal/modules/content/project"
	"github.com/metadots/core/internal/modules/content/review"
	pkgredis "github.com/metadots/core/internal/pkg/redis"
	"github.com/metadots/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

const publicCacheTTL = 15 * time.Second

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	log := a.logger

	authMW := middleware.Auth(db, models.RoleAdmin, models.RoleAuthor)
	adminMW := middleware.Auth(db, models.RoleAdmin)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	api := r.Group(apiPrefix)

	// Public surface: published documents only, rate limited and served
	// through a short-TTL response cache when Redis is around.
	public := api.Group("")
	if rc != nil {
		public.Use(middleware.RateLimit(rc.Raw()))
		public.Use(middleware.HTTPCache(rc.Raw(), publicCacheTTL))
	}

	// Admin surface: full CRUD behind JWT role checks.
	admin := api.Group("/admin")

	jobH := job.NewHandler(job.NewService(db), rc, log)
	jobH.RegisterPublicRoutes(public)
	jobH.RegisterAdminRoutes(admin, authMW)

	blogH := blog.NewHandler(blog.NewService(db), rc, log)
	blogH.RegisterPublicRoutes(public)
	blogH.RegisterAdminRoutes(admin, authMW)

	projectH := project.NewHandler(project.NewService(db), rc, log)
	projectH.RegisterPublicRoutes(public)
	projectH.RegisterAdminRoutes(admin, authMW)

	caseStudyH := casestudy.NewHandler(casestudy.NewService(db), rc, log)
	caseStudyH.RegisterPublicRoutes(public)
	caseStudyH.RegisterAdminRoutes(admin, authMW)

	reviewH := review.NewHandler(review.NewService(db), rc, log)
	reviewH.RegisterPublicRoutes(public)
	reviewH.RegisterAdminRoutes(admin, authMW)

	contactH := contact.NewHandler(contact.NewService(db), log)
	contactH.RegisterPublicRoutes(public)
	contactH.RegisterAdminRoutes(admin, adminMW)

	aggregate.NewHandler(aggregate.NewService(db), log).RegisterRoutes(public)

	auth.NewHandler(auth.NewService(db), log).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db), log).RegisterRoutes(admin, adminMW)

	backup.NewHandler(db, a.cfg.BackupDir, log).RegisterRoutes(admin, adminMW)
}
