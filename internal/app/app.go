package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/config"
	"github.com/metadots/core/internal/database"
	"github.com/metadots/core/internal/middleware"
	"github.com/metadots/core/internal/modules/backup"
	pkgcron "github.com/metadots/core/internal/pkg/cron"
	pkgjwt "github.com/metadots/core/internal/pkg/jwt"
	pkgredis "github.com/metadots/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const backupInterval = 24 * time.Hour

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
}

// New initializes the application: config → DB → Redis → routes. Redis is
// optional: without it the app runs with view dedupe, rate limiting and
// response caching disabled.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		pkgjwt.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Warn("redis_url is empty, running without redis")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	sched.Register(pkgcron.Job{
		Name:        "backup",
		Description: "nightly database backup",
		Interval:    backupInterval,
		Fn: func(context.Context) error {
			return backup.CreateLocal(db, cfg.BackupDir)
		},
	})
	go sched.Start(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel}
	app.registerRoutes(rc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// DB exposes the database handle.
func (a *App) DB() *gorm.DB { return a.db }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
