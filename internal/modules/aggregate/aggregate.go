package aggregate

import (
	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Homepage section sizes.
const (
	featuredLimit = 6
	latestLimit   = 3
)

// Payload is the one-call homepage bundle.
type Payload struct {
	Jobs        []models.JobModel       `json:"jobs"`
	Projects    []models.ProjectModel   `json:"projects"`
	CaseStudies []models.CaseStudyModel `json:"caseStudies"`
	Blogs       []models.BlogModel      `json:"blogs"`
	Reviews     []models.ReviewModel    `json:"reviews"`
}

// Service assembles the public homepage payload.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Fetch collects published documents for every homepage section. Featured
// documents come first within each section.
func (s *Service) Fetch() (*Payload, error) {
	p := &Payload{}

	published := func(dest interface{}, limit int) error {
		return s.db.Where("status = ?", models.StatusPublished).
			Order("featured DESC, created_at DESC").
			Limit(limit).
			Find(dest).Error
	}

	if err := published(&p.Jobs, featuredLimit); err != nil {
		return nil, err
	}
	if err := published(&p.Projects, featuredLimit); err != nil {
		return nil, err
	}
	if err := published(&p.CaseStudies, featuredLimit); err != nil {
		return nil, err
	}
	if err := s.db.Where("status = ?", models.StatusPublished).
		Order("created_at DESC").
		Limit(latestLimit).
		Find(&p.Blogs).Error; err != nil {
		return nil, err
	}
	if err := published(&p.Reviews, featuredLimit); err != nil {
		return nil, err
	}
	return p, nil
}

// Handler serves the homepage aggregate.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts GET /aggregate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/aggregate", h.get)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Fetch()
	if err != nil {
		h.log.Error("aggregate", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, p)
}
