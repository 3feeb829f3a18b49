package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/pagination"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/scope"
	"github.com/metadots/core/internal/pkg/slug"
	"github.com/metadots/core/internal/pkg/validate"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrInvalidStatus = errors.New("invalid project status")
)

// Presentation fallbacks applied when the dashboard omits them.
const (
	defaultIcon  = "code"
	defaultColor = "#6366f1"
)

var projectStatuses = []string{
	models.StatusDraft,
	models.StatusPublished,
	models.StatusArchived,
}

// Service handles project business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// AdminList returns the filtered page plus role-scoped aggregate stats.
func (s *Service) AdminList(caller *models.UserModel, pq pagination.Query, q AdminListQuery) ([]models.ProjectModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.ProjectModel{}).
		Scopes(scope.ForCaller(caller)).
		Order("created_at DESC")

	if q.Status != "" && q.Status != "all" {
		if !validStatus(q.Status) {
			return nil, response.Pagination{}, nil, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Category != "" && q.Category != "all" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		term := "%" + q.Search + "%"
		tx = tx.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(client) LIKE LOWER(?) OR LOWER(technologies) LIKE LOWER(?)",
			term, term, term, term)
	}
	if author := scope.AuthorFilter(caller, q.Author); author != "" {
		tx = tx.Where("author_id = ?", author)
	}

	var projects []models.ProjectModel
	pag, err := pagination.Paginate(tx, pq, &projects)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.adminStats(caller)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return projects, pag, stats, nil
}

func (s *Service) adminStats(caller *models.UserModel) (*AdminStats, error) {
	scoped := func() *gorm.DB {
		return s.db.Model(&models.ProjectModel{}).Scopes(scope.ForCaller(caller))
	}

	stats := &AdminStats{ByStatus: make(map[string]int64, len(projectStatuses))}
	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, status := range projectStatuses {
		var n int64
		if err := scoped().Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}

	var sum struct{ Total int64 }
	if err := scoped().Select("COALESCE(SUM(stat_views), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.Views = sum.Total
	return stats, nil
}

// Create validates, slugs and persists a new project.
func (s *Service) Create(caller *models.UserModel, dto *CreateProjectDTO) (*models.ProjectModel, error) {
	if err := validate.Missing(dto.missingFields()); err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		status = *dto.Status
	}

	uniqueSlug, err := slug.EnsureUnique(s.db, models.ProjectModel{}.TableName(), slug.Normalize(dto.Title))
	if err != nil {
		return nil, err
	}

	p := models.ProjectModel{
		Slug:         uniqueSlug,
		Title:        dto.Title,
		Description:  dto.Description,
		Category:     dto.Category,
		Client:       dto.Client,
		Technologies: dto.Technologies,
		Link:         dto.Link,
		Icon:         dto.Icon,
		Color:        dto.Color,
		Status:       status,
		Author:       caller.Snapshot(),
	}
	if p.Icon == "" {
		p.Icon = defaultIcon
	}
	if p.Color == "" {
		p.Color = defaultColor
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}
	if status == models.StatusPublished {
		now := time.Now()
		p.PublishedAt = &now
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetForCaller fetches a project by id within the caller's scope.
func (s *Service) GetForCaller(caller *models.UserModel, id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	err := s.db.Scopes(scope.ForCaller(caller)).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update patches a project; publishing sets PublishedAt exactly once.
func (s *Service) Update(caller *models.UserModel, id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	p, err := s.GetForCaller(caller, id)
	if err != nil {
		return nil, err
	}

	// Changes go onto the fetched model and are saved with an explicit
	// column list; technologies must pass through the JSON serializer.
	var cols []string
	if dto.Title != nil {
		p.Title = *dto.Title
		cols = append(cols, "title")
	}
	if dto.Description != nil {
		p.Description = *dto.Description
		cols = append(cols, "description")
	}
	if dto.Category != nil {
		p.Category = *dto.Category
		cols = append(cols, "category")
	}
	if dto.Client != nil {
		p.Client = *dto.Client
		cols = append(cols, "client")
	}
	if dto.Technologies != nil {
		p.Technologies = models.StringList(dto.Technologies)
		cols = append(cols, "technologies")
	}
	if dto.Link != nil {
		p.Link = *dto.Link
		cols = append(cols, "link")
	}
	if dto.Icon != nil {
		p.Icon = *dto.Icon
		cols = append(cols, "icon")
	}
	if dto.Color != nil {
		p.Color = *dto.Color
		cols = append(cols, "color")
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
		cols = append(cols, "featured")
	}
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		if *dto.Status == models.StatusPublished && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
			cols = append(cols, "published_at")
		}
		p.Status = *dto.Status
		cols = append(cols, "status")
	}

	if len(cols) == 0 {
		return p, nil
	}
	if err := s.db.Model(p).Select(cols).Updates(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes a project within the caller's scope.
func (s *Service) Delete(caller *models.UserModel, id string) error {
	result := s.db.Scopes(scope.ForCaller(caller)).
		Where("id = ?", id).Delete(&models.ProjectModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicList returns published projects for the portfolio page.
func (s *Service) PublicList(q PublicListQuery) ([]models.ProjectModel, error) {
	tx := s.db.Where("status = ?", models.StatusPublished).
		Order("created_at DESC")
	if q.Category != "" && q.Category != "all" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var projects []models.ProjectModel
	return projects, tx.Find(&projects).Error
}

// GetPublishedBySlug fetches a published project for the detail page.
func (s *Service) GetPublishedBySlug(sl string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	err := s.db.Where("slug = ? AND status = ?", sl, models.StatusPublished).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementCounter atomically bumps one of the engagement counters.
func (s *Service) IncrementCounter(id, column string) error {
	result := s.db.Model(&models.ProjectModel{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s + 1", column)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validStatus(status string) bool {
	for _, s := range projectStatuses {
		if s == status {
			return true
		}
	}
	return false
}
