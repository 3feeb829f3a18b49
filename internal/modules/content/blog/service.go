package blog

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
	ErrNotFound      = errors.New("article not found")
	ErrInvalidStatus = errors.New("invalid article status")
)

var blogStatuses = []string{
	models.StatusDraft,
	models.StatusPublished,
	models.StatusArchived,
}

// Service handles blog business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// AdminList returns the filtered page plus role-scoped aggregate stats.
func (s *Service) AdminList(caller *models.UserModel, pq pagination.Query, q AdminListQuery) ([]models.BlogModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.BlogModel{}).
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
			"LOWER(title) LIKE LOWER(?) OR LOWER(excerpt) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?) OR LOWER(tags) LIKE LOWER(?)",
			term, term, term, term)
	}
	if author := scope.AuthorFilter(caller, q.Author); author != "" {
		tx = tx.Where("author_id = ?", author)
	}

	var articles []models.BlogModel
	pag, err := pagination.Paginate(tx, pq, &articles)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.adminStats(caller)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return articles, pag, stats, nil
}

func (s *Service) adminStats(caller *models.UserModel) (*AdminStats, error) {
	scoped := func() *gorm.DB {
		return s.db.Model(&models.BlogModel{}).Scopes(scope.ForCaller(caller))
	}

	stats := &AdminStats{ByStatus: make(map[string]int64, len(blogStatuses))}
	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, status := range blogStatuses {
		var n int64
		if err := scoped().Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}

	var sum struct{ Total int64 }
	if err := scoped().Select("COALESCE(SUM(stat_comments), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.Comments = sum.Total
	return stats, nil
}

// Create validates, slugs and persists a new article.
func (s *Service) Create(caller *models.UserModel, dto *CreateBlogDTO) (*models.BlogModel, error) {
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

	uniqueSlug, err := slug.EnsureUnique(s.db, models.BlogModel{}.TableName(), slug.Normalize(dto.Title))
	if err != nil {
		return nil, err
	}

	b := models.BlogModel{
		Slug:       uniqueSlug,
		Title:      dto.Title,
		Excerpt:    dto.Excerpt,
		Content:    dto.Content,
		Category:   dto.Category,
		Tags:       dto.Tags,
		CoverImage: dto.CoverImage,
		ReadTime:   dto.ReadTime,
		Status:     status,
		Author:     caller.Snapshot(),
	}
	if dto.Featured != nil {
		b.Featured = *dto.Featured
	}
	if status == models.StatusPublished {
		now := time.Now()
		b.PublishedAt = &now
	}

	if err := s.db.Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetForCaller fetches an article by id within the caller's scope.
func (s *Service) GetForCaller(caller *models.UserModel, id string) (*models.BlogModel, error) {
	var b models.BlogModel
	err := s.db.Scopes(scope.ForCaller(caller)).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update patches an article; publishing sets PublishedAt exactly once.
func (s *Service) Update(caller *models.UserModel, id string, dto *UpdateBlogDTO) (*models.BlogModel, error) {
	b, err := s.GetForCaller(caller, id)
	if err != nil {
		return nil, err
	}

	// Changes go onto the fetched model and are saved with an explicit
	// column list; the tags column must pass through the JSON serializer.
	var cols []string
	if dto.Title != nil {
		b.Title = *dto.Title
		cols = append(cols, "title")
	}
	if dto.Excerpt != nil {
		b.Excerpt = *dto.Excerpt
		cols = append(cols, "excerpt")
	}
	if dto.Content != nil {
		b.Content = *dto.Content
		cols = append(cols, "content")
	}
	if dto.Category != nil {
		b.Category = *dto.Category
		cols = append(cols, "category")
	}
	if dto.Tags != nil {
		b.Tags = models.StringList(dto.Tags)
		cols = append(cols, "tags")
	}
	if dto.CoverImage != nil {
		b.CoverImage = *dto.CoverImage
		cols = append(cols, "cover_image")
	}
	if dto.ReadTime != nil {
		b.ReadTime = *dto.ReadTime
		cols = append(cols, "read_time")
	}
	if dto.Featured != nil {
		b.Featured = *dto.Featured
		cols = append(cols, "featured")
	}
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		if *dto.Status == models.StatusPublished && b.PublishedAt == nil {
			now := time.Now()
			b.PublishedAt = &now
			cols = append(cols, "published_at")
		}
		b.Status = *dto.Status
		cols = append(cols, "status")
	}

	if len(cols) == 0 {
		return b, nil
	}
	if err := s.db.Model(b).Select(cols).Updates(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// Delete hard-deletes an article within the caller's scope.
func (s *Service) Delete(caller *models.UserModel, id string) error {
	result := s.db.Scopes(scope.ForCaller(caller)).
		Where("id = ?", id).Delete(&models.BlogModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicList returns published articles, newest first.
func (s *Service) PublicList(q PublicListQuery) ([]models.BlogModel, error) {
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

	var articles []models.BlogModel
	return articles, tx.Find(&articles).Error
}

// GetPublishedBySlug fetches a published article for the detail page.
func (s *Service) GetPublishedBySlug(sl string) (*models.BlogModel, error) {
	var b models.BlogModel
	err := s.db.Where("slug = ? AND status = ?", sl, models.StatusPublished).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// IncrementCounter atomically bumps one of the engagement counters.
func (s *Service) IncrementCounter(id, column string) error {
	result := s.db.Model(&models.BlogModel{}).Where("id = ?", id).
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
	for _, s := range blogStatuses {
		if s == status {
			return true
		}
	}
	return false
}
