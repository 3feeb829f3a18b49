package review

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
	ErrNotFound      = errors.New("review not found")
	ErrInvalidStatus = errors.New("invalid review status")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

var reviewStatuses = []string{
	models.StatusDraft,
	models.StatusPublished,
	models.StatusArchived,
}

// Service handles review business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// AdminList returns the filtered page plus role-scoped aggregate stats.
func (s *Service) AdminList(caller *models.UserModel, pq pagination.Query, q AdminListQuery) ([]models.ReviewModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.ReviewModel{}).
		Scopes(scope.ForCaller(caller)).
		Order("created_at DESC")

	if q.Status != "" && q.Status != "all" {
		if !validStatus(q.Status) {
			return nil, response.Pagination{}, nil, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Rating > 0 {
		tx = tx.Where("rating = ?", q.Rating)
	}
	if q.Search != "" {
		term := "%" + q.Search + "%"
		tx = tx.Where(
			"LOWER(client_name) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)",
			term, term, term)
	}
	if author := scope.AuthorFilter(caller, q.Author); author != "" {
		tx = tx.Where("author_id = ?", author)
	}

	var reviews []models.ReviewModel
	pag, err := pagination.Paginate(tx, pq, &reviews)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.adminStats(caller)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return reviews, pag, stats, nil
}

func (s *Service) adminStats(caller *models.UserModel) (*AdminStats, error) {
	scoped := func() *gorm.DB {
		return s.db.Model(&models.ReviewModel{}).Scopes(scope.ForCaller(caller))
	}

	stats := &AdminStats{ByStatus: make(map[string]int64, len(reviewStatuses))}
	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, status := range reviewStatuses {
		var n int64
		if err := scoped().Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}

	var sum struct{ Total int64 }
	if err := scoped().Select("COALESCE(SUM(stat_likes), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.Likes = sum.Total
	return stats, nil
}

// Create validates, slugs and persists a new review.
func (s *Service) Create(caller *models.UserModel, dto *CreateReviewDTO) (*models.ReviewModel, error) {
	if err := validate.Missing(dto.missingFields()); err != nil {
		return nil, err
	}

	rating := 5
	if dto.Rating != nil {
		if *dto.Rating < 1 || *dto.Rating > 5 {
			return nil, ErrInvalidRating
		}
		rating = *dto.Rating
	}

	status := models.StatusDraft
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		status = *dto.Status
	}

	uniqueSlug, err := slug.EnsureUnique(s.db, models.ReviewModel{}.TableName(), slug.Normalize(dto.ClientName))
	if err != nil {
		return nil, err
	}

	r := models.ReviewModel{
		Slug:       uniqueSlug,
		ClientName: dto.ClientName,
		Company:    dto.Company,
		RoleTitle:  dto.RoleTitle,
		Content:    dto.Content,
		Rating:     rating,
		Avatar:     dto.Avatar,
		Status:     status,
		Author:     caller.Snapshot(),
	}
	if dto.Featured != nil {
		r.Featured = *dto.Featured
	}
	if status == models.StatusPublished {
		now := time.Now()
		r.PublishedAt = &now
	}

	if err := s.db.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetForCaller fetches a review by id within the caller's scope.
func (s *Service) GetForCaller(caller *models.UserModel, id string) (*models.ReviewModel, error) {
	var r models.ReviewModel
	err := s.db.Scopes(scope.ForCaller(caller)).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update patches a review; publishing sets PublishedAt exactly once.
func (s *Service) Update(caller *models.UserModel, id string, dto *UpdateReviewDTO) (*models.ReviewModel, error) {
	r, err := s.GetForCaller(caller, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.ClientName != nil {
		updates["client_name"] = *dto.ClientName
	}
	if dto.Company != nil {
		updates["company"] = *dto.Company
	}
	if dto.RoleTitle != nil {
		updates["role_title"] = *dto.RoleTitle
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Rating != nil {
		if *dto.Rating < 1 || *dto.Rating > 5 {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *dto.Rating
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *dto.Status
		if *dto.Status == models.StatusPublished && r.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) == 0 {
		return r, nil
	}
	if err := s.db.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// Delete hard-deletes a review within the caller's scope.
func (s *Service) Delete(caller *models.UserModel, id string) error {
	result := s.db.Scopes(scope.ForCaller(caller)).
		Where("id = ?", id).Delete(&models.ReviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicList returns published testimonials.
func (s *Service) PublicList(q PublicListQuery) ([]models.ReviewModel, error) {
	tx := s.db.Where("status = ?", models.StatusPublished).
		Order("created_at DESC")
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var reviews []models.ReviewModel
	return reviews, tx.Find(&reviews).Error
}

// GetPublishedBySlug fetches a published testimonial for the detail page.
func (s *Service) GetPublishedBySlug(sl string) (*models.ReviewModel, error) {
	var r models.ReviewModel
	err := s.db.Where("slug = ? AND status = ?", sl, models.StatusPublished).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// IncrementCounter atomically bumps one of the engagement counters.
func (s *Service) IncrementCounter(id, column string) error {
	result := s.db.Model(&models.ReviewModel{}).Where("id = ?", id).
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
	for _, s := range reviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}
