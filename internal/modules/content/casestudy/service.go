package casestudy

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
	ErrNotFound      = errors.New("case study not found")
	ErrInvalidStatus = errors.New("invalid case study status")
)

var caseStudyStatuses = []string{
	models.StatusDraft,
	models.StatusPublished,
	models.StatusArchived,
}

// Service handles case study business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// AdminList returns the filtered page plus role-scoped aggregate stats.
func (s *Service) AdminList(caller *models.UserModel, pq pagination.Query, q AdminListQuery) ([]models.CaseStudyModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.CaseStudyModel{}).
		Scopes(scope.ForCaller(caller)).
		Order("created_at DESC")

	if q.Status != "" && q.Status != "all" {
		if !validStatus(q.Status) {
			return nil, response.Pagination{}, nil, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Industry != "" && q.Industry != "all" {
		tx = tx.Where("industry = ?", q.Industry)
	}
	if q.Search != "" {
		term := "%" + q.Search + "%"
		tx = tx.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(summary) LIKE LOWER(?) OR LOWER(client) LIKE LOWER(?) OR LOWER(challenge) LIKE LOWER(?)",
			term, term, term, term)
	}
	if author := scope.AuthorFilter(caller, q.Author); author != "" {
		tx = tx.Where("author_id = ?", author)
	}

	var studies []models.CaseStudyModel
	pag, err := pagination.Paginate(tx, pq, &studies)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.adminStats(caller)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return studies, pag, stats, nil
}

func (s *Service) adminStats(caller *models.UserModel) (*AdminStats, error) {
	scoped := func() *gorm.DB {
		return s.db.Model(&models.CaseStudyModel{}).Scopes(scope.ForCaller(caller))
	}

	stats := &AdminStats{ByStatus: make(map[string]int64, len(caseStudyStatuses))}
	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, status := range caseStudyStatuses {
		var n int64
		if err := scoped().Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}

	var sum struct{ Total int64 }
	if err := scoped().Select("COALESCE(SUM(stat_downloads), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.Downloads = sum.Total
	return stats, nil
}

// Create validates, slugs and persists a new case study.
func (s *Service) Create(caller *models.UserModel, dto *CreateCaseStudyDTO) (*models.CaseStudyModel, error) {
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

	uniqueSlug, err := slug.EnsureUnique(s.db, models.CaseStudyModel{}.TableName(), slug.Normalize(dto.Title))
	if err != nil {
		return nil, err
	}

	cs := models.CaseStudyModel{
		Slug:      uniqueSlug,
		Title:     dto.Title,
		Summary:   dto.Summary,
		Industry:  dto.Industry,
		Client:    dto.Client,
		Challenge: dto.Challenge,
		Solution:  dto.Solution,
		Results:   dto.Results,
		Status:    status,
		Author:    caller.Snapshot(),
	}
	if dto.Featured != nil {
		cs.Featured = *dto.Featured
	}
	if status == models.StatusPublished {
		now := time.Now()
		cs.PublishedAt = &now
	}

	if err := s.db.Create(&cs).Error; err != nil {
		return nil, err
	}
	return &cs, nil
}

// GetForCaller fetches a case study by id within the caller's scope.
func (s *Service) GetForCaller(caller *models.UserModel, id string) (*models.CaseStudyModel, error) {
	var cs models.CaseStudyModel
	err := s.db.Scopes(scope.ForCaller(caller)).First(&cs, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// Update patches a case study; publishing sets PublishedAt exactly once.
func (s *Service) Update(caller *models.UserModel, id string, dto *UpdateCaseStudyDTO) (*models.CaseStudyModel, error) {
	cs, err := s.GetForCaller(caller, id)
	if err != nil {
		return nil, err
	}

	// Changes go onto the fetched model and are saved with an explicit
	// column list; results must pass through the JSON serializer.
	var cols []string
	if dto.Title != nil {
		cs.Title = *dto.Title
		cols = append(cols, "title")
	}
	if dto.Summary != nil {
		cs.Summary = *dto.Summary
		cols = append(cols, "summary")
	}
	if dto.Industry != nil {
		cs.Industry = *dto.Industry
		cols = append(cols, "industry")
	}
	if dto.Client != nil {
		cs.Client = *dto.Client
		cols = append(cols, "client")
	}
	if dto.Challenge != nil {
		cs.Challenge = *dto.Challenge
		cols = append(cols, "challenge")
	}
	if dto.Solution != nil {
		cs.Solution = *dto.Solution
		cols = append(cols, "solution")
	}
	if dto.Results != nil {
		cs.Results = models.StringList(dto.Results)
		cols = append(cols, "results")
	}
	if dto.Featured != nil {
		cs.Featured = *dto.Featured
		cols = append(cols, "featured")
	}
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		if *dto.Status == models.StatusPublished && cs.PublishedAt == nil {
			now := time.Now()
			cs.PublishedAt = &now
			cols = append(cols, "published_at")
		}
		cs.Status = *dto.Status
		cols = append(cols, "status")
	}

	if len(cols) == 0 {
		return cs, nil
	}
	if err := s.db.Model(cs).Select(cols).Updates(cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// Delete hard-deletes a case study within the caller's scope.
func (s *Service) Delete(caller *models.UserModel, id string) error {
	result := s.db.Scopes(scope.ForCaller(caller)).
		Where("id = ?", id).Delete(&models.CaseStudyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicList returns published case studies.
func (s *Service) PublicList(q PublicListQuery) ([]models.CaseStudyModel, error) {
	tx := s.db.Where("status = ?", models.StatusPublished).
		Order("created_at DESC")
	if q.Industry != "" && q.Industry != "all" {
		tx = tx.Where("industry = ?", q.Industry)
	}
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var studies []models.CaseStudyModel
	return studies, tx.Find(&studies).Error
}

// GetPublishedBySlug fetches a published case study for the detail page.
func (s *Service) GetPublishedBySlug(sl string) (*models.CaseStudyModel, error) {
	var cs models.CaseStudyModel
	err := s.db.Where("slug = ? AND status = ?", sl, models.StatusPublished).First(&cs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// IncrementCounter atomically bumps one of the engagement counters.
func (s *Service) IncrementCounter(id, column string) error {
	result := s.db.Model(&models.CaseStudyModel{}).Where("id = ?", id).
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
	for _, s := range caseStudyStatuses {
		if s == status {
			return true
		}
	}
	return false
}
