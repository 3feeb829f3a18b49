package job

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
	ErrNotFound      = errors.New("job not found")
	ErrInvalidStatus = errors.New("invalid job status")
)

var jobStatuses = []string{
	models.StatusDraft,
	models.StatusPublished,
	models.StatusArchived,
	models.StatusClosed,
}

// Service handles job business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// AdminList returns the filtered, role-scoped page of jobs plus aggregate
// stats over the caller's full scope (stats ignore the transient filters).
func (s *Service) AdminList(caller *models.UserModel, pq pagination.Query, q AdminListQuery) ([]models.JobModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.JobModel{}).
		Scopes(scope.ForCaller(caller)).
		Order("created_at DESC")

	if q.Status != "" && q.Status != "all" {
		if !validStatus(q.Status) {
			return nil, response.Pagination{}, nil, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Department != "" && q.Department != "all" {
		tx = tx.Where("department = ?", q.Department)
	}
	if q.Search != "" {
		term := "%" + q.Search + "%"
		tx = tx.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(requirements) LIKE LOWER(?) OR LOWER(tags) LIKE LOWER(?)",
			term, term, term, term)
	}
	if author := scope.AuthorFilter(caller, q.Author); author != "" {
		tx = tx.Where("author_id = ?", author)
	}

	var jobs []models.JobModel
	pag, err := pagination.Paginate(tx, pq, &jobs)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.adminStats(caller)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return jobs, pag, stats, nil
}

func (s *Service) adminStats(caller *models.UserModel) (*AdminStats, error) {
	scoped := func() *gorm.DB {
		return s.db.Model(&models.JobModel{}).Scopes(scope.ForCaller(caller))
	}

	stats := &AdminStats{ByStatus: make(map[string]int64, len(jobStatuses))}
	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, status := range jobStatuses {
		var n int64
		if err := scoped().Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}

	var sum struct{ Total int64 }
	if err := scoped().Select("COALESCE(SUM(stat_applications), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.Applications = sum.Total
	return stats, nil
}

// Create validates the payload, assigns a unique slug and persists the job
// with the caller embedded as author snapshot.
func (s *Service) Create(caller *models.UserModel, dto *CreateJobDTO) (*models.JobModel, error) {
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

	uniqueSlug, err := slug.EnsureUnique(s.db, models.JobModel{}.TableName(), slug.Normalize(dto.Title))
	if err != nil {
		return nil, err
	}

	j := models.JobModel{
		Slug:         uniqueSlug,
		Title:        dto.Title,
		Department:   dto.Department,
		Location:     dto.Location,
		Type:         dto.Type,
		Experience:   dto.Experience,
		Salary:       dto.Salary,
		Description:  dto.Description,
		Requirements: dto.Requirements,
		Benefits:     dto.Benefits,
		Tags:         dto.Tags,
		Status:       status,
		Author:       caller.Snapshot(),
	}
	if dto.Featured != nil {
		j.Featured = *dto.Featured
	}
	if status == models.StatusPublished {
		now := time.Now()
		j.PublishedAt = &now
	}

	if err := s.db.Create(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// GetForCaller fetches a job by id within the caller's scope. Documents
// outside an author's scope are reported as not found, not forbidden.
func (s *Service) GetForCaller(caller *models.UserModel, id string) (*models.JobModel, error) {
	var j models.JobModel
	err := s.db.Scopes(scope.ForCaller(caller)).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Update patches a job by id. A transition into published sets PublishedAt
// once; later status changes never clear it. The slug is never regenerated.
func (s *Service) Update(caller *models.UserModel, id string, dto *UpdateJobDTO) (*models.JobModel, error) {
	j, err := s.GetForCaller(caller, id)
	if err != nil {
		return nil, err
	}

	// Changes go onto the fetched model and are saved with an explicit
	// column list; list columns must pass through the JSON serializer.
	var cols []string
	if dto.Title != nil {
		j.Title = *dto.Title
		cols = append(cols, "title")
	}
	if dto.Department != nil {
		j.Department = *dto.Department
		cols = append(cols, "department")
	}
	if dto.Location != nil {
		j.Location = *dto.Location
		cols = append(cols, "location")
	}
	if dto.Type != nil {
		j.Type = *dto.Type
		cols = append(cols, "type")
	}
	if dto.Experience != nil {
		j.Experience = *dto.Experience
		cols = append(cols, "experience")
	}
	if dto.Salary != nil {
		j.Salary = *dto.Salary
		cols = append(cols, "salary")
	}
	if dto.Description != nil {
		j.Description = *dto.Description
		cols = append(cols, "description")
	}
	if dto.Requirements != nil {
		j.Requirements = models.StringList(dto.Requirements)
		cols = append(cols, "requirements")
	}
	if dto.Benefits != nil {
		j.Benefits = models.StringList(dto.Benefits)
		cols = append(cols, "benefits")
	}
	if dto.Tags != nil {
		j.Tags = models.StringList(dto.Tags)
		cols = append(cols, "tags")
	}
	if dto.Featured != nil {
		j.Featured = *dto.Featured
		cols = append(cols, "featured")
	}
	if dto.Status != nil {
		if !validStatus(*dto.Status) {
			return nil, ErrInvalidStatus
		}
		if *dto.Status == models.StatusPublished && j.PublishedAt == nil {
			now := time.Now()
			j.PublishedAt = &now
			cols = append(cols, "published_at")
		}
		j.Status = *dto.Status
		cols = append(cols, "status")
	}

	if len(cols) == 0 {
		return j, nil
	}
	if err := s.db.Model(j).Select(cols).Updates(j).Error; err != nil {
		return nil, err
	}
	return j, nil
}

// Delete hard-deletes a job within the caller's scope.
func (s *Service) Delete(caller *models.UserModel, id string) error {
	result := s.db.Scopes(scope.ForCaller(caller)).
		Where("id = ?", id).Delete(&models.JobModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicList returns published jobs for the careers page.
func (s *Service) PublicList(q PublicListQuery) ([]models.JobModel, error) {
	tx := s.db.Where("status = ?", models.StatusPublished).
		Order("created_at DESC")
	if q.Department != "" && q.Department != "all" {
		tx = tx.Where("department = ?", q.Department)
	}
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var jobs []models.JobModel
	return jobs, tx.Find(&jobs).Error
}

// GetPublishedBySlug fetches a published job for the public detail page.
func (s *Service) GetPublishedBySlug(sl string) (*models.JobModel, error) {
	var j models.JobModel
	err := s.db.Where("slug = ? AND status = ?", sl, models.StatusPublished).First(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// IncrementCounter atomically bumps one of the engagement counters. The
// column name is always a compile-time constant at call sites.
func (s *Service) IncrementCounter(id, column string) error {
	result := s.db.Model(&models.JobModel{}).Where("id = ?", id).
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
	for _, s := range jobStatuses {
		if s == status {
			return true
		}
	}
	return false
}
