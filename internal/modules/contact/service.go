package contact

import (
	"errors"
	"strings"

	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/pagination"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("contact submission not found")
	ErrInvalidStatus = errors.New("invalid contact status")
	ErrInvalidEmail  = errors.New("invalid email address")
)

var contactStatuses = []string{
	models.ContactNew,
	models.ContactRead,
	models.ContactReplied,
}

// Service handles contact inbox business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Submit validates and stores a contact-form submission.
func (s *Service) Submit(dto *SubmitContactDTO) (*models.ContactModel, error) {
	if err := validate.Missing(dto.missingFields()); err != nil {
		return nil, err
	}
	if !strings.Contains(dto.Email, "@") {
		return nil, ErrInvalidEmail
	}

	m := models.ContactModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Company: dto.Company,
		Subject: dto.Subject,
		Message: dto.Message,
		Status:  models.ContactNew,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// AdminList returns the filtered inbox page plus aggregate stats.
func (s *Service) AdminList(pq pagination.Query, q AdminListQuery) ([]models.ContactModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.ContactModel{}).Order("created_at DESC")

	if q.Status != "" && q.Status != "all" {
		if !validStatus(q.Status) {
			return nil, response.Pagination{}, nil, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		term := "%" + q.Search + "%"
		tx = tx.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(subject) LIKE LOWER(?) OR LOWER(message) LIKE LOWER(?)",
			term, term, term, term)
	}

	var submissions []models.ContactModel
	pag, err := pagination.Paginate(tx, pq, &submissions)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.adminStats()
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return submissions, pag, stats, nil
}

func (s *Service) adminStats() (*AdminStats, error) {
	stats := &AdminStats{ByStatus: make(map[string]int64, len(contactStatuses))}
	if err := s.db.Model(&models.ContactModel{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, status := range contactStatuses {
		var n int64
		if err := s.db.Model(&models.ContactModel{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}
	return stats, nil
}

// Get fetches a single submission.
func (s *Service) Get(id string) (*models.ContactModel, error) {
	var m models.ContactModel
	err := s.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateStatus moves a submission through new -> read -> replied.
func (s *Service) UpdateStatus(id, status string) (*models.ContactModel, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(m).Update("status", status).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a submission for good.
func (s *Service) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.ContactModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validStatus(status string) bool {
	for _, s := range contactStatuses {
		if s == status {
			return true
		}
	}
	return false
}
