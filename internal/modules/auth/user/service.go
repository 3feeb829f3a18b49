package user

import (
	"errors"

	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/pagination"
	"github.com/metadots/core/internal/pkg/response"
	"github.com/metadots/core/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmailTaken    = errors.New("email is already registered")
	ErrSelfForbidden = errors.New("cannot modify your own account here")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
)

var roles = []string{models.RoleAdmin, models.RoleAuthor}

// Service handles account management business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns the filtered account page plus aggregate stats.
func (s *Service) List(pq pagination.Query, q AdminListQuery) ([]models.UserModel, response.Pagination, *AdminStats, error) {
	tx := s.db.Model(&models.UserModel{}).Order("created_at DESC")

	if q.Role != "" && q.Role != "all" {
		if !validRole(q.Role) {
			return nil, response.Pagination{}, nil, ErrInvalidRole
		}
		tx = tx.Where("role = ?", q.Role)
	}
	if q.Search != "" {
		term := "%" + q.Search + "%"
		tx = tx.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", term, term)
	}

	var users []models.UserModel
	pag, err := pagination.Paginate(tx, pq, &users)
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}

	stats, err := s.stats()
	if err != nil {
		return nil, response.Pagination{}, nil, err
	}
	return users, pag, stats, nil
}

func (s *Service) stats() (*AdminStats, error) {
	stats := &AdminStats{ByRole: make(map[string]int64, len(roles))}
	if err := s.db.Model(&models.UserModel{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, role := range roles {
		var n int64
		if err := s.db.Model(&models.UserModel{}).Where("role = ?", role).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ByRole[role] = n
	}
	if err := s.db.Model(&models.UserModel{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// Create provisions a new account with a bcrypt-hashed password.
func (s *Service) Create(dto *CreateUserDTO) (*models.UserModel, error) {
	if err := validate.Missing(dto.missingFields()); err != nil {
		return nil, err
	}
	if len(dto.Password) < 8 {
		return nil, ErrWeakPassword
	}

	role := models.RoleAuthor
	if dto.Role != "" {
		if !validRole(dto.Role) {
			return nil, ErrInvalidRole
		}
		role = dto.Role
	}

	var existing int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Email:    dto.Email,
		Password: string(hash),
		Name:     dto.Name,
		Role:     role,
		IsActive: true,
		Avatar:   dto.Avatar,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Get fetches a single account.
func (s *Service) Get(id string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update patches an account. Callers cannot demote or deactivate
// themselves through this path.
func (s *Service) Update(caller *models.UserModel, id string, dto *UpdateUserDTO) (*models.UserModel, error) {
	if caller != nil && caller.ID == id && (dto.Role != nil || dto.IsActive != nil) {
		return nil, ErrSelfForbidden
	}

	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Email != nil {
		var existing int64
		if err := s.db.Model(&models.UserModel{}).
			Where("email = ? AND id <> ?", *dto.Email, id).Count(&existing).Error; err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, ErrEmailTaken
		}
		updates["email"] = *dto.Email
	}
	if dto.Password != nil {
		if len(*dto.Password) < 8 {
			return nil, ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Role != nil {
		if !validRole(*dto.Role) {
			return nil, ErrInvalidRole
		}
		updates["role"] = *dto.Role
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) == 0 {
		return u, nil
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account. Callers cannot delete themselves.
func (s *Service) Delete(caller *models.UserModel, id string) error {
	if caller != nil && caller.ID == id {
		return ErrSelfForbidden
	}
	result := s.db.Where("id = ?", id).Delete(&models.UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validRole(role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
