package review

import (
	"time"

	"github.com/metadots/core/internal/models"
)

// CreateReviewDTO is the request body for creating a testimonial.
type CreateReviewDTO struct {
	ClientName string  `json:"clientName"`
	Company    string  `json:"company"`
	RoleTitle  string  `json:"roleTitle"`
	Content    string  `json:"content"`
	Rating     *int    `json:"rating"`
	Avatar     string  `json:"avatar"`
	Featured   *bool   `json:"featured"`
	Status     *string `json:"status"`
}

func (d *CreateReviewDTO) missingFields() []string {
	var missing []string
	if d.ClientName == "" {
		missing = append(missing, "clientName")
	}
	if d.Content == "" {
		missing = append(missing, "content")
	}
	return missing
}

// UpdateReviewDTO is the request body for updating a testimonial.
type UpdateReviewDTO struct {
	ClientName *string `json:"clientName"`
	Company    *string `json:"company"`
	RoleTitle  *string `json:"roleTitle"`
	Content    *string `json:"content"`
	Rating     *int    `json:"rating"`
	Avatar     *string `json:"avatar"`
	Featured   *bool   `json:"featured"`
	Status     *string `json:"status"`
}

// AdminListQuery holds query params for the admin review listing.
type AdminListQuery struct {
	Status string `form:"status"`
	Rating int    `form:"rating"`
	Search string `form:"search"`
	Author string `form:"author"`
}

// PublicListQuery holds query params for the public review listing.
type PublicListQuery struct {
	Featured *bool `form:"featured"`
	Limit    int   `form:"limit"`
}

// AdminStats are role-scoped aggregate counts for the dashboard badges.
type AdminStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	Likes    int64            `json:"likes"`
}

// publicReview is the shape served on the marketing pages.
type publicReview struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	ClientName  string       `json:"clientName"`
	Company     string       `json:"company"`
	RoleTitle   string       `json:"roleTitle"`
	Content     string       `json:"content"`
	Rating      int          `json:"rating"`
	Avatar      string       `json:"avatar"`
	Featured    bool         `json:"featured"`
	Stats       models.Stats `json:"stats"`
	PublishedAt *time.Time   `json:"publishedAt"`
}

func toPublic(r *models.ReviewModel) publicReview {
	return publicReview{
		ID:          r.ID,
		Slug:        r.Slug,
		ClientName:  r.ClientName,
		Company:     r.Company,
		RoleTitle:   r.RoleTitle,
		Content:     r.Content,
		Rating:      r.Rating,
		Avatar:      r.Avatar,
		Featured:    r.Featured,
		Stats:       r.Stats,
		PublishedAt: r.PublishedAt,
	}
}
