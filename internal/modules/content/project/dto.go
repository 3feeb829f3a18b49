package project

import (
	"time"

	"github.com/metadots/core/internal/models"
)

// CreateProjectDTO is the request body for creating a portfolio entry.
type CreateProjectDTO struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Client       string   `json:"client"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	Icon         string   `json:"icon"`
	Color        string   `json:"color"`
	Featured     *bool    `json:"featured"`
	Status       *string  `json:"status"`
}

func (d *CreateProjectDTO) missingFields() []string {
	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Description == "" {
		missing = append(missing, "description")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

// UpdateProjectDTO is the request body for updating a portfolio entry.
type UpdateProjectDTO struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Client       *string  `json:"client"`
	Technologies []string `json:"technologies"`
	Link         *string  `json:"link"`
	Icon         *string  `json:"icon"`
	Color        *string  `json:"color"`
	Featured     *bool    `json:"featured"`
	Status       *string  `json:"status"`
}

// AdminListQuery holds query params for the admin project listing.
type AdminListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Author   string `form:"author"`
}

// PublicListQuery holds query params for the public portfolio listing.
type PublicListQuery struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Limit    int    `form:"limit"`
}

// AdminStats are role-scoped aggregate counts for the dashboard badges.
type AdminStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	Views    int64            `json:"views"`
}

// publicProject is the shape served on the portfolio pages.
type publicProject struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Client       string        `json:"client"`
	Technologies []string      `json:"technologies"`
	Link         string        `json:"link"`
	Icon         string        `json:"icon"`
	Color        string        `json:"color"`
	Featured     bool          `json:"featured"`
	Author       models.Author `json:"author"`
	Stats        models.Stats  `json:"stats"`
	PublishedAt  *time.Time    `json:"publishedAt"`
}

func toPublic(p *models.ProjectModel) publicProject {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	return publicProject{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Client:       p.Client,
		Technologies: tech,
		Link:         p.Link,
		Icon:         p.Icon,
		Color:        p.Color,
		Featured:     p.Featured,
		Author:       p.Author,
		Stats:        p.Stats,
		PublishedAt:  p.PublishedAt,
	}
}
