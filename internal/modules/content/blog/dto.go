package blog

import (
	"time"

	"github.com/metadots/core/internal/models"
)

// CreateBlogDTO is the request body for creating an article.
type CreateBlogDTO struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
	ReadTime   string   `json:"readTime"`
	Featured   *bool    `json:"featured"`
	Status     *string  `json:"status"`
}

func (d *CreateBlogDTO) missingFields() []string {
	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Excerpt == "" {
		missing = append(missing, "excerpt")
	}
	if d.Content == "" {
		missing = append(missing, "content")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

// UpdateBlogDTO is the request body for updating an article.
type UpdateBlogDTO struct {
	Title      *string  `json:"title"`
	Excerpt    *string  `json:"excerpt"`
	Content    *string  `json:"content"`
	Category   *string  `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage *string  `json:"coverImage"`
	ReadTime   *string  `json:"readTime"`
	Featured   *bool    `json:"featured"`
	Status     *string  `json:"status"`
}

// AdminListQuery holds query params for the admin article listing.
type AdminListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Author   string `form:"author"`
}

// PublicListQuery holds query params for the public blog listing.
type PublicListQuery struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Limit    int    `form:"limit"`
}

// AdminStats are role-scoped aggregate counts for the dashboard badges.
type AdminStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	Comments int64            `json:"comments"`
}

// publicBlog is the public listing shape; detail additionally carries HTML.
type publicBlog struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Excerpt     string       `json:"excerpt"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	CoverImage  string       `json:"coverImage"`
	ReadTime    string       `json:"readTime"`
	Featured    bool         `json:"featured"`
	Author      models.Author `json:"author"`
	Stats       models.Stats `json:"stats"`
	Comments    int          `json:"comments"`
	PublishedAt *time.Time   `json:"publishedAt"`
}

// publicBlogDetail includes the raw markdown and its rendered HTML.
type publicBlogDetail struct {
	publicBlog
	Content string `json:"content"`
	HTML    string `json:"html"`
}

func toPublic(b *models.BlogModel) publicBlog {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return publicBlog{
		ID:          b.ID,
		Slug:        b.Slug,
		Title:       b.Title,
		Excerpt:     b.Excerpt,
		Category:    b.Category,
		Tags:        tags,
		CoverImage:  b.CoverImage,
		ReadTime:    b.ReadTime,
		Featured:    b.Featured,
		Author:      b.Author,
		Stats:       b.Stats,
		Comments:    b.Comments,
		PublishedAt: b.PublishedAt,
	}
}
