package casestudy

import (
	"time"

	"github.com/metadots/core/internal/models"
)

// CreateCaseStudyDTO is the request body for creating an engagement write-up.
type CreateCaseStudyDTO struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Industry  string   `json:"industry"`
	Client    string   `json:"client"`
	Challenge string   `json:"challenge"`
	Solution  string   `json:"solution"`
	Results   []string `json:"results"`
	Featured  *bool    `json:"featured"`
	Status    *string  `json:"status"`
}

func (d *CreateCaseStudyDTO) missingFields() []string {
	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Summary == "" {
		missing = append(missing, "summary")
	}
	if d.Industry == "" {
		missing = append(missing, "industry")
	}
	if d.Challenge == "" {
		missing = append(missing, "challenge")
	}
	if d.Solution == "" {
		missing = append(missing, "solution")
	}
	return missing
}

// UpdateCaseStudyDTO is the request body for updating an engagement write-up.
type UpdateCaseStudyDTO struct {
	Title     *string  `json:"title"`
	Summary   *string  `json:"summary"`
	Industry  *string  `json:"industry"`
	Client    *string  `json:"client"`
	Challenge *string  `json:"challenge"`
	Solution  *string  `json:"solution"`
	Results   []string `json:"results"`
	Featured  *bool    `json:"featured"`
	Status    *string  `json:"status"`
}

// AdminListQuery holds query params for the admin case study listing.
type AdminListQuery struct {
	Status   string `form:"status"`
	Industry string `form:"industry"`
	Search   string `form:"search"`
	Author   string `form:"author"`
}

// PublicListQuery holds query params for the public case study listing.
type PublicListQuery struct {
	Industry string `form:"industry"`
	Featured *bool  `form:"featured"`
	Limit    int    `form:"limit"`
}

// AdminStats are role-scoped aggregate counts for the dashboard badges.
type AdminStats struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"byStatus"`
	Downloads int64            `json:"downloads"`
}

// publicCaseStudy is the shape served on the marketing pages.
type publicCaseStudy struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	Industry    string        `json:"industry"`
	Client      string        `json:"client"`
	Challenge   string        `json:"challenge"`
	Solution    string        `json:"solution"`
	Results     []string      `json:"results"`
	Featured    bool          `json:"featured"`
	Author      models.Author `json:"author"`
	Stats       models.Stats  `json:"stats"`
	Downloads   int           `json:"downloads"`
	PublishedAt *time.Time    `json:"publishedAt"`
}

func toPublic(cs *models.CaseStudyModel) publicCaseStudy {
	results := cs.Results
	if results == nil {
		results = []string{}
	}
	return publicCaseStudy{
		ID:          cs.ID,
		Slug:        cs.Slug,
		Title:       cs.Title,
		Summary:     cs.Summary,
		Industry:    cs.Industry,
		Client:      cs.Client,
		Challenge:   cs.Challenge,
		Solution:    cs.Solution,
		Results:     results,
		Featured:    cs.Featured,
		Author:      cs.Author,
		Stats:       cs.Stats,
		Downloads:   cs.Downloads,
		PublishedAt: cs.PublishedAt,
	}
}
