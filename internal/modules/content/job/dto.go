package job

import (
	"time"

	"github.com/metadots/core/internal/models"
)

// CreateJobDTO is the request body for creating a job posting.
type CreateJobDTO struct {
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Experience   string   `json:"experience"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Tags         []string `json:"tags"`
	Featured     *bool    `json:"featured"`
	Status       *string  `json:"status"`
}

// missingFields enumerates required fields absent from the payload.
func (d *CreateJobDTO) missingFields() []string {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	require("title", d.Title)
	require("department", d.Department)
	require("location", d.Location)
	require("type", d.Type)
	require("experience", d.Experience)
	require("salary", d.Salary)
	require("description", d.Description)
	if len(d.Requirements) == 0 {
		missing = append(missing, "requirements")
	}
	if len(d.Benefits) == 0 {
		missing = append(missing, "benefits")
	}
	return missing
}

// UpdateJobDTO is the request body for updating a job (all fields optional).
type UpdateJobDTO struct {
	Title        *string  `json:"title"`
	Department   *string  `json:"department"`
	Location     *string  `json:"location"`
	Type         *string  `json:"type"`
	Experience   *string  `json:"experience"`
	Salary       *string  `json:"salary"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Tags         []string `json:"tags"`
	Featured     *bool    `json:"featured"`
	Status       *string  `json:"status"`
}

// AdminListQuery holds query params for the admin job listing.
type AdminListQuery struct {
	Status     string `form:"status"`
	Department string `form:"department"`
	Search     string `form:"search"`
	Author     string `form:"author"`
}

// PublicListQuery holds query params for the public careers listing.
type PublicListQuery struct {
	Department string `form:"department"`
	Featured   *bool  `form:"featured"`
	Limit      int    `form:"limit"`
}

// AdminStats are aggregate counts over the caller's role-scoped collection,
// independent of the transient list filters.
type AdminStats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"byStatus"`
	Applications int64            `json:"applications"`
}

// publicJob hides admin-only fields on the public read path.
type publicJob struct {
	ID           string       `json:"id"`
	Slug         string       `json:"slug"`
	Title        string       `json:"title"`
	Department   string       `json:"department"`
	Location     string       `json:"location"`
	Type         string       `json:"type"`
	Experience   string       `json:"experience"`
	Salary       string       `json:"salary"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	Benefits     []string     `json:"benefits"`
	Tags         []string     `json:"tags"`
	Featured     bool         `json:"featured"`
	Stats        models.Stats `json:"stats"`
	PublishedAt  *time.Time   `json:"publishedAt"`
}

func toPublic(j *models.JobModel) publicJob {
	return publicJob{
		ID:           j.ID,
		Slug:         j.Slug,
		Title:        j.Title,
		Department:   j.Department,
		Location:     j.Location,
		Type:         j.Type,
		Experience:   j.Experience,
		Salary:       j.Salary,
		Description:  j.Description,
		Requirements: orEmpty(j.Requirements),
		Benefits:     orEmpty(j.Benefits),
		Tags:         orEmpty(j.Tags),
		Featured:     j.Featured,
		Stats:        j.Stats,
		PublishedAt:  j.PublishedAt,
	}
}

func orEmpty(s models.StringList) []string {
	if s == nil {
		return []string{}
	}
	return s
}
