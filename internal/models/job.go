package models

import "time"

// JobModel is an open position on the careers page.
type JobModel struct {
	Base
	Slug         string     `json:"slug"         gorm:"uniqueIndex;not null"`
	Title        string     `json:"title"        gorm:"not null"`
	Department   string     `json:"department"   gorm:"index"`
	Location     string     `json:"location"`
	Type         string     `json:"type"` // full-time | part-time | contract
	Experience   string     `json:"experience"`
	Salary       string     `json:"salary"`
	Description  string     `json:"description"  gorm:"type:longtext"`
	Requirements StringList `json:"requirements" gorm:"type:longtext;serializer:json"`
	Benefits     StringList `json:"benefits"     gorm:"type:longtext;serializer:json"`
	Tags         StringList `json:"tags"         gorm:"type:longtext;serializer:json"`
	Status       string     `json:"status"       gorm:"default:draft;index"`
	Featured     bool       `json:"featured"     gorm:"default:false"`
	Author       Author     `json:"author"       gorm:"embedded"`
	Stats        Stats      `json:"stats"        gorm:"embedded"`
	Applications int        `json:"applications" gorm:"column:stat_applications;default:0"`
	PublishedAt  *time.Time `json:"publishedAt"`
}

func (JobModel) TableName() string { return "jobs" }
