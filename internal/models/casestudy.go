package models

import "time"

// CaseStudyModel is a long-form client engagement write-up.
type CaseStudyModel struct {
	Base
	Slug        string     `json:"slug"      gorm:"uniqueIndex;not null"`
	Title       string     `json:"title"     gorm:"not null"`
	Summary     string     `json:"summary"`
	Industry    string     `json:"industry"  gorm:"index"`
	Client      string     `json:"client"`
	Challenge   string     `json:"challenge" gorm:"type:longtext"`
	Solution    string     `json:"solution"  gorm:"type:longtext"`
	Results     StringList `json:"results"   gorm:"type:longtext;serializer:json"`
	Status      string     `json:"status"    gorm:"default:draft;index"`
	Featured    bool       `json:"featured"  gorm:"default:false"`
	Author      Author     `json:"author"    gorm:"embedded"`
	Stats       Stats      `json:"stats"     gorm:"embedded"`
	Downloads   int        `json:"downloads" gorm:"column:stat_downloads;default:0"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (CaseStudyModel) TableName() string { return "case_studies" }
