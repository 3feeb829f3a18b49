package models

import "time"

// ProjectModel is a portfolio entry.
type ProjectModel struct {
	Base
	Slug         string     `json:"slug"         gorm:"uniqueIndex;not null"`
	Title        string     `json:"title"        gorm:"not null"`
	Description  string     `json:"description"  gorm:"type:longtext"`
	Category     string     `json:"category"     gorm:"index"`
	Client       string     `json:"client"`
	Technologies StringList `json:"technologies" gorm:"type:longtext;serializer:json"`
	Link         string     `json:"link"`
	Icon         string     `json:"icon"`
	Color        string     `json:"color"`
	Status       string     `json:"status"       gorm:"default:draft;index"`
	Featured     bool       `json:"featured"     gorm:"default:false"`
	Author       Author     `json:"author"       gorm:"embedded"`
	Stats        Stats      `json:"stats"        gorm:"embedded"`
	PublishedAt  *time.Time `json:"publishedAt"`
}

func (ProjectModel) TableName() string { return "projects" }
