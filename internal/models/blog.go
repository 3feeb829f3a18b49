package models

import "time"

// BlogModel is a blog article. Content is markdown; the public read path
// renders it to HTML on the way out.
type BlogModel struct {
	Base
	Slug        string     `json:"slug"       gorm:"uniqueIndex;not null"`
	Title       string     `json:"title"      gorm:"not null"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"    gorm:"type:longtext"`
	Category    string     `json:"category"   gorm:"index"`
	Tags        StringList `json:"tags"       gorm:"type:longtext;serializer:json"`
	CoverImage  string     `json:"coverImage"`
	ReadTime    string     `json:"readTime"`
	Status      string     `json:"status"     gorm:"default:draft;index"`
	Featured    bool       `json:"featured"   gorm:"default:false"`
	Author      Author     `json:"author"     gorm:"embedded"`
	Stats       Stats      `json:"stats"      gorm:"embedded"`
	Comments    int        `json:"comments"   gorm:"column:stat_comments;default:0"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (BlogModel) TableName() string { return "blogs" }
