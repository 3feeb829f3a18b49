package models

import "time"

// ReviewModel is a client testimonial.
type ReviewModel struct {
	Base
	Slug        string     `json:"slug"       gorm:"uniqueIndex;not null"`
	ClientName  string     `json:"clientName" gorm:"not null"`
	Company     string     `json:"company"`
	RoleTitle   string     `json:"roleTitle"`
	Content     string     `json:"content"    gorm:"type:longtext"`
	Rating      int        `json:"rating"     gorm:"default:5;index"`
	Avatar      string     `json:"avatar"`
	Status      string     `json:"status"     gorm:"default:draft;index"`
	Featured    bool       `json:"featured"   gorm:"default:false"`
	Author      Author     `json:"author"     gorm:"embedded"`
	Stats       Stats      `json:"stats"      gorm:"embedded"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (ReviewModel) TableName() string { return "reviews" }
