package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
// ID is a UUID string for API compatibility with the original MongoDB ObjectID format.
type Base struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Author is the denormalized author snapshot embedded in every content
// document. Captured once at creation time and never refreshed: it records
// who the author was when the document was written, not who they are now.
type Author struct {
	ID   string `json:"id"   gorm:"column:author_id;type:char(36);index"`
	Name string `json:"name" gorm:"column:author_name"`
	Role string `json:"role" gorm:"column:author_role"`
}

// Stats is the engagement counter bag shared by all content documents.
// Counters only ever go up; admin mutation paths never touch them.
type Stats struct {
	Views  int `json:"views"  gorm:"column:stat_views;default:0"`
	Likes  int `json:"likes"  gorm:"column:stat_likes;default:0"`
	Shares int `json:"shares" gorm:"column:stat_shares;default:0"`
}

// StringList is a []string stored as JSON text.
type StringList []string

// Document statuses. Jobs additionally use StatusClosed.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusClosed    = "closed"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)
