package models

import "time"

// UserModel is a dashboard account. Role is either "admin" (sees every
// document) or "author" (scoped to their own documents at query time).
type UserModel struct {
	Base
	Email       string     `json:"email"    gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"        gorm:"not null"`
	Name        string     `json:"name"`
	Role        string     `json:"role"     gorm:"default:author;index"`
	IsActive    bool       `json:"isActive" gorm:"default:true"`
	Avatar      string     `json:"avatar"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func (UserModel) TableName() string { return "users" }

// Snapshot returns the embedded author record captured on document creation.
func (u *UserModel) Snapshot() Author {
	return Author{ID: u.ID, Name: u.Name, Role: u.Role}
}

// IsAdmin reports whether the user holds the admin role.
func (u *UserModel) IsAdmin() bool { return u.Role == RoleAdmin }
