// Package scope centralizes role-based query scoping so that every content
// endpoint derives the author filter the same way instead of re-deriving it
// per handler.
package scope

import (
	"github.com/metadots/core/internal/models"
	"gorm.io/gorm"
)

// ForCaller returns a GORM scope restricting a content query to what the
// caller may see: admins see everything, author-role users only documents
// whose embedded author id is their own. No status restriction is applied
// to an author's own documents.
func ForCaller(caller *models.UserModel) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if caller == nil {
			return tx.Where("1 = 0")
		}
		if caller.IsAdmin() {
			return tx
		}
		return tx.Where("author_id = ?", caller.ID)
	}
}

// AuthorFilter resolves the effective author filter for a list request. The
// query parameter is only honored for admins; author-role callers are
// always pinned to themselves regardless of what they pass.
func AuthorFilter(caller *models.UserModel, requested string) string {
	if caller == nil {
		return ""
	}
	if !caller.IsAdmin() {
		return caller.ID
	}
	if requested == "all" {
		return ""
	}
	return requested
}
