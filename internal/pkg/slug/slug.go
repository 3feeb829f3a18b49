// Package slug derives URL-safe document identifiers from titles.
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Normalize lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and strips leading/trailing hyphens.
func Normalize(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// EnsureUnique probes the given table for the base slug and appends -1, -2,
// ... until no collision exists. The probe is sequential, not atomic: two
// concurrent creations with the same title can race. The unique index on
// the slug column makes the loser fail loudly instead of duplicating.
func EnsureUnique(db *gorm.DB, table, base string) (string, error) {
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for i := 1; ; i++ {
		var count int64
		if err := db.Table(table).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
