package scope

import (
	"testing"

	"github.com/metadots/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BlogModel{}))

	docs := []models.BlogModel{
		{Slug: "a", Title: "A", Author: models.Author{ID: "alice"}},
		{Slug: "b", Title: "B", Author: models.Author{ID: "alice"}, Status: models.StatusPublished},
		{Slug: "c", Title: "C", Author: models.Author{ID: "bob"}},
	}
	for i := range docs {
		require.NoError(t, db.Create(&docs[i]).Error)
	}
	return db
}

func count(t *testing.T, tx *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, tx.Count(&n).Error)
	return n
}

func TestForCallerAdminSeesEverything(t *testing.T) {
	db := seededDB(t)
	admin := &models.UserModel{Role: models.RoleAdmin}
	admin.ID = "root"

	n := count(t, db.Model(&models.BlogModel{}).Scopes(ForCaller(admin)))
	assert.Equal(t, int64(3), n)
}

func TestForCallerAuthorSeesOwnRegardlessOfStatus(t *testing.T) {
	db := seededDB(t)
	author := &models.UserModel{Role: models.RoleAuthor}
	author.ID = "alice"

	n := count(t, db.Model(&models.BlogModel{}).Scopes(ForCaller(author)))
	assert.Equal(t, int64(2), n)
}

func TestForCallerNilSeesNothing(t *testing.T) {
	db := seededDB(t)

	n := count(t, db.Model(&models.BlogModel{}).Scopes(ForCaller(nil)))
	assert.Equal(t, int64(0), n)
}

func TestAuthorFilter(t *testing.T) {
	admin := &models.UserModel{Role: models.RoleAdmin}
	admin.ID = "root"
	author := &models.UserModel{Role: models.RoleAuthor}
	author.ID = "alice"

	assert.Equal(t, "", AuthorFilter(nil, "bob"))
	assert.Equal(t, "alice", AuthorFilter(author, ""), "author is pinned to self")
	assert.Equal(t, "alice", AuthorFilter(author, "bob"), "author cannot target others")
	assert.Equal(t, "bob", AuthorFilter(admin, "bob"))
	assert.Equal(t, "", AuthorFilter(admin, "all"))
	assert.Equal(t, "", AuthorFilter(admin, ""))
}
