package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Senior Engineer!!":        "senior-engineer",
		"Hello World":              "hello-world",
		"  trim me  ":              "trim-me",
		"already-a-slug":           "already-a-slug",
		"Multiple   spaces":        "multiple-spaces",
		"Symbols & Punctuation: 1": "symbols-punctuation-1",
		"UPPER":                    "upper",
		"!!!":                      "",
		"":                         "",
	}
	for title, want := range cases {
		assert.Equal(t, want, Normalize(title), "title %q", title)
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE docs (slug TEXT)").Error)
	return db
}

func TestEnsureUniqueNoCollision(t *testing.T) {
	db := testDB(t)

	got, err := EnsureUnique(db, "docs", "senior-engineer")
	require.NoError(t, err)
	assert.Equal(t, "senior-engineer", got)
}

func TestEnsureUniqueSequentialProbe(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Exec("INSERT INTO docs (slug) VALUES ('senior-engineer')").Error)

	got, err := EnsureUnique(db, "docs", "senior-engineer")
	require.NoError(t, err)
	assert.Equal(t, "senior-engineer-1", got)

	require.NoError(t, db.Exec("INSERT INTO docs (slug) VALUES ('senior-engineer-1')").Error)
	got, err = EnsureUnique(db, "docs", "senior-engineer")
	require.NoError(t, err)
	assert.Equal(t, "senior-engineer-2", got)
}

func TestEnsureUniqueEmptyBase(t *testing.T) {
	db := testDB(t)

	got, err := EnsureUnique(db, "docs", "")
	require.NoError(t, err)
	assert.Equal(t, "untitled", got)
}
