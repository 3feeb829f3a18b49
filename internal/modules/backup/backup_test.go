package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/metadots/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.JobModel{},
		&models.BlogModel{},
		&models.ProjectModel{},
		&models.CaseStudyModel{},
		&models.ReviewModel{},
		&models.ContactModel{},
	))
	return db
}

func TestCreateArchiveContainsAllTablesAndManifest(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.JobModel{Slug: "a", Title: "A"}).Error)
	require.NoError(t, db.Create(&models.BlogModel{Slug: "b", Title: "B"}).Error)

	buf, err := CreateArchive(db)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, table := range tableNames {
		assert.True(t, names[table+".bson"], "missing %s.bson", table)
	}
	require.True(t, names[manifestName])

	mf, err := zr.Open(manifestName)
	require.NoError(t, err)
	defer mf.Close()
	var m manifest
	require.NoError(t, json.NewDecoder(mf).Decode(&m))
	assert.Equal(t, int64(1), m.Tables["jobs"])
	assert.Equal(t, int64(1), m.Tables["blogs"])
	assert.Equal(t, int64(0), m.Tables["contacts"])
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.JobModel{Slug: "keep-me", Title: "Keep Me", Salary: "competitive"}).Error)
	require.NoError(t, db.Create(&models.ContactModel{Name: "Jane", Email: "jane@example.com"}).Error)

	buf, err := CreateArchive(db)
	require.NoError(t, err)

	// Mutate and add noise after the snapshot.
	require.NoError(t, db.Model(&models.JobModel{}).Where("slug = ?", "keep-me").Update("title", "Mutated").Error)
	require.NoError(t, db.Create(&models.JobModel{Slug: "noise", Title: "Noise"}).Error)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.NoError(t, RestoreArchive(db, zr))

	var jobs []models.JobModel
	require.NoError(t, db.Find(&jobs).Error)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Keep Me", jobs[0].Title)
	assert.Equal(t, "competitive", jobs[0].Salary)

	var contacts []models.ContactModel
	require.NoError(t, db.Find(&contacts).Error)
	require.Len(t, contacts, 1)
	assert.Equal(t, "jane@example.com", contacts[0].Email)
}

func TestDecodeDocsRejectsGarbage(t *testing.T) {
	_, err := decodeDocs([]byte{0x01, 0x02})
	assert.Error(t, err)

	rows, err := decodeDocs(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
