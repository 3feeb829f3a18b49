package contact

import (
	"testing"

	"github.com/metadots/core/internal/models"
	"github.com/metadots/core/internal/pkg/pagination"
	"github.com/metadots/core/internal/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ContactModel{}))
	return NewService(db)
}

func validSubmitDTO() *SubmitContactDTO {
	return &SubmitContactDTO{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Project inquiry",
		Message: "We need a backend.",
	}
}

func TestSubmitStartsAsNew(t *testing.T) {
	svc := newTestService(t)

	m, err := svc.Submit(validSubmitDTO())
	require.NoError(t, err)
	assert.Equal(t, models.ContactNew, m.Status)
	assert.NotEmpty(t, m.ID)
}

func TestSubmitMissingFields(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Submit(&SubmitContactDTO{Name: "Jane Doe"})
	require.Error(t, err)

	ve, ok := validate.AsError(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"email", "subject", "message"}, ve.Fields)
}

func TestSubmitRejectsBadEmail(t *testing.T) {
	svc := newTestService(t)
	dto := validSubmitDTO()
	dto.Email = "not-an-email"

	_, err := svc.Submit(dto)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestStatusLifecycle(t *testing.T) {
	svc := newTestService(t)

	m, err := svc.Submit(validSubmitDTO())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(m.ID, models.ContactRead)
	require.NoError(t, err)
	got, err := svc.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRead, got.Status)

	_, err = svc.UpdateStatus(m.ID, "spam")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus("missing", models.ContactRead)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminListStatsAndFilter(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(validSubmitDTO())
		require.NoError(t, err)
	}
	m, err := svc.Submit(validSubmitDTO())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(m.ID, models.ContactReplied)
	require.NoError(t, err)

	items, pag, stats, err := svc.AdminList(pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Status: models.ContactNew})
	require.NoError(t, err)

	assert.Len(t, items, 3)
	assert.Equal(t, int64(3), pag.TotalItems)
	assert.Equal(t, int64(4), stats.Total, "stats ignore the status filter")
	assert.Equal(t, int64(3), stats.ByStatus[models.ContactNew])
	assert.Equal(t, int64(1), stats.ByStatus[models.ContactReplied])
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)

	m, err := svc.Submit(validSubmitDTO())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(m.ID))
	_, err = svc.Get(m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(m.ID), ErrNotFound)
}
