package casestudy

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
	require.NoError(t, db.AutoMigrate(&models.CaseStudyModel{}))
	return NewService(db)
}

func adminUser() *models.UserModel {
	u := &models.UserModel{Name: "Root", Role: models.RoleAdmin}
	u.ID = "admin-1"
	return u
}

func validCreateDTO(title string) *CreateCaseStudyDTO {
	return &CreateCaseStudyDTO{
		Title:     title,
		Summary:   "How we helped.",
		Industry:  "fintech",
		Challenge: "Legacy stack.",
		Solution:  "A rewrite.",
		Results:   []string{"2x throughput"},
	}
}

func strPtr(s string) *string { return &s }

func TestCreateMissingFields(t *testing.T) {
	svc := newTestService(t)
	dto := validCreateDTO("Bank Modernization")
	dto.Challenge = ""
	dto.Solution = ""

	_, err := svc.Create(adminUser(), dto)
	require.Error(t, err)

	ve, ok := validate.AsError(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"challenge", "solution"}, ve.Fields)
}

func TestUpdateResultsPersist(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	cs, err := svc.Create(caller, validCreateDTO("Bank Modernization"))
	require.NoError(t, err)

	_, err = svc.Update(caller, cs.ID, &UpdateCaseStudyDTO{
		Results: []string{"2x throughput", "40% cost cut"},
	})
	require.NoError(t, err)

	var stored models.CaseStudyModel
	require.NoError(t, svc.db.First(&stored, "id = ?", cs.ID).Error)
	assert.Equal(t, models.StringList{"2x throughput", "40% cost cut"}, stored.Results)
	assert.Equal(t, "Legacy stack.", stored.Challenge)
}

func TestIndustryFilter(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	_, err := svc.Create(caller, validCreateDTO("Bank Rewrite"))
	require.NoError(t, err)
	health := validCreateDTO("Clinic Portal")
	health.Industry = "healthcare"
	_, err = svc.Create(caller, health)
	require.NoError(t, err)

	studies, _, _, err := svc.AdminList(caller, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Industry: "healthcare"})
	require.NoError(t, err)
	require.Len(t, studies, 1)
	assert.Equal(t, "Clinic Portal", studies[0].Title)
}

func TestDownloadsSumInStats(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	cs, err := svc.Create(caller, validCreateDTO("Bank Rewrite"))
	require.NoError(t, err)

	require.NoError(t, svc.IncrementCounter(cs.ID, "stat_downloads"))
	require.NoError(t, svc.IncrementCounter(cs.ID, "stat_downloads"))

	_, _, stats, err := svc.AdminList(caller, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Downloads)

	got, err := svc.GetForCaller(caller, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Downloads)
}

func TestPublicVisibility(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	_, err := svc.Create(caller, validCreateDTO("Hidden Study"))
	require.NoError(t, err)
	pub := validCreateDTO("Public Study")
	pub.Status = strPtr(models.StatusPublished)
	_, err = svc.Create(caller, pub)
	require.NoError(t, err)

	studies, err := svc.PublicList(PublicListQuery{})
	require.NoError(t, err)
	require.Len(t, studies, 1)

	_, err = svc.GetPublishedBySlug("hidden-study")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := svc.GetPublishedBySlug("public-study")
	require.NoError(t, err)
	assert.Equal(t, "Public Study", got.Title)
}
