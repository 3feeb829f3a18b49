package job

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
	require.NoError(t, db.AutoMigrate(&models.JobModel{}))
	return NewService(db)
}

func adminUser() *models.UserModel {
	u := &models.UserModel{Name: "Root", Role: models.RoleAdmin}
	u.ID = "admin-1"
	return u
}

func authorUser(id string) *models.UserModel {
	u := &models.UserModel{Name: "Writer " + id, Role: models.RoleAuthor}
	u.ID = id
	return u
}

func validCreateDTO(title string) *CreateJobDTO {
	return &CreateJobDTO{
		Title:        title,
		Department:   "engineering",
		Location:     "Remote",
		Type:         "full-time",
		Experience:   "5+ years",
		Salary:       "competitive",
		Description:  "Build things.",
		Requirements: []string{"Go"},
		Benefits:     []string{"Remote work"},
	}
}

func strPtr(s string) *string { return &s }

func TestCreateAssignsSlugAndDefaults(t *testing.T) {
	svc := newTestService(t)

	j, err := svc.Create(adminUser(), validCreateDTO("Senior Engineer!!"))
	require.NoError(t, err)

	assert.Equal(t, "senior-engineer", j.Slug)
	assert.Equal(t, models.StatusDraft, j.Status)
	assert.Nil(t, j.PublishedAt)
	assert.Equal(t, "admin-1", j.Author.ID)
	assert.NotEmpty(t, j.ID)
}

func TestCreateSlugCollisionProbes(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	first, err := svc.Create(caller, validCreateDTO("Senior Engineer"))
	require.NoError(t, err)
	second, err := svc.Create(caller, validCreateDTO("Senior Engineer!!"))
	require.NoError(t, err)
	third, err := svc.Create(caller, validCreateDTO("senior engineer"))
	require.NoError(t, err)

	assert.Equal(t, "senior-engineer", first.Slug)
	assert.Equal(t, "senior-engineer-1", second.Slug)
	assert.Equal(t, "senior-engineer-2", third.Slug)
}

func TestCreateMissingFieldsEnumerated(t *testing.T) {
	svc := newTestService(t)
	dto := validCreateDTO("Senior Engineer")
	dto.Salary = ""
	dto.Location = ""

	_, err := svc.Create(adminUser(), dto)
	require.Error(t, err)

	ve, ok := validate.AsError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "salary")
	assert.Contains(t, ve.Fields, "location")

	var count int64
	require.NoError(t, svc.db.Model(&models.JobModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "nothing persisted on validation failure")
}

func TestCreatePublishedSetsPublishedAt(t *testing.T) {
	svc := newTestService(t)
	dto := validCreateDTO("Platform Engineer")
	dto.Status = strPtr(models.StatusPublished)

	j, err := svc.Create(adminUser(), dto)
	require.NoError(t, err)
	require.NotNil(t, j.PublishedAt)
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(t)
	dto := validCreateDTO("Platform Engineer")
	dto.Status = strPtr("live")

	_, err := svc.Create(adminUser(), dto)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPublishedAtSetExactlyOnce(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	j, err := svc.Create(caller, validCreateDTO("Platform Engineer"))
	require.NoError(t, err)

	j, err = svc.Update(caller, j.ID, &UpdateJobDTO{Status: strPtr(models.StatusPublished)})
	require.NoError(t, err)
	got, err := svc.GetForCaller(caller, j.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)
	firstPublish := *got.PublishedAt

	_, err = svc.Update(caller, j.ID, &UpdateJobDTO{Status: strPtr(models.StatusArchived)})
	require.NoError(t, err)
	_, err = svc.Update(caller, j.ID, &UpdateJobDTO{Status: strPtr(models.StatusPublished)})
	require.NoError(t, err)

	got, err = svc.GetForCaller(caller, j.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(firstPublish), "republish must not move PublishedAt")
}

func TestUpdateEmptyDTOIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	j, err := svc.Create(caller, validCreateDTO("Platform Engineer"))
	require.NoError(t, err)

	got, err := svc.Update(caller, j.ID, &UpdateJobDTO{})
	require.NoError(t, err)
	assert.Equal(t, j.Slug, got.Slug)
	assert.Equal(t, j.Title, got.Title)
}

func TestUpdateTitleKeepsSlug(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	j, err := svc.Create(caller, validCreateDTO("Platform Engineer"))
	require.NoError(t, err)

	got, err := svc.Update(caller, j.ID, &UpdateJobDTO{Title: strPtr("Staff Engineer")})
	require.NoError(t, err)

	got, err = svc.GetForCaller(caller, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
	assert.Equal(t, "platform-engineer", got.Slug)
}

func TestUpdateListFieldsPersist(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	j, err := svc.Create(caller, validCreateDTO("Platform Engineer"))
	require.NoError(t, err)

	_, err = svc.Update(caller, j.ID, &UpdateJobDTO{
		Requirements: []string{"Go", "SQL"},
		Tags:         []string{"remote"},
	})
	require.NoError(t, err)

	var stored models.JobModel
	require.NoError(t, svc.db.First(&stored, "id = ?", j.ID).Error)
	assert.Equal(t, models.StringList{"Go", "SQL"}, stored.Requirements)
	assert.Equal(t, models.StringList{"remote"}, stored.Tags)
	assert.Equal(t, models.StringList{"Remote work"}, stored.Benefits)
	assert.Equal(t, "Platform Engineer", stored.Title)
}

func TestAuthorScoping(t *testing.T) {
	svc := newTestService(t)
	alice := authorUser("alice")
	bob := authorUser("bob")

	mine, err := svc.Create(alice, validCreateDTO("Alice Job"))
	require.NoError(t, err)
	theirs, err := svc.Create(bob, validCreateDTO("Bob Job"))
	require.NoError(t, err)

	// Authors see only their own documents, admins see everything.
	jobs, _, stats, err := svc.AdminList(alice, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, mine.ID, jobs[0].ID)
	assert.Equal(t, int64(1), stats.Total)

	// The author query param is ignored for non-admins.
	jobs, _, _, err = svc.AdminList(alice, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Author: "bob"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, mine.ID, jobs[0].ID)

	// Out-of-scope documents read as not found, not forbidden.
	_, err = svc.GetForCaller(alice, theirs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(alice, theirs.ID), ErrNotFound)

	jobs, _, stats, err = svc.AdminList(adminUser(), pagination.Query{Page: 1, Limit: 10}, AdminListQuery{})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, int64(2), stats.Total)

	// Admins can narrow to a single author.
	jobs, _, _, err = svc.AdminList(adminUser(), pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Author: "bob"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, theirs.ID, jobs[0].ID)
}

func TestAdminListPaginationContract(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()
	for i := 0; i < 12; i++ {
		_, err := svc.Create(caller, validCreateDTO("Job "+string(rune('A'+i))))
		require.NoError(t, err)
	}

	jobs, pag, _, err := svc.AdminList(caller, pagination.Query{Page: 2, Limit: 5}, AdminListQuery{})
	require.NoError(t, err)

	assert.Len(t, jobs, 5)
	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 3, pag.TotalPages)
	assert.Equal(t, int64(12), pag.TotalItems)
	assert.Equal(t, 5, pag.Limit)
}

func TestAdminListStatsIgnoreFilters(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	published := validCreateDTO("Published Job")
	published.Status = strPtr(models.StatusPublished)
	_, err := svc.Create(caller, published)
	require.NoError(t, err)
	_, err = svc.Create(caller, validCreateDTO("Draft Job"))
	require.NoError(t, err)

	jobs, _, stats, err := svc.AdminList(caller, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Status: models.StatusDraft})
	require.NoError(t, err)

	require.Len(t, jobs, 1)
	assert.Equal(t, int64(2), stats.Total, "stats cover the full scope, not the filtered page")
	assert.Equal(t, int64(1), stats.ByStatus[models.StatusDraft])
	assert.Equal(t, int64(1), stats.ByStatus[models.StatusPublished])
}

func TestAdminListStatusAll(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()
	_, err := svc.Create(caller, validCreateDTO("One"))
	require.NoError(t, err)

	all, _, _, err := svc.AdminList(caller, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Status: "all"})
	require.NoError(t, err)
	absent, _, _, err2 := svc.AdminList(caller, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{})
	require.NoError(t, err2)
	assert.Equal(t, len(absent), len(all))
}

func TestAdminListInvalidStatus(t *testing.T) {
	svc := newTestService(t)

	_, _, _, err := svc.AdminList(adminUser(), pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAdminListSearch(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	dto := validCreateDTO("Backend Engineer")
	dto.Description = "Kubernetes and Go services."
	_, err := svc.Create(caller, dto)
	require.NoError(t, err)
	_, err = svc.Create(caller, validCreateDTO("Designer"))
	require.NoError(t, err)

	jobs, _, _, err := svc.AdminList(caller, pagination.Query{Page: 1, Limit: 10}, AdminListQuery{Search: "KUBERNETES"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
}

func TestPublicListPublishedOnly(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	published := validCreateDTO("Published Job")
	published.Status = strPtr(models.StatusPublished)
	_, err := svc.Create(caller, published)
	require.NoError(t, err)
	_, err = svc.Create(caller, validCreateDTO("Draft Job"))
	require.NoError(t, err)

	jobs, err := svc.PublicList(PublicListQuery{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "published-job", jobs[0].Slug)
}

func TestGetPublishedBySlug(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	draft, err := svc.Create(caller, validCreateDTO("Hidden Job"))
	require.NoError(t, err)

	_, err = svc.GetPublishedBySlug(draft.Slug)
	assert.ErrorIs(t, err, ErrNotFound, "drafts are invisible publicly")

	published := validCreateDTO("Open Job")
	published.Status = strPtr(models.StatusPublished)
	_, err = svc.Create(caller, published)
	require.NoError(t, err)

	got, err := svc.GetPublishedBySlug("open-job")
	require.NoError(t, err)
	assert.Equal(t, "Open Job", got.Title)
}

func TestIncrementCounter(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	j, err := svc.Create(caller, validCreateDTO("Open Job"))
	require.NoError(t, err)

	require.NoError(t, svc.IncrementCounter(j.ID, "stat_applications"))
	require.NoError(t, svc.IncrementCounter(j.ID, "stat_applications"))
	require.NoError(t, svc.IncrementCounter(j.ID, "stat_views"))

	got, err := svc.GetForCaller(caller, j.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Applications)
	assert.Equal(t, 1, got.Stats.Views)

	assert.ErrorIs(t, svc.IncrementCounter("missing", "stat_views"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	caller := adminUser()

	j, err := svc.Create(caller, validCreateDTO("Short Lived"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(caller, j.ID))
	_, err = svc.GetForCaller(caller, j.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(caller, j.ID), ErrNotFound)
}
