package pagination

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type doc struct {
	ID    int `gorm:"primaryKey"`
	Title string
}

func seedDocs(t *testing.T, n int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&doc{}))
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Create(&doc{Title: fmt.Sprintf("doc %d", i)}).Error)
	}
	return db
}

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(ctxWithQuery(""))
	assert.Equal(t, Query{Page: 1, Limit: 10}, q)
}

func TestFromContextClamping(t *testing.T) {
	assert.Equal(t, Query{Page: 1, Limit: 10}, FromContext(ctxWithQuery("page=0&limit=-3")))
	assert.Equal(t, Query{Page: 1, Limit: 10}, FromContext(ctxWithQuery("page=abc&limit=xyz")))
	assert.Equal(t, Query{Page: 2, Limit: 100}, FromContext(ctxWithQuery("page=2&limit=500")))
}

func TestPaginateMetadata(t *testing.T) {
	db := seedDocs(t, 12)

	var page []doc
	pag, err := Paginate(db.Model(&doc{}).Order("id"), Query{Page: 2, Limit: 5}, &page)
	require.NoError(t, err)

	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 3, pag.TotalPages)
	assert.Equal(t, int64(12), pag.TotalItems)
	assert.Equal(t, 5, pag.Limit)
	require.Len(t, page, 5)
	assert.Equal(t, "doc 6", page[0].Title)
}

func TestPaginatePastEnd(t *testing.T) {
	db := seedDocs(t, 3)

	var page []doc
	pag, err := Paginate(db.Model(&doc{}), Query{Page: 5, Limit: 10}, &page)
	require.NoError(t, err)

	assert.Empty(t, page)
	assert.Equal(t, int64(3), pag.TotalItems)
	assert.Equal(t, 1, pag.TotalPages)
}

func TestPaginateEmptySet(t *testing.T) {
	db := seedDocs(t, 0)

	var page []doc
	pag, err := Paginate(db.Model(&doc{}), Query{Page: 1, Limit: 10}, &page)
	require.NoError(t, err)

	assert.Empty(t, page)
	assert.Equal(t, 0, pag.TotalPages)
	assert.Equal(t, int64(0), pag.TotalItems)
}
