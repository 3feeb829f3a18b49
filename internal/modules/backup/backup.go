package backup

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metadots/core/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tableNames lists all tables included in backups.
var tableNames = []string{
	"users", "jobs", "blogs", "projects", "case_studies", "reviews", "contacts",
}

const manifestName = "manifest.json"

type manifest struct {
	CreatedAt time.Time        `json:"createdAt"`
	Tables    map[string]int64 `json:"tables"`
}

// Handler handles backup endpoints.
type Handler struct {
	db  *gorm.DB
	dir string
	log *zap.Logger
}

func NewHandler(db *gorm.DB, dir string, log *zap.Logger) *Handler {
	if dir == "" {
		dir = "./backups"
	}
	return &Handler{db: db, dir: dir, log: log}
}

// RegisterRoutes mounts the backup surface. Admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/backups", adminMW)

	g.GET("", h.list)
	g.GET("/new", h.createAndDownload)
	g.GET("/:filename", h.download)
	g.POST("/restore", h.uploadAndRestore)
	g.DELETE("/:filename", h.deleteOne)
}

type backupItem struct {
	Filename string `json:"filename"`
	Size     string `json:"size"`
}

// GET /backups
func (h *Handler) list(c *gin.Context) {
	items := h.listBackups()
	response.OK(c, gin.H{"items": items})
}

func (h *Handler) listBackups() []backupItem {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return []backupItem{}
	}
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return []backupItem{}
	}
	items := []backupItem{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, backupItem{
			Filename: e.Name(),
			Size:     formatSize(info.Size()),
		})
	}
	return items
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// GET /backups/new
func (h *Handler) createAndDownload(c *gin.Context) {
	buf, err := CreateArchive(h.db)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.fail(c, err)
		return
	}
	filename := fmt.Sprintf("backup-%s.zip", time.Now().Format("2006-01-02T15-04-05"))
	if err := os.WriteFile(filepath.Join(h.dir, filename), buf.Bytes(), 0o644); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// GET /backups/:filename
func (h *Handler) download(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	data, err := os.ReadFile(filepath.Join(h.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c, "backup not found")
			return
		}
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// POST /backups/restore
func (h *Handler) uploadAndRestore(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.fail(c, err)
		return
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		response.BadRequest(c, "invalid zip file")
		return
	}

	if err := RestoreArchive(h.db, zr); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"message": "restore successful"})
}

// DELETE /backups/:filename
func (h *Handler) deleteOne(c *gin.Context) {
	filename := strings.TrimSpace(filepath.Base(c.Param("filename")))
	if filename == "" || !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	_ = os.Remove(filepath.Join(h.dir, filename))
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("backup handler", zap.Error(err), zap.String("path", c.FullPath()))
	response.InternalError(c)
}

// CreateArchive exports every table as a BSON dump (concatenated
// documents, mongodump layout) plus a manifest into a ZIP archive.
func CreateArchive(db *gorm.DB) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	m := manifest{CreatedAt: time.Now(), Tables: make(map[string]int64, len(tableNames))}
	for _, table := range tableNames {
		var rows []map[string]interface{}
		if err := db.Table(table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}

		f, err := w.Create(table + ".bson")
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			doc, err := bson.Marshal(row)
			if err != nil {
				return nil, fmt.Errorf("encode %s row: %w", table, err)
			}
			if _, err := f.Write(doc); err != nil {
				return nil, err
			}
		}
		m.Tables[table] = int64(len(rows))
	}

	mf, err := w.Create(manifestName)
	if err != nil {
		return nil, err
	}
	if err := json.NewEncoder(mf).Encode(m); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// RestoreArchive replaces table contents with the BSON dumps in a backup
// ZIP. Unknown files are skipped; known tables are wiped then refilled.
func RestoreArchive(db *gorm.DB, zr *zip.Reader) error {
	for _, f := range zr.File {
		name := filepath.Base(f.Name)
		if !strings.HasSuffix(name, ".bson") {
			continue
		}
		table := strings.TrimSuffix(name, ".bson")
		if !allowedTable(table) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}

		rows, err := decodeDocs(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", table, err)
		}

		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
		for _, row := range rows {
			if err := db.Table(table).Create(row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// decodeDocs walks a concatenated-BSON buffer using the int32 length
// prefix each document starts with.
func decodeDocs(data []byte) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	for len(data) > 0 {
		if len(data) < 4 {
			return nil, errors.New("truncated document")
		}
		size := int(binary.LittleEndian.Uint32(data[:4]))
		if size < 5 || size > len(data) {
			return nil, errors.New("invalid document length")
		}
		var row map[string]interface{}
		if err := bson.Unmarshal(data[:size], &row); err != nil {
			return nil, err
		}
		for k, v := range row {
			// BSON decodes timestamps as primitive.DateTime; hand the
			// database a time.Time again.
			if dt, ok := v.(primitive.DateTime); ok {
				row[k] = dt.Time()
			}
		}
		rows = append(rows, row)
		data = data[size:]
	}
	return rows, nil
}

func allowedTable(name string) bool {
	for _, t := range tableNames {
		if t == name {
			return true
		}
	}
	return false
}

// CreateLocal writes a backup archive into dir, pruning nothing. Used by
// the nightly scheduler.
func CreateLocal(db *gorm.DB, dir string) error {
	buf, err := CreateArchive(db)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = "./backups"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	filename := fmt.Sprintf("backup-%s.zip", time.Now().Format("2006-01-02T15-04-05"))
	return os.WriteFile(filepath.Join(dir, filename), buf.Bytes(), 0o644)
}
