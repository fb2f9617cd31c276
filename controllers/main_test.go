package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chicknext/chicknext/models"
	"github.com/chicknext/chicknext/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite error: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Product{}, &models.LoginRecord{}, &models.OrphanFile{}); err != nil {
		t.Fatalf("auto migrate error: %v", err)
	}
	return db
}

func newTestStore(t *testing.T, db *gorm.DB) *utils.UploadStore {
	t.Helper()

	store, err := utils.NewUploadStore(t.TempDir(), db)
	if err != nil {
		t.Fatalf("NewUploadStore error: %v", err)
	}
	return store
}

func newTestSessions(t *testing.T) *utils.SessionStore {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run error: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return utils.NewSessionStore(rdb, utils.SessionTTL)
}

// multipartBody builds a multipart form with the given fields and an
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s) error: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("CreateFormFile error: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file part error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer error: %v", err)
	}
	return &body, w.FormDataContentType()
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func strPtr(s string) *string {
	return &s
}
