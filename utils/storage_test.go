package utils

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/chicknext/chicknext/models"
)

func newStorageDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite error: %v", err)
	}
	if err := db.AutoMigrate(&models.OrphanFile{}); err != nil {
		t.Fatalf("auto migrate error: %v", err)
	}
	return db
}

// uploadHeader builds a multipart.FileHeader the way gin hands one to a
// handler.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile error: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = req
	fh, err := ctx.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile error: %v", err)
	}
	return fh
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

func TestUploadStore_SaveUsesTimestampPrefix(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), newStorageDB(t))
	if err != nil {
		t.Fatalf("NewUploadStore error: %v", err)
	}

	before := time.Now().UnixMilli()
	name, err := store.Save(uploadHeader(t, "menu.png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	after := time.Now().UnixMilli()

	var millis int64
	var original string
	if _, err := fmt.Sscanf(name, "%d-%s", &millis, &original); err != nil {
		t.Fatalf("stored name %q does not match <millis>-<name>: %v", name, err)
	}
	if millis < before || millis > after {
		t.Errorf("timestamp prefix %d outside [%d, %d]", millis, before, after)
	}
	if original != "menu.png" {
		t.Errorf("original name = %q, want %q", original, "menu.png")
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("read stored file error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q, want %q", data, "png-bytes")
	}
}

func TestUploadStore_RemoveDeletesFile(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), newStorageDB(t))
	if err != nil {
		t.Fatalf("NewUploadStore error: %v", err)
	}

	name, err := store.Save(uploadHeader(t, "old.png", []byte("x")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	store.Remove(name)

	path := filepath.Join(store.Dir(), name)
	gone := waitFor(t, 2*time.Second, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	})
	if !gone {
		t.Errorf("file %s still present after Remove", path)
	}
}

func TestUploadStore_RemoveMissingFileIsNotDeadLettered(t *testing.T) {
	db := newStorageDB(t)
	store, err := NewUploadStore(t.TempDir(), db)
	if err != nil {
		t.Fatalf("NewUploadStore error: %v", err)
	}

	store.Remove("never-existed.png")

	// Give the worker a moment; no orphan row should ever appear.
	time.Sleep(100 * time.Millisecond)
	var count int64
	if err := db.Model(&models.OrphanFile{}).Count(&count).Error; err != nil {
		t.Fatalf("count orphan files error: %v", err)
	}
	if count != 0 {
		t.Errorf("orphan rows = %d, want 0 for a missing file", count)
	}
}

func TestUploadStore_FailedRemoveGoesToDeadLetter(t *testing.T) {
	db := newStorageDB(t)
	dir := t.TempDir()
	store, err := NewUploadStore(dir, db)
	if err != nil {
		t.Fatalf("NewUploadStore error: %v", err)
	}

	// A non-empty directory under the stored name makes os.Remove fail.
	stuck := filepath.Join(dir, "stuck-image")
	if err := os.MkdirAll(filepath.Join(stuck, "inner"), 0o755); err != nil {
		t.Fatalf("mkdir error: %v", err)
	}

	store.Remove("stuck-image")

	recorded := waitFor(t, 2*time.Second, func() bool {
		var count int64
		_ = db.Model(&models.OrphanFile{}).Where("filename = ?", "stuck-image").Count(&count).Error
		return count == 1
	})
	if !recorded {
		t.Errorf("failed removal was not recorded in orphan_files")
	}
}

func TestUploadStore_RejectsOversizedUpload(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), newStorageDB(t))
	if err != nil {
		t.Fatalf("NewUploadStore error: %v", err)
	}

	fh := uploadHeader(t, "big.png", []byte("x"))
	fh.Size = maxUploadSize + 1

	if _, err := store.Save(fh); err == nil {
		t.Errorf("Save accepted an oversized upload")
	}
}
