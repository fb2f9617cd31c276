package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/chicknext/chicknext/models"
)

// maxUploadSize caps a single image upload.
const maxUploadSize = 10 * 1024 * 1024

// UploadStore saves uploaded images under a single directory and removes
// them best-effort through a bounded background queue. Removal never blocks
// an HTTP response; failures and queue overflow land in the orphan_files
// dead-letter table instead of vanishing into logs.
type UploadStore struct {
	dir  string
	db   *gorm.DB
	jobs chan string
}

// NewUploadStore creates the uploads directory if needed and starts the
// removal worker.
func NewUploadStore(dir string, db *gorm.DB) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	s := &UploadStore{
		dir:  dir,
		db:   db,
		jobs: make(chan string, 128),
	}
	go s.removeWorker()
	return s, nil
}

// Dir returns the uploads directory.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save stores the uploaded file under a collision-resistant name of the form
// <unix-millis>-<original-name> and returns that name.
func (s *UploadStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file size exceeds %d bytes", maxUploadSize)
	}

	base := filepath.Base(fh.Filename)
	if base == "." || base == "" {
		base = "upload"
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", err
	}
	return name, nil
}

// Remove enqueues a best-effort deletion of a previously saved file. When
// the queue is full the filename goes straight to the dead-letter table.
func (s *UploadStore) Remove(filename string) {
	if filename == "" {
		return
	}
	select {
	case s.jobs <- filename:
	default:
		s.deadLetter(filename, "removal queue full")
	}
}

func (s *UploadStore) removeWorker() {
	for name := range s.jobs {
		path := filepath.Join(s.dir, name)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			s.deadLetter(name, err.Error())
			continue
		}
		if Sugar != nil {
			Sugar.Infof("image deleted: %s", path)
		}
	}
}

func (s *UploadStore) deadLetter(filename, reason string) {
	if s.db == nil {
		return
	}
	if err := s.db.Create(&models.OrphanFile{Filename: filename, Reason: reason}).Error; err != nil && Sugar != nil {
		Sugar.Errorf("orphan file record failed for %s: %v", filename, err)
	}
}
