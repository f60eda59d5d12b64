// Package filestore persists uploaded image artifacts on local disk.
// Files are stored under a configured directory with generated names;
// the relative path is recorded on the owning document and served
// statically by the HTTP layer.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned when an upload is not a supported image type.
var ErrUnsupportedType = errors.New("unsupported image type")

// extByMIME maps accepted image MIME types to file extensions.
var extByMIME = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// Store saves and removes image artifacts under a root directory.
type Store struct {
	dir     string
	maxSize int64
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the root directory artifacts are stored under.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded image to disk under a generated name and
// returns the path to record on the owning document. Returns
// ErrUnsupportedType for anything but png/jpg/jpeg uploads.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext, ok := extByMIME[header.Header.Get("Content-Type")]
	if !ok {
		return "", ErrUnsupportedType
	}

	if s.maxSize > 0 && header.Size > s.maxSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", s.maxSize)
	}

	name := uuid.New().String() + "." + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path, nil
}

// SaveUpload extracts the named file from a parsed multipart request
// and saves it.
func (s *Store) SaveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing %q upload: %w", field, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return s.Save(file, header)
}

// Remove deletes a previously saved artifact. Removing a path that no
// longer exists is not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
