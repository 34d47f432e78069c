// Package upload validates and places profile images in the public upload directory.
package upload

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("only image files (JPEG, PNG, GIF, WebP) are allowed")
)

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedMIME = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true, "image/gif": true, "image/webp": true,
}

// Store writes uploads into Dir and serves them under PublicPrefix.
type Store struct {
	Dir          string
	PublicPrefix string
	MaxBytes     int64

	now func() time.Time
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{Dir: dir, PublicPrefix: "/uploads", MaxBytes: maxBytes, now: time.Now}
}

// Target is where an accepted upload goes on disk and how it is addressed publicly.
type Target struct {
	Path string
	URL  string
}

// Validate checks size, extension and declared content type. Both the extension and
// the content type must be on the image allow-list.
func (s *Store) Validate(fh *multipart.FileHeader) error {
	if fh.Size > s.MaxBytes {
		return fmt.Errorf("%w: maximum size is %dMB", ErrFileTooLarge, s.MaxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mt, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil || !allowedExt[ext] || !allowedMIME[strings.ToLower(mt)] {
		return ErrNotImage
	}
	return nil
}

// Prepare validates fh, creates the upload directory and picks a unique file name of
// the form profile-<unix millis>-<random><ext>.
func (s *Store) Prepare(fh *multipart.FileHeader) (Target, error) {
	if err := s.Validate(fh); err != nil {
		return Target{}, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Target{}, fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("profile-%d-%d%s",
		s.now().UnixMilli(), rand.IntN(1e9), strings.ToLower(filepath.Ext(fh.Filename)))
	return Target{
		Path: filepath.Join(s.Dir, name),
		URL:  strings.TrimRight(s.PublicPrefix, "/") + "/" + name,
	}, nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (s *Store) Remove(t Target) error {
	if err := os.Remove(t.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
