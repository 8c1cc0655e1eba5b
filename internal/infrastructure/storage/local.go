package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bookshelf-backend/internal/config"
)

// URLPrefix is the public path prefix under which stored files are served.
const URLPrefix = "/uploads/"

// Validation failures. These are client errors: the upload is rejected before
// anything touches disk or the database.
var (
	ErrFileTooLarge           = errors.New("image exceeds maximum size (5MB)")
	ErrUnsupportedExtension   = errors.New("only .jpg, .jpeg, .png and .gif files are allowed")
	ErrUnsupportedContentType = errors.New("content type must be image/jpeg, image/png or image/gif")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Upload is an incoming file as seen by the asset store: declared metadata
// plus the byte stream.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// LocalStorage keeps image files in a single flat directory on local disk.
// Filenames embed a millisecond timestamp and a random suffix, so concurrent
// stores need no coordination. It knows nothing about book records.
type LocalStorage struct {
	root     string
	maxBytes int64
}

func NewLocalStorage(cfg config.UploadConfig) *LocalStorage {
	return &LocalStorage{
		root:     cfg.Dir,
		maxBytes: cfg.MaxBytes,
	}
}

// Validate decides accept/reject from declared metadata only.
// Extension and content type must both pass; failing either rejects.
func (s *LocalStorage) Validate(up Upload) error {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedExtension
	}
	if !allowedContentTypes[strings.ToLower(up.ContentType)] {
		return ErrUnsupportedContentType
	}
	if up.Size > s.maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Store persists the upload under a generated name and returns the
// store-relative reference ("/uploads/<name>") to embed as imageUrl.
// The uploads directory is created on first use.
func (s *LocalStorage) Store(ctx context.Context, up Upload) (string, error) {
	if err := s.Validate(up); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))

	// O_EXCL turns the astronomically unlikely name collision into a retry
	// instead of an overwrite.
	for attempt := 0; ; attempt++ {
		name := generateFilename(ext)
		target := filepath.Join(s.root, name)

		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) && attempt < 3 {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create upload file: %w", err)
		}

		written, err := io.Copy(f, io.LimitReader(up.Content, s.maxBytes+1))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err == nil && written > s.maxBytes {
			err = ErrFileTooLarge
		}
		if err != nil {
			_ = os.Remove(target)
			if errors.Is(err, ErrFileTooLarge) {
				return "", err
			}
			return "", fmt.Errorf("failed to write upload file: %w", err)
		}

		return URLPrefix + name, nil
	}
}

// Delete removes a stored file by its reference. It is intentionally
// idempotent: a missing file, or a reference the store never produced
// (an external URL), is a silent no-op.
func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	if !IsLocalRef(ref) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name := path.Base(strings.TrimPrefix(ref, URLPrefix))
	if name == "" || name == "." || name == ".." {
		return nil
	}

	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}

// IsLocalRef reports whether ref points into this store's namespace.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, URLPrefix)
}

func generateFilename(ext string) string {
	return fmt.Sprintf("book-%d-%d%s", time.Now().UnixMilli(), rand.Int64N(1_000_000_000), ext)
}
