package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/config"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewLocalStorage(config.UploadConfig{Dir: dir, MaxBytes: 5 * 1024 * 1024})
	return s, dir
}

func TestValidate(t *testing.T) {
	s, _ := newTestStorage(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"jpg accepted", "cover.jpg", "image/jpeg", 1024, nil},
		{"jpeg accepted", "cover.jpeg", "image/jpeg", 1024, nil},
		{"png accepted", "cover.png", "image/png", 1024, nil},
		{"gif accepted", "cover.gif", "image/gif", 1024, nil},
		{"uppercase extension accepted", "COVER.PNG", "image/png", 1024, nil},
		{"max size accepted", "cover.jpg", "image/jpeg", 5 * 1024 * 1024, nil},
		{"pdf extension rejected", "cover.pdf", "image/jpeg", 1024, ErrUnsupportedExtension},
		{"missing extension rejected", "cover", "image/jpeg", 1024, ErrUnsupportedExtension},
		{"mismatched content type rejected", "cover.jpg", "application/pdf", 1024, ErrUnsupportedContentType},
		{"svg content type rejected", "cover.png", "image/svg+xml", 1024, ErrUnsupportedContentType},
		{"oversize rejected", "cover.jpg", "image/jpeg", 5*1024*1024 + 1, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(Upload{Filename: tt.filename, ContentType: tt.contentType, Size: tt.size})
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStoreWritesFile(t *testing.T) {
	s, dir := newTestStorage(t)

	content := []byte("fake image bytes")
	ref, err := s.Store(context.Background(), Upload{
		Filename:    "My Cover.JPG",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, URLPrefix))
	assert.True(t, strings.HasPrefix(filepath.Base(ref), "book-"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestStoreCreatesUploadsDirLazily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s := NewLocalStorage(config.UploadConfig{Dir: dir, MaxBytes: 1024})

	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))

	_, err := s.Store(context.Background(), Upload{
		Filename:    "a.png",
		ContentType: "image/png",
		Size:        3,
		Content:     strings.NewReader("abc"),
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreRejectsInvalidUpload(t *testing.T) {
	s, dir := newTestStorage(t)

	_, err := s.Store(context.Background(), Upload{
		Filename:    "malware.exe",
		ContentType: "image/png",
		Size:        3,
		Content:     strings.NewReader("abc"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedExtension)

	// Rejection must leave the namespace untouched.
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestStoreRemovesPartialFileWhenStreamExceedsLimit(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(config.UploadConfig{Dir: dir, MaxBytes: 16})

	// Declared size lies; the stream itself is over the limit.
	_, err := s.Store(context.Background(), Upload{
		Filename:    "big.gif",
		ContentType: "image/gif",
		Size:        10,
		Content:     strings.NewReader(strings.Repeat("x", 64)),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestStoreConcurrentFilenameUniqueness(t *testing.T) {
	s, dir := newTestStorage(t)

	const n = 1000
	refs := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			refs[i], errs[i] = s.Store(context.Background(), Upload{
				Filename:    "same-name.png",
				ContentType: "image/png",
				Size:        4,
				Content:     strings.NewReader(fmt.Sprintf("%04d", i)),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "store %d failed", i)
	}

	seen := make(map[string]bool, n)
	for _, ref := range refs {
		assert.False(t, seen[ref], "duplicate stored reference %s", ref)
		seen[ref] = true
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, dir := newTestStorage(t)

	ref, err := s.Store(context.Background(), Upload{
		Filename:    "gone.png",
		ContentType: "image/png",
		Size:        3,
		Content:     strings.NewReader("abc"),
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), ref))
	_, statErr := os.Stat(filepath.Join(dir, filepath.Base(ref)))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting twice, or deleting something that never existed, must not fail.
	assert.NoError(t, s.Delete(context.Background(), ref))
	assert.NoError(t, s.Delete(context.Background(), "/uploads/never-stored.png"))
}

func TestDeleteSkipsExternalReferences(t *testing.T) {
	s, _ := newTestStorage(t)

	assert.NoError(t, s.Delete(context.Background(), "https://www.svgrepo.com/show/94674/books-stack-of-three.svg"))
	assert.NoError(t, s.Delete(context.Background(), "http://example.com/cover.png"))
	assert.NoError(t, s.Delete(context.Background(), ""))
}

func TestDeleteIgnoresPathTraversal(t *testing.T) {
	s, dir := newTestStorage(t)

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	assert.NoError(t, s.Delete(context.Background(), "/uploads/../victim.txt"))
	assert.NoError(t, s.Delete(context.Background(), "/uploads/.."))

	_, err := os.Stat(outside)
	assert.NoError(t, err, "file outside the uploads dir must not be touched")
}

func TestIsLocalRef(t *testing.T) {
	assert.True(t, IsLocalRef("/uploads/book-1-2.png"))
	assert.False(t, IsLocalRef("https://example.com/a.png"))
	assert.False(t, IsLocalRef("uploads/a.png"))
}
