package service

import (
	"context"
	"fmt"
	"time"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/book/repository"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/logger"
)

const listCacheTTL = 24 * time.Hour

// BookService implements ServiceInterface.
//
// Image replacement follows a three step protocol: store the new file, commit
// the record update, and only then delete the superseded file. The old asset
// reference is deleted if and only if the record update has already durably
// committed.
type BookService struct {
	repo    repository.RepositoryInterface
	storage *storage.LocalStorage
	cache   cache.Cache
}

func NewService(
	repo repository.RepositoryInterface,
	store *storage.LocalStorage,
	cache cache.Cache,
) ServiceInterface {
	return &BookService{
		repo:    repo,
		storage: store,
		cache:   cache,
	}
}

// CreateBook validates the fields, stores the optional upload, and persists
// the record. An upload rejection short-circuits before anything is written.
// If the insert fails after the file was stored, the file is removed again so
// no orphan survives the failed create.
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest, file *storage.Upload) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	imageURL := model.DefaultImageURL
	storedRef := ""
	if file != nil {
		ref, err := s.storage.Store(ctx, *file)
		if err != nil {
			return nil, err
		}
		storedRef = ref
		imageURL = ref
	}

	created, err := s.repo.CreateBook(ctx, model.NewBook(req, imageURL))
	if err != nil {
		if storedRef != "" {
			if derr := s.storage.Delete(ctx, storedRef); derr != nil {
				logger.Error("failed to remove stored image after create failure", derr)
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.invalidateListCache(ctx)
	return created, nil
}

// ListBooks returns the catalog newest first, served from cache when possible.
// Cache trouble is logged and the database answers instead.
func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	var cached []model.Book
	found, err := s.cache.Get(ctx, model.ListCacheKey, &cached)
	if err != nil {
		logger.Warn("list cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return cached, nil
	}

	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	if err := s.cache.Set(ctx, model.ListCacheKey, books, listCacheTTL); err != nil {
		logger.Warn("list cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return books, nil
}

func (s *BookService) GetBookDetail(ctx context.Context, id string) (*model.Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

// UpdateBook applies field updates and, when a replacement image is supplied,
// swaps the asset. The new file is stored before any mutation; the old file
// is deleted only after the update committed. On a failed commit the old
// record and old file stay untouched (the freshly stored file is an accepted
// orphan).
func (s *BookService) UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest, file *storage.Upload) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newRef := ""
	if file != nil {
		ref, err := s.storage.Store(ctx, *file)
		if err != nil {
			return nil, err
		}
		newRef = ref
	}

	patch := req.ToPatch()
	if newRef != "" {
		patch.ImageURL = &newRef
	}

	updated, err := s.repo.UpdateBook(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if newRef != "" && existing.ImageURL != newRef {
		if derr := s.storage.Delete(ctx, existing.ImageURL); derr != nil {
			// The record already points at the new file; losing the old one
			// only leaves an orphan, so the request still succeeds.
			logger.Error("failed to delete replaced image", derr)
		}
	}

	s.invalidateBookCache(ctx, id)
	return updated, nil
}

// DeleteBook removes the record, then its stored image. External image URLs
// are never touched: the store only deletes what it created.
func (s *BookService) DeleteBook(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	if derr := s.storage.Delete(ctx, book.ImageURL); derr != nil {
		logger.Error("failed to delete book image", derr)
	}

	s.invalidateBookCache(ctx, id)
	return book, nil
}

func (s *BookService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, model.ListCachePattern); err != nil {
		logger.Warn("failed to invalidate list cache", map[string]interface{}{"error": err.Error()})
	}
}

func (s *BookService) invalidateBookCache(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, model.GenerateBookDetailCacheKey(id)); err != nil {
		logger.Warn("failed to invalidate detail cache", map[string]interface{}{"error": err.Error()})
	}
	s.invalidateListCache(ctx)
}
