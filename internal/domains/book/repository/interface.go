package repository

import (
	"context"

	"bookshelf-backend/internal/domains/book/model"
)

// RepositoryInterface is the document-store contract for book records.
// The store assigns ids on create and serializes writes per document.
type RepositoryInterface interface {
	// CreateBook inserts the record and returns it with the generated id.
	CreateBook(ctx context.Context, book *model.Book) (*model.Book, error)

	// ListBooks returns all records, newest first (createdAt descending).
	ListBooks(ctx context.Context) ([]model.Book, error)

	// GetBookByID returns model.ErrBookNotFound for a missing record and
	// model.ErrInvalidBookID for a malformed id.
	GetBookByID(ctx context.Context, id string) (*model.Book, error)

	// UpdateBook applies the patch atomically and returns the post-update
	// document. Same not-found semantics as GetBookByID.
	UpdateBook(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error)

	// DeleteBook removes the record. Same not-found semantics as GetBookByID.
	DeleteBook(ctx context.Context, id string) error
}
