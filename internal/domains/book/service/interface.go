package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/infrastructure/storage"
)

// ServiceInterface owns book field validation and keeps the database record
// and its on-disk cover image consistent across create/update/delete.
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest, file *storage.Upload) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBookDetail(ctx context.Context, id string) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest, file *storage.Upload) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) (*model.Book, error)
	ExportBooksToExcel(ctx context.Context) (*excelize.File, error)
}
