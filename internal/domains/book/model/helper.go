package model

import (
	"time"
)

// NewBook builds the entity persisted on create.
func NewBook(req CreateBookRequest, imageURL string) *Book {
	now := time.Now().UTC()
	return &Book{
		BookName:   req.BookName,
		AuthorName: req.AuthorName,
		Price:      req.PriceValue(),
		ImageURL:   imageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Cache keys. Every mutation invalidates the detail key and the list pattern.
const (
	ListCacheKey     = "books:list"
	ListCachePattern = "books:list*"
)

func GenerateBookDetailCacheKey(id string) string {
	return "books:detail:" + id
}
