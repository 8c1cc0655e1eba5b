package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultImageURL is the placeholder cover used when a book is created
// without an upload.
const DefaultImageURL = "https://www.svgrepo.com/show/94674/books-stack-of-three.svg"

// Book is the catalog record persisted in the books collection.
//
// ImageURL always resolves to a reachable byte stream: either an absolute
// http(s) URL or a store-relative /uploads/ path whose file the asset store
// guarantees present. The update and delete flows are responsible for never
// leaving it dangling.
type Book struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	BookName   string        `bson:"bookName" json:"bookName"`
	AuthorName string        `bson:"authorName" json:"authorName"`
	Price      float64       `bson:"price" json:"price"`
	ImageURL   string        `bson:"imageUrl" json:"imageUrl"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookPatch is a partial update; nil fields are left unchanged.
type BookPatch struct {
	BookName   *string
	AuthorName *string
	Price      *float64
	ImageURL   *string
}

// IsZero reports whether the patch would change nothing.
func (p BookPatch) IsZero() bool {
	return p.BookName == nil && p.AuthorName == nil && p.Price == nil && p.ImageURL == nil
}
