package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"bookshelf-backend/internal/domains/book/model"
)

const collectionName = "books"

// MongoRepository implements RepositoryInterface on a mongo collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) RepositoryInterface {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	res, err := r.coll.InsertOne(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		created.ID = oid
	}
	return &created, nil
}

func (r *MongoRepository) ListBooks(ctx context.Context) ([]model.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	books := []model.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *MongoRepository) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidBookID
	}

	var book model.Book
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find book %s: %w", id, err)
	}
	return &book, nil
}

func (r *MongoRepository) UpdateBook(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidBookID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.BookName != nil {
		set["bookName"] = *patch.BookName
	}
	if patch.AuthorName != nil {
		set["authorName"] = *patch.AuthorName
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Book
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}
	return &updated, nil
}

func (r *MongoRepository) DeleteBook(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrInvalidBookID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
