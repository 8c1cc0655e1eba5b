package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookshelf-backend/internal/config"
	infraCache "bookshelf-backend/internal/infrastructure/cache"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/pkg/cache"

	bookHandler "bookshelf-backend/internal/domains/book/handler"
	bookRepo "bookshelf-backend/internal/domains/book/repository"
	bookService "bookshelf-backend/internal/domains/book/service"
)

// Container holds the application dependency graph, built in order:
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	Config  *config.Config
	DB      *database.MongoDB
	Cache   cache.Cache
	Storage *storage.LocalStorage

	BookRepo    bookRepo.RepositoryInterface
	BookService bookService.ServiceInterface
	BookHandler *bookHandler.Handler
}

// NewContainer initializes every dependency. A failing mongo connection
// aborts startup; a failing redis connection does not.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Document store
	db := database.NewMongoDB(cfg.Mongo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	c.DB = db
	log.Println("✅ MongoDB connected")

	// Cache. Redis being down is non-critical: the cache layer degrades to
	// logged misses and the database serves every read.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	// Asset store; the uploads dir itself is created lazily on first write.
	c.Storage = storage.NewLocalStorage(cfg.Upload)

	// Repositories -> services -> handlers
	c.BookRepo = bookRepo.NewMongoRepository(db.Database)
	c.BookService = bookService.NewService(c.BookRepo, c.Storage, c.Cache)
	c.BookHandler = bookHandler.NewHandler(c.BookService, c.Cache)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.DB.Close(ctx); err != nil {
			log.Printf("⚠️  Failed to close mongo: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}
}
