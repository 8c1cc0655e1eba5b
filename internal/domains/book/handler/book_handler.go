package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/book/service"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/internal/shared/utils"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/logger"
)

const detailCacheTTL = 10 * time.Minute

type Handler struct {
	service service.ServiceInterface
	cache   cache.Cache
}

func NewHandler(service service.ServiceInterface, cache cache.Cache) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
	}
}

// CreateBook - POST /api/v1/books
// Multipart form: bookName, authorName, price, optional "image" file.
func (h *Handler) CreateBook(c *gin.Context) {
	req := model.CreateBookRequest{
		BookName:   c.PostForm("bookName"),
		AuthorName: c.PostForm("authorName"),
		Price:      c.PostForm("price"),
	}

	file, closeFile, err := formImageUpload(c)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid upload", err)
		return
	}
	defer closeFile()

	book, err := h.service.CreateBook(c.Request.Context(), req, file)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// ListBooks - GET /api/v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Books fetched successfully", books)
}

// GetBook - GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		model.HandleBookError(c, model.ErrInvalidBookID)
		return
	}

	cacheKey := model.GenerateBookDetailCacheKey(id)
	var cached model.Book
	found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached)
	if found {
		response.Success(c, http.StatusOK, "Book fetched successfully", &cached)
		return
	}
	if err != nil {
		logger.Warn("detail cache read failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}

	book, err := h.service.GetBookDetail(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, book, detailCacheTTL); err != nil {
		logger.Warn("detail cache write failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}

	response.Success(c, http.StatusOK, "Book fetched successfully", book)
}

// UpdateBook - PUT /api/v1/books/:id
// Absent form fields stay unchanged; a supplied "image" file replaces the
// stored cover.
func (h *Handler) UpdateBook(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		model.HandleBookError(c, model.ErrInvalidBookID)
		return
	}

	var req model.UpdateBookRequest
	if v, ok := c.GetPostForm("bookName"); ok {
		req.BookName = &v
	}
	if v, ok := c.GetPostForm("authorName"); ok {
		req.AuthorName = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		req.Price = &v
	}

	file, closeFile, err := formImageUpload(c)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid upload", err)
		return
	}
	defer closeFile()

	book, err := h.service.UpdateBook(c.Request.Context(), id, req, file)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", book)
}

// DeleteBook - DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		model.HandleBookError(c, model.ErrInvalidBookID)
		return
	}

	book, err := h.service.DeleteBook(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Book deleted successfully", gin.H{"id": book.ID})
}

// ExportBooks - GET /api/v1/books/export
// Streams the catalog as an xlsx attachment.
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooksToExcel(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="books.xlsx"`)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("failed to stream excel export", err)
	}
}

// formImageUpload extracts the optional "image" file from the request.
// A request without a file (or without a multipart body at all) is fine;
// only a broken multipart body is an error.
func formImageUpload(c *gin.Context) (*storage.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	up := &storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}
	return up, func() { _ = f.Close() }, nil
}
