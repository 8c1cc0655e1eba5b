package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

var (
	// ErrBookNotFound: no record with the given id.
	ErrBookNotFound = errors.New("book not found")
	// ErrInvalidBookID: the id is not a well formed ObjectID. Classified the
	// same as a missing record.
	ErrInvalidBookID = errors.New("invalid book id")
)

var bookErrorMap = map[error]struct {
	Status int
	Title  string
}{
	ErrBookNotFound:  {http.StatusNotFound, "Book not found"},
	ErrInvalidBookID: {http.StatusNotFound, "Book not found"},

	// Upload rejections short-circuit before any database interaction.
	storage.ErrFileTooLarge:           {http.StatusBadRequest, "Upload rejected"},
	storage.ErrUnsupportedExtension:   {http.StatusBadRequest, "Upload rejected"},
	storage.ErrUnsupportedContentType: {http.StatusBadRequest, "Upload rejected"},
}

// HandleBookError writes the response for err and reports whether it did.
// Unknown errors become a generic 500; internals are logged, never returned
// to the caller.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorResponse(c, http.StatusBadRequest, "Validation failed", verrs)
		return true
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Title, sentinel.Error())
			return true
		}
	}

	logger.Error("unhandled book error", err)
	response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", nil)
	return true
}
