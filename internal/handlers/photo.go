package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// maxPhotoRead bounds how much of an uploaded photo is buffered. Size rules are enforced by the services.
const maxPhotoRead = 10<<20 + 1

// readPhoto returns the uploaded file in field, or nil when the form has none.
func readPhoto(c *gin.Context, field string) (*domain.Photo, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("Image could not be uploaded")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded photo: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPhotoRead))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Image could not be uploaded")
	}
	// The client-declared part type is ignored; only sniffed image types are stored.
	contentType := http.DetectContentType(data)
	if !isImageType(contentType) {
		return nil, apperrors.NewBadRequestError("Only image files can be uploaded")
	}
	return &domain.Photo{Data: data, ContentType: contentType}, nil
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// writePhoto streams a stored photo back with its content type.
// Rows holding anything other than an image are served as opaque bytes.
func writePhoto(c *gin.Context, photo *domain.Photo) {
	contentType := photo.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(photo.Data)
	}
	if !isImageType(contentType) {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, contentType, photo.Data)
}
