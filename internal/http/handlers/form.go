package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
)

// defaultMultipartMemory is the in-memory part of a parsed multipart form
const defaultMultipartMemory = 32 << 20

// isMultipart reports whether the request carries a multipart form
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// tooLarge reports whether err comes from a body or file size limit
func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, domain.ErrFileTooLarge)
}

// multipartForm parses the request form, mapping oversized bodies to
// domain.ErrFileTooLarge
func multipartForm(c *gin.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if tooLarge(err) {
			return nil, domain.ErrFileTooLarge
		}
		return nil, domain.NewValidationError("", "Invalid multipart form")
	}
	return form, nil
}

// readUpload loads one uploaded file into memory. Files above maxSize fail
// with domain.ErrFileTooLarge.
func readUpload(fh *multipart.FileHeader, maxSize int64) (*domain.UploadFile, error) {
	if maxSize > 0 && fh.Size > maxSize {
		return nil, domain.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		if tooLarge(err) {
			return nil, domain.ErrFileTooLarge
		}
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return &domain.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}, nil
}

// formFile returns the first file of field, or nil when none was sent
func formFile(form *multipart.Form, field string, maxSize int64) (*domain.UploadFile, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return readUpload(files[0], maxSize)
}

// formValue returns the first value of field
func formValue(form *multipart.Form, field string) string {
	if values := form.Value[field]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// decodeFormValue parses values that look like JSON objects or arrays so
// nested content can be sent through a multipart form. Anything else, and
// JSON that fails to parse, stays a string.
func decodeFormValue(v string) any {
	trimmed := strings.TrimSpace(v)
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return decoded
		}
	}
	return v
}

// bindJSON decodes the body into dst, treating an empty body as no fields
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if tooLarge(err) {
			return domain.ErrContentTooLarge
		}
		return domain.NewValidationError("", "Invalid request body")
	}
	return nil
}
