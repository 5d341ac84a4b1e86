package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MaxBatchUpload is the most files accepted by one multiple-image upload
const MaxBatchUpload = 10

// UploadServiceImpl implements domain.UploadService for images not tied to a
// section update
type UploadServiceImpl struct {
	media      domain.MediaService
	logger     *slog.Logger
	rootFolder string
}

// NewUploadService creates a new upload service. Default folders are
// <mediaRoot>-images/<page>/<section>.
func NewUploadService(media domain.MediaService, logger *slog.Logger, mediaRoot string) *UploadServiceImpl {
	return &UploadServiceImpl{media: media, logger: logger, rootFolder: mediaRoot + "-images"}
}

func (s *UploadServiceImpl) folderFor(pageSlug, sectionKey string) string {
	if pageSlug == "" {
		pageSlug = "home"
	}
	if sectionKey == "" {
		sectionKey = "general"
	}
	return s.rootFolder + "/" + pageSlug + "/" + sectionKey
}

// baseName is the file name without directory or extension
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	return strings.TrimSuffix(name, path.Ext(name))
}

func checkImage(file *domain.UploadFile) error {
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return domain.ErrUnsupportedFileType
	}
	return nil
}

// UploadImage implements domain.UploadService. An explicit folder overrides
// the page/section default.
func (s *UploadServiceImpl) UploadImage(ctx context.Context, file *domain.UploadFile, pageSlug, sectionKey, folder string) (*domain.ImageRef, error) {
	if file == nil {
		return nil, domain.NewValidationError("image", "No file provided")
	}
	if err := checkImage(file); err != nil {
		return nil, err
	}
	if folder == "" {
		folder = s.folderFor(pageSlug, sectionKey)
	}
	return s.media.Upload(ctx, file, folder, baseName(file.Filename))
}

// UploadImages implements domain.UploadService. Files that fail to upload are
// skipped and logged.
func (s *UploadServiceImpl) UploadImages(ctx context.Context, files []*domain.UploadFile, pageSlug, sectionKey string) ([]*domain.FileRef, error) {
	if len(files) == 0 {
		return nil, domain.NewValidationError("images", "No files provided")
	}
	if len(files) > MaxBatchUpload {
		return nil, domain.NewValidationError("images", fmt.Sprintf("at most %d files per upload", MaxBatchUpload))
	}
	for _, f := range files {
		if err := checkImage(f); err != nil {
			return nil, err
		}
	}

	folder := s.folderFor(pageSlug, sectionKey)
	uploaded := make([]*domain.FileRef, 0, len(files))
	for _, f := range files {
		ref, err := s.media.Upload(ctx, f, folder, baseName(f.Filename))
		if err != nil {
			s.logger.WarnContext(ctx, "image upload failed", "file", f.Filename, "error", err)
			continue
		}
		uploaded = append(uploaded, &domain.FileRef{URL: ref.URL, PublicID: ref.PublicID, OriginalName: f.Filename})
	}
	return uploaded, nil
}

// Delete implements domain.UploadService
func (s *UploadServiceImpl) Delete(ctx context.Context, publicID string) error {
	publicID = strings.Trim(strings.TrimSpace(publicID), "/")
	if publicID == "" {
		return domain.NewValidationError("publicId", "publicId is required")
	}
	return s.media.Delete(ctx, publicID)
}

var _ domain.UploadService = (*UploadServiceImpl)(nil)
