package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// DefaultMaxContentSize bounds the JSON size of one section update
const DefaultMaxContentSize = 5 * 1024 * 1024

// sectionImageTypes are the accepted MIME types of section images
var sectionImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// pageFolders are the top-level pages that keep their media under a
// root-prefixed folder name
var pageFolders = map[string]bool{
	"home":    true,
	"about":   true,
	"contact": true,
	"blog":    true,
}

// MediaFolder returns the media folder of a page's section images
func MediaFolder(root, pageSlug string) string {
	if pageFolders[pageSlug] {
		return root + "/" + root + pageSlug
	}
	return root + "/" + pageSlug
}

type SectionConfig struct {
	MediaRoot      string
	MaxContentSize int
}

// SectionServiceImpl implements domain.SectionService
type SectionServiceImpl struct {
	sectionRepo domain.SectionRepository
	media       domain.MediaService
	cache       domain.PageCache
	auditLogger domain.AuditLogger
	logger      *slog.Logger
	config      SectionConfig
	now         func() time.Time
}

// NewSectionService creates a new section service
func NewSectionService(
	sectionRepo domain.SectionRepository,
	media domain.MediaService,
	cache domain.PageCache,
	auditLogger domain.AuditLogger,
	logger *slog.Logger,
	config SectionConfig,
) *SectionServiceImpl {
	if config.MaxContentSize <= 0 {
		config.MaxContentSize = DefaultMaxContentSize
	}
	return &SectionServiceImpl{
		sectionRepo: sectionRepo,
		media:       media,
		cache:       cache,
		auditLogger: auditLogger,
		logger:      logger,
		config:      config,
		now:         time.Now,
	}
}

// UpdateSection implements domain.SectionService. The update is merged into
// the stored content; with an image attached, the previous image at the field
// path is deleted from the media host and the new reference written there.
func (s *SectionServiceImpl) UpdateSection(ctx context.Context, u domain.SectionUpdate) (*domain.Section, error) {
	if u.PageSlug == "" || u.SectionKey == "" {
		return nil, domain.NewValidationError("", "Page slug and section key are required")
	}
	if len(u.Content) == 0 && u.Image == nil {
		return nil, domain.ErrNothingToUpdate
	}

	size, err := u.Content.Size()
	if err != nil {
		return nil, domain.NewValidationError("content", "content is not serialisable")
	}
	if size > s.config.MaxContentSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrContentTooLarge, size, s.config.MaxContentSize)
	}
	if u.Image != nil && !sectionImageTypes[strings.ToLower(u.Image.ContentType)] {
		return nil, domain.ErrUnsupportedFileType
	}

	section, err := s.sectionRepo.Find(ctx, u.PageSlug, u.SectionKey)
	if err != nil {
		return nil, err
	}

	update := u.Content.Clone()
	if update == nil {
		update = domain.Document{}
	}

	if u.Image != nil {
		path := u.ImageFieldPath
		if path == "" {
			path = domain.DefaultImageFieldPath
		}
		s.deletePrevious(ctx, section.Content, path)

		publicID := fmt.Sprintf("%s-%d", u.SectionKey, s.now().UnixMilli())
		ref, err := s.media.Upload(ctx, u.Image, MediaFolder(s.config.MediaRoot, u.PageSlug), publicID)
		if err != nil {
			return nil, err
		}
		update.Set(path, ref.ImageValue())
	}

	merged := domain.Merge(section.Content, update)
	if err := s.sectionRepo.UpdateContent(ctx, section.ID, merged); err != nil {
		return nil, fmt.Errorf("failed to save section: %w", err)
	}
	section.Content = merged

	if err := s.cache.Invalidate(ctx, u.PageSlug); err != nil {
		s.logger.WarnContext(ctx, "page cache invalidation failed", "page", u.PageSlug, "error", err)
	}
	if s.auditLogger != nil {
		s.auditLogger.LogEvent(ctx, domain.NewAuditEvent(domain.SectionUpdatedEvent, 0).
			WithMetadata("page", u.PageSlug).
			WithMetadata("section", u.SectionKey).
			WithMetadata("image", u.Image != nil))
	}
	return section, nil
}

// deletePrevious removes the image currently stored at path. Failures are
// logged and never abort the update.
func (s *SectionServiceImpl) deletePrevious(ctx context.Context, content domain.Document, path string) {
	old, ok := content.ImageAt(path)
	if !ok {
		return
	}
	publicID := old.PublicID
	if publicID == "" {
		publicID = s.media.PublicIDFromURL(old.URL)
	}
	if publicID == "" {
		return
	}
	if err := s.media.Delete(ctx, publicID); err != nil {
		s.logger.WarnContext(ctx, "could not delete previous section image", "public_id", publicID, "error", err)
	}
}

var _ domain.SectionService = (*SectionServiceImpl)(nil)
