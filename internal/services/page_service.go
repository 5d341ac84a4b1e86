package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// PageServiceImpl implements domain.PageService with a cache-aside read path
type PageServiceImpl struct {
	pageRepo    domain.PageRepository
	sectionRepo domain.SectionRepository
	cache       domain.PageCache
	logger      *slog.Logger
}

// NewPageService creates a new page service
func NewPageService(pageRepo domain.PageRepository, sectionRepo domain.SectionRepository, cache domain.PageCache, logger *slog.Logger) *PageServiceImpl {
	return &PageServiceImpl{
		pageRepo:    pageRepo,
		sectionRepo: sectionRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ListPages implements domain.PageService
func (s *PageServiceImpl) ListPages(ctx context.Context, navbarOnly bool) ([]*domain.Page, error) {
	return s.pageRepo.ListActive(ctx, navbarOnly)
}

// GetPage implements domain.PageService
func (s *PageServiceImpl) GetPage(ctx context.Context, slug string) (*domain.PageView, error) {
	return s.view(ctx, slug, func() (*domain.Page, error) {
		return s.pageRepo.FindBySlug(ctx, slug)
	})
}

// GetServicePage implements domain.PageService
func (s *PageServiceImpl) GetServicePage(ctx context.Context, slug string) (*domain.PageView, error) {
	return s.view(ctx, domain.ServicePageKey(slug), func() (*domain.Page, error) {
		return s.pageRepo.FindChild(ctx, domain.ServicesParentSlug, slug)
	})
}

// view serves key from the cache or assembles the page and its active sections
func (s *PageServiceImpl) view(ctx context.Context, key string, load func() (*domain.Page, error)) (*domain.PageView, error) {
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	page, err := load()
	if err != nil {
		return nil, err
	}
	if !page.IsActive {
		return nil, domain.ErrPageNotFound
	}

	sections, err := s.sectionRepo.ListByPage(ctx, page.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections: %w", err)
	}

	view := &domain.PageView{Page: page, Sections: sections}
	if err := s.cache.Set(ctx, key, view); err != nil {
		s.logger.WarnContext(ctx, "page cache write failed", "key", key, "error", err)
	}
	return view, nil
}

// UpdateSettings implements domain.PageService
func (s *PageServiceImpl) UpdateSettings(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error) {
	if settings.Empty() {
		return nil, domain.NewValidationError("", "No page settings provided")
	}
	if settings.Order != nil && *settings.Order < 0 {
		return nil, domain.NewValidationError("order", "order must not be negative")
	}

	page, err := s.pageRepo.UpdateSettings(ctx, slug, settings)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.WarnContext(ctx, "page cache invalidation failed", "page", slug, "error", err)
	}
	return page, nil
}

var _ domain.PageService = (*PageServiceImpl)(nil)
