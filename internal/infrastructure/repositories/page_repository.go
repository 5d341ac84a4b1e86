package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"gorm.io/gorm"
)

// PageRepositoryImpl implements domain.PageRepository using GORM
type PageRepositoryImpl struct {
	db *gorm.DB
}

// DBPage is the database model for Page
type DBPage struct {
	ID           uint             `gorm:"primaryKey"`
	Slug         string           `gorm:"uniqueIndex;size:128;not null"`
	Title        string           `gorm:"size:255;not null"`
	Route        string           `gorm:"size:255;not null"`
	ParentSlug   string           `gorm:"index;size:128"`
	ShowInNavbar bool             `gorm:"column:show_in_navbar"`
	SortOrder    int              `gorm:"index"`
	SEO          JSON[domain.SEO] `gorm:"column:seo"`
	IsActive     bool             `gorm:"index"`
	IsPublished  bool             `gorm:"column:is_published"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBPage) TableName() string {
	return "pages"
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *gorm.DB) *PageRepositoryImpl {
	return &PageRepositoryImpl{db: db}
}

// Create implements domain.PageRepository
func (r *PageRepositoryImpl) Create(ctx context.Context, page *domain.Page) error {
	row := pageToDB(page)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	page.ID = row.ID
	page.CreatedAt = row.CreatedAt
	page.UpdatedAt = row.UpdatedAt
	return nil
}

// FindBySlug implements domain.PageRepository
func (r *PageRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	return r.first(r.db.WithContext(ctx).Where("slug = ?", slug))
}

// FindChild implements domain.PageRepository
func (r *PageRepositoryImpl) FindChild(ctx context.Context, parentSlug, slug string) (*domain.Page, error) {
	return r.first(r.db.WithContext(ctx).Where("slug = ? AND parent_slug = ?", slug, parentSlug))
}

// ListActive implements domain.PageRepository
func (r *PageRepositoryImpl) ListActive(ctx context.Context, navbarOnly bool) ([]*domain.Page, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if navbarOnly {
		q = q.Where("show_in_navbar = ?", true)
	}

	var rows []DBPage
	if err := q.Order("sort_order asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	pages := make([]*domain.Page, 0, len(rows))
	for i := range rows {
		pages = append(pages, pageToDomain(&rows[i]))
	}
	return pages, nil
}

// UpdateSettings implements domain.PageRepository
func (r *PageRepositoryImpl) UpdateSettings(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error) {
	if _, err := r.FindBySlug(ctx, slug); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if settings.ShowInNavbar != nil {
		fields["show_in_navbar"] = *settings.ShowInNavbar
	}
	if settings.Order != nil {
		fields["sort_order"] = *settings.Order
	}
	if settings.IsActive != nil {
		fields["is_active"] = *settings.IsActive
	}
	if settings.IsPublished != nil {
		fields["is_published"] = *settings.IsPublished
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&DBPage{}).Where("slug = ?", slug).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindBySlug(ctx, slug)
}

func (r *PageRepositoryImpl) first(q *gorm.DB) (*domain.Page, error) {
	var row DBPage
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPageNotFound
		}
		return nil, err
	}
	return pageToDomain(&row), nil
}

func pageToDB(p *domain.Page) *DBPage {
	return &DBPage{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Route:        p.Route,
		ParentSlug:   p.ParentSlug,
		ShowInNavbar: p.ShowInNavbar,
		SortOrder:    p.Order,
		SEO:          JSON[domain.SEO]{Val: p.SEO},
		IsActive:     p.IsActive,
		IsPublished:  p.IsPublished,
	}
}

func pageToDomain(row *DBPage) *domain.Page {
	return &domain.Page{
		ID:           row.ID,
		Slug:         row.Slug,
		Title:        row.Title,
		Route:        row.Route,
		ParentSlug:   row.ParentSlug,
		ShowInNavbar: row.ShowInNavbar,
		Order:        row.SortOrder,
		SEO:          row.SEO.Val,
		IsActive:     row.IsActive,
		IsPublished:  row.IsPublished,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

var _ domain.PageRepository = (*PageRepositoryImpl)(nil)
