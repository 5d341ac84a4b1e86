package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"gorm.io/gorm"
)

// SectionRepositoryImpl implements domain.SectionRepository using GORM
type SectionRepositoryImpl struct {
	db *gorm.DB
}

// DBSection is the database model for Section. (page_slug, section_key) is unique.
type DBSection struct {
	ID         uint                  `gorm:"primaryKey"`
	PageSlug   string                `gorm:"size:128;not null;uniqueIndex:idx_sections_identity"`
	SectionKey string                `gorm:"size:128;not null;uniqueIndex:idx_sections_identity"`
	SortOrder  int                   `gorm:"index"`
	IsActive   bool                  `gorm:"index"`
	Content    JSON[domain.Document] `gorm:"column:content"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBSection) TableName() string {
	return "sections"
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *gorm.DB) *SectionRepositoryImpl {
	return &SectionRepositoryImpl{db: db}
}

// Create implements domain.SectionRepository
func (r *SectionRepositoryImpl) Create(ctx context.Context, section *domain.Section) error {
	row := sectionToDB(section)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	section.ID = row.ID
	section.CreatedAt = row.CreatedAt
	section.UpdatedAt = row.UpdatedAt
	return nil
}

// Find implements domain.SectionRepository
func (r *SectionRepositoryImpl) Find(ctx context.Context, pageSlug, sectionKey string) (*domain.Section, error) {
	var row DBSection
	err := r.db.WithContext(ctx).Where("page_slug = ? AND section_key = ?", pageSlug, sectionKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, err
	}
	return sectionToDomain(&row), nil
}

// ListByPage returns the active sections of a page in render order
func (r *SectionRepositoryImpl) ListByPage(ctx context.Context, pageSlug string) ([]*domain.Section, error) {
	var rows []DBSection
	err := r.db.WithContext(ctx).
		Where("page_slug = ? AND is_active = ?", pageSlug, true).
		Order("sort_order asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	sections := make([]*domain.Section, 0, len(rows))
	for i := range rows {
		sections = append(sections, sectionToDomain(&rows[i]))
	}
	return sections, nil
}

// UpdateContent replaces the stored content document of one section
func (r *SectionRepositoryImpl) UpdateContent(ctx context.Context, sectionID uint, content domain.Document) error {
	res := r.db.WithContext(ctx).Model(&DBSection{}).
		Where("id = ?", sectionID).
		Update("content", JSON[domain.Document]{Val: content})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}

func sectionToDB(s *domain.Section) *DBSection {
	content := s.Content
	if content == nil {
		content = domain.Document{}
	}
	return &DBSection{
		ID:         s.ID,
		PageSlug:   s.PageSlug,
		SectionKey: s.SectionKey,
		SortOrder:  s.Order,
		IsActive:   s.IsActive,
		Content:    JSON[domain.Document]{Val: content},
	}
}

func sectionToDomain(row *DBSection) *domain.Section {
	content := row.Content.Val
	if content == nil {
		content = domain.Document{}
	}
	return &domain.Section{
		ID:         row.ID,
		PageSlug:   row.PageSlug,
		SectionKey: row.SectionKey,
		Order:      row.SortOrder,
		IsActive:   row.IsActive,
		Content:    content,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

var _ domain.SectionRepository = (*SectionRepositoryImpl)(nil)
