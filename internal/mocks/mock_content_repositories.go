package mocks

import (
	"context"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MockPageRepository implements domain.PageRepository interface for testing
type MockPageRepository struct {
	CreateFunc         func(ctx context.Context, page *domain.Page) error
	FindBySlugFunc     func(ctx context.Context, slug string) (*domain.Page, error)
	FindChildFunc      func(ctx context.Context, parentSlug, slug string) (*domain.Page, error)
	ListActiveFunc     func(ctx context.Context, navbarOnly bool) ([]*domain.Page, error)
	UpdateSettingsFunc func(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error)
}

func NewMockPageRepository() *MockPageRepository {
	return &MockPageRepository{}
}

func (m *MockPageRepository) Create(ctx context.Context, page *domain.Page) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, page)
	}
	return nil
}

func (m *MockPageRepository) FindBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrPageNotFound
}

func (m *MockPageRepository) FindChild(ctx context.Context, parentSlug, slug string) (*domain.Page, error) {
	if m.FindChildFunc != nil {
		return m.FindChildFunc(ctx, parentSlug, slug)
	}
	return nil, domain.ErrPageNotFound
}

func (m *MockPageRepository) ListActive(ctx context.Context, navbarOnly bool) ([]*domain.Page, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, navbarOnly)
	}
	return []*domain.Page{}, nil
}

func (m *MockPageRepository) UpdateSettings(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, slug, settings)
	}
	return nil, domain.ErrPageNotFound
}

// MockSectionRepository implements domain.SectionRepository interface for testing
type MockSectionRepository struct {
	CreateFunc        func(ctx context.Context, section *domain.Section) error
	FindFunc          func(ctx context.Context, pageSlug, sectionKey string) (*domain.Section, error)
	ListByPageFunc    func(ctx context.Context, pageSlug string) ([]*domain.Section, error)
	UpdateContentFunc func(ctx context.Context, sectionID uint, content domain.Document) error
}

func NewMockSectionRepository() *MockSectionRepository {
	return &MockSectionRepository{}
}

func (m *MockSectionRepository) Create(ctx context.Context, section *domain.Section) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, section)
	}
	return nil
}

func (m *MockSectionRepository) Find(ctx context.Context, pageSlug, sectionKey string) (*domain.Section, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, pageSlug, sectionKey)
	}
	return nil, domain.ErrSectionNotFound
}

func (m *MockSectionRepository) ListByPage(ctx context.Context, pageSlug string) ([]*domain.Section, error) {
	if m.ListByPageFunc != nil {
		return m.ListByPageFunc(ctx, pageSlug)
	}
	return []*domain.Section{}, nil
}

func (m *MockSectionRepository) UpdateContent(ctx context.Context, sectionID uint, content domain.Document) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, sectionID, content)
	}
	return nil
}

// MockContactRepository implements domain.ContactRepository interface for testing
type MockContactRepository struct {
	CreateFunc   func(ctx context.Context, contact *domain.Contact) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Contact, error)
	ListFunc     func(ctx context.Context, offset, limit int) ([]*domain.Contact, int64, error)
	UpdateFunc   func(ctx context.Context, contact *domain.Contact) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contact)
	}
	return nil
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uint) (*domain.Contact, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactRepository) List(ctx context.Context, offset, limit int) ([]*domain.Contact, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}
	return []*domain.Contact{}, 0, nil
}

func (m *MockContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, contact)
	}
	return nil
}

func (m *MockContactRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPageCache implements domain.PageCache and records invalidations
type MockPageCache struct {
	GetFunc func(ctx context.Context, key string) (*domain.PageView, bool)
	SetFunc func(ctx context.Context, key string, view *domain.PageView) error

	Invalidated []string
}

func NewMockPageCache() *MockPageCache {
	return &MockPageCache{}
}

func (m *MockPageCache) Get(ctx context.Context, key string) (*domain.PageView, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, false
}

func (m *MockPageCache) Set(ctx context.Context, key string, view *domain.PageView) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, view)
	}
	return nil
}

func (m *MockPageCache) Invalidate(ctx context.Context, pageSlug string) error {
	m.Invalidated = append(m.Invalidated, pageSlug)
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.PageRepository    = (*MockPageRepository)(nil)
	_ domain.SectionRepository = (*MockSectionRepository)(nil)
	_ domain.ContactRepository = (*MockContactRepository)(nil)
	_ domain.PageCache         = (*MockPageCache)(nil)
)
