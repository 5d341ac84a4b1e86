package mocks

import (
	"context"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MockPageService implements domain.PageService interface for testing
type MockPageService struct {
	ListPagesFunc      func(ctx context.Context, navbarOnly bool) ([]*domain.Page, error)
	GetPageFunc        func(ctx context.Context, slug string) (*domain.PageView, error)
	GetServicePageFunc func(ctx context.Context, slug string) (*domain.PageView, error)
	UpdateSettingsFunc func(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error)
}

func NewMockPageService() *MockPageService {
	return &MockPageService{}
}

func (m *MockPageService) ListPages(ctx context.Context, navbarOnly bool) ([]*domain.Page, error) {
	if m.ListPagesFunc != nil {
		return m.ListPagesFunc(ctx, navbarOnly)
	}
	return []*domain.Page{}, nil
}

func (m *MockPageService) GetPage(ctx context.Context, slug string) (*domain.PageView, error) {
	if m.GetPageFunc != nil {
		return m.GetPageFunc(ctx, slug)
	}
	return nil, domain.ErrPageNotFound
}

func (m *MockPageService) GetServicePage(ctx context.Context, slug string) (*domain.PageView, error) {
	if m.GetServicePageFunc != nil {
		return m.GetServicePageFunc(ctx, slug)
	}
	return nil, domain.ErrPageNotFound
}

func (m *MockPageService) UpdateSettings(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, slug, settings)
	}
	return nil, domain.ErrPageNotFound
}

// MockSectionService implements domain.SectionService interface for testing
type MockSectionService struct {
	UpdateSectionFunc func(ctx context.Context, update domain.SectionUpdate) (*domain.Section, error)
}

func NewMockSectionService() *MockSectionService {
	return &MockSectionService{}
}

func (m *MockSectionService) UpdateSection(ctx context.Context, update domain.SectionUpdate) (*domain.Section, error) {
	if m.UpdateSectionFunc != nil {
		return m.UpdateSectionFunc(ctx, update)
	}
	return nil, domain.ErrSectionNotFound
}

// MockContactService implements domain.ContactService interface for testing
type MockContactService struct {
	SubmitFunc func(ctx context.Context, input domain.ContactInput) (*domain.Contact, error)
	ListFunc   func(ctx context.Context, page, limit int) (*domain.ContactList, error)
	GetFunc    func(ctx context.Context, id uint) (*domain.Contact, error)
	UpdateFunc func(ctx context.Context, id uint, update domain.ContactUpdate) (*domain.Contact, error)
	DeleteFunc func(ctx context.Context, id uint) error
}

func NewMockContactService() *MockContactService {
	return &MockContactService{}
}

func (m *MockContactService) Submit(ctx context.Context, input domain.ContactInput) (*domain.Contact, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, input)
	}
	return &domain.Contact{ID: 1, ContactEmail: input.ContactEmail, Status: domain.ContactStatusNew}, nil
}

func (m *MockContactService) List(ctx context.Context, page, limit int) (*domain.ContactList, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return &domain.ContactList{Page: page, Limit: limit, Contacts: []*domain.Contact{}}, nil
}

func (m *MockContactService) Get(ctx context.Context, id uint) (*domain.Contact, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactService) Update(ctx context.Context, id uint, update domain.ContactUpdate) (*domain.Contact, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUploadService implements domain.UploadService interface for testing
type MockUploadService struct {
	UploadImageFunc  func(ctx context.Context, file *domain.UploadFile, pageSlug, sectionKey, folder string) (*domain.ImageRef, error)
	UploadImagesFunc func(ctx context.Context, files []*domain.UploadFile, pageSlug, sectionKey string) ([]*domain.FileRef, error)
	DeleteFunc       func(ctx context.Context, publicID string) error
}

func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) UploadImage(ctx context.Context, file *domain.UploadFile, pageSlug, sectionKey, folder string) (*domain.ImageRef, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, file, pageSlug, sectionKey, folder)
	}
	return &domain.ImageRef{URL: "https://media.test/" + file.Filename, PublicID: file.Filename}, nil
}

func (m *MockUploadService) UploadImages(ctx context.Context, files []*domain.UploadFile, pageSlug, sectionKey string) ([]*domain.FileRef, error) {
	if m.UploadImagesFunc != nil {
		return m.UploadImagesFunc(ctx, files, pageSlug, sectionKey)
	}
	refs := make([]*domain.FileRef, len(files))
	for i, f := range files {
		refs[i] = &domain.FileRef{URL: "https://media.test/" + f.Filename, PublicID: f.Filename, OriginalName: f.Filename}
	}
	return refs, nil
}

func (m *MockUploadService) Delete(ctx context.Context, publicID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, publicID)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.PageService    = (*MockPageService)(nil)
	_ domain.SectionService = (*MockSectionService)(nil)
	_ domain.ContactService = (*MockContactService)(nil)
	_ domain.UploadService  = (*MockUploadService)(nil)
)
