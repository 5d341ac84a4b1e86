// Package seed loads the initial site pages and sections and creates
// administrator accounts.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/services"
)

//go:embed data/*.yaml
var dataFS embed.FS

// SectionSeed is one section of a seeded page
type SectionSeed struct {
	Key     string          `yaml:"key"`
	Order   int             `yaml:"order"`
	Content domain.Document `yaml:"content"`
}

// PageSeed is one page with its sections
type PageSeed struct {
	Slug         string        `yaml:"slug"`
	Title        string        `yaml:"title"`
	Route        string        `yaml:"route"`
	ParentSlug   string        `yaml:"parentSlug"`
	ShowInNavbar bool          `yaml:"showInNavbar"`
	Order        int           `yaml:"order"`
	SEO          domain.SEO    `yaml:"seo"`
	Sections     []SectionSeed `yaml:"sections"`
}

type seedFile struct {
	Pages []PageSeed `yaml:"pages"`
}

// Load parses the embedded seed files in name order
func Load() ([]PageSeed, error) {
	return LoadFS(dataFS, "data")
}

// LoadFS parses every *.yaml file in dir of fsys
func LoadFS(fsys fs.FS, dir string) ([]PageSeed, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list seed files: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var pages []PageSeed
	seen := make(map[string]string)
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var file seedFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		for _, p := range file.Pages {
			if p.Slug == "" {
				return nil, fmt.Errorf("%s: page without slug", name)
			}
			if prev, ok := seen[p.Slug]; ok {
				return nil, fmt.Errorf("%s: page %q already defined in %s", name, p.Slug, prev)
			}
			seen[p.Slug] = name
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// Result counts what a content seed created
type Result struct {
	PagesCreated    int
	SectionsCreated int
}

// Seeder writes seed data through the repositories
type Seeder struct {
	pageRepo    domain.PageRepository
	sectionRepo domain.SectionRepository
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	logger      *slog.Logger
	validate    *validator.Validate
}

func NewSeeder(
	pageRepo domain.PageRepository,
	sectionRepo domain.SectionRepository,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		pageRepo:    pageRepo,
		sectionRepo: sectionRepo,
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		logger:      logger,
		validate:    validator.New(),
	}
}

// SeedContent creates missing pages and missing sections. Existing rows are
// left alone so admin edits survive a re-run.
func (s *Seeder) SeedContent(ctx context.Context, pages []PageSeed) (Result, error) {
	var res Result
	for _, p := range pages {
		_, err := s.pageRepo.FindBySlug(ctx, p.Slug)
		switch {
		case errors.Is(err, domain.ErrPageNotFound):
			page := &domain.Page{
				Slug:         p.Slug,
				Title:        p.Title,
				Route:        p.Route,
				ParentSlug:   p.ParentSlug,
				ShowInNavbar: p.ShowInNavbar,
				Order:        p.Order,
				SEO:          p.SEO,
				IsActive:     true,
				IsPublished:  true,
			}
			if err := s.pageRepo.Create(ctx, page); err != nil {
				return res, fmt.Errorf("failed to create page %s: %w", p.Slug, err)
			}
			res.PagesCreated++
			s.logger.Info("seeded page", "slug", p.Slug)
		case err != nil:
			return res, fmt.Errorf("failed to look up page %s: %w", p.Slug, err)
		default:
			s.logger.Info("page already exists, skipping", "slug", p.Slug)
		}

		for _, sec := range p.Sections {
			created, err := s.ensureSection(ctx, p.Slug, sec)
			if err != nil {
				return res, err
			}
			if created {
				res.SectionsCreated++
			}
		}
	}
	return res, nil
}

func (s *Seeder) ensureSection(ctx context.Context, pageSlug string, sec SectionSeed) (bool, error) {
	_, err := s.sectionRepo.Find(ctx, pageSlug, sec.Key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrSectionNotFound) {
		return false, fmt.Errorf("failed to look up section %s/%s: %w", pageSlug, sec.Key, err)
	}

	content := sec.Content
	if content == nil {
		content = domain.Document{}
	}
	section := &domain.Section{
		PageSlug:   pageSlug,
		SectionKey: sec.Key,
		Order:      sec.Order,
		IsActive:   true,
		Content:    content,
	}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return false, fmt.Errorf("failed to create section %s/%s: %w", pageSlug, sec.Key, err)
	}
	return true, nil
}

// SeedAdmin creates a verified administrator. It fails with
// domain.ErrUserAlreadyExists when the address is taken.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewValidationError("email", "Invalid email address")
	}
	if len(password) < services.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if role == "" {
		role = domain.RoleAdmin
	}
	if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
		return nil, domain.NewValidationError("role", fmt.Sprintf("role must be %s or %s", domain.RoleAdmin, domain.RoleSuperAdmin))
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Verified:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("created admin user", "id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}
