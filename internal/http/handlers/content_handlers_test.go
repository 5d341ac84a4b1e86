package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1 << 20

func pageRouter(pages *mocks.MockPageService, sections *mocks.MockSectionService) *gin.Engine {
	h := NewPageHandlers(pages, sections, testMaxUpload)
	r := gin.New()
	r.GET("/pages", h.ListPages)
	r.GET("/pages/services/:slug", h.GetServicePage)
	r.GET("/pages/:slug", h.GetPage)
	r.PATCH("/pages/:slug", h.UpdatePage)
	r.PATCH("/pages/sections/:pageSlug/:sectionKey", h.UpdateSection)
	return r
}

func TestPageHandlers_Reads(t *testing.T) {
	pages := mocks.NewMockPageService()
	var navbarOnly bool
	pages.ListPagesFunc = func(ctx context.Context, navbar bool) ([]*domain.Page, error) {
		navbarOnly = navbar
		return []*domain.Page{{Slug: "home"}}, nil
	}
	pages.GetPageFunc = func(ctx context.Context, slug string) (*domain.PageView, error) {
		if slug != "home" {
			return nil, domain.ErrPageNotFound
		}
		return &domain.PageView{Page: &domain.Page{Slug: "home"}, Sections: []*domain.Section{{SectionKey: "hero"}}}, nil
	}
	pages.GetServicePageFunc = func(ctx context.Context, slug string) (*domain.PageView, error) {
		return &domain.PageView{Page: &domain.Page{Slug: slug, ParentSlug: "services"}}, nil
	}
	r := pageRouter(pages, mocks.NewMockSectionService())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/pages?navbar=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, navbarOnly)
	assert.Len(t, decode(t, w)["data"], 1)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/pages/home", nil))
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "home", data["slug"])
	assert.Len(t, data["sections"], 1)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/pages/services/court-reporting", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "court-reporting", decode(t, w)["data"].(map[string]any)["slug"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/pages/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Page not found", decode(t, w)["message"])
}

func TestPageHandlers_UpdatePage(t *testing.T) {
	pages := mocks.NewMockPageService()
	var got domain.PageSettings
	pages.UpdateSettingsFunc = func(ctx context.Context, slug string, settings domain.PageSettings) (*domain.Page, error) {
		got = settings
		return &domain.Page{Slug: slug, ShowInNavbar: *settings.ShowInNavbar}, nil
	}

	w := serve(pageRouter(pages, mocks.NewMockSectionService()),
		jsonRequest(t, http.MethodPatch, "/pages/about", map[string]any{"showInNavbar": false}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, got.ShowInNavbar)
	assert.False(t, *got.ShowInNavbar)
	assert.Nil(t, got.Order)
	assert.Nil(t, got.IsActive)
}

func TestPageHandlers_UpdateSection_JSON(t *testing.T) {
	sections := mocks.NewMockSectionService()
	var got domain.SectionUpdate
	sections.UpdateSectionFunc = func(ctx context.Context, update domain.SectionUpdate) (*domain.Section, error) {
		got = update
		return &domain.Section{PageSlug: update.PageSlug, SectionKey: update.SectionKey, Content: update.Content}, nil
	}

	w := serve(pageRouter(mocks.NewMockPageService(), sections), jsonRequest(t, http.MethodPatch, "/pages/sections/home/hero",
		map[string]any{"heading": "Welcome", "stats": []any{1, 2}}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "home", got.PageSlug)
	assert.Equal(t, "hero", got.SectionKey)
	assert.Nil(t, got.Image)
	assert.Equal(t, "Welcome", got.Content["heading"])
	assert.Equal(t, []any{float64(1), float64(2)}, got.Content["stats"])
	assert.Equal(t, "Section updated successfully", decode(t, w)["message"])
}

func TestPageHandlers_UpdateSection_Multipart(t *testing.T) {
	sections := mocks.NewMockSectionService()
	var got domain.SectionUpdate
	sections.UpdateSectionFunc = func(ctx context.Context, update domain.SectionUpdate) (*domain.Section, error) {
		got = update
		return &domain.Section{PageSlug: update.PageSlug, SectionKey: update.SectionKey}, nil
	}

	body, contentType := multipartBody(t, [][2]string{
		{"heading", "Welcome"},
		{"cards", `[{"title":"One"}]`},
		{"cta", `{"label":"Book"}`},
		{"broken", `{not json}`},
		{imageFieldPathKey, "banner.image"},
	}, pngFile("imageFile", "banner.png"))
	req := httptest.NewRequest(http.MethodPatch, "/pages/sections/home/hero", body)
	req.Header.Set("Content-Type", contentType)

	w := serve(pageRouter(mocks.NewMockPageService(), sections), req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "banner.image", got.ImageFieldPath)
	assert.Equal(t, "Welcome", got.Content["heading"])
	assert.Equal(t, []any{map[string]any{"title": "One"}}, got.Content["cards"])
	assert.Equal(t, map[string]any{"label": "Book"}, got.Content["cta"])
	assert.Equal(t, "{not json}", got.Content["broken"])
	assert.NotContains(t, got.Content, imageFieldPathKey)

	require.NotNil(t, got.Image)
	assert.Equal(t, "banner.png", got.Image.Filename)
	assert.Equal(t, "image/png", got.Image.ContentType)
	assert.Equal(t, int64(8), got.Image.Size)
}

func TestPageHandlers_UpdateSection_FileTooLarge(t *testing.T) {
	sections := mocks.NewMockSectionService()
	sections.UpdateSectionFunc = func(ctx context.Context, update domain.SectionUpdate) (*domain.Section, error) {
		t.Fatal("oversized file must not reach the service")
		return nil, nil
	}
	h := NewPageHandlers(mocks.NewMockPageService(), sections, 4)
	r := gin.New()
	r.PATCH("/pages/sections/:pageSlug/:sectionKey", h.UpdateSection)

	body, contentType := multipartBody(t, nil, pngFile("imageFile", "big.png"))
	req := httptest.NewRequest(http.MethodPatch, "/pages/sections/home/hero", body)
	req.Header.Set("Content-Type", contentType)
	w := serve(r, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "File too large", resp["message"])
}

func contactRouter(svc *mocks.MockContactService) *gin.Engine {
	h := NewContactHandlers(svc, testMaxUpload)
	r := gin.New()
	r.POST("/contacts", h.Create)
	r.GET("/contacts", h.List)
	r.GET("/contacts/:id", h.Get)
	r.PATCH("/contacts/:id", h.Update)
	r.DELETE("/contacts/:id", h.Delete)
	return r
}

func TestContactHandlers_Create_Multipart(t *testing.T) {
	tests := []struct {
		name             string
		fields           [][2]string
		expectedServices any
	}{
		{
			name:             "repeated services",
			fields:           [][2]string{{"Services_Needed", "Court Reporting"}, {"Services_Needed", "Videography"}},
			expectedServices: []string{"Court Reporting", "Videography"},
		},
		{
			name:             "bracketed field name",
			fields:           [][2]string{{"Services_Needed[]", "Interpreting"}},
			expectedServices: "Interpreting",
		},
		{
			name:             "json encoded string",
			fields:           [][2]string{{"Services_Needed", `["A","B"]`}},
			expectedServices: `["A","B"]`,
		},
		{
			name:             "no services",
			expectedServices: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockContactService()
			var got domain.ContactInput
			svc.SubmitFunc = func(ctx context.Context, input domain.ContactInput) (*domain.Contact, error) {
				got = input
				return &domain.Contact{ID: 9, ContactEmail: input.ContactEmail}, nil
			}

			fields := append([][2]string{
				{"First_Name", "Ada"},
				{"Contact_Email", "ada@example.com"},
				{"estimated_duration", "2h"},
				{"notes", "call first"},
			}, tt.fields...)
			body, contentType := multipartBody(t, fields, testFile{field: "File", name: "brief.pdf", contentType: "application/pdf", body: []byte("%PDF-1.4")})
			req := httptest.NewRequest(http.MethodPost, "/contacts", body)
			req.Header.Set("Content-Type", contentType)

			w := serve(contactRouter(svc), req)

			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			assert.Equal(t, "Ada", got.FirstName)
			assert.Equal(t, "ada@example.com", got.ContactEmail)
			assert.Equal(t, "2h", got.EstimatedDuration)
			assert.Equal(t, "call first", got.Notes)
			assert.Equal(t, tt.expectedServices, got.ServicesNeeded)
			require.NotNil(t, got.File)
			assert.Equal(t, "brief.pdf", got.File.Filename)
			assert.Equal(t, "application/pdf", got.File.ContentType)

			resp := decode(t, w)
			assert.Equal(t, "Contact created", resp["message"])
			assert.Equal(t, float64(9), resp["data"].(map[string]any)["id"])
		})
	}
}

func TestContactHandlers_Create_JSON(t *testing.T) {
	svc := mocks.NewMockContactService()
	var got domain.ContactInput
	svc.SubmitFunc = func(ctx context.Context, input domain.ContactInput) (*domain.Contact, error) {
		got = input
		return &domain.Contact{ID: 1}, nil
	}

	w := serve(contactRouter(svc), jsonRequest(t, http.MethodPost, "/contacts", map[string]any{
		"First_Name":      "Ada",
		"Contact_Email":   "ada@example.com",
		"Services_Needed": []string{"Videography"},
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, []any{"Videography"}, got.ServicesNeeded)
	assert.Nil(t, got.File)
}

func TestContactHandlers_Create_ValidationError(t *testing.T) {
	svc := mocks.NewMockContactService()
	svc.SubmitFunc = func(ctx context.Context, input domain.ContactInput) (*domain.Contact, error) {
		return nil, domain.NewValidationError("Contact_Email", "Invalid email address")
	}

	w := serve(contactRouter(svc), jsonRequest(t, http.MethodPost, "/contacts", map[string]any{"Contact_Email": "nope"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Invalid email address", resp["message"])
	assert.Equal(t, "Contact_Email", resp["field"])
}

func TestContactHandlers_List(t *testing.T) {
	svc := mocks.NewMockContactService()
	var gotPage, gotLimit int
	svc.ListFunc = func(ctx context.Context, page, limit int) (*domain.ContactList, error) {
		gotPage, gotLimit = page, limit
		return &domain.ContactList{Total: 11, Page: page, Limit: limit, Contacts: []*domain.Contact{{ID: 1}}}, nil
	}

	w := serve(contactRouter(svc), httptest.NewRequest(http.MethodGet, "/contacts?page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 5, gotLimit)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(11), data["total"])
	assert.Len(t, data["contacts"], 1)
}

func TestContactHandlers_ByID(t *testing.T) {
	svc := mocks.NewMockContactService()
	var updated domain.ContactUpdate
	var deleted uint
	svc.GetFunc = func(ctx context.Context, id uint) (*domain.Contact, error) {
		if id != 4 {
			return nil, domain.ErrContactNotFound
		}
		return &domain.Contact{ID: 4}, nil
	}
	svc.UpdateFunc = func(ctx context.Context, id uint, update domain.ContactUpdate) (*domain.Contact, error) {
		updated = update
		return &domain.Contact{ID: id, Status: *update.Status}, nil
	}
	svc.DeleteFunc = func(ctx context.Context, id uint) error {
		deleted = id
		return nil
	}
	r := contactRouter(svc)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/contacts/4", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/contacts/5", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, id := range []string{"abc", "0", "-1"} {
		w = serve(r, httptest.NewRequest(http.MethodGet, "/contacts/"+id, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Equal(t, "id", decode(t, w)["field"])
	}

	w = serve(r, jsonRequest(t, http.MethodPatch, "/contacts/4", map[string]any{"status": "closed"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, updated.Status)
	assert.Equal(t, domain.ContactStatusClosed, *updated.Status)
	assert.Nil(t, updated.City)

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/contacts/4", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), deleted)
}

func uploadRouter(uploads *mocks.MockUploadService, sections *mocks.MockSectionService, maxSize int64) *gin.Engine {
	h := NewUploadHandlers(uploads, sections, maxSize)
	r := gin.New()
	r.POST("/upload", h.Upload)
	r.POST("/upload/section", h.UploadSection)
	r.POST("/upload/multiple", h.UploadMultiple)
	r.DELETE("/upload/*publicId", h.Delete)
	return r
}

func multipartRequest(t *testing.T, path string, fields [][2]string, files ...testFile) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, fields, files...)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestUploadHandlers_Upload(t *testing.T) {
	uploads := mocks.NewMockUploadService()
	var gotPage, gotSection, gotFolder string
	uploads.UploadImageFunc = func(ctx context.Context, file *domain.UploadFile, pageSlug, sectionKey, folder string) (*domain.ImageRef, error) {
		gotPage, gotSection, gotFolder = pageSlug, sectionKey, folder
		return &domain.ImageRef{URL: "https://media.test/x.png", PublicID: "varallo-images/home/hero/x"}, nil
	}

	w := serve(uploadRouter(uploads, mocks.NewMockSectionService(), testMaxUpload),
		multipartRequest(t, "/upload", [][2]string{{"pageSlug", "home"}, {"sectionKey", "hero"}}, pngFile("image", "x.png")))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "home", gotPage)
	assert.Equal(t, "hero", gotSection)
	assert.Empty(t, gotFolder)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "https://media.test/x.png", resp["url"])
	assert.Equal(t, "varallo-images/home/hero/x", resp["publicId"])
}

func TestUploadHandlers_Upload_Errors(t *testing.T) {
	tests := []struct {
		name           string
		maxSize        int64
		files          []testFile
		expectedStatus int
		expectedMsg    string
	}{
		{"file too large", 4, []testFile{pngFile("image", "x.png")}, http.StatusNotFound, "File too large"},
		{"unsupported type", testMaxUpload, []testFile{{field: "image", name: "x.pdf", contentType: "application/pdf", body: []byte("%PDF")}}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := mocks.NewMockUploadService()
			uploads.UploadImageFunc = func(ctx context.Context, file *domain.UploadFile, pageSlug, sectionKey, folder string) (*domain.ImageRef, error) {
				return nil, domain.ErrUnsupportedFileType
			}

			w := serve(uploadRouter(uploads, mocks.NewMockSectionService(), tt.maxSize), multipartRequest(t, "/upload", nil, tt.files...))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, decode(t, w)["message"])
			}
		})
	}
}

func TestUploadHandlers_UploadSection(t *testing.T) {
	sections := mocks.NewMockSectionService()
	var got domain.SectionUpdate
	sections.UpdateSectionFunc = func(ctx context.Context, update domain.SectionUpdate) (*domain.Section, error) {
		got = update
		content := domain.Document{}
		content.Set(update.ImageFieldPath, domain.ImageRef{URL: "https://media.test/new.png", PublicID: "varallo/varallohome/new"}.ImageValue())
		return &domain.Section{PageSlug: update.PageSlug, SectionKey: update.SectionKey, Content: content}, nil
	}
	r := uploadRouter(mocks.NewMockUploadService(), sections, testMaxUpload)

	w := serve(r, multipartRequest(t, "/upload/section", [][2]string{{"sectionKey", "hero"}, {imageFieldPathKey, "banner.image"}}, pngFile("image", "new.png")))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "home", got.PageSlug)
	assert.Equal(t, "hero", got.SectionKey)
	require.NotNil(t, got.Image)
	resp := decode(t, w)
	assert.Equal(t, "https://media.test/new.png", resp["url"])
	assert.Equal(t, "varallo/varallohome/new", resp["publicId"])

	w = serve(r, multipartRequest(t, "/upload/section", [][2]string{{"pageSlug", "about"}}, pngFile("image", "new.png")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sectionKey", decode(t, w)["field"])

	w = serve(r, multipartRequest(t, "/upload/section", [][2]string{{"sectionKey", "hero"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file provided", decode(t, w)["message"])
}

func TestUploadHandlers_UploadMultiple(t *testing.T) {
	uploads := mocks.NewMockUploadService()
	var count int
	uploads.UploadImagesFunc = func(ctx context.Context, files []*domain.UploadFile, pageSlug, sectionKey string) ([]*domain.FileRef, error) {
		count = len(files)
		return []*domain.FileRef{{URL: "u1", PublicID: "p1"}, {URL: "u2", PublicID: "p2"}}, nil
	}

	w := serve(uploadRouter(uploads, mocks.NewMockSectionService(), testMaxUpload),
		multipartRequest(t, "/upload/multiple", nil, pngFile("images", "a.png"), pngFile("images", "b.png")))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, count)
	resp := decode(t, w)
	assert.Equal(t, "2 images uploaded", resp["message"])
	assert.Len(t, resp["images"], 2)
}

func TestUploadHandlers_Delete(t *testing.T) {
	uploads := mocks.NewMockUploadService()
	var got string
	uploads.DeleteFunc = func(ctx context.Context, publicID string) error {
		got = publicID
		return nil
	}

	w := serve(uploadRouter(uploads, mocks.NewMockSectionService(), testMaxUpload),
		httptest.NewRequest(http.MethodDelete, "/upload/varallo/home/hero-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/varallo/home/hero-1", got)
}

func TestAdminHandlers(t *testing.T) {
	auth := mocks.NewMockAuthService()
	auth.ListUsersFunc = func(ctx context.Context) ([]*domain.User, error) {
		return []*domain.User{{ID: 1, Email: "root@example.com", Role: domain.RoleSuperAdmin}}, nil
	}
	policies := mocks.NewMockPolicyService()
	var added, removed []string
	policies.AddPolicyFunc = func(role, resource, action string) error {
		if role == "editor" {
			return domain.ErrPolicyExists
		}
		added = []string{role, resource, action}
		return nil
	}
	policies.RemovePolicyFunc = func(role, resource, action string) error {
		removed = []string{role, resource, action}
		return nil
	}
	policies.GetPoliciesFunc = func() [][]string { return [][]string{{"admin", "/api/pages/*", "^(GET|PATCH)$"}} }

	h := NewAdminHandlers(auth, policies)
	r := gin.New()
	r.GET("/admin/users", h.ListUsers)
	r.GET("/admin/policies", h.ListPolicies)
	r.POST("/admin/policies", h.AddPolicy)
	r.DELETE("/admin/policies", h.RemovePolicy)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/admin/policies", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	rule := PolicyRequest{Role: "admin", Resource: "/api/reports/*", Action: "^GET$"}
	w = serve(r, jsonRequest(t, http.MethodPost, "/admin/policies", rule))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"admin", "/api/reports/*", "^GET$"}, added)

	w = serve(r, jsonRequest(t, http.MethodPost, "/admin/policies", PolicyRequest{Role: "editor", Resource: "/x", Action: "GET"}))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(r, jsonRequest(t, http.MethodDelete, "/admin/policies", rule))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"admin", "/api/reports/*", "^GET$"}, removed)
}
