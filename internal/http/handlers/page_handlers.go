package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
)

// imageFieldPathKey names the form field that says where an image lands
const imageFieldPathKey = "imageFieldPath"

// PageHandlers serves page reads, page settings and section updates
type PageHandlers struct {
	pageSvc       domain.PageService
	sectionSvc    domain.SectionService
	maxUploadSize int64
}

func NewPageHandlers(pageSvc domain.PageService, sectionSvc domain.SectionService, maxUploadSize int64) *PageHandlers {
	return &PageHandlers{pageSvc: pageSvc, sectionSvc: sectionSvc, maxUploadSize: maxUploadSize}
}

// ListPages returns active pages; ?navbar=true keeps only navbar entries
func (h *PageHandlers) ListPages(c *gin.Context) {
	navbarOnly, _ := strconv.ParseBool(c.Query("navbar"))
	pages, err := h.pageSvc.ListPages(c.Request.Context(), navbarOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Pages fetched successfully", gin.H{"data": pages})
}

func (h *PageHandlers) GetPage(c *gin.Context) {
	view, err := h.pageSvc.GetPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Page fetched successfully", gin.H{"data": view})
}

func (h *PageHandlers) GetServicePage(c *gin.Context) {
	view, err := h.pageSvc.GetServicePage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service page fetched successfully", gin.H{"data": view})
}

// UpdatePage applies navbar, order and visibility toggles
func (h *PageHandlers) UpdatePage(c *gin.Context) {
	var settings domain.PageSettings
	if err := bindJSON(c, &settings); err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.pageSvc.UpdateSettings(c.Request.Context(), c.Param("slug"), settings)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Page updated successfully", gin.H{"data": page})
}

// UpdateSection merges a partial update into a section. Multipart requests may
// carry an imageFile; their other fields are the update, with JSON-looking
// values decoded. JSON requests send the update as the body.
func (h *PageHandlers) UpdateSection(c *gin.Context) {
	update := domain.SectionUpdate{
		PageSlug:   c.Param("pageSlug"),
		SectionKey: c.Param("sectionKey"),
		Content:    domain.Document{},
	}

	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		for key, values := range form.Value {
			if len(values) == 0 {
				continue
			}
			if key == imageFieldPathKey {
				update.ImageFieldPath = values[0]
				continue
			}
			update.Content[key] = decodeFormValue(values[0])
		}
		if update.Image, err = formFile(form, "imageFile", h.maxUploadSize); err != nil {
			response.Error(c, err)
			return
		}
	} else {
		var body map[string]any
		if err := bindJSON(c, &body); err != nil {
			response.Error(c, err)
			return
		}
		for key, value := range body {
			if key == imageFieldPathKey {
				update.ImageFieldPath, _ = value.(string)
				continue
			}
			update.Content[key] = value
		}
	}

	section, err := h.sectionSvc.UpdateSection(c.Request.Context(), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Section updated successfully", gin.H{"data": section})
}
