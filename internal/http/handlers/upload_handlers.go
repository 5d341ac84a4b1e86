package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
)

// UploadHandlers serves direct image uploads. Section uploads go through the
// section service so the previous image is cleaned up.
type UploadHandlers struct {
	uploadSvc     domain.UploadService
	sectionSvc    domain.SectionService
	maxUploadSize int64
}

func NewUploadHandlers(uploadSvc domain.UploadService, sectionSvc domain.SectionService, maxUploadSize int64) *UploadHandlers {
	return &UploadHandlers{uploadSvc: uploadSvc, sectionSvc: sectionSvc, maxUploadSize: maxUploadSize}
}

// Upload stores the "image" file under the page/section folder or an explicit folder
func (h *UploadHandlers) Upload(c *gin.Context) {
	form, err := multipartForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := formFile(form, "image", h.maxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	pageSlug := formValue(form, "pageSlug")
	sectionKey := formValue(form, "sectionKey")
	ref, err := h.uploadSvc.UploadImage(c.Request.Context(), file, pageSlug, sectionKey, formValue(form, "folder"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Image uploaded successfully", gin.H{
		"success":    true,
		"url":        ref.URL,
		"publicId":   ref.PublicID,
		"pageSlug":   pageSlug,
		"sectionKey": sectionKey,
	})
}

// UploadSection replaces the image of a section
func (h *UploadHandlers) UploadSection(c *gin.Context) {
	form, err := multipartForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := formFile(form, "image", h.maxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file == nil {
		response.Error(c, domain.NewValidationError("image", "No file provided"))
		return
	}

	update := domain.SectionUpdate{
		PageSlug:       formValue(form, "pageSlug"),
		SectionKey:     formValue(form, "sectionKey"),
		ImageFieldPath: formValue(form, imageFieldPathKey),
		Image:          file,
	}
	if update.PageSlug == "" {
		update.PageSlug = "home"
	}
	if update.SectionKey == "" {
		response.Error(c, domain.NewValidationError("sectionKey", "sectionKey is required"))
		return
	}

	section, err := h.sectionSvc.UpdateSection(c.Request.Context(), update)
	if err != nil {
		response.Error(c, err)
		return
	}

	path := update.ImageFieldPath
	if path == "" {
		path = domain.DefaultImageFieldPath
	}
	image, _ := section.Content.ImageAt(path)
	response.OK(c, "Section image uploaded and updated successfully", gin.H{
		"success":  true,
		"url":      image.URL,
		"publicId": image.PublicID,
		"data":     section,
	})
}

// UploadMultiple stores up to ten "images" files; failed files are left out
func (h *UploadHandlers) UploadMultiple(c *gin.Context) {
	form, err := multipartForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	headers := form.File["images"]
	files := make([]*domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh, h.maxUploadSize)
		if err != nil {
			response.Error(c, err)
			return
		}
		files = append(files, file)
	}

	pageSlug := formValue(form, "pageSlug")
	sectionKey := formValue(form, "sectionKey")
	images, err := h.uploadSvc.UploadImages(c.Request.Context(), files, pageSlug, sectionKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, fmt.Sprintf("%d images uploaded", len(images)), gin.H{
		"success":    true,
		"images":     images,
		"pageSlug":   pageSlug,
		"sectionKey": sectionKey,
	})
}

// Delete removes an image by public id; the id may contain slashes
func (h *UploadHandlers) Delete(c *gin.Context) {
	if err := h.uploadSvc.Delete(c.Request.Context(), c.Param("publicId")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Image deleted successfully", gin.H{"success": true})
}
