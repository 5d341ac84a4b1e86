package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
)

// ContactHandlers serves the public contact form and its admin CRUD
type ContactHandlers struct {
	contactSvc    domain.ContactService
	maxUploadSize int64
}

func NewContactHandlers(contactSvc domain.ContactService, maxUploadSize int64) *ContactHandlers {
	return &ContactHandlers{contactSvc: contactSvc, maxUploadSize: maxUploadSize}
}

// ContactRequest is the JSON form of a contact submission
type ContactRequest struct {
	FirstName         string `json:"First_Name"`
	AttorneyName      string `json:"Attorney_Name"`
	ContactNumber     string `json:"Contact_Number"`
	ContactName       string `json:"Contact_Name"`
	ContactEmail      string `json:"Contact_Email"`
	PreferredDate     string `json:"Preferred_Date"`
	PreferredTime     string `json:"Preferred_Time"`
	State             string `json:"State"`
	City              string `json:"City"`
	Witnesses         string `json:"Witnesses"`
	EstimatedDuration string `json:"estimated_duration"`
	ServicesNeeded    any    `json:"Services_Needed"`
	Notes             string `json:"notes"`
}

func (r ContactRequest) input() domain.ContactInput {
	return domain.ContactInput{
		FirstName:         r.FirstName,
		AttorneyName:      r.AttorneyName,
		ContactNumber:     r.ContactNumber,
		ContactName:       r.ContactName,
		ContactEmail:      r.ContactEmail,
		PreferredDate:     r.PreferredDate,
		PreferredTime:     r.PreferredTime,
		State:             r.State,
		City:              r.City,
		Witnesses:         r.Witnesses,
		EstimatedDuration: r.EstimatedDuration,
		ServicesNeeded:    r.ServicesNeeded,
		Notes:             r.Notes,
	}
}

func contactFromForm(form *multipart.Form) ContactRequest {
	req := ContactRequest{
		FirstName:         formValue(form, "First_Name"),
		AttorneyName:      formValue(form, "Attorney_Name"),
		ContactNumber:     formValue(form, "Contact_Number"),
		ContactName:       formValue(form, "Contact_Name"),
		ContactEmail:      formValue(form, "Contact_Email"),
		PreferredDate:     formValue(form, "Preferred_Date"),
		PreferredTime:     formValue(form, "Preferred_Time"),
		State:             formValue(form, "State"),
		City:              formValue(form, "City"),
		Witnesses:         formValue(form, "Witnesses"),
		EstimatedDuration: formValue(form, "estimated_duration"),
		Notes:             formValue(form, "notes"),
	}

	services := form.Value["Services_Needed"]
	if len(services) == 0 {
		services = form.Value["Services_Needed[]"]
	}
	switch len(services) {
	case 0:
	case 1:
		req.ServicesNeeded = services[0]
	default:
		req.ServicesNeeded = services
	}
	return req
}

func contactID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("id", "Invalid contact id")
	}
	return uint(id), nil
}

// Create accepts a multipart form with an optional File attachment, or JSON
func (h *ContactHandlers) Create(c *gin.Context) {
	var input domain.ContactInput
	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		input = contactFromForm(form).input()
		if input.File, err = formFile(form, "File", h.maxUploadSize); err != nil {
			response.Error(c, err)
			return
		}
	} else {
		var req ContactRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		input = req.input()
	}

	contact, err := h.contactSvc.Submit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Contact created", gin.H{"data": contact})
}

// List returns one page of contacts, newest first
func (h *ContactHandlers) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.contactSvc.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contacts fetched", gin.H{"data": list})
}

func (h *ContactHandlers) Get(c *gin.Context) {
	id, err := contactID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	contact, err := h.contactSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact fetched", gin.H{"data": contact})
}

func (h *ContactHandlers) Update(c *gin.Context) {
	id, err := contactID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var update domain.ContactUpdate
	if err := bindJSON(c, &update); err != nil {
		response.Error(c, err)
		return
	}
	contact, err := h.contactSvc.Update(c.Request.Context(), id, update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact updated", gin.H{"data": contact})
}

func (h *ContactHandlers) Delete(c *gin.Context) {
	id, err := contactID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.contactSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact deleted", nil)
}
