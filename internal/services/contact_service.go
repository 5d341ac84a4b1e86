package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultContactPageSize = 50
	MaxContactPageSize     = 200
)

// ContactServiceImpl implements domain.ContactService
type ContactServiceImpl struct {
	contactRepo domain.ContactRepository
	media       domain.MediaService
	auditLogger domain.AuditLogger
	folder      string
	validate    *validator.Validate
	sanitizer   *bluemonday.Policy
	now         func() time.Time
}

// NewContactService creates a new contact service. Attachments are stored
// under <mediaRoot>/contact.
func NewContactService(contactRepo domain.ContactRepository, media domain.MediaService, auditLogger domain.AuditLogger, mediaRoot string) *ContactServiceImpl {
	return &ContactServiceImpl{
		contactRepo: contactRepo,
		media:       media,
		auditLogger: auditLogger,
		folder:      mediaRoot + "/contact",
		validate:    validator.New(),
		sanitizer:   bluemonday.StrictPolicy(),
		now:         time.Now,
	}
}

// clean strips markup from free text and trims it
func (s *ContactServiceImpl) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(text)))
}

func (s *ContactServiceImpl) checkEmail(email string) error {
	if email == "" {
		return domain.NewValidationError("Contact_Email", "Contact_Email is required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return domain.NewValidationError("Contact_Email", "Contact_Email must be a valid email")
	}
	return nil
}

// Submit implements domain.ContactService. Nothing is uploaded or stored when
// validation fails.
func (s *ContactServiceImpl) Submit(ctx context.Context, input domain.ContactInput) (*domain.Contact, error) {
	email := strings.TrimSpace(input.ContactEmail)
	if err := s.checkEmail(email); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		FirstName:         s.clean(input.FirstName),
		AttorneyName:      s.clean(input.AttorneyName),
		ContactNumber:     s.clean(input.ContactNumber),
		ContactName:       s.clean(input.ContactName),
		ContactEmail:      email,
		PreferredDate:     s.clean(input.PreferredDate),
		PreferredTime:     s.clean(input.PreferredTime),
		State:             s.clean(input.State),
		City:              s.clean(input.City),
		Witnesses:         s.clean(input.Witnesses),
		EstimatedDuration: s.clean(input.EstimatedDuration),
		ServicesNeeded:    NormalizeServices(input.ServicesNeeded),
		Notes:             s.clean(input.Notes),
		Status:            domain.ContactStatusNew,
	}

	if input.File != nil {
		ref, err := s.media.Upload(ctx, input.File, s.folder, fmt.Sprintf("contact-%d", s.now().UnixMilli()))
		if err != nil {
			return nil, err
		}
		contact.File = &domain.FileRef{URL: ref.URL, PublicID: ref.PublicID, OriginalName: input.File.Filename}
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	if s.auditLogger != nil {
		s.auditLogger.LogEvent(ctx, domain.NewAuditEvent(domain.ContactSubmittedEvent, 0).
			WithEmail(contact.ContactEmail).
			WithMetadata("contact_id", contact.ID))
	}
	return contact, nil
}

// List implements domain.ContactService. Pages start at 1.
func (s *ContactServiceImpl) List(ctx context.Context, page, limit int) (*domain.ContactList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultContactPageSize
	}
	if limit > MaxContactPageSize {
		limit = MaxContactPageSize
	}

	contacts, total, err := s.contactRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return &domain.ContactList{Total: total, Page: page, Limit: limit, Contacts: contacts}, nil
}

// Get implements domain.ContactService
func (s *ContactServiceImpl) Get(ctx context.Context, id uint) (*domain.Contact, error) {
	return s.contactRepo.FindByID(ctx, id)
}

// Update implements domain.ContactService. Absent fields keep their value.
func (s *ContactServiceImpl) Update(ctx context.Context, id uint, u domain.ContactUpdate) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.ContactEmail != nil {
		email := strings.TrimSpace(*u.ContactEmail)
		if err := s.checkEmail(email); err != nil {
			return nil, err
		}
		contact.ContactEmail = email
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return nil, domain.NewValidationError("status", "status must be new, pending or closed")
		}
		contact.Status = *u.Status
	}

	for _, f := range []struct {
		src *string
		dst *string
	}{
		{u.FirstName, &contact.FirstName},
		{u.AttorneyName, &contact.AttorneyName},
		{u.ContactNumber, &contact.ContactNumber},
		{u.ContactName, &contact.ContactName},
		{u.PreferredDate, &contact.PreferredDate},
		{u.PreferredTime, &contact.PreferredTime},
		{u.State, &contact.State},
		{u.City, &contact.City},
		{u.Witnesses, &contact.Witnesses},
		{u.EstimatedDuration, &contact.EstimatedDuration},
		{u.Notes, &contact.Notes},
	} {
		if f.src != nil {
			*f.dst = s.clean(*f.src)
		}
	}
	if u.ServicesNeeded != nil {
		contact.ServicesNeeded = NormalizeServices(u.ServicesNeeded)
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

// Delete implements domain.ContactService. The attachment is left on the media host.
func (s *ContactServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.auditLogger != nil {
		s.auditLogger.LogEvent(ctx, domain.NewAuditEvent(domain.ContactDeletedEvent, 0).
			WithMetadata("contact_id", id))
	}
	return nil
}

// NormalizeServices turns the accepted encodings of a services selection into
// a list: a JSON array or value, JSON with backslash-escaped quotes, a
// comma-separated string, or an already decoded array.
func NormalizeServices(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return compact(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringify(item))
		}
		return compact(out)
	case string:
		return parseServices(v)
	default:
		return compact([]string{stringify(v)})
	}
}

func parseServices(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	for _, candidate := range []string{s, strings.ReplaceAll(s, `\`, "")} {
		var decoded any
		if err := json.Unmarshal([]byte(candidate), &decoded); err == nil {
			if list, ok := decoded.([]any); ok {
				return NormalizeServices(list)
			}
			if decoded == nil {
				return []string{}
			}
			return compact([]string{stringify(decoded)})
		}
	}
	return compact(strings.Split(s, ","))
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// compact trims every entry and drops empty ones
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var _ domain.ContactService = (*ContactServiceImpl)(nil)
