package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"gorm.io/gorm"
)

// ContactRepositoryImpl implements domain.ContactRepository using GORM
type ContactRepositoryImpl struct {
	db *gorm.DB
}

// DBContact is the database model for Contact
type DBContact struct {
	ID                uint                  `gorm:"primaryKey"`
	FirstName         string                `gorm:"size:255"`
	AttorneyName      string                `gorm:"size:255"`
	ContactNumber     string                `gorm:"size:64"`
	ContactName       string                `gorm:"size:255"`
	ContactEmail      string                `gorm:"size:255;not null;index"`
	PreferredDate     string                `gorm:"size:64"`
	PreferredTime     string                `gorm:"size:64"`
	State             string                `gorm:"size:128"`
	City              string                `gorm:"size:128"`
	Witnesses         string                `gorm:"size:255"`
	EstimatedDuration string                `gorm:"size:128"`
	ServicesNeeded    JSON[[]string]        `gorm:"column:services_needed"`
	Notes             string                `gorm:"type:text"`
	File              JSON[*domain.FileRef] `gorm:"column:file"`
	Status            string                `gorm:"size:16;not null;index"`
	CreatedAt         time.Time             `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBContact) TableName() string {
	return "contacts"
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepositoryImpl {
	return &ContactRepositoryImpl{db: db}
}

// Create implements domain.ContactRepository
func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *domain.Contact) error {
	row := contactToDB(contact)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	contact.ID = row.ID
	contact.CreatedAt = row.CreatedAt
	contact.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.ContactRepository
func (r *ContactRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Contact, error) {
	var row DBContact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return contactToDomain(&row), nil
}

// List returns contacts newest first together with the total count
func (r *ContactRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&DBContact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBContact
	err := r.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	contacts := make([]*domain.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, contactToDomain(&rows[i]))
	}
	return contacts, total, nil
}

// Update implements domain.ContactRepository
func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *domain.Contact) error {
	row := contactToDB(contact)
	row.CreatedAt = contact.CreatedAt
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	contact.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete implements domain.ContactRepository
func (r *ContactRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBContact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func contactToDB(c *domain.Contact) *DBContact {
	services := c.ServicesNeeded
	if services == nil {
		services = []string{}
	}
	return &DBContact{
		ID:                c.ID,
		FirstName:         c.FirstName,
		AttorneyName:      c.AttorneyName,
		ContactNumber:     c.ContactNumber,
		ContactName:       c.ContactName,
		ContactEmail:      c.ContactEmail,
		PreferredDate:     c.PreferredDate,
		PreferredTime:     c.PreferredTime,
		State:             c.State,
		City:              c.City,
		Witnesses:         c.Witnesses,
		EstimatedDuration: c.EstimatedDuration,
		ServicesNeeded:    JSON[[]string]{Val: services},
		Notes:             c.Notes,
		File:              JSON[*domain.FileRef]{Val: c.File},
		Status:            string(c.Status),
	}
}

func contactToDomain(row *DBContact) *domain.Contact {
	services := row.ServicesNeeded.Val
	if services == nil {
		services = []string{}
	}
	return &domain.Contact{
		ID:                row.ID,
		FirstName:         row.FirstName,
		AttorneyName:      row.AttorneyName,
		ContactNumber:     row.ContactNumber,
		ContactName:       row.ContactName,
		ContactEmail:      row.ContactEmail,
		PreferredDate:     row.PreferredDate,
		PreferredTime:     row.PreferredTime,
		State:             row.State,
		City:              row.City,
		Witnesses:         row.Witnesses,
		EstimatedDuration: row.EstimatedDuration,
		ServicesNeeded:    services,
		Notes:             row.Notes,
		File:              row.File.Val,
		Status:            domain.ContactStatus(row.Status),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

var _ domain.ContactRepository = (*ContactRepositoryImpl)(nil)
