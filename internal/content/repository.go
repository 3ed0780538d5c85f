// Package content persists the marketing-site records managed from the admin dashboard.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline-events/siteadmin/internal/db"
	"github.com/brightline-events/siteadmin/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound indicates the addressed record does not exist.
var ErrNotFound = errors.New("content: record not found")

// Repository wraps the content tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a Repository.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// ListTestimonials returns testimonials ordered for display. activeOnly hides inactive rows.
func (r *Repository) ListTestimonials(ctx context.Context, activeOnly bool) ([]models.Testimonial, error) {
	q := r.db.WithContext(ctx).Model(&models.Testimonial{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.Testimonial
	if errFind := q.Order("sort_order ASC").Order("created_at DESC").Order("id DESC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("content: list testimonials: %w", errFind)
	}
	return rows, nil
}

// CreateTestimonial inserts a testimonial.
func (r *Repository) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	if errCreate := r.db.WithContext(ctx).Create(t).Error; errCreate != nil {
		return fmt.Errorf("content: create testimonial: %w", errCreate)
	}
	return nil
}

// UpdateTestimonial applies column updates and returns the stored row.
func (r *Repository) UpdateTestimonial(ctx context.Context, id uint64, fields map[string]any) (*models.Testimonial, error) {
	var row models.Testimonial
	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errFind := tx.First(&row, id).Error; errFind != nil {
			return errFind
		}
		if len(fields) > 0 {
			if errUpdate := tx.Model(&row).Updates(fields).Error; errUpdate != nil {
				return errUpdate
			}
		}
		return tx.First(&row, id).Error
	})
	if errTx != nil {
		if errors.Is(errTx, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("content: update testimonial: %w", errTx)
	}
	return &row, nil
}

// DeleteTestimonial removes a testimonial.
func (r *Repository) DeleteTestimonial(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&models.Testimonial{}, id)
	if res.Error != nil {
		return fmt.Errorf("content: delete testimonial: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompanyInfo returns the contact record, creating an empty one on first read.
func (r *Repository) CompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	var info models.CompanyInfo
	errFind := r.db.WithContext(ctx).Order("id ASC").First(&info).Error
	if errFind == nil {
		return &info, nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("content: load company info: %w", errFind)
	}
	if errCreate := r.db.WithContext(ctx).Create(&info).Error; errCreate != nil {
		return nil, fmt.Errorf("content: create company info: %w", errCreate)
	}
	return &info, nil
}

// SaveCompanyInfo overwrites the contact record with fields.
func (r *Repository) SaveCompanyInfo(ctx context.Context, fields map[string]any) (*models.CompanyInfo, error) {
	info, err := r.CompanyInfo(ctx)
	if err != nil {
		return nil, err
	}
	if errUpdate := r.db.WithContext(ctx).Model(info).Updates(fields).Error; errUpdate != nil {
		return nil, fmt.Errorf("content: update company info: %w", errUpdate)
	}
	if errReload := r.db.WithContext(ctx).First(info, info.ID).Error; errReload != nil {
		return nil, fmt.Errorf("content: reload company info: %w", errReload)
	}
	return info, nil
}

// CreateMessage stores an inbound contact-form message.
func (r *Repository) CreateMessage(ctx context.Context, m *models.ContactMessage) error {
	if errCreate := r.db.WithContext(ctx).Create(m).Error; errCreate != nil {
		return fmt.Errorf("content: create message: %w", errCreate)
	}
	return nil
}

// MessageFilter narrows the inbox listing.
type MessageFilter struct {
	IsRead *bool
	Search string
	Limit  int
	Offset int
}

// MessagePage is one page of the inbox.
type MessagePage struct {
	Messages    []models.ContactMessage
	Total       int64
	UnreadCount int64
}

// ListMessages returns messages newest first with the filtered total and the global unread count.
func (r *Repository) ListMessages(ctx context.Context, filter MessageFilter) (*MessagePage, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if filter.IsRead != nil {
		q = q.Where("is_read = ?", *filter.IsRead)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := db.ContainsPattern(r.db, search)
		q = q.Where(
			r.db.Where(db.CaseInsensitiveLikeExpr(r.db, "name"), pattern).
				Or(db.CaseInsensitiveLikeExpr(r.db, "email"), pattern).
				Or(db.CaseInsensitiveLikeExpr(r.db, "subject"), pattern),
		)
	}

	page := &MessagePage{}
	if errCount := q.Session(&gorm.Session{}).Count(&page.Total).Error; errCount != nil {
		return nil, fmt.Errorf("content: count messages: %w", errCount)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	errFind := q.Session(&gorm.Session{}).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&page.Messages).Error
	if errFind != nil {
		return nil, fmt.Errorf("content: list messages: %w", errFind)
	}
	errUnread := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&page.UnreadCount).Error
	if errUnread != nil {
		return nil, fmt.Errorf("content: count unread: %w", errUnread)
	}
	return page, nil
}

// SetMessageRead flips the read flag and returns the updated message.
func (r *Repository) SetMessageRead(ctx context.Context, id uint64, read bool) (*models.ContactMessage, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", read)
	if res.Error != nil {
		return nil, fmt.Errorf("content: update message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var m models.ContactMessage
	if errFind := r.db.WithContext(ctx).First(&m, id).Error; errFind != nil {
		return nil, fmt.Errorf("content: reload message: %w", errFind)
	}
	return &m, nil
}

// DeleteMessage removes a message.
func (r *Repository) DeleteMessage(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		return fmt.Errorf("content: delete message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
