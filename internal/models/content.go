package models

import (
	"time"

	"gorm.io/datatypes"
)

// Testimonial is a client quote shown on the public site.
type Testimonial struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Quote   string  `gorm:"type:text;not null" json:"quote"`  // Testimonial body.
	Author  string  `gorm:"type:text;not null" json:"author"` // Client name.
	Role    *string `gorm:"type:text" json:"role"`            // Optional job title.
	Company *string `gorm:"type:text" json:"company"`         // Optional company name.
	Avatar  *string `gorm:"type:text" json:"avatar"`          // Optional avatar URL.
	Rating  *int    `json:"rating"`                           // Optional 1-5 star rating.

	Order    int  `gorm:"column:sort_order;not null;default:0;index" json:"order"` // Display order, ascending.
	IsActive bool `gorm:"not null;default:true" json:"isActive"`                   // Hidden from the public list when false.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// CompanyInfo holds the single contact-details record.
type CompanyInfo struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	Phone     string `gorm:"type:text;not null;default:''"`
	Email     string `gorm:"type:text;not null;default:''"`
	Address   string `gorm:"type:text;not null;default:''"` // Legacy single address line.
	Website   string `gorm:"type:text;not null;default:''"`
	Facebook  string `gorm:"type:text;not null;default:''"`
	Instagram string `gorm:"type:text;not null;default:''"`
	Linkedin  string `gorm:"type:text;not null;default:''"`
	Twitter   string `gorm:"type:text;not null;default:''"`
	Youtube   string `gorm:"type:text;not null;default:''"`
	Whatsapp  string `gorm:"type:text;not null;default:''"`

	Addresses datatypes.JSON `gorm:"type:jsonb"` // City/address pairs; older rows hold a plain string array.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

// ContactMessage is an inbound contact-form submission.
type ContactMessage struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name    string  `gorm:"type:text;not null" json:"name"`
	Email   string  `gorm:"type:text;not null" json:"email"`
	Phone   *string `gorm:"type:text" json:"phone"`
	Subject *string `gorm:"type:text" json:"subject"`
	Message string  `gorm:"type:text;not null" json:"message"`

	IsRead bool `gorm:"not null;default:false;index" json:"isRead"` // Set by an admin from the inbox.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
