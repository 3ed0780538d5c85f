package handlers

import (
	"net/http"
	"strings"

	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/brightline-events/siteadmin/internal/models"
	"github.com/brightline-events/siteadmin/internal/util"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// TestimonialHandler serves active testimonials to the public site.
type TestimonialHandler struct {
	repo *content.Repository
}

// NewTestimonialHandler constructs a TestimonialHandler.
func NewTestimonialHandler(repo *content.Repository) *TestimonialHandler {
	return &TestimonialHandler{repo: repo}
}

// List returns active testimonials ordered for display.
func (h *TestimonialHandler) List(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, gin.H{"testimonials": []models.Testimonial{}})
		return
	}
	rows, err := h.repo.ListTestimonials(c.Request.Context(), true)
	if err != nil {
		log.WithError(err).Error("list public testimonials failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials"})
		return
	}
	if rows == nil {
		rows = []models.Testimonial{}
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": rows})
}

// ContactHandler serves the company contact record.
type ContactHandler struct {
	repo *content.Repository
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(repo *content.Repository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// Get returns the contact record, or an empty one without a database.
func (h *ContactHandler) Get(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, content.EmptyContactInfo())
		return
	}
	info, err := h.repo.CompanyInfo(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("load public contact info failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact info"})
		return
	}
	c.JSON(http.StatusOK, content.ContactInfoFromModel(info))
}

// MessageHandler accepts contact-form submissions.
type MessageHandler struct {
	repo *content.Repository
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(repo *content.Repository) *MessageHandler {
	return &MessageHandler{repo: repo}
}

// createMessageRequest defines the contact-form payload.
type createMessageRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=100"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Subject *string `json:"subject" binding:"omitempty,max=200"`
	Message string  `json:"message" binding:"required,min=1,max=2000"`
}

// Create stores a contact-form submission.
func (h *MessageHandler) Create(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}
	var body createMessageRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": errBind.Error()})
		return
	}

	msg := models.ContactMessage{
		Name:    util.SanitizeInput(body.Name),
		Email:   strings.TrimSpace(body.Email),
		Phone:   sanitizeOptional(body.Phone),
		Subject: sanitizeOptional(body.Subject),
		Message: util.SanitizeInput(body.Message),
	}
	if msg.Name == "" || msg.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": "name and message are required"})
		return
	}
	if err := h.repo.CreateMessage(c.Request.Context(), &msg); err != nil {
		log.WithError(err).Error("create contact message failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"id":      msg.ID,
	})
}

func sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := util.SanitizeInput(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
