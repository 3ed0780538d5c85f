package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/brightline-events/siteadmin/internal/models"
	"github.com/brightline-events/siteadmin/internal/util"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// TestimonialHandler manages testimonials from the dashboard.
type TestimonialHandler struct {
	repo *content.Repository
}

// NewTestimonialHandler constructs a TestimonialHandler.
func NewTestimonialHandler(repo *content.Repository) *TestimonialHandler {
	return &TestimonialHandler{repo: repo}
}

// createTestimonialRequest defines the request body for a new testimonial.
type createTestimonialRequest struct {
	Quote    string  `json:"quote" binding:"required,min=10,max=1000"`
	Author   string  `json:"author" binding:"required,min=1,max=100"`
	Role     *string `json:"role" binding:"omitempty,max=100"`
	Company  *string `json:"company" binding:"omitempty,max=100"`
	Avatar   *string `json:"avatar" binding:"omitempty,url"`
	Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
	IsActive *bool   `json:"isActive"`
}

// updateTestimonialRequest defines the request body for a partial testimonial update.
type updateTestimonialRequest struct {
	Quote    *string `json:"quote" binding:"omitempty,min=10,max=1000"`
	Author   *string `json:"author" binding:"omitempty,min=1,max=100"`
	Role     *string `json:"role" binding:"omitempty,max=100"`
	Company  *string `json:"company" binding:"omitempty,max=100"`
	Avatar   *string `json:"avatar" binding:"omitempty,url"`
	Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
	IsActive *bool   `json:"isActive"`
}

// List returns every testimonial, including inactive ones.
func (h *TestimonialHandler) List(c *gin.Context) {
	rows, err := h.repo.ListTestimonials(c.Request.Context(), false)
	if err != nil {
		log.WithError(err).Error("list testimonials failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": rows})
}

// Create adds a testimonial.
func (h *TestimonialHandler) Create(c *gin.Context) {
	var body createTestimonialRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": errBind.Error()})
		return
	}

	row := models.Testimonial{
		Quote:    util.SanitizeInput(body.Quote),
		Author:   util.SanitizeInput(body.Author),
		Role:     sanitizeOptional(body.Role),
		Company:  sanitizeOptional(body.Company),
		Avatar:   trimOptional(body.Avatar),
		Rating:   body.Rating,
		IsActive: true,
	}
	if body.Order != nil {
		row.Order = *body.Order
	}
	if errCreate := h.repo.CreateTestimonial(c.Request.Context(), &row); errCreate != nil {
		log.WithError(errCreate).Error("create testimonial failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create testimonial"})
		return
	}
	if body.IsActive != nil && !*body.IsActive {
		updated, errUpdate := h.repo.UpdateTestimonial(c.Request.Context(), row.ID, map[string]any{"is_active": false})
		if errUpdate != nil {
			log.WithError(errUpdate).Error("deactivate testimonial failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create testimonial"})
			return
		}
		row = *updated
	}
	c.JSON(http.StatusCreated, row)
}

// Update applies a partial update.
func (h *TestimonialHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateTestimonialRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": errBind.Error()})
		return
	}

	fields := map[string]any{}
	if body.Quote != nil {
		fields["quote"] = util.SanitizeInput(*body.Quote)
	}
	if body.Author != nil {
		fields["author"] = util.SanitizeInput(*body.Author)
	}
	if body.Role != nil {
		fields["role"] = sanitizeOptional(body.Role)
	}
	if body.Company != nil {
		fields["company"] = sanitizeOptional(body.Company)
	}
	if body.Avatar != nil {
		fields["avatar"] = trimOptional(body.Avatar)
	}
	if body.Rating != nil {
		fields["rating"] = *body.Rating
	}
	if body.Order != nil {
		fields["sort_order"] = *body.Order
	}
	if body.IsActive != nil {
		fields["is_active"] = *body.IsActive
	}

	row, err := h.repo.UpdateTestimonial(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.WithError(err).Error("update testimonial failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update testimonial"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete removes a testimonial.
func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.DeleteTestimonial(c.Request.Context(), id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.WithError(err).Error("delete testimonial failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete testimonial"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// sanitizeOptional returns nil for blank input so the column is cleared.
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

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
