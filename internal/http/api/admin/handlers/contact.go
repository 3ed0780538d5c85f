package handlers

import (
	"net/http"

	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ContactHandler edits the company contact record.
type ContactHandler struct {
	repo *content.Repository
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(repo *content.Repository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// Get returns the current contact record.
func (h *ContactHandler) Get(c *gin.Context) {
	info, err := h.repo.CompanyInfo(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("load contact info failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact info"})
		return
	}
	c.JSON(http.StatusOK, content.ContactInfoFromModel(info))
}

// Update replaces the contact record.
func (h *ContactHandler) Update(c *gin.Context) {
	var body content.ContactInfoInput
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	fields, errFields := body.Fields()
	if errFields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": errFields.Error()})
		return
	}
	info, err := h.repo.SaveCompanyInfo(c.Request.Context(), fields)
	if err != nil {
		log.WithError(err).Error("save contact info failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact info"})
		return
	}
	c.JSON(http.StatusOK, content.ContactInfoFromModel(info))
}
