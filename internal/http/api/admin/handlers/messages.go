package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const maxMessagePageSize = 200

// MessageHandler serves the contact-message inbox.
type MessageHandler struct {
	repo *content.Repository
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(repo *content.Repository) *MessageHandler {
	return &MessageHandler{repo: repo}
}

// List returns a page of messages. Query: isRead, q, limit, offset.
func (h *MessageHandler) List(c *gin.Context) {
	filter := content.MessageFilter{Search: strings.TrimSpace(c.Query("q"))}
	if raw := strings.TrimSpace(c.Query("isRead")); raw != "" {
		read, errParse := strconv.ParseBool(raw)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isRead"})
			return
		}
		filter.IsRead = &read
	}
	limit, okLimit := queryInt(c, "limit")
	offset, okOffset := queryInt(c, "offset")
	if !okLimit || !okOffset {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
		return
	}
	if limit > maxMessagePageSize {
		limit = maxMessagePageSize
	}
	filter.Limit = limit
	filter.Offset = offset

	page, err := h.repo.ListMessages(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list contact messages failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":    page.Messages,
		"total":       page.Total,
		"unreadCount": page.UnreadCount,
	})
}

type markReadRequest struct {
	IsRead *bool `json:"isRead" binding:"required"`
}

// MarkRead sets the read flag of a message.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body markReadRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isRead is required"})
		return
	}
	msg, err := h.repo.SetMessageRead(c.Request.Context(), id, *body.IsRead)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.WithError(err).Error("update contact message failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Delete removes a message.
func (h *MessageHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.DeleteMessage(c.Request.Context(), id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.WithError(err).Error("delete contact message failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// queryInt parses a non-negative integer query parameter; absent means zero.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
