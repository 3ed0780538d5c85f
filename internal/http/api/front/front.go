package front

import (
	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/brightline-events/siteadmin/internal/http/api/front/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterFrontRoutes registers the public site endpoints.
// repo may be nil; reads then return empty content and writes answer 503.
func RegisterFrontRoutes(r *gin.Engine, repo *content.Repository) {
	if r == nil {
		return
	}

	api := r.Group("/api")

	testimonialHandler := handlers.NewTestimonialHandler(repo)
	api.GET("/testimonials", testimonialHandler.List)

	contactHandler := handlers.NewContactHandler(repo)
	api.GET("/contact", contactHandler.Get)

	messageHandler := handlers.NewMessageHandler(repo)
	api.POST("/contact-messages", messageHandler.Create)
}
