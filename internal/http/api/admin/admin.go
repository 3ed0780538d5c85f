package admin

import (
	"net/http"

	"github.com/brightline-events/siteadmin/internal/auth"
	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/brightline-events/siteadmin/internal/http/api/admin/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers the admin auth endpoints and the protected content API.
// repo may be nil when no database is configured; content routes then answer 503.
func RegisterAdminRoutes(r *gin.Engine, svc *auth.Service, repo *content.Repository) {
	if r == nil || svc == nil {
		return
	}

	api := r.Group("/api/admin")

	authHandler := handlers.NewAuthHandler(svc)
	api.POST("/auth", authHandler.Login)
	api.POST("/change-password", authHandler.ChangePassword)
	api.POST("/setup", authHandler.Setup)

	authed := api.Group("")
	authed.Use(BasicAuthMiddleware(svc.Verifier()))
	authed.GET("/session", authHandler.Session)

	contentRoutes := authed.Group("")
	contentRoutes.Use(requireDatabase(repo))

	testimonialHandler := handlers.NewTestimonialHandler(repo)
	contentRoutes.GET("/testimonials", testimonialHandler.List)
	contentRoutes.POST("/testimonials", testimonialHandler.Create)
	contentRoutes.PUT("/testimonials/:id", testimonialHandler.Update)
	contentRoutes.DELETE("/testimonials/:id", testimonialHandler.Delete)

	contactHandler := handlers.NewContactHandler(repo)
	contentRoutes.GET("/contact", contactHandler.Get)
	contentRoutes.PUT("/contact", contactHandler.Update)

	messageHandler := handlers.NewMessageHandler(repo)
	contentRoutes.GET("/contact-messages", messageHandler.List)
	contentRoutes.PATCH("/contact-messages/:id", messageHandler.MarkRead)
	contentRoutes.DELETE("/contact-messages/:id", messageHandler.Delete)
}

// requireDatabase rejects content requests when no repository is wired.
func requireDatabase(repo *content.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if repo == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
			return
		}
		c.Next()
	}
}
