package admin

import (
	"net/http"

	"github.com/brightline-events/siteadmin/internal/auth"
	"github.com/brightline-events/siteadmin/internal/http/api/admin/handlers"
	"github.com/gin-gonic/gin"
)

// BasicAuthMiddleware verifies the Authorization header on every protected request
// and stores the principal in the gin context.
func BasicAuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		principal, err := verifier.AuthenticateBasic(c.Request.Context(), c.GetHeader("Authorization"), handlers.ClientIP(c))
		if err != nil {
			handlers.RespondDenial(c, err, true)
			return
		}

		c.Set(handlers.ContextUsernameKey, principal.Username)
		c.Set(handlers.ContextSourceKey, string(principal.Source))
		c.Next()
	}
}
