package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brightline-events/siteadmin/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthRealm is the Basic-auth realm announced on 401 responses.
const AuthRealm = `Basic realm="Admin Area"`

// ClientIP returns the caller address as resolved through trusted proxies.
func ClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// denialStatus maps a denial reason to its HTTP status.
func denialStatus(reason auth.Reason) int {
	switch reason {
	case auth.ReasonAccountLocked:
		return http.StatusLocked
	case auth.ReasonRateLimited:
		return http.StatusTooManyRequests
	case auth.ReasonNotConfigured:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

// RespondDenial writes the JSON error for an authentication denial.
// challenge adds WWW-Authenticate so browsers prompt for Basic credentials.
func RespondDenial(c *gin.Context, err error, challenge bool) {
	var denial *auth.DenialError
	if !errors.As(err, &denial) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	status := denialStatus(denial.Reason)
	body := gin.H{}
	switch denial.Reason {
	case auth.ReasonRateLimited:
		minutes := denial.RetryAfterMinutes()
		c.Header("Retry-After", strconv.Itoa(denial.RetryAfterSeconds()))
		body["error"] = "Too many failed attempts. Please try again in " + strconv.Itoa(minutes) + " minutes."
		body["retryAfterMinutes"] = minutes
	case auth.ReasonAccountLocked:
		minutes := denial.RetryAfterMinutes()
		body["error"] = "Account locked due to too many failed attempts. Try again in " + strconv.Itoa(minutes) + " minutes."
		body["retryAfterMinutes"] = minutes
	case auth.ReasonNotConfigured:
		body["error"] = "Server configuration error"
	case auth.ReasonMissingCredentials:
		body["error"] = "Unauthorized"
	case auth.ReasonInvalidFormat:
		body["error"] = "Invalid credentials format"
	default:
		body["error"] = "Invalid credentials"
	}
	if challenge && status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", AuthRealm)
	}
	c.AbortWithStatusJSON(status, body)
}
