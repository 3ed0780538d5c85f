package auth

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Reason classifies why an authentication attempt was denied.
type Reason string

// Denial reasons.
const (
	ReasonMissingCredentials Reason = "missing_credentials"
	ReasonInvalidFormat      Reason = "invalid_format"
	ReasonInvalidCredentials Reason = "invalid_credentials"
	ReasonAccountLocked      Reason = "account_locked"
	ReasonRateLimited        Reason = "rate_limited"
	ReasonNotConfigured      Reason = "not_configured"
)

// DenialError is the only error kind the verifier returns.
type DenialError struct {
	Reason     Reason
	RetryAfter time.Duration // Set for ReasonAccountLocked and ReasonRateLimited.
}

func (e *DenialError) Error() string {
	switch e.Reason {
	case ReasonMissingCredentials:
		return "missing or invalid authorization header"
	case ReasonInvalidFormat:
		return "invalid credentials format"
	case ReasonInvalidCredentials:
		return "invalid credentials"
	case ReasonAccountLocked:
		return fmt.Sprintf("account locked, try again in %d minutes", e.RetryAfterMinutes())
	case ReasonRateLimited:
		return fmt.Sprintf("too many failed attempts, try again in %d minutes", e.RetryAfterMinutes())
	case ReasonNotConfigured:
		return "server configuration error"
	default:
		return "authentication failed"
	}
}

// Is matches any DenialError with the same reason, so errors.Is(err, ErrAccountLocked) ignores RetryAfter.
func (e *DenialError) Is(target error) bool {
	t, ok := target.(*DenialError)
	return ok && t.Reason == e.Reason
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds.
func (e *DenialError) RetryAfterSeconds() int {
	return ceilUnits(e.RetryAfter, time.Second)
}

// RetryAfterMinutes rounds RetryAfter up to whole minutes.
func (e *DenialError) RetryAfterMinutes() int {
	return ceilUnits(e.RetryAfter, time.Minute)
}

// Sentinel denials for errors.Is checks.
var (
	ErrMissingCredentials = &DenialError{Reason: ReasonMissingCredentials}
	ErrInvalidFormat      = &DenialError{Reason: ReasonInvalidFormat}
	ErrInvalidCredentials = &DenialError{Reason: ReasonInvalidCredentials}
	ErrAccountLocked      = &DenialError{Reason: ReasonAccountLocked}
	ErrRateLimited        = &DenialError{Reason: ReasonRateLimited}
	ErrNotConfigured      = &DenialError{Reason: ReasonNotConfigured}
)

// Credential store errors.
var (
	// ErrAccountNotFound indicates an update targeted a missing account.
	ErrAccountNotFound = errors.New("admin account not found")
	// ErrAccountExists indicates setup tried to create a username that already exists.
	ErrAccountExists = errors.New("admin account already exists")
	// ErrStoreUnavailable wraps any persistence failure.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Account management errors.
var (
	// ErrDatabaseRequired indicates the operation needs a credential store.
	ErrDatabaseRequired = errors.New("database-backed accounts are not configured")
	// ErrMissingFields indicates required request fields were empty.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrPasswordUnchanged indicates the new password equals the current one.
	ErrPasswordUnchanged = errors.New("new password must be different from current password")
)

func lockedError(remaining time.Duration) *DenialError {
	return &DenialError{Reason: ReasonAccountLocked, RetryAfter: remaining}
}

func rateLimitedError(retryAfter time.Duration) *DenialError {
	return &DenialError{Reason: ReasonRateLimited, RetryAfter: retryAfter}
}

// ReasonOf extracts the denial reason, or "" when err is not a DenialError.
func ReasonOf(err error) Reason {
	var denial *DenialError
	if errors.As(err, &denial) {
		return denial.Reason
	}
	return ""
}

func ceilUnits(d, unit time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(unit)))
}
