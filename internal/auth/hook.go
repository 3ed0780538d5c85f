package auth

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Result describes one verifier decision for hooks.
type Result struct {
	Username string
	IP       string
	Source   Source
	Err      error // nil on success.
	Locked   bool  // This attempt tripped the account lock.
}

// Hook observes verifier decisions.
type Hook interface {
	OnResult(ctx context.Context, result Result)
}

// LogHook logs auth results with severity derived from the denial reason.
type LogHook struct{}

// NewLogHook constructs a LogHook.
func NewLogHook() *LogHook {
	return &LogHook{}
}

// OnResult never logs the submitted password.
func (h *LogHook) OnResult(_ context.Context, result Result) {
	entry := log.WithFields(log.Fields{
		"username": result.Username,
		"ip":       result.IP,
	})

	if result.Err == nil {
		entry.WithField("source", result.Source).Debug("admin auth succeeded")
		return
	}

	reason := ReasonOf(result.Err)
	entry = entry.WithField("reason", reason)

	switch {
	case result.Locked:
		entry.Warn("admin account locked after repeated failures")
	case reason == ReasonNotConfigured:
		entry.Error("admin auth unavailable: no usable credential source")
	case reason == ReasonRateLimited:
		entry.Warn("admin auth rate limited")
	case reason == ReasonAccountLocked:
		entry.Warn("admin auth rejected: account locked")
	case reason == ReasonMissingCredentials:
		entry.Debug("admin auth rejected: no credentials")
	default:
		entry.Warn("admin auth denied")
	}
}
