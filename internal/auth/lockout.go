package auth

import (
	"time"

	"github.com/brightline-events/siteadmin/internal/models"
)

// Account lockout defaults.
const (
	DefaultLockThreshold = 5
	DefaultLockDuration  = 15 * time.Minute
)

// Column names written by the lock policy.
const (
	columnFailedLoginAttempts = "failed_login_attempts"
	columnLockedUntil         = "locked_until"
	columnPasswordHash        = "password_hash"
	columnLastPasswordChange  = "last_password_change"
)

// LockPolicy locks a database account after consecutive failed logins.
type LockPolicy struct {
	Threshold int
	Duration  time.Duration
}

// DefaultLockPolicy returns the 5 failures / 15 minutes policy.
func DefaultLockPolicy() LockPolicy {
	return LockPolicy{Threshold: DefaultLockThreshold, Duration: DefaultLockDuration}
}

func (p LockPolicy) normalized() LockPolicy {
	if p.Threshold <= 0 {
		p.Threshold = DefaultLockThreshold
	}
	if p.Duration <= 0 {
		p.Duration = DefaultLockDuration
	}
	return p
}

// Remaining returns how long account stays locked, and false when it is not locked at now.
func (p LockPolicy) Remaining(account *models.AdminAccount, now time.Time) (time.Duration, bool) {
	if account == nil || !account.IsLocked(now) {
		return 0, false
	}
	return account.LockedUntil.Sub(now), true
}

// FailureFields returns the column updates for a failed password check and whether they lock the account.
func (p LockPolicy) FailureFields(account *models.AdminAccount, now time.Time) (map[string]any, bool) {
	attempts := account.FailedLoginAttempts + 1
	fields := map[string]any{columnFailedLoginAttempts: attempts}
	if attempts >= p.Threshold {
		fields[columnLockedUntil] = now.Add(p.Duration)
		return fields, true
	}
	fields[columnLockedUntil] = nil
	return fields, false
}

// SuccessFields returns the column updates that reset the lockout counters.
func (p LockPolicy) SuccessFields() map[string]any {
	return map[string]any{
		columnFailedLoginAttempts: 0,
		columnLockedUntil:         nil,
	}
}
