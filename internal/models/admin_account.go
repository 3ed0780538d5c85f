package models

import "time"

// AdminAccount stores a database-backed administrator credential and its lockout counters.
type AdminAccount struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username     string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	PasswordHash string `gorm:"type:text;not null"`             // Bcrypt password hash.

	FailedLoginAttempts int        `gorm:"not null;default:0"` // Consecutive failures since the last success.
	LockedUntil         *time.Time // Lockout expiry; nil when unlocked.
	LastPasswordChange  *time.Time // Last successful password change.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// IsLocked reports whether the lockout window is still open at now.
func (a *AdminAccount) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}
