package auth

import (
	"context"
	"crypto/subtle"

	"github.com/brightline-events/siteadmin/internal/security"
	log "github.com/sirupsen/logrus"
)

// Source names the credential source that authenticated a principal.
type Source string

// Credential sources.
const (
	SourceDatabase    Source = "database"
	SourceEnvironment Source = "environment"
)

// Principal identifies an authenticated administrator.
type Principal struct {
	Username string
	Source   Source
}

// AttemptResult is one strategy decision.
type AttemptResult struct {
	Principal Principal
	Err       error // nil when authenticated.
	Failed    bool  // A credential comparison failed and counts against the client IP.
}

// Strategy decides a single username/password pair.
type Strategy interface {
	Attempt(ctx context.Context, username, password string) AttemptResult
}

// EnvCredentials is the shared admin credential read from the environment at startup.
type EnvCredentials struct {
	Username string
	Password string
}

// Configured reports whether both values are present.
func (c EnvCredentials) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// EnvBackedAuth compares against the environment credential in constant time.
type EnvBackedAuth struct {
	creds EnvCredentials
}

// NewEnvBackedAuth constructs an EnvBackedAuth.
func NewEnvBackedAuth(creds EnvCredentials) *EnvBackedAuth {
	return &EnvBackedAuth{creds: creds}
}

// Attempt fails closed with ErrNotConfigured when the environment credential is missing.
func (a *EnvBackedAuth) Attempt(_ context.Context, username, password string) AttemptResult {
	if !a.creds.Configured() {
		return AttemptResult{Err: ErrNotConfigured}
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password))
	if userOK&passOK != 1 {
		return AttemptResult{Err: ErrInvalidCredentials, Failed: true}
	}
	return AttemptResult{Principal: Principal{Username: username, Source: SourceEnvironment}}
}

// DatabaseBackedAuth verifies stored accounts and applies the lock policy.
// Unknown usernames and store failures go to fallback when one is set.
type DatabaseBackedAuth struct {
	store    CredentialStore
	hasher   security.Hasher
	policy   LockPolicy
	now      Clock
	fallback Strategy
}

// NewDatabaseBackedAuth constructs a DatabaseBackedAuth. fallback may be nil.
func NewDatabaseBackedAuth(store CredentialStore, hasher security.Hasher, policy LockPolicy, now Clock, fallback Strategy) *DatabaseBackedAuth {
	return &DatabaseBackedAuth{
		store:    store,
		hasher:   hasher,
		policy:   policy.normalized(),
		now:      orDefaultClock(now),
		fallback: fallback,
	}
}

// Attempt checks the lock before any hash comparison.
func (a *DatabaseBackedAuth) Attempt(ctx context.Context, username, password string) AttemptResult {
	account, errFind := a.store.FindByUsername(ctx, username)
	if errFind != nil {
		log.WithError(errFind).Error("admin auth: credential lookup failed")
		return a.fallThrough(ctx, username, password, true)
	}
	if account == nil {
		return a.fallThrough(ctx, username, password, false)
	}

	now := a.now()
	if remaining, locked := a.policy.Remaining(account, now); locked {
		return AttemptResult{Err: lockedError(remaining)}
	}

	if !a.hasher.Verify(password, account.PasswordHash) {
		fields, lockedNow := a.policy.FailureFields(account, now)
		if errUpdate := a.store.Update(ctx, account.ID, fields); errUpdate != nil {
			log.WithError(errUpdate).Error("admin auth: failed to record login failure")
			return a.fallThrough(ctx, username, password, true)
		}
		if lockedNow {
			return AttemptResult{Err: lockedError(a.policy.Duration), Failed: true}
		}
		return AttemptResult{Err: ErrInvalidCredentials, Failed: true}
	}

	if errUpdate := a.store.Update(ctx, account.ID, a.policy.SuccessFields()); errUpdate != nil {
		log.WithError(errUpdate).Error("admin auth: failed to reset login counters")
		return a.fallThrough(ctx, username, password, true)
	}
	return AttemptResult{Principal: Principal{Username: account.Username, Source: SourceDatabase}}
}

func (a *DatabaseBackedAuth) fallThrough(ctx context.Context, username, password string, storeFailed bool) AttemptResult {
	if a.fallback != nil {
		return a.fallback.Attempt(ctx, username, password)
	}
	if storeFailed {
		return AttemptResult{Err: ErrNotConfigured}
	}
	return AttemptResult{Err: ErrInvalidCredentials, Failed: true}
}

// StrategyOptions controls how NewStrategy composes credential sources.
type StrategyOptions struct {
	LegacyEnvFallback bool
	LockPolicy        LockPolicy
	Clock             Clock
}

// NewStrategy picks the credential source once at startup.
// Without a store only the environment credential is consulted.
func NewStrategy(store CredentialStore, hasher security.Hasher, env EnvCredentials, opts StrategyOptions) Strategy {
	envAuth := NewEnvBackedAuth(env)
	if store == nil {
		if !env.Configured() {
			log.Warn("admin auth: no database and no ADMIN_USER/ADMIN_PASS; all admin requests will fail")
		}
		return envAuth
	}
	var fallback Strategy
	if opts.LegacyEnvFallback && env.Configured() {
		log.Warn("admin auth: database accounts and ADMIN_USER/ADMIN_PASS are both active; unknown usernames fall back to the environment credential")
		fallback = envAuth
	}
	return NewDatabaseBackedAuth(store, hasher, opts.LockPolicy, opts.Clock, fallback)
}
