package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline-events/siteadmin/internal/models"
	"github.com/brightline-events/siteadmin/internal/security"
	log "github.com/sirupsen/logrus"
)

// Dependencies are the collaborators a Service is built from.
type Dependencies struct {
	Store   CredentialStore // nil when no database is configured.
	Hasher  security.Hasher
	Limiter RateLimiter
	Env     EnvCredentials
	Clock   Clock
	Hooks   []Hook
}

// Options tunes the credential policy.
type Options struct {
	LegacyEnvFallback bool
	LockPolicy        LockPolicy
}

// Service implements login, password change and first-run setup for admins.
type Service struct {
	verifier *Verifier
	store    CredentialStore
	hasher   security.Hasher
	limiter  RateLimiter
	now      Clock
}

// NewService wires the strategy and verifier for deps.
func NewService(deps Dependencies, opts Options) *Service {
	now := orDefaultClock(deps.Clock)
	policy := opts.LockPolicy.normalized()
	strategy := NewStrategy(deps.Store, deps.Hasher, deps.Env, StrategyOptions{
		LegacyEnvFallback: opts.LegacyEnvFallback,
		LockPolicy:        policy,
		Clock:             now,
	})
	return &Service{
		verifier: NewVerifier(strategy, deps.Limiter, deps.Hooks...),
		store:    deps.Store,
		hasher:   deps.Hasher,
		limiter:  deps.Limiter,
		now:      now,
	}
}

// Verifier returns the verifier used for Basic-auth protected routes.
func (s *Service) Verifier() *Verifier {
	return s.verifier
}

// HasStore reports whether database-backed accounts are available.
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Login authenticates submitted credentials. Missing fields count as a failed attempt.
func (s *Service) Login(ctx context.Context, username, password, ip string) (Principal, error) {
	return s.verifier.Authenticate(ctx, username, password, ip)
}

// ChangePasswordInput is the payload of a password change.
type ChangePasswordInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

// ChangePassword re-verifies the current password and replaces the stored hash.
func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput, ip string) error {
	if err := s.verifier.CheckRateLimit(ctx, ip); err != nil {
		return err
	}
	if in.Username == "" || in.CurrentPassword == "" || in.NewPassword == "" {
		return ErrMissingFields
	}
	if err := security.ValidatePasswordStrength(in.NewPassword); err != nil {
		return err
	}
	if in.NewPassword == in.CurrentPassword {
		return ErrPasswordUnchanged
	}
	if s.store == nil {
		return ErrDatabaseRequired
	}

	account, errFind := s.store.FindByUsername(ctx, in.Username)
	if errFind != nil {
		return errFind
	}
	if account == nil {
		s.limiter.RecordFailure(ctx, ip)
		return ErrInvalidCredentials
	}

	// Only the IP limiter throttles this endpoint; the account lock belongs to login.
	if !s.hasher.Verify(in.CurrentPassword, account.PasswordHash) {
		s.limiter.RecordFailure(ctx, ip)
		return ErrInvalidCredentials
	}

	hash, errHash := s.hasher.Hash(in.NewPassword)
	if errHash != nil {
		return errHash
	}
	errUpdate := s.store.Update(ctx, account.ID, map[string]any{
		columnPasswordHash:        hash,
		columnLastPasswordChange:  s.now(),
		columnFailedLoginAttempts: 0,
		columnLockedUntil:         nil,
	})
	if errUpdate != nil {
		return errUpdate
	}
	s.limiter.Clear(ctx, ip)
	log.WithField("username", account.Username).Info("admin password changed")
	return nil
}

// Setup creates a database account. It is not idempotent: an existing username yields ErrAccountExists.
func (s *Service) Setup(ctx context.Context, username, password string) (*models.AdminAccount, error) {
	if s.store == nil {
		return nil, ErrDatabaseRequired
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if err := security.ValidateUsername(username); err != nil {
		return nil, &InvalidUsernameError{Message: err.Error()}
	}
	if err := security.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	existing, errFind := s.store.FindByUsername(ctx, username)
	if errFind != nil {
		return nil, errFind
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, errHash := s.hasher.Hash(password)
	if errHash != nil {
		return nil, errHash
	}
	account, errCreate := s.store.Create(ctx, username, hash)
	if errCreate != nil {
		if errors.Is(errCreate, ErrAccountExists) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("setup admin account: %w", errCreate)
	}
	log.WithField("username", account.Username).Info("admin account created")
	return account, nil
}

// InvalidUsernameError reports a username that fails the format rules.
type InvalidUsernameError struct {
	Message string
}

func (e *InvalidUsernameError) Error() string {
	return e.Message
}
