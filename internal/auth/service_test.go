package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/brightline-events/siteadmin/internal/security"
)

func newTestService(t *testing.T, withStore bool) (*Service, *authFixture) {
	t.Helper()
	f := newAuthFixture(t, EnvCredentials{}, false)
	deps := Dependencies{
		Hasher:  f.hasher,
		Limiter: f.limiter,
		Clock:   f.clock.Now,
	}
	if withStore {
		deps.Store = f.store
	}
	return NewService(deps, Options{LockPolicy: DefaultLockPolicy()}), f
}

func TestSetupIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t, true)

	account, err := svc.Setup(ctx, "admin", "Secret1!")
	if err != nil {
		t.Fatalf("expected first setup to succeed, got %v", err)
	}
	if account.ID == 0 {
		t.Fatalf("expected account id")
	}

	if _, err = svc.Setup(ctx, "admin", "Another1!"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected conflict on second setup, got %v", err)
	}
	stored := f.reload(t, "admin")
	if !f.hasher.Verify("Secret1!", stored.PasswordHash) {
		t.Fatalf("expected original password to remain valid")
	}
	if f.hasher.Verify("Another1!", stored.PasswordHash) {
		t.Fatalf("expected second setup password to be ignored")
	}
}

func TestSetupValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, true)

	var usernameErr *InvalidUsernameError
	if _, err := svc.Setup(ctx, "a b", "Secret1!"); !errors.As(err, &usernameErr) {
		t.Fatalf("expected invalid username, got %v", err)
	}
	var weak *security.WeakPasswordError
	if _, err := svc.Setup(ctx, "admin", "weak"); !errors.As(err, &weak) {
		t.Fatalf("expected weak password, got %v", err)
	}
	if _, err := svc.Setup(ctx, "admin", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
}

func TestSetupRequiresStore(t *testing.T) {
	svc, _ := newTestService(t, false)
	if _, err := svc.Setup(context.Background(), "admin", "Secret1!"); !errors.Is(err, ErrDatabaseRequired) {
		t.Fatalf("expected database required, got %v", err)
	}
}

func TestChangePasswordRejectsWeakOrUnchangedPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, true)
	if _, err := svc.Setup(ctx, "admin", "Secret1!"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := svc.ChangePassword(ctx, ChangePasswordInput{Username: "admin", CurrentPassword: "Secret1!", NewPassword: "Secret1!"}, "1.2.3.4")
	if !errors.Is(err, ErrPasswordUnchanged) {
		t.Fatalf("expected unchanged password rejection, got %v", err)
	}

	weakCandidates := []string{"Sec1!", "secret1!", "SECRET1!", "Secret!!", "Secret11"}
	for _, candidate := range weakCandidates {
		err = svc.ChangePassword(ctx, ChangePasswordInput{Username: "admin", CurrentPassword: "Secret1!", NewPassword: candidate}, "1.2.3.4")
		var weak *security.WeakPasswordError
		if !errors.As(err, &weak) {
			t.Fatalf("expected weak password for %q, got %v", candidate, err)
		}
	}
}

func TestChangePasswordWrongCurrentPassword(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t, true)
	if _, err := svc.Setup(ctx, "admin", "Secret1!"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := svc.ChangePassword(ctx, ChangePasswordInput{Username: "admin", CurrentPassword: "WrongPass1!", NewPassword: "Fresh2@pass"}, "1.2.3.4")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if got := f.reload(t, "admin").FailedLoginAttempts; got != 0 {
		t.Fatalf("expected account counters untouched, got %d", got)
	}
	if f.limiter.Len() != 1 {
		t.Fatalf("expected failure recorded for IP")
	}
}

func TestChangePasswordFailuresDoNotLockAccount(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t, true)
	if _, err := svc.Setup(ctx, "admin", "Secret1!"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for i := 0; i < 5; i++ {
		err := svc.ChangePassword(ctx, ChangePasswordInput{Username: "admin", CurrentPassword: "WrongPass1!", NewPassword: "Fresh2@pass"}, "1.2.3.4")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i+1, err)
		}
	}
	if _, err := svc.Login(ctx, "admin", "Secret1!", "5.6.7.8"); err != nil {
		t.Fatalf("expected login from another IP, got %v", err)
	}
	if account := f.reload(t, "admin"); account.LockedUntil != nil || account.FailedLoginAttempts != 0 {
		t.Fatalf("expected account unlocked, got %+v", account)
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t, true)
	if _, err := svc.Setup(ctx, "admin", "Secret1!"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.Login(ctx, "admin", "WrongPass", "1.2.3.4"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	err := svc.ChangePassword(ctx, ChangePasswordInput{Username: "admin", CurrentPassword: "Secret1!", NewPassword: "Fresh2@pass"}, "1.2.3.4")
	if err != nil {
		t.Fatalf("expected password change, got %v", err)
	}
	account := f.reload(t, "admin")
	if !f.hasher.Verify("Fresh2@pass", account.PasswordHash) {
		t.Fatalf("expected new password to verify")
	}
	if account.FailedLoginAttempts != 0 || account.LockedUntil != nil {
		t.Fatalf("expected counters reset")
	}
	if account.LastPasswordChange == nil || !account.LastPasswordChange.Equal(f.clock.Now()) {
		t.Fatalf("expected last password change stamped, got %v", account.LastPasswordChange)
	}
	if _, err = svc.Login(ctx, "admin", "Fresh2@pass", "1.2.3.4"); err != nil {
		t.Fatalf("expected login with new password, got %v", err)
	}
}

func TestChangePasswordRequiresStore(t *testing.T) {
	svc, _ := newTestService(t, false)
	err := svc.ChangePassword(context.Background(), ChangePasswordInput{Username: "admin", CurrentPassword: "Secret1!", NewPassword: "Fresh2@pass"}, "1.2.3.4")
	if !errors.Is(err, ErrDatabaseRequired) {
		t.Fatalf("expected database required, got %v", err)
	}
}

func TestLoginMissingFieldsCountsAsFailure(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t, true)
	for i := 0; i < 5; i++ {
		if _, err := svc.Login(ctx, "", "", "1.2.3.4"); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("attempt %d: expected invalid format, got %v", i+1, err)
		}
	}
	if _, err := svc.Login(ctx, "admin", "Secret1!", "1.2.3.4"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if f.limiter.Len() != 1 {
		t.Fatalf("expected a single tracked IP")
	}
}

type recordingHook struct {
	results []Result
}

func (h *recordingHook) OnResult(_ context.Context, result Result) {
	h.results = append(h.results, result)
}

func TestLoginMissingFieldsNotifiesHooks(t *testing.T) {
	f := newAuthFixture(t, EnvCredentials{}, false)
	rec := &recordingHook{}
	svc := NewService(Dependencies{
		Store:   f.store,
		Hasher:  f.hasher,
		Limiter: f.limiter,
		Clock:   f.clock.Now,
		Hooks:   []Hook{rec},
	}, Options{LockPolicy: DefaultLockPolicy()})

	if _, err := svc.Login(context.Background(), "admin", "", "1.2.3.4"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if len(rec.results) != 1 {
		t.Fatalf("expected one hook result, got %d", len(rec.results))
	}
	if got := ReasonOf(rec.results[0].Err); got != ReasonInvalidFormat {
		t.Fatalf("expected reason %q, got %q", ReasonInvalidFormat, got)
	}
	if rec.results[0].Username != "admin" || rec.results[0].IP != "1.2.3.4" {
		t.Fatalf("unexpected hook result %+v", rec.results[0])
	}
	if f.limiter.Len() != 1 {
		t.Fatalf("expected failure recorded for IP")
	}
	if f.hasher.verifies != 0 {
		t.Fatalf("expected no hash comparison, got %d", f.hasher.verifies)
	}
}
