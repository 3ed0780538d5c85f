package auth

import (
	"context"
	"errors"
)

// Verifier makes exactly one authentication decision per call.
// The rate limit is checked before anything else on every entry point.
type Verifier struct {
	strategy Strategy
	limiter  RateLimiter
	hooks    []Hook
}

// NewVerifier constructs a Verifier. Hooks observe every decision in order.
func NewVerifier(strategy Strategy, limiter RateLimiter, hooks ...Hook) *Verifier {
	return &Verifier{strategy: strategy, limiter: limiter, hooks: hooks}
}

// CheckRateLimit returns a rate-limited DenialError when ip has exhausted its attempts.
func (v *Verifier) CheckRateLimit(ctx context.Context, ip string) error {
	status := v.limiter.Check(ctx, ip)
	if status.Allowed {
		return nil
	}
	return rateLimitedError(status.RetryAfter)
}

// AuthenticateBasic decides a request carrying an Authorization header.
func (v *Verifier) AuthenticateBasic(ctx context.Context, header, ip string) (Principal, error) {
	if err := v.CheckRateLimit(ctx, ip); err != nil {
		v.notify(ctx, Result{IP: ip, Err: err})
		return Principal{}, err
	}
	username, password, err := ParseBasicAuth(header)
	if err != nil {
		v.notify(ctx, Result{IP: ip, Err: err})
		return Principal{}, err
	}
	return v.decide(ctx, username, password, ip)
}

// Authenticate decides a username/password pair submitted directly, as on login.
// Missing fields count against ip.
func (v *Verifier) Authenticate(ctx context.Context, username, password, ip string) (Principal, error) {
	if err := v.CheckRateLimit(ctx, ip); err != nil {
		v.notify(ctx, Result{Username: username, IP: ip, Err: err})
		return Principal{}, err
	}
	if username == "" || password == "" {
		v.limiter.RecordFailure(ctx, ip)
		v.notify(ctx, Result{Username: username, IP: ip, Err: ErrInvalidFormat})
		return Principal{}, ErrInvalidFormat
	}
	return v.decide(ctx, username, password, ip)
}

func (v *Verifier) decide(ctx context.Context, username, password, ip string) (Principal, error) {
	res := v.strategy.Attempt(ctx, username, password)
	if res.Failed {
		v.limiter.RecordFailure(ctx, ip)
	}
	if res.Err != nil {
		v.notify(ctx, Result{
			Username: username,
			IP:       ip,
			Err:      res.Err,
			Locked:   res.Failed && errors.Is(res.Err, ErrAccountLocked),
		})
		return Principal{}, res.Err
	}
	v.limiter.Clear(ctx, ip)
	v.notify(ctx, Result{Username: username, IP: ip, Source: res.Principal.Source})
	return res.Principal, nil
}

func (v *Verifier) notify(ctx context.Context, result Result) {
	for _, hook := range v.hooks {
		hook.OnResult(ctx, result)
	}
}
