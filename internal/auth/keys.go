package auth

import (
	"errors"
	"fmt"
	"time"
)

// MinSecretLength is the shortest accepted HS256 secret, in bytes.
const MinSecretLength = 32

// KeyMaterial is the process-wide signing configuration shared by Issuer and
// Validator. It is immutable once constructed.
type KeyMaterial struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
}

// NewKeyMaterial validates and freezes the signing configuration. Leeway is the
// tolerated clock skew applied to the lifetime checks.
func NewKeyMaterial(secret, issuer, audience string, ttl, leeway time.Duration) (*KeyMaterial, error) {
	switch {
	case secret == "":
		return nil, errors.New("auth: signing secret is not configured")
	case len(secret) < MinSecretLength:
		return nil, fmt.Errorf("auth: signing secret must be at least %d bytes", MinSecretLength)
	case issuer == "":
		return nil, errors.New("auth: issuer is not configured")
	case audience == "":
		return nil, errors.New("auth: audience is not configured")
	case ttl < time.Second:
		return nil, fmt.Errorf("auth: token ttl must be at least one second, got %s", ttl)
	case leeway < 0:
		return nil, fmt.Errorf("auth: clock skew must not be negative, got %s", leeway)
	}

	key := make([]byte, len(secret))
	copy(key, secret)
	return &KeyMaterial{
		secret:   key,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		leeway:   leeway,
	}, nil
}

// Issuer returns the iss value stamped into and expected from tokens.
func (k *KeyMaterial) Issuer() string { return k.issuer }

// Audience returns the aud value stamped into and expected from tokens.
func (k *KeyMaterial) Audience() string { return k.audience }

// TTL returns the token lifetime.
func (k *KeyMaterial) TTL() time.Duration { return k.ttl }

// Leeway returns the tolerated clock skew.
func (k *KeyMaterial) Leeway() time.Duration { return k.leeway }

// String keeps the secret out of logs and fmt output.
func (k *KeyMaterial) String() string {
	return fmt.Sprintf("KeyMaterial{issuer=%q audience=%q ttl=%s secret=[REDACTED]}", k.issuer, k.audience, k.ttl)
}

// GoString keeps the secret out of %#v output.
func (k *KeyMaterial) GoString() string {
	return k.String()
}
