package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ValidatorOption customises a Validator.
type ValidatorOption func(*Validator)

// WithValidatorClock overrides the time source.
func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) { v.now = now }
}

// Validator verifies tokens produced by an Issuer sharing the same KeyMaterial.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	keys   *KeyMaterial
	parser *jwt.Parser
	now    func() time.Time
}

// NewValidator builds a validator backed by keys.
func NewValidator(keys *KeyMaterial, opts ...ValidatorOption) *Validator {
	v := &Validator{keys: keys, parser: jwt.NewParser(), now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type tokenHeader struct {
	Alg string `json:"alg"`
}

type tokenPayload struct {
	Issuer    string           `json:"iss"`
	Audience  jwt.ClaimStrings `json:"aud"`
	Subject   string           `json:"sub"`
	Role      string           `json:"role"`
	IssuedAt  *jwt.NumericDate `json:"iat"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
}

// Validate checks, in order: structure, signature, issuer, audience, expiry
// and issue time. The first failing check decides the returned error kind.
func (v *Validator) Validate(tokenString string) (*Claims, error) {
	now := v.now()

	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return nil, fail(KindMalformedToken, fmt.Errorf("expected 3 segments, got %d", len(segments)))
	}
	rawHeader, err := v.parser.DecodeSegment(segments[0])
	if err != nil {
		return nil, fail(KindMalformedToken, fmt.Errorf("header: %w", err))
	}
	var header tokenHeader
	if err := json.Unmarshal(rawHeader, &header); err != nil {
		return nil, fail(KindMalformedToken, fmt.Errorf("header: %w", err))
	}
	rawPayload, err := v.parser.DecodeSegment(segments[1])
	if err != nil {
		return nil, fail(KindMalformedToken, fmt.Errorf("payload: %w", err))
	}
	signature, err := v.parser.DecodeSegment(segments[2])
	if err != nil {
		return nil, fail(KindMalformedToken, fmt.Errorf("signature: %w", err))
	}

	if header.Alg != jwt.SigningMethodHS256.Alg() {
		return nil, fail(KindInvalidSignature, fmt.Errorf("unexpected signing method %q", header.Alg))
	}
	signingString := segments[0] + "." + segments[1]
	if err := jwt.SigningMethodHS256.Verify(signingString, signature, v.keys.secret); err != nil {
		return nil, fail(KindInvalidSignature, err)
	}

	// The payload is decoded only after the signature verifies.
	var payload tokenPayload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return nil, fail(KindMalformedToken, fmt.Errorf("payload: %w", err))
	}
	userID, err := strconv.ParseInt(payload.Subject, 10, 64)
	if err != nil {
		return nil, fail(KindMalformedToken, fmt.Errorf("sub: %w", err))
	}
	if payload.Role == "" {
		return nil, fail(KindMalformedToken, errors.New("role claim is empty"))
	}

	if payload.Issuer != v.keys.issuer {
		return nil, fail(KindInvalidIssuer, fmt.Errorf("issuer %q", payload.Issuer))
	}
	if !slices.Contains(payload.Audience, v.keys.audience) {
		return nil, fail(KindInvalidAudience, fmt.Errorf("audience %v", []string(payload.Audience)))
	}

	if payload.ExpiresAt == nil {
		return nil, fail(KindTokenExpired, errors.New("exp claim is missing"))
	}
	expiresAt := payload.ExpiresAt.Time
	if now.After(expiresAt.Add(v.keys.leeway)) {
		return nil, fail(KindTokenExpired, fmt.Errorf("expired at %s", expiresAt.UTC().Format(time.RFC3339)))
	}

	if payload.IssuedAt == nil {
		return nil, fail(KindInvalidLifetime, errors.New("iat claim is missing"))
	}
	issuedAt := payload.IssuedAt.Time
	if issuedAt.After(now.Add(v.keys.leeway)) {
		return nil, fail(KindInvalidLifetime, fmt.Errorf("issued in the future at %s", issuedAt.UTC().Format(time.RFC3339)))
	}
	if !expiresAt.After(issuedAt) {
		return nil, fail(KindInvalidLifetime, errors.New("exp is not after iat"))
	}

	return &Claims{
		UserID:    userID,
		Role:      payload.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
