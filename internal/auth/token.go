package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Identity is the subject a token is issued for.
type Identity struct {
	UserID int64
	Role   string
}

// Claims is the verified content of a token.
type Claims struct {
	UserID    int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token is a signed credential in compact form together with its lifetime.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuerOption customises an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the time source.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// WithKnownRoles restricts issuance to the given closed set of roles.
func WithKnownRoles(roles RoleSet) IssuerOption {
	return func(i *Issuer) { i.roles = roles }
}

// Issuer signs HS256 tokens for identities. It holds no mutable state and is
// safe for concurrent use.
type Issuer struct {
	keys  *KeyMaterial
	roles RoleSet
	now   func() time.Time
}

// NewIssuer builds an issuer backed by keys.
func NewIssuer(keys *KeyMaterial, opts ...IssuerOption) *Issuer {
	i := &Issuer{keys: keys, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue builds and signs a token for identity.
func (i *Issuer) Issue(identity Identity) (Token, error) {
	if identity.Role == "" {
		return Token{}, fail(KindInvalidIdentity, errors.New("role is required"))
	}
	if i.roles != nil && !i.roles.Contains(identity.Role) {
		return Token{}, fail(KindInvalidIdentity, fmt.Errorf("role %q is not recognised", identity.Role))
	}

	// Claims carry whole seconds.
	issuedAt := time.Unix(i.now().Unix(), 0)
	expiresAt := time.Unix(issuedAt.Add(i.keys.ttl).Unix(), 0)

	claims := jwt.MapClaims{
		"iss":  i.keys.issuer,
		"aud":  i.keys.audience,
		"sub":  strconv.FormatInt(identity.UserID, 10),
		"role": identity.Role,
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.keys.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}
