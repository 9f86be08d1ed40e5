package service

import (
	"github.com/employee-portal/secure-api/internal/auth"
)

// AuthService hands out tokens through the anonymous issuance endpoint.
type AuthService struct {
	issuer          *auth.Issuer
	defaultIdentity auth.Identity
}

// NewAuthService builds the service. defaultIdentity is used when the caller
// does not supply one.
func NewAuthService(issuer *auth.Issuer, defaultIdentity auth.Identity) *AuthService {
	return &AuthService{issuer: issuer, defaultIdentity: defaultIdentity}
}

// Issue issues a token for an explicit identity.
func (s *AuthService) Issue(identity auth.Identity) (auth.Token, error) {
	return s.issuer.Issue(identity)
}

// DefaultIdentity returns the implicit identity.
func (s *AuthService) DefaultIdentity() auth.Identity {
	return s.defaultIdentity
}
