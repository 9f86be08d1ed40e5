package auth

import (
	"errors"
	"strings"
)

// TokenValidator decodes and verifies a bearer credential.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// Enforcer makes the allow/deny decision for a protected request: extract the
// bearer credential, validate it, then check the caller's role. Any failure
// denies.
type Enforcer struct {
	validator TokenValidator
	policy    *Policy
}

// NewEnforcer constructs an enforcer. policy may be nil when only Authorize
// is used; AuthorizeOperation then denies everything.
func NewEnforcer(validator TokenValidator, policy *Policy) *Enforcer {
	return &Enforcer{validator: validator, policy: policy}
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authorize authenticates the Authorization header value and, when required
// is non-empty, checks that the caller's role is a member of it.
func (e *Enforcer) Authorize(authorizationHeader string, required RoleSet) (*Claims, error) {
	claims, err := e.authenticate(authorizationHeader)
	if err != nil {
		return nil, err
	}
	if len(required) > 0 && !required.Contains(claims.Role) {
		return nil, ErrInsufficientRole
	}
	return claims, nil
}

// AuthorizeOperation looks up the roles required for operation in the policy
// table. Operations missing from the table are denied.
func (e *Enforcer) AuthorizeOperation(authorizationHeader, operation string) (*Claims, error) {
	claims, err := e.authenticate(authorizationHeader)
	if err != nil {
		return nil, err
	}
	required, ok := e.policy.RequiredRoles(operation)
	if !ok {
		return nil, ErrUnknownOperation
	}
	if len(required) > 0 && !required.Contains(claims.Role) {
		return nil, ErrInsufficientRole
	}
	return claims, nil
}

func (e *Enforcer) authenticate(authorizationHeader string) (*Claims, error) {
	token, ok := BearerToken(authorizationHeader)
	if !ok {
		return nil, ErrMissingToken
	}
	if e == nil || e.validator == nil {
		return nil, fail(KindInvalidSignature, errors.New("no validator configured"))
	}
	claims, err := e.validator.Validate(token)
	if err != nil {
		var authErr *Error
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, fail(KindMalformedToken, err)
	}
	if claims == nil {
		return nil, fail(KindMalformedToken, errors.New("validator returned no claims"))
	}
	return claims, nil
}
