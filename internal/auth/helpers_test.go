package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "mysuperdupersecretkey1234567890123456"
	testIssuer   = "mySystem"
	testAudience = "myUsers"
	testTTL      = 10 * time.Minute
)

var t0 = time.Unix(1_700_000_000, 0)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestKeys(t *testing.T) *KeyMaterial {
	t.Helper()
	keys, err := NewKeyMaterial(testSecret, testIssuer, testAudience, testTTL, 0)
	require.NoError(t, err)
	return keys
}

func issueAt(t *testing.T, keys *KeyMaterial, at time.Time, identity Identity) Token {
	t.Helper()
	token, err := NewIssuer(keys, WithIssuerClock(fixedClock(at))).Issue(identity)
	require.NoError(t, err)
	return token
}

func validatorAt(keys *KeyMaterial, at time.Time) *Validator {
	return NewValidator(keys, WithValidatorClock(fixedClock(at)))
}

// signClaims signs arbitrary claims with the test secret, bypassing Issuer.
func signClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims(at time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":  testIssuer,
		"aud":  testAudience,
		"sub":  "123",
		"role": RoleAdmin,
		"iat":  at.Unix(),
		"exp":  at.Add(testTTL).Unix(),
	}
}
