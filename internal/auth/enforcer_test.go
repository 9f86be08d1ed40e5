package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims *Claims
	err    error
	calls  int
}

func (s *stubValidator) Validate(string) (*Claims, error) {
	s.calls++
	return s.claims, s.err
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Bearer    ", ok: false},
		{header: "Basic abc123", ok: false},
		{header: "abc.def.ghi", ok: false},
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{header: "bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{header: "  Bearer  abc.def.ghi  ", want: "abc.def.ghi", ok: true},
	}

	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestEnforcer_Scenario(t *testing.T) {
	keys := newTestKeys(t)
	token := issueAt(t, keys, t0, Identity{UserID: 123, Role: RoleAdmin})
	header := "Bearer " + token.Value
	enforcer := NewEnforcer(validatorAt(keys, t0.Add(5*time.Minute)), nil)

	claims, err := enforcer.Authorize(header, NewRoleSet(RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, int64(123), claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)

	claims, err = enforcer.Authorize(header, NewRoleSet(RolePOC))
	assert.ErrorIs(t, err, ErrInsufficientRole)
	assert.Nil(t, claims)
}

func TestEnforcer_Authorize(t *testing.T) {
	keys := newTestKeys(t)
	admin := "Bearer " + issueAt(t, keys, t0, Identity{UserID: 1, Role: RoleAdmin}).Value
	poc := "Bearer " + issueAt(t, keys, t0, Identity{UserID: 2, Role: RolePOC}).Value
	enforcer := NewEnforcer(validatorAt(keys, t0), nil)

	tests := []struct {
		name     string
		header   string
		required RoleSet
		wantErr  error
	}{
		{name: "missing header", header: "", required: NewRoleSet(RoleAdmin), wantErr: ErrMissingToken},
		{name: "no bearer prefix", header: admin[len("Bearer "):], required: NewRoleSet(RoleAdmin), wantErr: ErrMissingToken},
		{name: "garbage token", header: "Bearer nope", required: NewRoleSet(RoleAdmin), wantErr: ErrMalformedToken},
		{name: "role not in set", header: poc, required: NewRoleSet(RoleAdmin), wantErr: ErrInsufficientRole},
		{name: "role in set", header: poc, required: NewRoleSet(RoleAdmin, RolePOC)},
		{name: "empty set admits any role", header: poc, required: NewRoleSet()},
		{name: "nil set admits any role", header: admin, required: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := enforcer.Authorize(tt.header, tt.required)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, claims)
		})
	}
}

func TestEnforcer_PassesValidatorFailureThrough(t *testing.T) {
	keys := newTestKeys(t)
	token := issueAt(t, keys, t0, Identity{UserID: 1, Role: RoleAdmin})
	enforcer := NewEnforcer(validatorAt(keys, t0.Add(time.Hour)), nil)

	_, err := enforcer.Authorize("Bearer "+token.Value, NewRoleSet(RoleAdmin))
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, KindTokenExpired, KindOf(err))
}

func TestEnforcer_FailsClosed(t *testing.T) {
	t.Run("missing token never reaches validator", func(t *testing.T) {
		stub := &stubValidator{claims: &Claims{UserID: 1, Role: RoleAdmin}}
		_, err := NewEnforcer(stub, nil).Authorize("", nil)
		assert.ErrorIs(t, err, ErrMissingToken)
		assert.Zero(t, stub.calls)
	})

	t.Run("no validator configured", func(t *testing.T) {
		_, err := NewEnforcer(nil, nil).Authorize("Bearer a.b.c", nil)
		require.Error(t, err)
		assert.NotEmpty(t, KindOf(err))
	})

	t.Run("nil enforcer", func(t *testing.T) {
		var enforcer *Enforcer
		_, err := enforcer.Authorize("Bearer a.b.c", nil)
		require.Error(t, err)
	})

	t.Run("untyped validator error", func(t *testing.T) {
		stub := &stubValidator{err: errors.New("boom")}
		_, err := NewEnforcer(stub, nil).Authorize("Bearer a.b.c", nil)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("validator returns neither claims nor error", func(t *testing.T) {
		_, err := NewEnforcer(&stubValidator{}, nil).Authorize("Bearer a.b.c", nil)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("operation without policy", func(t *testing.T) {
		stub := &stubValidator{claims: &Claims{UserID: 1, Role: RoleAdmin}}
		_, err := NewEnforcer(stub, nil).AuthorizeOperation("Bearer a.b.c", "employee.data")
		assert.ErrorIs(t, err, ErrUnknownOperation)
	})
}

func TestEnforcer_AuthorizeOperation(t *testing.T) {
	keys := newTestKeys(t)
	admin := "Bearer " + issueAt(t, keys, t0, Identity{UserID: 1, Role: RoleAdmin}).Value
	poc := "Bearer " + issueAt(t, keys, t0, Identity{UserID: 2, Role: RolePOC}).Value

	policy := NewPolicy(map[string][]string{
		"employee.data":   {RoleAdmin, RolePOC},
		"admin.dashboard": {RoleAdmin},
		"auth.me":         {},
	})
	enforcer := NewEnforcer(validatorAt(keys, t0), policy)

	tests := []struct {
		name      string
		header    string
		operation string
		wantErr   error
	}{
		{name: "admin reads employee data", header: admin, operation: "employee.data"},
		{name: "poc reads employee data", header: poc, operation: "employee.data"},
		{name: "admin opens dashboard", header: admin, operation: "admin.dashboard"},
		{name: "poc denied dashboard", header: poc, operation: "admin.dashboard", wantErr: ErrInsufficientRole},
		{name: "any role on open operation", header: poc, operation: "auth.me"},
		{name: "unknown operation", header: admin, operation: "payroll.export", wantErr: ErrUnknownOperation},
		{name: "unauthenticated on unknown operation", header: "", operation: "payroll.export", wantErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := enforcer.AuthorizeOperation(tt.header, tt.operation)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, claims)
		})
	}
}
