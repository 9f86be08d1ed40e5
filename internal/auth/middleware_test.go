package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/employee-portal/secure-api/internal/observability"
	apperrors "github.com/employee-portal/secure-api/pkg/util/errorutil"
)

func newMiddlewareApp(t *testing.T, metrics *observability.Metrics) *fiber.App {
	t.Helper()
	keys := newTestKeys(t)
	policy := NewPolicy(map[string][]string{"admin.dashboard": {RoleAdmin}})
	mw := NewAuthMiddleware(NewEnforcer(validatorAt(keys, t0), policy), zap.NewNop(), metrics)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "message": de.Message})
		},
	})
	app.Get("/dashboard", mw.Require("admin.dashboard"), func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"user_id": claims.UserID, "role": claims.Role})
	})
	app.Get("/unmapped", mw.Require("nowhere"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestAuthMiddleware_Require(t *testing.T) {
	keys := newTestKeys(t)
	admin := issueAt(t, keys, t0, Identity{UserID: 123, Role: RoleAdmin}).Value
	poc := issueAt(t, keys, t0, Identity{UserID: 9, Role: RolePOC}).Value

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "allowed", path: "/dashboard", header: "Bearer " + admin, wantStatus: http.StatusOK},
		{name: "missing token", path: "/dashboard", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "bad signature", path: "/dashboard", header: "Bearer " + admin + "x", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "insufficient role", path: "/dashboard", header: "Bearer " + poc, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "unknown operation", path: "/unmapped", header: "Bearer " + admin, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newMiddlewareApp(t, observability.NewMetrics())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(body, &decoded))

			if tt.wantCode == "" {
				assert.Equal(t, float64(123), decoded["user_id"])
				assert.Equal(t, RoleAdmin, decoded["role"])
				return
			}
			assert.Equal(t, tt.wantCode, decoded["code"])
			for _, kind := range []Kind{KindMissingToken, KindInvalidSignature, KindInsufficientRole, KindUnknownOperation} {
				assert.NotContains(t, string(body), string(kind), "denial reason leaked to caller")
			}
		})
	}
}

func TestAuthMiddleware_RecordsDecisions(t *testing.T) {
	keys := newTestKeys(t)
	metrics := observability.NewMetrics()
	app := newMiddlewareApp(t, metrics)

	send := func(header string) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	wrongAudience := validClaims(t0)
	wrongAudience["aud"] = "guess"

	send("Bearer " + issueAt(t, keys, t0, Identity{UserID: 1, Role: RoleAdmin}).Value)
	send("Bearer " + issueAt(t, keys, t0, Identity{UserID: 2, Role: RolePOC}).Value)
	send("")
	send("Bearer " + signClaims(t, wrongAudience))

	decisions := metrics.Snapshot().AccessDecisions
	assert.Equal(t, map[string]int64{
		"admin.dashboard|allow":        1,
		"admin.dashboard|forbidden":    1,
		"admin.dashboard|unauthorized": 2,
	}, decisions)
}
