package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/employee-portal/secure-api/internal/observability"
	apperrors "github.com/employee-portal/secure-api/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Decision outcomes recorded in metrics. Failure kinds go to the log only.
const (
	outcomeAllow        = "allow"
	outcomeUnauthorized = "unauthorized"
	outcomeForbidden    = "forbidden"
)

// AuthMiddleware adapts the Enforcer to fiber routes.
type AuthMiddleware struct {
	enforcer *Enforcer
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(enforcer *Enforcer, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{enforcer: enforcer, logger: logger, metrics: metrics}
}

// Require guards a route with the policy entry for operation. On success the
// verified claims are stored for ClaimsFromContext.
func (m *AuthMiddleware) Require(operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.enforcer.AuthorizeOperation(c.Get(fiber.HeaderAuthorization), operation)
		if err != nil {
			return m.deny(c, operation, err)
		}

		m.metrics.RecordDecision(operation, outcomeAllow)
		m.logger.Debug("access allowed",
			zap.String("operation", operation),
			zap.Int64("user_id", claims.UserID),
			zap.String("role", claims.Role),
		)
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func (m *AuthMiddleware) deny(c *fiber.Ctx, operation string, err error) error {
	kind := KindOf(err)
	if kind == "" {
		kind = KindMalformedToken
	}
	forbidden := (&Error{Kind: kind}).Forbidden()
	outcome := outcomeUnauthorized
	if forbidden {
		outcome = outcomeForbidden
	}

	m.metrics.RecordDecision(operation, outcome)
	m.logger.Info("access denied",
		zap.String("operation", operation),
		zap.String("reason", string(kind)),
		zap.String("request_id", observability.RequestID(c)),
		zap.String("path", c.Path()),
	)

	if forbidden {
		return apperrors.NewForbidden()
	}
	return apperrors.NewUnauthorized()
}

// ClaimsFromContext retrieves the claims stored by Require.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
