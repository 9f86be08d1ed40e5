package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/employee-portal/secure-api/internal/api/dto"
	"github.com/employee-portal/secure-api/internal/auth"
	"github.com/employee-portal/secure-api/internal/service"
	apperrors "github.com/employee-portal/secure-api/pkg/util/errorutil"
	"github.com/employee-portal/secure-api/pkg/util/validation"
)

// AuthHandler exposes token issuance and introspection endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles GET /api/auth/token. Without query parameters it issues a
// token for the implicit identity; user_id and role override it.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	identity := h.auth.DefaultIdentity()
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("validation failed", map[string]any{
				"fields": []validation.FieldError{{Field: "user_id", Message: "must be an integer"}},
			})
		}
		identity.UserID = userID
	}
	if role := c.Query("role"); role != "" {
		identity.Role = role
	}
	return h.issue(c, identity)
}

// IssueForIdentity handles POST /api/auth/token.
func (h *AuthHandler) IssueForIdentity(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validation.Validate(req); err != nil {
		return err
	}
	return h.issue(c, auth.Identity{UserID: *req.UserID, Role: req.Role})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}
	return c.JSON(fiber.Map{
		"data": dto.MeResponse{UserID: claims.UserID, Role: claims.Role, ExpiresAt: claims.ExpiresAt},
	})
}

func (h *AuthHandler) issue(c *fiber.Ctx, identity auth.Identity) error {
	token, err := h.auth.Issue(identity)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidIdentity) {
			return apperrors.NewValidationError("invalid identity", nil)
		}
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token.Value, TokenType: "Bearer", ExpiresAt: token.ExpiresAt},
	})
}
