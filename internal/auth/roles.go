package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copconnect/reporting-service/internal/domain"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// RequireRoles admits callers whose token role is in allowed. It must run after Authenticate.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[claims.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
