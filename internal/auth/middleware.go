package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/copconnect/reporting-service/internal/domain"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

const claimsKey = "auth_claims"

// Guard validates bearer tokens on inbound requests.
type Guard struct {
	tokens *TokenManager
}

// NewGuard constructs the guard.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate requires a valid bearer token and stores its claims on the request.
func (g *Guard) Authenticate(c *fiber.Ctx) error {
	claims, err := g.claimsFromHeader(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	c.Locals(claimsKey, claims)
	return c.Next()
}

// Allow authenticates the caller and admits only the listed roles.
func (g *Guard) Allow(roles ...domain.Role) fiber.Handler {
	gate := RequireRoles(roles...)
	return func(c *fiber.Ctx) error {
		claims, err := g.claimsFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(claimsKey, claims)
		return gate(c)
	}
}

// Optional attaches claims when a valid token is present. A missing, expired or otherwise
// unusable token lets the request through unauthenticated.
func (g *Guard) Optional(c *fiber.Ctx) error {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if claims, err := g.claimsFromHeader(header); err == nil {
			c.Locals(claimsKey, claims)
		}
	}
	return c.Next()
}

func (g *Guard) claimsFromHeader(header string) (*Claims, error) {
	if header == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := g.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, tokenError(err)
	}
	return claims, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewTokenError(apperrors.KindTokenExpired, "token expired")
	case errors.Is(err, ErrTokenMalformed):
		return apperrors.NewTokenError(apperrors.KindTokenMalformed, "malformed token")
	case errors.Is(err, ErrTokenInvalidSignature):
		return apperrors.NewTokenError(apperrors.KindTokenInvalidSignature, "invalid token signature")
	default:
		return apperrors.NewTokenError(apperrors.KindInvalidToken, "invalid token")
	}
}

// ClaimsFromContext retrieves the authenticated caller.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
