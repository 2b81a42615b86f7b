package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// TokenMiddleware authenticates requests carrying a Bearer token
type TokenMiddleware struct {
	tokens TokenService
}

// NewAuthMiddleware creates middleware backed by the given token service
func NewAuthMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Handle validates the Authorization header and stores the identity on the
// request context for downstream handlers.
func (m *TokenMiddleware) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingToken()
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return ErrInvalidToken().WithDetail("reason", "expected Bearer scheme")
		}

		authCtx, err := m.tokens.ValidateToken(token)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, authCtx)
		return c.Next()
	}
}

// GetAuthContext retrieves the authenticated identity from the request, if any
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
