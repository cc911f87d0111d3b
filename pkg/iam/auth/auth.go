// Package auth resolves caller identity for the HTTP layer.
//
// The board trusts bearer tokens issued by an upstream identity provider;
// there is no login, refresh or credential storage here. The middleware
// validates the token signature and stashes an AuthContext in the request
// locals for handlers to pick up.
package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/boardwalk-hq/boardwalk/pkg/errx"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeMissingToken = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Missing bearer token")
	CodeInvalidToken = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
)

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

// Config holds the token validation settings.
type Config struct {
	// Secret is the HMAC key the upstream issuer signs tokens with.
	Secret string
}

// AuthContext carries the resolved caller identity.
type AuthContext struct {
	UserID *kernel.UserID
}

const localsKey = "auth_context"

// GetAuthContext returns the AuthContext stored by the middleware, if any.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(localsKey).(*AuthContext)
	return authCtx, ok
}

func setAuthContext(c *fiber.Ctx, authCtx *AuthContext) {
	c.Locals(localsKey, authCtx)
}
