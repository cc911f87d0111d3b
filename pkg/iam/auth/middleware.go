package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// Middleware validates bearer tokens on incoming requests.
type Middleware struct {
	config Config
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(config Config) *Middleware {
	return &Middleware{config: config}
}

// Authenticate rejects requests without a valid bearer token.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return ErrMissingToken()
		}

		userID, err := m.parseSubject(raw)
		if err != nil {
			return ErrInvalidToken().WithDetail("reason", err.Error())
		}

		setAuthContext(c, &AuthContext{UserID: &userID})
		return c.Next()
	}
}

// Optional resolves the caller identity when a valid token is present and
// lets the request through anonymously otherwise. Read endpoints use it so
// view tracking can tell owners from visitors.
func (m *Middleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw, ok := bearerToken(c); ok {
			if userID, err := m.parseSubject(raw); err == nil {
				setAuthContext(c, &AuthContext{UserID: &userID})
			}
		}
		return c.Next()
	}
}

func (m *Middleware) parseSubject(raw string) (kernel.UserID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return kernel.NewUserID(sub), nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", false
	}
	return raw, true
}
