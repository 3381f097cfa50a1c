package http

import (
	"context"
	"net/http"
	"time"

	"lockerhub/internal/core/domain/model/account"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// TokenHeader carries the caller's API token.
	TokenHeader = "X-Api-Token"

	// identityContextKey stores the resolved identity on the echo context.
	identityContextKey = "identity"

	tokenCacheTTL     = 5 * time.Minute
	tokenCacheCleanup = 10 * time.Minute
)

// IdentityResolver resolves an API token to an authenticated identity.
// Implemented by the postgres account repository.
type IdentityResolver interface {
	GetByToken(ctx context.Context, token string) (account.Identity, error)
}

// TokenAuth authenticates requests by the X-Api-Token header. Resolved
// identities are cached for five minutes, so a revoked token may keep
// working until its cache entry expires.
type TokenAuth struct {
	resolver IdentityResolver
	cache    *gocache.Cache
}

// NewTokenAuth creates the token authentication middleware.
func NewTokenAuth(resolver IdentityResolver) *TokenAuth {
	return &TokenAuth{
		resolver: resolver,
		cache:    gocache.New(tokenCacheTTL, tokenCacheCleanup),
	}
}

// Middleware returns the echo middleware resolving the token header.
// Requests without a resolvable identity are rejected with 401.
func (a *TokenAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing API token",
				})
			}

			if cached, ok := a.cache.Get(token); ok {
				c.Set(identityContextKey, cached.(account.Identity))
				return next(c)
			}

			identity, err := a.resolver.GetByToken(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid API token",
				})
			}

			a.cache.Set(token, identity, gocache.DefaultExpiration)
			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// identityFromContext returns the identity set by the auth middleware.
func identityFromContext(c echo.Context) (account.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(account.Identity)
	return identity, ok
}
