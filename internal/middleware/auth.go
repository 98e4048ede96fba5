// Package middleware implements the request gate every protected route runs
// through: token verification, identity loading and role-based authorization,
// in that order. Each stage is terminal on failure and short-circuits the rest
// of the chain.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/HimanshuAlien/college-management-system/internal/auth"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const (
	claimsKey   = "user"
	identityKey = "identity"

	msgNoToken      = "No token, access denied"
	msgInvalidToken = "Token is not valid"
	msgUnknownUser  = "User not found"
	msgDeactivated  = "Account is deactivated"
	msgNoIdentity   = "Access denied"
	msgForbidden    = "Insufficient permissions"
)

// VerifyToken extracts the Bearer token from the Authorization header and
// verifies it with the token service. Verified claims land in the request
// context for LoadIdentity. A missing token and an invalid one produce
// distinct messages but the same 401 status; expired and tampered tokens are
// indistinguishable to the client.
func VerifyToken(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return tokens.Verify(raw)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
		},
	})
}

// LoadIdentity resolves the verified claims to a live user record and stores
// the projected identity in the request context. The record is re-fetched on
// every request so a token outlives neither the account nor, in strict mode,
// its deactivation. The claim's embedded role is only ever used to locate the
// record; authorization reads the stored role.
func LoadIdentity(users repository.UserRepository, rejectInactive bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				// VerifyToken did not run; treat as missing credential
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnknownUser)
			}
			if rejectInactive && !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, msgDeactivated)
			}

			c.Set(identityKey, auth.NewIdentity(user))
			return next(c)
		}
	}
}

// RequireRoles authorizes a request when the authenticated identity's role is
// in the allowed set. An empty set rejects everything. The check is a pure
// function of (role, allowed); it does no I/O.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				// authentication middleware was not applied first
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoIdentity)
			}
			for _, role := range allowed {
				if ident.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
		}
	}
}

// OwnerCheck is the capability predicate of the second authorization layer:
// given the acting user and a resource id, it returns nil when the action is
// permitted and a domain error otherwise. Resource services supply these.
type OwnerCheck func(ctx context.Context, userID, resourceID uint) error

// RequireOwner composes an OwnerCheck after role authorization for routes
// whose path carries the resource id.
func RequireOwner(param string, check OwnerCheck) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoIdentity)
			}
			id, err := strconv.ParseUint(c.Param(param), 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
			}
			if err := check(c.Request().Context(), ident.ID, uint(id)); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, msgNoIdentity)
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the authenticated identity placed in the context by
// LoadIdentity.
func IdentityFrom(c echo.Context) (*auth.Identity, bool) {
	ident, ok := c.Get(identityKey).(*auth.Identity)
	return ident, ok
}

// SetIdentity stores an identity in the context. Exposed for handler tests.
func SetIdentity(c echo.Context, ident *auth.Identity) {
	c.Set(identityKey, ident)
}
