package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Principal represents the authenticated caller from JWT.
type Principal struct {
	ActorID kernel.UUID
	Role    string // "manager" | "driver" | "customer"
}

// RoleManager marks callers allowed to mutate pickups.
const RoleManager = "manager"

const principalContextKey = "principal"

// principalFrom retrieves the authenticated principal set by AuthMiddleware.
func principalFrom(ctx echo.Context) (*Principal, bool) {
	p, ok := ctx.Get(principalContextKey).(*Principal)
	return p, ok
}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates a Bearer JWT signed with HS256 and stores the
// resulting principal on the request context. The token subject is the actor
// UUID recorded in the audit trail.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := parseBearer(ctx.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid or missing token",
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// RequireManager rejects callers without the manager role. Applied to the
// endpoints that mutate pickup state.
func RequireManager(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		principal, ok := principalFrom(ctx)
		if !ok || principal.Role != RoleManager {
			return ctx.JSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "manager role required",
			})
		}
		return next(ctx)
	}
}

func parseBearer(header, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}

	claims := &authClaims{}
	tok, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}

	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return nil, err
	}
	if claims.Role == "" {
		return nil, errors.New("missing role claim")
	}

	return &Principal{ActorID: actorID, Role: strings.ToLower(claims.Role)}, nil
}
