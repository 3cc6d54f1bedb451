package handler

import (
	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	apperrors "taskboard/internal/errors"
)

// MessageResponse is the success payload for operations with no entity body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileResponse is the caller's own profile as returned by /auth/me.
type ProfileResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// callerClaims returns the verified token claims placed in the context by
// the JWT middleware, or nil for unauthenticated routes.
func callerClaims(c echo.Context) *auth.Claims {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// callerID returns the caller's user id from the verified token's subject
// claim. Empty when the claim is absent; the service treats that as
// unauthorized before touching the store.
func callerID(c echo.Context) string {
	claims := callerClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID()
}

// httpError translates a service error into an echo HTTP error with the
// standard response shape.
func httpError(err error) error {
	he := apperrors.MapToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToResponse())
}
