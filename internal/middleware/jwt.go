package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWT validates the bearer token and stashes the account identity in
// the echo context as "user_id" (int64) and "is_admin" (bool).
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, isAdmin, ok := ParseBearer(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			c.Set("user_id", uid)
			c.Set("is_admin", isAdmin)
			return next(c)
		}
	}
}

// ParseBearer extracts the identity from the Authorization header.
// Returns ok=false when the header is missing or the token does not
// verify. Exposed so optionally-authenticated handlers can reuse it.
func ParseBearer(c echo.Context, secret string) (userID int64, isAdmin bool, ok bool) {
	authHeader := c.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return 0, false, false
	}
	tokenStr := authHeader[len(prefix):]

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false, false
	}

	// Numeric claims come back as float64
	uidClaim, okClaim := claims["user_id"].(float64)
	if !okClaim {
		return 0, false, false
	}
	admin, _ := claims["is_admin"].(bool)
	return int64(uidClaim), admin, true
}
