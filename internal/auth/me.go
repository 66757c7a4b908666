package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

// Me returns the currently authenticated account
func Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var (
		username, email          string
		country, mobile, refCode string
		purchases                int
		isAdmin                  bool
	)
	err := db.Conn.QueryRow(c.Request().Context(), `
        SELECT username, email, COALESCE(country, ''), COALESCE(mobile, ''),
               COALESCE(ref_code, ''), purchases, is_admin
        FROM users WHERE id = $1
    `, uid).Scan(&username, &email, &country, &mobile, &refCode, &purchases, &isAdmin)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":        uid,
		"username":  username,
		"email":     email,
		"country":   country,
		"mobile":    mobile,
		"ref_code":  refCode,
		"purchases": purchases,
		"is_admin":  isAdmin,
	})
}
