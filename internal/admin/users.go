package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Country      string    `json:"country,omitempty"`
	RefCode      string    `json:"ref_code,omitempty"`
	ReferrerCode string    `json:"referrer_code,omitempty"`
	Purchases    int       `json:"purchases"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// GET /admin/users
func ListUsers(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, username, email, COALESCE(country, ''), COALESCE(ref_code, ''),
               COALESCE(referrer_code, ''), purchases, is_admin, created_at
        FROM users ORDER BY created_at DESC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch users"})
	}
	defer rows.Close()

	var users []AdminUser
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Country, &u.RefCode,
			&u.ReferrerCode, &u.Purchases, &u.IsAdmin, &u.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read user record"})
		}
		users = append(users, u)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
