package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

// GET /admin/tickets
func ListTickets(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT t.id, t.user_id, COALESCE(u.username, ''), t.email, t.subject, t.message, t.status, t.created_at
        FROM tickets t
        LEFT JOIN users u ON t.user_id = u.id
        ORDER BY t.created_at DESC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch tickets"})
	}
	defer rows.Close()

	var tickets []map[string]interface{}
	for rows.Next() {
		var id, username, email, subject, message, status string
		var userID *int64
		var createdAt time.Time
		if err := rows.Scan(&id, &userID, &username, &email, &subject, &message, &status, &createdAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read ticket record"})
		}
		tickets = append(tickets, map[string]interface{}{
			"id":         id,
			"user_id":    userID,
			"username":   username,
			"email":      email,
			"subject":    subject,
			"message":    message,
			"status":     status,
			"created_at": createdAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}
