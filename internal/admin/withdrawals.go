package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

// ErrWithdrawalNotPending means the request does not exist or already
// left the pending state; both terminal states stay as they are.
var ErrWithdrawalNotPending = errors.New("withdrawal not found or already settled")

// ApplyWithdrawalTransition moves a request out of pending into one of
// the two terminal states. The transition is keyed on prior state, so
// repeat or conflicting calls affect nothing.
func ApplyWithdrawalTransition(ctx context.Context, tx DBTX, id, target string) error {
	ct, err := tx.Exec(ctx, `
        UPDATE withdrawals SET status = $1
        WHERE id = $2 AND status = 'pending'
    `, target, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrWithdrawalNotPending
	}
	return nil
}

// GET /admin/withdrawals
// Returns everything not yet validated, so refused requests stay
// visible on the panel alongside pending ones.
func ListWithdrawals(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT w.id, w.user_id, u.username, w.provider, w.mobile_number,
               COALESCE(w.wu_fullname, ''), COALESCE(w.wu_country, ''), w.status, w.created_at
        FROM withdrawals w
        JOIN users u ON w.user_id = u.id
        WHERE w.status != 'validated'
        ORDER BY w.created_at ASC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawals"})
	}
	defer rows.Close()

	var withdrawals []map[string]interface{}
	for rows.Next() {
		var id, username, provider, mobile, fullName, country, status string
		var userID int64
		var createdAt time.Time
		if err := rows.Scan(&id, &userID, &username, &provider, &mobile, &fullName, &country, &status, &createdAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to scan withdrawals"})
		}
		withdrawals = append(withdrawals, map[string]interface{}{
			"id":            id,
			"user_id":       userID,
			"username":      username,
			"provider":      provider,
			"mobile_number": mobile,
			"wu_fullname":   fullName,
			"wu_country":    country,
			"status":        status,
			"created_at":    createdAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"withdrawals": withdrawals})
}

// POST /admin/withdrawals/:id/validate
func ValidateWithdrawal(c echo.Context) error {
	return transitionWithdrawal(c, "validated")
}

// POST /admin/withdrawals/:id/refuse
func RefuseWithdrawal(c echo.Context) error {
	return transitionWithdrawal(c, "refused")
}

func transitionWithdrawal(c echo.Context, target string) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "withdrawal id required"})
	}

	err := ApplyWithdrawalTransition(c.Request().Context(), db.Conn, id, target)
	if errors.Is(err, ErrWithdrawalNotPending) {
		return c.JSON(http.StatusConflict, echo.Map{"error": ErrWithdrawalNotPending.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update withdrawal"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "withdrawal " + target,
		"withdrawal_id": id,
		"status":        target,
	})
}
