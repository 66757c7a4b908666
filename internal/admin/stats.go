package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var users, referrals, purchases, pendingPurchases, withdrawals, pendingWithdrawals, tickets int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM referrals`).Scan(&referrals)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&purchases)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE validated = FALSE`).Scan(&pendingPurchases)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals`).Scan(&withdrawals)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'`).Scan(&pendingWithdrawals)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&tickets)

	return c.JSON(http.StatusOK, echo.Map{
		"users":               users,
		"referrals":           referrals,
		"purchases":           purchases,
		"pending_purchases":   pendingPurchases,
		"withdrawals":         withdrawals,
		"pending_withdrawals": pendingWithdrawals,
		"tickets":             tickets,
	})
}
