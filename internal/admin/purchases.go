package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

// ErrClaimNotPending means the claim does not exist or was already
// validated; either way there is nothing to transition.
var ErrClaimNotPending = errors.New("purchase claim not found or already validated")

// DBTX is the slice of pgx.Tx the moderation transitions need.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ApplyPurchaseValidation fires the unvalidated->validated transition
// and increments the owner's purchase counter. The transition is keyed
// on prior state, so a repeat call affects nothing and the counter
// never double-increments.
func ApplyPurchaseValidation(ctx context.Context, tx DBTX, claimID string) (int64, error) {
	var userID int64
	err := tx.QueryRow(ctx, `
        UPDATE purchases SET validated = TRUE, validated_at = $2
        WHERE id = $1 AND validated = FALSE
        RETURNING user_id
    `, claimID, time.Now()).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrClaimNotPending
	}
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET purchases = purchases + 1 WHERE id = $1`, userID); err != nil {
		return 0, err
	}
	return userID, nil
}

// GET /admin/purchases/pending
func ListPendingPurchases(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT p.id, p.user_id, u.username, p.reference, p.created_at
        FROM purchases p
        JOIN users u ON p.user_id = u.id
        WHERE p.validated = FALSE
        ORDER BY p.created_at ASC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch pending purchases"})
	}
	defer rows.Close()

	var pending []map[string]interface{}
	for rows.Next() {
		var id, username, reference string
		var userID int64
		var createdAt time.Time
		if err := rows.Scan(&id, &userID, &username, &reference, &createdAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read purchase record"})
		}
		pending = append(pending, map[string]interface{}{
			"id":         id,
			"user_id":    userID,
			"username":   username,
			"reference":  reference,
			"created_at": createdAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"pending_purchases": pending})
}

// POST /admin/purchases/:id/validate
func ValidatePurchase(c echo.Context) error {
	claimID := c.Param("id")
	if claimID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "purchase id required"})
	}

	ctx := c.Request().Context()
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	defer tx.Rollback(ctx)

	userID, err := ApplyPurchaseValidation(ctx, tx, claimID)
	if errors.Is(err, ErrClaimNotPending) {
		return c.JSON(http.StatusConflict, echo.Map{"error": ErrClaimNotPending.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not validate purchase"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not finalize validation"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "purchase validated",
		"purchase_id": claimID,
		"user_id":     userID,
	})
}
