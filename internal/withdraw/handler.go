package withdraw

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
	"github.com/moneytoflows/backend/internal/referral"
)

// Info returns what the withdrawal form needs: the provider list, the
// caller's current buyer count, and the per-channel minimums.
func Info(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("user_id").(int64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		ctx := c.Request().Context()
		var refCode string
		if err := db.Conn.QueryRow(ctx, `SELECT COALESCE(ref_code, '') FROM users WHERE id = $1`, uid).Scan(&refCode); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}

		buyers, err := referral.CountBuyers(ctx, db.Conn, refCode)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compute buyer count"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"providers":  Providers,
			"buyers":     buyers,
			"threshold":  cfg.RewardThreshold,
			"wire_min":   cfg.WireMin,
			"mobile_min": cfg.MobileMin,
		})
	}
}

// ListMine returns the caller's withdrawal requests, newest first
func ListMine(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, user_id, provider, mobile_number, COALESCE(wu_fullname, ''),
               COALESCE(wu_country, ''), status, created_at
        FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC
    `, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch withdrawal requests"})
	}
	defer rows.Close()

	var requests []WithdrawalRequest
	for rows.Next() {
		var w WithdrawalRequest
		if err := rows.Scan(&w.ID, &w.UserID, &w.Provider, &w.MobileNumber, &w.FullName, &w.Country, &w.Status, &w.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read withdrawal record"})
		}
		requests = append(requests, w)
	}
	return c.JSON(http.StatusOK, echo.Map{"withdrawals": requests})
}

// Submit runs the eligibility gate and persists a pending request.
// Eligibility is re-checked on every attempt; the buyer count may have
// changed since the form was rendered.
func Submit(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("user_id").(int64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		var req Request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		ctx := c.Request().Context()
		var refCode string
		if err := db.Conn.QueryRow(ctx, `SELECT COALESCE(ref_code, '') FROM users WHERE id = $1`, uid).Scan(&refCode); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}

		buyers, err := referral.CountBuyers(ctx, db.Conn, refCode)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compute buyer count"})
		}

		if err := Gate(buyers, cfg.RewardThreshold, req); err != nil {
			var insufficient *InsufficientBuyersError
			if errors.As(err, &insufficient) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":     insufficient.Error(),
					"buyers":    insufficient.Buyers,
					"threshold": insufficient.Threshold,
				})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		withdrawalID := uuid.New().String()
		_, err = db.Conn.Exec(ctx, `
            INSERT INTO withdrawals (id, user_id, provider, mobile_number, wu_fullname, wu_country, status, created_at)
            VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), 'pending', $7)
        `, withdrawalID, uid, req.Provider, req.Mobile, req.FullName, req.Country, time.Now())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record withdrawal request"})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"withdrawal_id": withdrawalID,
			"status":        StatusPending,
			"message":       "withdrawal request sent for review",
		})
	}
}
