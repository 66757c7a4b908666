package referral

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
)

// Dashboard returns the caller's commission summary alongside their
// referral link and the withdrawal threshold for display.
func Dashboard(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("user_id").(int64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		ctx := c.Request().Context()

		var username, refCode string
		var purchases int
		err := db.Conn.QueryRow(ctx,
			`SELECT username, COALESCE(ref_code, ''), purchases FROM users WHERE id = $1`, uid).
			Scan(&username, &refCode, &purchases)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}

		summary, err := Summarize(ctx, db.Conn, refCode, cfg.RewardPerRef)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compute referral stats"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"username":        username,
			"ref_code":        refCode,
			"ref_link":        refLink(cfg.BaseURL, refCode),
			"purchases":       purchases,
			"total_referrals": summary.TotalReferrals,
			"buyers":          summary.Buyers,
			"rate":            summary.Rate,
			"payable_amount":  summary.PayableAmount,
			"threshold":       cfg.RewardThreshold,
		})
	}
}

// Link returns just the caller's referral code and sharing link.
func Link(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("user_id").(int64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		var refCode string
		err := db.Conn.QueryRow(c.Request().Context(),
			`SELECT COALESCE(ref_code, '') FROM users WHERE id = $1`, uid).Scan(&refCode)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"code": refCode,
			"link": refLink(cfg.BaseURL, refCode),
		})
	}
}

func refLink(baseURL, code string) string {
	return baseURL + "/register?ref=" + code
}
