package purchase

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/db"
)

// Claim is a user-submitted purchase reference awaiting admin
// validation. Purchases are claimed by reference string, not verified
// against a payment processor.
type Claim struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	Reference   string     `json:"reference"`
	Validated   bool       `json:"validated"`
	CreatedAt   time.Time  `json:"created_at"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

type SubmitClaimRequest struct {
	Reference string `json:"reference"`
}

// SubmitClaim records an unvalidated purchase claim for the caller
func SubmitClaim(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req SubmitClaimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "purchase reference is required"})
	}

	claimID := uuid.New().String()
	_, err := db.Conn.Exec(c.Request().Context(), `
        INSERT INTO purchases (id, user_id, reference, validated, created_at)
        VALUES ($1, $2, $3, FALSE, $4)
    `, claimID, uid, reference, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record purchase claim"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"claim_id": claimID,
		"message":  "reference sent to the admin for validation",
	})
}

// ListMine returns the caller's purchase claims, newest first
func ListMine(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, user_id, reference, validated, created_at, validated_at
        FROM purchases WHERE user_id = $1 ORDER BY created_at DESC
    `, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch purchase claims"})
	}
	defer rows.Close()

	var claims []Claim
	for rows.Next() {
		var cl Claim
		if err := rows.Scan(&cl.ID, &cl.UserID, &cl.Reference, &cl.Validated, &cl.CreatedAt, &cl.ValidatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read purchase record"})
		}
		claims = append(claims, cl)
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": claims})
}
