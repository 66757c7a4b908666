package support

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
	"github.com/moneytoflows/backend/internal/middleware"
)

type CreateTicketRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateTicket files a support ticket. The route is public: a logged-in
// caller gets the ticket attached to their account, anyone else files
// by email alone.
func CreateTicket(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req CreateTicketRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject and message are required"})
		}

		var userID *int64
		if uid, _, ok := middleware.ParseBearer(c, cfg.JWTSecret); ok {
			userID = &uid
		}
		if req.Email == "" && userID == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "an email address is required"})
		}

		_, err := db.Conn.Exec(c.Request().Context(), `
            INSERT INTO tickets (id, user_id, email, subject, message, status, created_at)
            VALUES ($1, $2, $3, $4, $5, 'open', $6)
        `, uuid.New().String(), userID, req.Email, req.Subject, req.Message, time.Now())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record ticket"})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"message":       "ticket received, our team will reply by email",
			"support_email": cfg.SupportEmail,
		})
	}
}
