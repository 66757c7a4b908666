package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
	"github.com/moneytoflows/backend/internal/referral"
)

type SignupRequest struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Country      string `json:"country"`
	Mobile       string `json:"mobile"`
	Provider     string `json:"provider"`
	ReferrerCode string `json:"referrer_code"`
}

type SignupResponse struct {
	Token   string `json:"token"`
	RefCode string `json:"ref_code"`
}

// ===== Signup =====
// Registers an account, assigns its referral code once the numeric id
// is known, and records a referral edge when a referrer code was
// supplied. The supplied code is stored as-is, never checked against
// an existing account.
func Signup(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(SignupRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if req.Username == "" || req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
		}

		// Referral links carry the code as ?ref=
		referrerCode := req.ReferrerCode
		if referrerCode == "" {
			referrerCode = c.QueryParam("ref")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}

		ctx := c.Request().Context()

		tx, err := db.Conn.Begin(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db transaction error"})
		}
		defer tx.Rollback(ctx)

		var userID int64
		err = tx.QueryRow(ctx, `
            INSERT INTO users (username, email, password, country, mobile, provider, referrer_code)
            VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
            RETURNING id
        `, req.Username, req.Email, string(hashed), req.Country, req.Mobile, req.Provider, referrerCode).Scan(&userID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already in use"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}

		refCode, err := referral.GenerateCode(userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET ref_code = $1 WHERE id = $2`, refCode, userID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}

		if referrerCode != "" {
			_, err = tx.Exec(ctx, `
                INSERT INTO referrals (id, referrer_code, referred_user_id, created_at)
                VALUES ($1, $2, $3, $4)
            `, uuid.New().String(), referrerCode, userID, time.Now())
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
		}

		claims := jwt.MapClaims{
			"user_id":  userID,
			"is_admin": false,
			"exp":      time.Now().Add(72 * time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
		}

		return c.JSON(http.StatusCreated, SignupResponse{Token: signed, RefCode: refCode})
	}
}
