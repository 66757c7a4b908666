package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ===== Login =====
func Login(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(LoginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		req.Email = strings.TrimSpace(req.Email)

		var (
			userID   int64
			password string
			isAdmin  bool
		)
		err := db.Conn.QueryRow(c.Request().Context(), `
            SELECT id, password, is_admin FROM users WHERE email = $1
        `, req.Email).Scan(&userID, &password, &isAdmin)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}

		claims := jwt.MapClaims{
			"user_id":  userID,
			"is_admin": isAdmin,
			"exp":      time.Now().Add(72 * time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
		}

		return c.JSON(http.StatusOK, LoginResponse{Token: signed})
	}
}
