package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/moneytoflows/backend/internal/admin"
	"github.com/moneytoflows/backend/internal/auth"
	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
	mware "github.com/moneytoflows/backend/internal/middleware"
	"github.com/moneytoflows/backend/internal/purchase"
	"github.com/moneytoflows/backend/internal/referral"
	"github.com/moneytoflows/backend/internal/support"
	"github.com/moneytoflows/backend/internal/withdraw"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database connection and schema
	db.Init(cfg)

	if err := auth.EnsureAdminAccount(context.Background(), cfg); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	e := echo.New()

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":        "ok",
			"product":       cfg.ProductName,
			"purchase_link": cfg.PurchaseLink,
			"support_email": cfg.SupportEmail,
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup(cfg))
	authGroup.POST("/login", auth.Login(cfg))

	// Support tickets can be filed anonymously
	e.POST("/support", support.CreateTicket(cfg))

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWT(cfg.JWTSecret))

	api.GET("/auth/me", auth.Me)

	api.GET("/dashboard", referral.Dashboard(cfg))
	api.GET("/referral/link", referral.Link(cfg))

	api.POST("/purchases/claim", purchase.SubmitClaim)
	api.GET("/purchases/me", purchase.ListMine)

	api.GET("/withdraw", withdraw.Info(cfg))
	api.POST("/withdraw", withdraw.Submit(cfg))
	api.GET("/withdraw/me", withdraw.ListMine)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWT(cfg.JWTSecret))
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.GET("/purchases/pending", admin.ListPendingPurchases)
	adminGroup.POST("/purchases/:id/validate", admin.ValidatePurchase)
	adminGroup.GET("/withdrawals", admin.ListWithdrawals)
	adminGroup.POST("/withdrawals/:id/validate", admin.ValidateWithdrawal)
	adminGroup.POST("/withdrawals/:id/refuse", admin.RefuseWithdrawal)
	adminGroup.GET("/tickets", admin.ListTickets)
	adminGroup.GET("/stats", admin.Stats)

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
