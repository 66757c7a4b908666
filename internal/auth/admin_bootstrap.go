package auth

import (
	"context"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneytoflows/backend/internal/config"
	"github.com/moneytoflows/backend/internal/db"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureAdminAccount creates the moderation account from config if it
// does not exist yet. Idempotent on the admin email; any other
// constraint violation (say the derived username is already taken by a
// regular account) surfaces as an error rather than leaving the deploy
// silently admin-less. Invoked once at startup, after the pool is up.
func EnsureAdminAccount(ctx context.Context, cfg *config.Config) error {
	return ensureAdminAccount(ctx, db.Conn, cfg)
}

func ensureAdminAccount(ctx context.Context, conn execer, cfg *config.Config) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	username := strings.SplitN(cfg.AdminEmail, "@", 2)[0]

	ct, err := conn.Exec(ctx, `
        INSERT INTO users (username, email, password, is_admin)
        VALUES ($1, $2, $3, TRUE)
        ON CONFLICT (email) DO NOTHING
    `, username, cfg.AdminEmail, string(hashed))
	if err != nil {
		return err
	}
	if ct.RowsAffected() > 0 {
		log.Printf("admin account created for %s", cfg.AdminEmail)
	}
	return nil
}
