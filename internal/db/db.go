package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneytoflows/backend/internal/config"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and ensures the schema exists
func Init(cfg *config.Config) {
	var err error
	Conn, err = pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureUsersTable()
	ensureReferralsTable()
	ensurePurchasesTable()
	ensureWithdrawalsTable()
	ensureTicketsTable()
}

// ensureUsersTable creates the accounts table. The referral code column
// stays nullable: it is assigned once, after the numeric id is known.
func ensureUsersTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            country TEXT NULL,
            mobile TEXT NULL,
            provider TEXT NULL,
            ref_code TEXT UNIQUE NULL,
            referrer_code TEXT NULL,
            purchases INTEGER NOT NULL DEFAULT 0,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		log.Printf("failed to create users table: %v", err)
	}
}

// ensureReferralsTable creates the referral edges table.
// referrer_code is an opaque string, deliberately without a foreign
// key: codes may outlive or never match an account.
func ensureReferralsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS referrals (
            id UUID PRIMARY KEY,
            referrer_code TEXT NOT NULL,
            referred_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_referrals_referrer_code ON referrals(referrer_code);
    `)
	if err != nil {
		log.Printf("failed to create referrals table: %v", err)
	}
}

func ensurePurchasesTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS purchases (
            id UUID PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            reference TEXT NOT NULL,
            validated BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            validated_at TIMESTAMP WITH TIME ZONE NULL
        );
        CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id);
        CREATE INDEX IF NOT EXISTS idx_purchases_unvalidated ON purchases(created_at) WHERE validated = FALSE;
    `)
	if err != nil {
		log.Printf("failed to create purchases table: %v", err)
	}
}

func ensureWithdrawalsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS withdrawals (
            id UUID PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            provider TEXT NOT NULL,
            mobile_number TEXT NOT NULL,
            wu_fullname TEXT NULL,
            wu_country TEXT NULL,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'validated', 'refused')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_withdrawals_user ON withdrawals(user_id);
        CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status);
    `)
	if err != nil {
		log.Printf("failed to create withdrawals table: %v", err)
	}
}

func ensureTicketsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS tickets (
            id UUID PRIMARY KEY,
            user_id BIGINT NULL REFERENCES users(id) ON DELETE SET NULL,
            email TEXT NOT NULL,
            subject TEXT NOT NULL,
            message TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'open',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		log.Printf("failed to create tickets table: %v", err)
	}
}
