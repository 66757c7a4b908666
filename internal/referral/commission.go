package referral

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Commission tiers, evaluated highest threshold first. Thresholds are
// inclusive lower bounds on the buyer count.
const (
	rateTop    = 0.40
	rateMid    = 0.30
	rateBase   = 0.20
	tierTopMin = 100
	tierMidMin = 50
)

// CommissionRate returns the tiered rate for a buyer count.
func CommissionRate(buyers int) float64 {
	if buyers >= tierTopMin {
		return rateTop
	}
	if buyers >= tierMidMin {
		return rateMid
	}
	return rateBase
}

// PayableAmount computes floor(buyers * rewardPerRef * rate). The
// truncation matches the amount users see on their dashboard; there is
// no rounding half-up.
func PayableAmount(buyers int, rewardPerRef, rate float64) int64 {
	return int64(float64(buyers) * rewardPerRef * rate)
}

// Querier is the read surface the engine needs; *pgxpool.Pool and
// pgx.Tx both satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	countReferralsSQL = `SELECT COUNT(*) FROM referrals WHERE referrer_code = $1`
	countBuyersSQL    = `
        SELECT COUNT(*) FROM referrals r
        JOIN users u ON r.referred_user_id = u.id
        WHERE r.referrer_code = $1 AND u.purchases > 0`
)

// CountBuyers counts referred accounts with at least one validated
// purchase for the given code. A code owned by nobody still resolves:
// it simply matches whatever edges carry it.
func CountBuyers(ctx context.Context, q Querier, code string) (int, error) {
	var buyers int
	if err := q.QueryRow(ctx, countBuyersSQL, code).Scan(&buyers); err != nil {
		return 0, err
	}
	return buyers, nil
}

// Summarize runs the commission engine for a referral code. Pure
// read-and-compute over current edge/account state; safe to call
// repeatedly and concurrently.
func Summarize(ctx context.Context, q Querier, code string, rewardPerRef float64) (*Summary, error) {
	var total int
	if err := q.QueryRow(ctx, countReferralsSQL, code).Scan(&total); err != nil {
		return nil, err
	}

	buyers, err := CountBuyers(ctx, q, code)
	if err != nil {
		return nil, err
	}

	rate := CommissionRate(buyers)
	return &Summary{
		TotalReferrals: total,
		Buyers:         buyers,
		Rate:           rate,
		PayableAmount:  PayableAmount(buyers, rewardPerRef, rate),
	}, nil
}
