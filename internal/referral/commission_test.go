package referral

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

// ── fake edge store ──

type fakeEdge struct {
	referrerCode   string
	referredUserID int64
}

// fakeStore answers the engine's two count queries from in-memory
// edges and per-account purchase counters.
type fakeStore struct {
	edges     []fakeEdge
	purchases map[int64]int // account id -> validated purchases
}

type fakeRow struct {
	n int
}

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.n
	return nil
}

func (s *fakeStore) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	code := args[0].(string)
	buyersOnly := strings.Contains(sql, "JOIN users")
	n := 0
	for _, e := range s.edges {
		if e.referrerCode != code {
			continue
		}
		if buyersOnly && s.purchases[e.referredUserID] == 0 {
			continue
		}
		n++
	}
	return fakeRow{n: n}
}

// ── rate tiers ──

func TestCommissionRateBoundaries(t *testing.T) {
	cases := []struct {
		buyers int
		want   float64
	}{
		{0, 0.20},
		{1, 0.20},
		{49, 0.20},
		{50, 0.30},
		{99, 0.30},
		{100, 0.40},
		{250, 0.40},
	}
	for _, tc := range cases {
		if got := CommissionRate(tc.buyers); got != tc.want {
			t.Errorf("CommissionRate(%d) = %v, want %v", tc.buyers, got, tc.want)
		}
	}
}

func TestCommissionRateMonotonic(t *testing.T) {
	prev := 0.0
	for b := 0; b <= 150; b++ {
		rate := CommissionRate(b)
		if rate < prev {
			t.Fatalf("rate decreased at buyers=%d: %v -> %v", b, prev, rate)
		}
		if rate != 0.20 && rate != 0.30 && rate != 0.40 {
			t.Fatalf("rate(%d) = %v outside the tier set", b, rate)
		}
		prev = rate
	}
}

// ── payable amount ──

func TestPayableAmount(t *testing.T) {
	if got := PayableAmount(0, 1700.0, 0.20); got != 0 {
		t.Errorf("zero buyers should pay 0, got %d", got)
	}

	// 50 buyers at the 0.30 tier with the default reward
	if got := PayableAmount(50, 1700.0, CommissionRate(50)); got != 25500 {
		t.Errorf("PayableAmount(50, 1700, 0.30) = %d, want 25500", got)
	}

	// amount is truncated, never rounded up: 7 * 10.5 * 0.20 = 14.7
	if got := PayableAmount(7, 10.5, 0.20); got != 14 {
		t.Errorf("expected truncation to 14, got %d", got)
	}
}

// ── summary over edges ──

func TestSummarize(t *testing.T) {
	store := &fakeStore{
		edges: []fakeEdge{
			{"U000001abcd", 2},
			{"U000001abcd", 3},
			{"U000001abcd", 4},
			{"U000009ffff", 5},
		},
		purchases: map[int64]int{2: 1, 3: 2},
	}

	s, err := Summarize(context.Background(), store, "U000001abcd", 1700.0)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.TotalReferrals != 3 {
		t.Errorf("total_referrals = %d, want 3", s.TotalReferrals)
	}
	if s.Buyers != 2 {
		t.Errorf("buyers = %d, want 2", s.Buyers)
	}
	if s.Rate != 0.20 {
		t.Errorf("rate = %v, want 0.20", s.Rate)
	}
	if s.PayableAmount != 680 {
		t.Errorf("payable_amount = %d, want floor(2*1700*0.20)=680", s.PayableAmount)
	}
}

func TestSummarizeNoReferrals(t *testing.T) {
	store := &fakeStore{purchases: map[int64]int{}}

	s, err := Summarize(context.Background(), store, "U000042beef", 1700.0)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.TotalReferrals != 0 || s.Buyers != 0 || s.PayableAmount != 0 {
		t.Errorf("empty code should yield zeros, got %+v", s)
	}
	if s.Rate != 0.20 {
		t.Errorf("empty code should sit in the lowest tier, got rate %v", s.Rate)
	}
}

// An edge can name a referrer code nobody owns (typo in a referral
// link). The edge still counts toward that code string; buyers only
// accrue from referred accounts with validated purchases.
func TestSummarizeDanglingCode(t *testing.T) {
	store := &fakeStore{
		edges: []fakeEdge{
			{"NOSUCHCODE", 7},
			{"NOSUCHCODE", 8},
		},
		purchases: map[int64]int{8: 1},
	}

	s, err := Summarize(context.Background(), store, "NOSUCHCODE", 1700.0)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.TotalReferrals != 2 {
		t.Errorf("dangling code should still count its edges, got %d", s.TotalReferrals)
	}
	if s.Buyers != 1 {
		t.Errorf("buyers = %d, want 1", s.Buyers)
	}
}
