package admin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx interprets the two statements ApplyPurchaseValidation issues
// against in-memory claims and purchase counters.
type fakeTx struct {
	claims    map[string]*fakeClaim
	purchases map[int64]int
}

type fakeClaim struct {
	userID    int64
	validated bool
}

type fakeRow struct {
	userID int64
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.userID
	return nil
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if !strings.Contains(sql, "UPDATE purchases") {
		return fakeRow{err: errors.New("unexpected query: " + sql)}
	}
	claimID := args[0].(string)
	cl, ok := f.claims[claimID]
	if !ok || cl.validated {
		return fakeRow{err: pgx.ErrNoRows}
	}
	cl.validated = true
	return fakeRow{userID: cl.userID}
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if !strings.Contains(sql, "purchases = purchases + 1") {
		return pgconn.CommandTag{}, errors.New("unexpected exec: " + sql)
	}
	f.purchases[args[0].(int64)]++
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func TestApplyPurchaseValidationIncrementsOnce(t *testing.T) {
	tx := &fakeTx{
		claims:    map[string]*fakeClaim{"claim-1": {userID: 9}},
		purchases: map[int64]int{},
	}

	userID, err := ApplyPurchaseValidation(context.Background(), tx, "claim-1")
	if err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if userID != 9 {
		t.Errorf("owner = %d, want 9", userID)
	}
	if tx.purchases[9] != 1 {
		t.Errorf("purchase counter = %d, want 1", tx.purchases[9])
	}
}

// Validating the same claim twice must be a no-op: the transition only
// fires from the unvalidated state, so the counter stays at 1.
func TestApplyPurchaseValidationRepeatIsNoop(t *testing.T) {
	tx := &fakeTx{
		claims:    map[string]*fakeClaim{"claim-1": {userID: 9}},
		purchases: map[int64]int{},
	}

	if _, err := ApplyPurchaseValidation(context.Background(), tx, "claim-1"); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	_, err := ApplyPurchaseValidation(context.Background(), tx, "claim-1")
	if !errors.Is(err, ErrClaimNotPending) {
		t.Fatalf("second validation should report ErrClaimNotPending, got %v", err)
	}
	if tx.purchases[9] != 1 {
		t.Errorf("purchase counter = %d after repeat call, want 1", tx.purchases[9])
	}
}

func TestApplyPurchaseValidationUnknownClaim(t *testing.T) {
	tx := &fakeTx{claims: map[string]*fakeClaim{}, purchases: map[int64]int{}}

	_, err := ApplyPurchaseValidation(context.Background(), tx, "nope")
	if !errors.Is(err, ErrClaimNotPending) {
		t.Fatalf("unknown claim should report ErrClaimNotPending, got %v", err)
	}
}
