package transaction

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
)

func tx(txType Type, amount int64, at time.Time, ref string) *Transaction {
	t := &Transaction{
		ID:        uuid.New(),
		AccountID: uuid.Nil,
		Type:      txType,
		Amount:    amount,
		Status:    StatusCompleted,
		CreatedAt: at,
	}
	if ref != "" {
		t.Reference = &ref
	}
	return t
}

func TestWithRunningBalanceScenario(t *testing.T) {
	// balance 100.00 after a +50.00 top-up and a -30.00 fee:
	// baseline 80.00, then 130.00, then 100.00
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	txs := []*Transaction{
		tx(TypeTopUp, 5000, base, "TOPUP-1"),
		tx(TypeCourseFee, -3000, base.Add(time.Hour), "FEE-1"),
	}

	entries := WithRunningBalance(10000, txs, LedgerFilter{})
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// newest first
	if entries[0].RunningBalance != 10000 {
		t.Errorf("latest running balance = %d, want 10000", entries[0].RunningBalance)
	}
	if entries[1].RunningBalance != 13000 {
		t.Errorf("running balance after top-up = %d, want 13000", entries[1].RunningBalance)
	}
}

func TestWithRunningBalanceRoundTrip(t *testing.T) {
	// The newest entry's running balance must equal the stored balance
	// for any input ordering.
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	txs := []*Transaction{
		tx(TypeTopUp, 20000, base, ""),
		tx(TypeCourseFee, -4500, base.Add(time.Hour), ""),
		tx(TypeTopUp, 10000, base.Add(2*time.Hour), ""),
		tx(TypeRefund, 500, base.Add(3*time.Hour), ""),
		tx(TypeCourseFee, -1000, base.Add(4*time.Hour), ""),
	}
	const stored = 73000

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]*Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		entries := WithRunningBalance(stored, shuffled, LedgerFilter{})
		if got := entries[0].RunningBalance; got != stored {
			t.Fatalf("final running balance = %d, want %d", got, stored)
		}
	}
}

func TestWithRunningBalanceFilterKeepsBaseline(t *testing.T) {
	// Filtering narrows the display set but must not shift the
	// running balances of the entries that remain.
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	txs := []*Transaction{
		tx(TypeTopUp, 5000, base, ""),
		tx(TypeCourseFee, -2000, base.Add(time.Hour), ""),
		tx(TypeTopUp, 1000, base.Add(2*time.Hour), ""),
	}

	all := WithRunningBalance(10000, txs, LedgerFilter{})
	filtered := WithRunningBalance(10000, txs, LedgerFilter{Types: []Type{TypeTopUp}})

	if len(filtered) != 2 {
		t.Fatalf("got %d filtered entries, want 2", len(filtered))
	}
	if filtered[0].RunningBalance != all[0].RunningBalance {
		t.Errorf("newest top-up balance = %d, want %d", filtered[0].RunningBalance, all[0].RunningBalance)
	}
	if filtered[1].RunningBalance != all[2].RunningBalance {
		t.Errorf("oldest top-up balance = %d, want %d", filtered[1].RunningBalance, all[2].RunningBalance)
	}
}

func TestWithRunningBalanceEmpty(t *testing.T) {
	entries := WithRunningBalance(2500, nil, LedgerFilter{})
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestLedgerFilterSearch(t *testing.T) {
	base := time.Now()
	txs := []*Transaction{
		tx(TypeTopUp, 5000, base, "TOPUP-abc-123"),
		tx(TypeCourseFee, -2000, base.Add(time.Hour), "FEE-xyz"),
	}

	entries := WithRunningBalance(3000, txs, LedgerFilter{Search: "abc"})
	if len(entries) != 1 || entries[0].Type != TypeTopUp {
		t.Fatalf("search should match the top-up reference only, got %d entries", len(entries))
	}

	entries = WithRunningBalance(3000, txs, LedgerFilter{Search: "course"})
	if len(entries) != 1 || entries[0].Type != TypeCourseFee {
		t.Fatalf("search should match the transaction type, got %d entries", len(entries))
	}
}

func TestSummarizeTotals(t *testing.T) {
	base := time.Now()
	txs := []*Transaction{
		tx(TypeTopUp, 5000, base, ""),
		tx(TypeTopUp, 2500, base, ""),
		tx(TypeCourseFee, -3000, base, ""),
		tx(TypeRefund, 500, base, ""),
	}

	totals := SummarizeTotals(txs)
	if totals.TopUpsReceived != 7500 {
		t.Errorf("top-ups received = %d, want 7500", totals.TopUpsReceived)
	}
	if totals.FeesPaid != 3000 {
		t.Errorf("fees paid = %d, want 3000", totals.FeesPaid)
	}
}
