package transaction

import (
	"sort"
	"strings"
)

// LedgerEntry pairs a transaction with the balance that existed
// immediately after it.
type LedgerEntry struct {
	Transaction
	RunningBalance int64 `json:"running_balance"`
}

// LedgerFilter narrows which entries a statement displays. Filtering
// never affects running-balance computation.
type LedgerFilter struct {
	Search string
	Types  []Type
}

func (f LedgerFilter) matches(tx *Transaction) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if tx.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		ref := ""
		if tx.Reference != nil {
			ref = strings.ToLower(*tx.Reference)
		}
		if !strings.Contains(ref, needle) && !strings.Contains(strings.ToLower(string(tx.Type)), needle) {
			return false
		}
	}
	return true
}

// WithRunningBalance derives the balance timeline from the complete
// transaction set, then applies the display filter. The baseline is
// always computed from every transaction: currentBalance minus the sum
// of all amounts gives the balance before the earliest entry, and
// walking forward from there reproduces currentBalance after the last
// one. Results are returned newest first.
func WithRunningBalance(currentBalance int64, all []*Transaction, filter LedgerFilter) []LedgerEntry {
	txs := make([]*Transaction, len(all))
	copy(txs, all)
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].ID.String() < txs[j].ID.String()
		}
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})

	var total int64
	for _, tx := range txs {
		total += tx.Amount
	}
	balance := currentBalance - total

	entries := make([]LedgerEntry, 0, len(txs))
	for _, tx := range txs {
		balance += tx.Amount
		if !filter.matches(tx) {
			continue
		}
		entries = append(entries, LedgerEntry{Transaction: *tx, RunningBalance: balance})
	}

	// Newest first for display
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// Totals summarizes lifetime credits and debits for an account
type Totals struct {
	TopUpsReceived int64 `json:"top_ups_received"`
	FeesPaid       int64 `json:"fees_paid"`
}

// SummarizeTotals computes lifetime totals from the full ledger
func SummarizeTotals(all []*Transaction) Totals {
	var t Totals
	for _, tx := range all {
		switch tx.Type {
		case TypeTopUp:
			t.TopUpsReceived += tx.Amount
		case TypeCourseFee:
			t.FeesPaid += -tx.Amount
		}
	}
	return t
}
