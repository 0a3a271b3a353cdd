package transaction

// ChargeRequest debits a course fee from an account
type ChargeRequest struct {
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Reference string `json:"reference,omitempty" validate:"omitempty,max=100"`
}

// BalanceResponse reports the stored balance
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// StatementResponse is the account ledger with derived running balances
type StatementResponse struct {
	CurrentBalance int64         `json:"current_balance"`
	Totals         Totals        `json:"totals"`
	Entries        []LedgerEntry `json:"entries"`
}
