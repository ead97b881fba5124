package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerState is the aggregate financial state of one client, derived from the
// full set of its transactions.
type LedgerState struct {
	GrossAmount         decimal.Decimal `json:"grossAmount"`
	TotalPayments       decimal.Decimal `json:"totalPayments"`
	NetBalance          decimal.Decimal `json:"netBalance"`
	Status              ClientStatus    `json:"status"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
}

// Recompute derives the ledger state of a client from every one of its
// persisted transactions. It never looks at the previous state.
func Recompute(transactions []Transaction) LedgerState {
	state := LedgerState{
		GrossAmount:   decimal.Zero,
		TotalPayments: decimal.Zero,
		NetBalance:    decimal.Zero,
		Status:        StatusNew,
	}
	if len(transactions) == 0 {
		return state
	}

	var last time.Time
	for _, t := range transactions {
		totals := t.Totals()
		state.GrossAmount = state.GrossAmount.Add(totals.Amount)
		state.TotalPayments = state.TotalPayments.Add(totals.Payment)

		d := DateOnly(t.Date)
		if d.After(last) {
			last = d
		}
	}

	state.NetBalance = NonNegative(state.GrossAmount.Sub(state.TotalPayments))
	if state.NetBalance.IsZero() {
		state.Status = StatusPaid
	} else {
		state.Status = StatusUnpaid
	}
	state.LastTransactionDate = &last
	return state
}

// NonNegative floors d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClientLedger is a client with every one of its transactions and the state
// derived from them.
type ClientLedger struct {
	Client       Client
	Transactions []Transaction
	State        LedgerState
}

// MutationResult is the outcome of a ledger mutation: the written transaction
// (zero on delete) and the client after recomputation.
type MutationResult struct {
	Transaction Transaction
	Client      Client
}
