package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// NoRemarks is shown in place of an empty remarks field.
const NoRemarks = "No remarks"

// Storage limits for monetary values: line-item prices are NUMERIC(10,2),
// client balances NUMERIC(15,2) and units INTEGER.
const (
	MoneyScale = 2
	MaxUnits   = math.MaxInt32
)

var (
	// MaxUnitPrice is the exclusive upper bound of a unit price or payment amount.
	MaxUnitPrice = decimal.New(1, 8)
	// MaxBalance is the exclusive upper bound of a client's outstanding balance.
	MaxBalance = decimal.New(1, 13)
)

// HasMoneyScale reports whether d has no digits beyond cents.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// Transaction is a job order: a dated header owned by one client plus its ordered line items.
type Transaction struct {
	TransactionID string     `json:"transactionID"`
	ClientID      string     `json:"clientID"` // immutable after creation
	JONumber      int64      `json:"joNumber"` // globally unique, immutable
	Date          time.Time  `json:"date"`     // calendar date, never in the future
	Remarks       *string    `json:"remarks,omitempty"`
	LineItems     []LineItem `json:"lineItems"`
	AuditFields
}

// LineItem is one entry of a transaction. Its kind and name are snapshots of the
// catalog entry taken when the line was written.
type LineItem struct {
	LineItemID     string          `json:"lineItemID"`
	TransactionID  string          `json:"transactionID"`
	ParticularID   *string         `json:"particularID,omitempty"` // nil once the catalog entry is deleted
	ParticularName string          `json:"particularName"`
	Kind           ParticularType  `json:"kind"`
	Position       int             `json:"position"`
	Units          *int64          `json:"units,omitempty"` // Service only
	UnitPrice      decimal.Decimal `json:"unitPrice"`       // per-unit charge, or the flat payment amount
}

// TransactionTotals are the per-transaction figures shown next to a job order.
type TransactionTotals struct {
	Amount  decimal.Decimal `json:"amount"`
	Payment decimal.Decimal `json:"payment"`
	Balance decimal.Decimal `json:"balance"`
}

// Charge is the service contribution of the line: units × unitPrice for Service
// lines, zero otherwise.
func (li LineItem) Charge() decimal.Decimal {
	if li.Kind != Service || li.Units == nil {
		return decimal.Zero
	}
	return li.UnitPrice.Mul(decimal.NewFromInt(*li.Units))
}

// PaymentAmount is the payment contribution of the line, clamped at zero.
func (li LineItem) PaymentAmount() decimal.Decimal {
	if li.Kind != Payment {
		return decimal.Zero
	}
	return NonNegative(li.UnitPrice)
}

// Totals sums the line items of t. Balance is floored at zero.
func (t Transaction) Totals() TransactionTotals {
	amount := decimal.Zero
	payment := decimal.Zero
	for _, li := range t.LineItems {
		amount = amount.Add(li.Charge())
		payment = payment.Add(li.PaymentAmount())
	}
	return TransactionTotals{
		Amount:  amount,
		Payment: payment,
		Balance: NonNegative(amount.Sub(payment)),
	}
}

// IsPaymentOnly reports whether t has at least one line and every line is a payment.
func (t Transaction) IsPaymentOnly() bool {
	if len(t.LineItems) == 0 {
		return false
	}
	for _, li := range t.LineItems {
		if li.Kind != Payment {
			return false
		}
	}
	return true
}

// PaymentTotal sums the payment lines of t.
func (t Transaction) PaymentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range t.LineItems {
		total = total.Add(li.PaymentAmount())
	}
	return total
}

// FormattedParticulars renders service lines as "2 units Printing" followed by one
// "Payment" entry per payment line.
func (t Transaction) FormattedParticulars() []string {
	services := make([]string, 0, len(t.LineItems))
	payments := make([]string, 0)
	for _, li := range t.LineItems {
		if li.Kind == Payment {
			payments = append(payments, string(Payment))
			continue
		}
		var units int64
		if li.Units != nil {
			units = *li.Units
		}
		noun := "unit"
		if units > 1 {
			noun = "units"
		}
		services = append(services, fmt.Sprintf("%d %s %s", units, noun, li.ParticularName))
	}
	return append(services, payments...)
}

// ServiceUnitPrices lists the unit prices of the service lines in order.
func (t Transaction) ServiceUnitPrices() []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(t.LineItems))
	for _, li := range t.LineItems {
		if li.Kind == Service {
			prices = append(prices, li.UnitPrice)
		}
	}
	return prices
}

// RemarksOrDefault returns the remarks, or NoRemarks when none were recorded.
func (t Transaction) RemarksOrDefault() string {
	if t.Remarks == nil || *t.Remarks == "" {
		return NoRemarks
	}
	return *t.Remarks
}
