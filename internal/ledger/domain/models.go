package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/pkg/money"
)

// EntryKind is the direction of a ledger movement.
type EntryKind string

const (
	KindDebit  EntryKind = "DEBIT"
	KindCredit EntryKind = "CREDIT"
)

func (k EntryKind) Valid() bool {
	return k == KindDebit || k == KindCredit
}

// LedgerEntry is one immutable debit or credit against a customer. Amounts are
// stored in minor units.
type LedgerEntry struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	Kind        EntryKind       `gorm:"type:text;not null" json:"kind"`
	AmountMinor int64           `gorm:"column:amount_minor;not null" json:"-"`
	Amount      decimal.Decimal `gorm:"-" json:"amount"`
	Note        string          `gorm:"type:text" json:"note,omitempty"`
	OccurredAt  time.Time       `gorm:"not null;index" json:"occurred_at"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }

// Totals accumulates debit and credit sums in minor units.
type Totals struct {
	DebitMinor  int64 `gorm:"column:debit_minor"`
	CreditMinor int64 `gorm:"column:credit_minor"`
}

func (t Totals) BalanceMinor() int64 {
	return t.DebitMinor - t.CreditMinor
}

// Add folds one entry into the totals.
func (t Totals) Add(entry LedgerEntry) Totals {
	switch entry.Kind {
	case KindDebit:
		t.DebitMinor += entry.AmountMinor
	case KindCredit:
		t.CreditMinor += entry.AmountMinor
	}
	return t
}

// Fold sums entries into debit and credit totals. The result does not depend
// on entry order.
func Fold(entries []LedgerEntry) Totals {
	var totals Totals
	for _, entry := range entries {
		totals = totals.Add(entry)
	}
	return totals
}

// CustomerTotals are the totals of one customer, used by the balance table.
type CustomerTotals struct {
	CustomerID   snowflake.ID `gorm:"column:customer_id"`
	CustomerName string       `gorm:"column:customer_name"`
	Totals
}

type Balance struct {
	CustomerID   snowflake.ID    `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Balance      decimal.Decimal `json:"balance"`
}

func NewBalance(customerID snowflake.ID, customerName string, totals Totals) Balance {
	return Balance{
		CustomerID:   customerID,
		CustomerName: customerName,
		Debit:        money.FromMinor(totals.DebitMinor),
		Credit:       money.FromMinor(totals.CreditMinor),
		Balance:      money.FromMinor(totals.BalanceMinor()),
	}
}
