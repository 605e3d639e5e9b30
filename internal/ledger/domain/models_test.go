package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldEmptyIsZero(t *testing.T) {
	totals := Fold(nil)
	assert.Equal(t, Totals{}, totals)
	assert.Equal(t, int64(0), totals.BalanceMinor())
}

func TestFoldIsOrderIndependent(t *testing.T) {
	entries := []LedgerEntry{
		{Kind: KindDebit, AmountMinor: 50000},
		{Kind: KindCredit, AmountMinor: 20000},
		{Kind: KindDebit, AmountMinor: 1},
		{Kind: KindCredit, AmountMinor: 333},
		{Kind: KindDebit, AmountMinor: 12345},
	}
	want := Fold(entries)
	assert.Equal(t, int64(62346), want.DebitMinor)
	assert.Equal(t, int64(20333), want.CreditMinor)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]LedgerEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Fold(shuffled))
	}
}

func TestNewBalanceConvertsMinorUnits(t *testing.T) {
	balance := NewBalance(1, "Acme", Totals{DebitMinor: 50000, CreditMinor: 20000})
	assert.Equal(t, "500", balance.Debit.String())
	assert.Equal(t, "200", balance.Credit.String())
	assert.Equal(t, "300", balance.Balance.String())
}

func TestEntryKindValid(t *testing.T) {
	assert.True(t, KindDebit.Valid())
	assert.True(t, KindCredit.Valid())
	assert.False(t, EntryKind("debit").Valid())
}
