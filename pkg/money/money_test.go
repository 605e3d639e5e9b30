package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinor(t *testing.T) {
	minor, err := ToMinor(decimal.RequireFromString("500.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(50000), minor)

	minor, err = ToMinor(decimal.RequireFromString("0.1"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), minor)

	_, err = ToMinor(decimal.RequireFromString("1.005"))
	assert.ErrorIs(t, err, ErrTooPrecise)
}

func TestToMinorRange(t *testing.T) {
	minor, err := ToMinor(decimal.RequireFromString("92233720368547758.07"))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), minor)

	for _, in := range []string{"92233720368547758.08", "100000000000000000", "-100000000000000000"} {
		_, err := ToMinor(decimal.RequireFromString(in))
		assert.ErrorIs(t, err, ErrOutOfRange, in)
	}
}

func TestFromMinor(t *testing.T) {
	assert.True(t, FromMinor(30000).Equal(decimal.RequireFromString("300")))
	assert.Equal(t, "0.01", FromMinor(1).StringFixed(2))
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00 TL",
		"300":        "300.00 TL",
		"1234.5":     "1,234.50 TL",
		"-1234567.8": "-1,234,567.80 TL",
		"0.07":       "0.07 TL",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(decimal.RequireFromString(in), "TL"), in)
	}
	assert.Equal(t, "12.00", Format(decimal.NewFromInt(12), ""))
	assert.Equal(t, "100,000,000,000,000,000,000.50 TL", Format(decimal.RequireFromString("100000000000000000000.5"), "TL"))
	assert.Equal(t, "-12,345,678,901,234,567,890.00", Format(decimal.RequireFromString("-12345678901234567890"), ""))
}
