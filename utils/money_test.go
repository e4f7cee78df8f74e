package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountToMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"980.00", 98000},
		{"980", 98000},
		{"980.5", 98050},
		{"0.01", 1},
		{"0.00", 0},
		{" 1200.50 ", 120050},
	}
	for _, tc := range cases {
		got, err := AmountToMinorUnits(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestAmountToMinorUnitsRejects(t *testing.T) {
	for _, in := range []string{"", "-1.00", "abc", "1.234", "1.2.3", ".50", "980.", ".", "12a.00"} {
		_, err := AmountToMinorUnits(in)
		assert.Error(t, err, in)
	}
}

func TestMinorUnitsToAmount(t *testing.T) {
	assert.Equal(t, "980.00", MinorUnitsToAmount(98000))
	assert.Equal(t, "0.01", MinorUnitsToAmount(1))
	assert.Equal(t, "0.00", MinorUnitsToAmount(0))
	assert.Equal(t, "1200.50", MinorUnitsToAmount(120050))
	assert.Equal(t, "-5.25", MinorUnitsToAmount(-525))
}

func TestAmountRoundTrip(t *testing.T) {
	for _, amount := range []string{"980.00", "0.01", "123456.78"} {
		minor, err := AmountToMinorUnits(amount)
		require.NoError(t, err)
		assert.Equal(t, amount, MinorUnitsToAmount(minor))
	}
}

func TestNormalizeAmount(t *testing.T) {
	got, err := NormalizeAmount("980")
	require.NoError(t, err)
	assert.Equal(t, "980.00", got)

	got, err = NormalizeAmount("980.5")
	require.NoError(t, err)
	assert.Equal(t, "980.50", got)

	_, err = NormalizeAmount("-1")
	assert.Error(t, err)
}
