package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAsset(t *testing.T) {
	meta, ok := LookupAsset(" usdt ")
	require.True(t, ok)
	assert.Equal(t, "USDT", meta.Symbol)
	assert.Equal(t, Stablecoin, meta.Kind)

	_, ok = LookupAsset("DOGE")
	assert.False(t, ok)
}

func TestPct(t *testing.T) {
	assert.True(t, Pct(MustParse("4.6325"), MustParse("100")).Equal(MustParse("4.6325")))
	assert.True(t, Pct(MustParse("1"), decimal.Zero).IsZero())
}

func TestOfPct(t *testing.T) {
	assert.True(t, OfPct(MustParse("105"), MustParse("0.35")).Equal(MustParse("0.3675")))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1.05", "1.05", false},
		{" 0.35% ", "0.35", false},
		{"$1,250.50", "1250.50", false},
		{"1,250", "1250", false},
		{"12,345,678.9", "12345678.9", false},
		{"1,5", "1.5", false},
		{"0,35", "0.35", false},
		{"0,350", "0.35", false},
		{"1.000,50", "1000.50", false},
		{"-2,5", "-2.5", false},
		{"1,2,3", "", true},
		{"1,25.5", "", true},
		{"1.2,5", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(MustParse(tt.want)), "got %s", got)
		})
	}
}

func TestRoundIsBankers(t *testing.T) {
	d := MustParse("0.0000000000005") // 13th digit is a 5
	assert.True(t, Round(d).IsZero())

	d = MustParse("0.0000000000015")
	assert.True(t, Round(d).Equal(MustParse("0.000000000002")))
}

func TestFormatCash(t *testing.T) {
	assert.Equal(t, "$1,234.57", FormatCash(MustParse("1234.567"), "USD"))
	assert.Equal(t, "$104.63", FormatCash(MustParse("104.6325"), ""))
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "250.0000", FormatUnits(MustParse("250"), "USDT"))
	assert.Equal(t, "0.12345679", FormatUnits(MustParse("0.123456789"), "BTC"))
	assert.Equal(t, "1.00000000", FormatUnits(MustParse("1"), "???"))
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "4.63%", FormatPct(MustParse("4.6325")))
}
