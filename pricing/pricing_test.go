package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestSuggestedPrice(t *testing.T) {
	tests := []struct {
		name       string
		cost       string
		commission string
		target     string
		want       string
	}{
		{"default margins", "1.00", "0.35", "2.0", "1.0235"},
		{"no margins", "1.05", "0", "0", "1.05"},
		{"btc", "60000", "0.5", "1.5", "61200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, SuggestedPrice(d(tt.cost), d(tt.commission), d(tt.target)))
		})
	}
}

func TestEstimatedNetProfitPct(t *testing.T) {
	assertDecimal(t, "4.65", EstimatedNetProfitPct(d("1.00"), d("1.05"), d("0.35")))
	assertDecimal(t, "-0.35", EstimatedNetProfitPct(d("1.00"), d("1.00"), d("0.35")))
	assertDecimal(t, "0", EstimatedNetProfitPct(d("0"), d("1.05"), d("0.35")))
}

func TestSaleBreakdown(t *testing.T) {
	b := Sale(d("100"), d("1.00"), d("1.05"), d("0.35"))

	assertDecimal(t, "100", b.CostTotal)
	assertDecimal(t, "105", b.Revenue)
	assertDecimal(t, "0.3675", b.Commission)
	assertDecimal(t, "104.6325", b.NetCash)
	assertDecimal(t, "5", b.GrossProfit)
	assertDecimal(t, "4.6325", b.NetProfit)
	assertDecimal(t, "4.6325", b.RoiPct)
	assert.False(t, b.IsLoss())
}

func TestSaleBreakdownLoss(t *testing.T) {
	b := Sale(d("10"), d("1.05"), d("1.05"), d("0.35"))

	assertDecimal(t, "0", b.GrossProfit)
	assertDecimal(t, "-0.03675", b.NetProfit)
	assert.True(t, b.IsLoss())
}

func TestSaleBreakdownZeroCost(t *testing.T) {
	b := Sale(d("10"), d("0"), d("1"), d("0"))
	assert.True(t, b.RoiPct.IsZero())
}
