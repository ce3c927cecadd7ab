package market

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

// FormatCash renders a fiat amount with the currency's own symbol and
// fraction, e.g. "$1,234.56".
func FormatCash(d decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		// unknown codes still get a stable rendering
		return d.StringFixedBank(2) + " " + currency
	}
	minor := d.RoundBank(int32(cur.Fraction)).Shift(int32(cur.Fraction)).IntPart()
	return cur.Formatter().Format(minor)
}

// FormatUnits renders a quantity with the asset's display precision.
func FormatUnits(d decimal.Decimal, symbol string) string {
	places := int32(8)
	if meta, ok := LookupAsset(symbol); ok {
		places = meta.Decimals
	}
	return d.StringFixedBank(places)
}

// FormatPrice renders a unit price or cost basis.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixedBank(4)
}

// FormatPct renders a percentage with two decimals.
func FormatPct(d decimal.Decimal) string {
	return d.StringFixedBank(2) + "%"
}
