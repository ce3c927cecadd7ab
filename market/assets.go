// market/assets.go
package market

import "strings"

type AssetKind string

const (
	Stablecoin AssetKind = "stablecoin"
	Crypto     AssetKind = "criptomoneda"
)

type AssetMeta struct {
	Symbol      string
	Name        string
	Kind        AssetKind
	Decimals    int32 // display precision for quantities
	Description string
}

var Assets = map[string]AssetMeta{
	"USDT": {
		Symbol:      "USDT",
		Name:        "Tether",
		Kind:        Stablecoin,
		Decimals:    4,
		Description: "Stablecoin pegged to the US dollar",
	},
	"USDC": {
		Symbol:      "USDC",
		Name:        "USD Coin",
		Kind:        Stablecoin,
		Decimals:    4,
		Description: "Dollar-backed stablecoin",
	},
	"BTC": {
		Symbol:      "BTC",
		Name:        "Bitcoin",
		Kind:        Crypto,
		Decimals:    8,
		Description: "The first cryptocurrency",
	},
	"ETH": {
		Symbol:      "ETH",
		Name:        "Ethereum",
		Kind:        Crypto,
		Decimals:    6,
		Description: "Smart contract platform",
	},
	"BNB": {
		Symbol:      "BNB",
		Name:        "Binance Coin",
		Kind:        Crypto,
		Decimals:    6,
		Description: "Binance native token",
	},
	"DAI": {
		Symbol:      "DAI",
		Name:        "Dai",
		Kind:        Stablecoin,
		Decimals:    4,
		Description: "Decentralized stablecoin",
	},
}

// LookupAsset resolves a symbol case-insensitively.
func LookupAsset(symbol string) (AssetMeta, bool) {
	meta, ok := Assets[NormalizeSymbol(symbol)]
	return meta, ok
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
