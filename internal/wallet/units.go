package wallet

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// LovelacePerAda is the number of lovelace in one ADA.
	LovelacePerAda = 1_000_000
	// MaxSupplyAda is the total ADA supply. No amount can exceed it.
	MaxSupplyAda = 45_000_000_000
)

var ErrAmountOutOfRange = errors.New("amount exceeds the total ada supply")

var (
	lovelacePerAda = decimal.NewFromInt(LovelacePerAda)
	maxSupplyAda   = decimal.NewFromInt(MaxSupplyAda)
)

// AdaToLovelace returns round(ada * 1_000_000), rounding half away from zero.
// Amounts beyond the total supply in either direction are ErrAmountOutOfRange.
func AdaToLovelace(ada decimal.Decimal) (int64, error) {
	if ada.Abs().GreaterThan(maxSupplyAda) {
		return 0, ErrAmountOutOfRange
	}

	return ada.Mul(lovelacePerAda).Round(0).IntPart(), nil
}

// LovelaceToAda returns lovelace / 1_000_000 without loss of precision.
func LovelaceToAda(lovelace int64) decimal.Decimal {
	return decimal.NewFromInt(lovelace).Div(lovelacePerAda)
}

// AdaFloat is LovelaceToAda for JSON responses.
func AdaFloat(lovelace int64) float64 {
	f, _ := LovelaceToAda(lovelace).Float64()
	return f
}
