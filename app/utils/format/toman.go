package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var toman = accounting.Accounting{Symbol: "تومان", Precision: 0, Thousand: ",", Format: "%v %s"}

// Toman renders an amount like "1,250,000 تومان".
func Toman(amount decimal.Decimal) string {
	return toman.FormatMoney(amount.Round(0).IntPart())
}
