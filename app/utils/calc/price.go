package calc

import "github.com/shopspring/decimal"

// UnitPrice divides the proposed total by quantity, rounded to whole tomans.
func UnitPrice(total decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(quantity))).Round(0)
}
