package strategy

import (
	"regexp"

	"github.com/shopspring/decimal"

	"tradingplaces/internal/models"
)

var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,5}$`)

var hundred = decimal.NewFromInt(100)

// ValidTicker reports whether s is a 3-5 character alphanumeric ticker.
func ValidTicker(s string) bool {
	return tickerPattern.MatchString(s)
}

// ValidQuantity reports whether q is a positive unit count.
func ValidQuantity(q int) bool {
	return q > 0
}

// ValidPriceMovement checks the movement range per side: a buy waits for a
// drop, so the movement must stay inside (0,100); a sell waits for a rise,
// which has no upper bound.
func ValidPriceMovement(side models.Side, movement decimal.Decimal) bool {
	if side == models.SideBuy {
		return movement.GreaterThan(decimal.Zero) && movement.LessThan(hundred)
	}
	return movement.GreaterThan(decimal.Zero)
}

// TargetPrice derives the trigger level from the admission-time quote,
// rounded to 2 decimal places.
func TargetPrice(side models.Side, startPrice, movement decimal.Decimal) decimal.Decimal {
	factor := movement.Div(hundred)
	if side == models.SideBuy {
		factor = decimal.NewFromInt(1).Sub(factor)
	} else {
		factor = decimal.NewFromInt(1).Add(factor)
	}
	return startPrice.Mul(factor).Round(2)
}

// Triggered is the trigger predicate: a buy fires once the quote is at or
// below the target, a sell once it is at or above. Equality fires.
func Triggered(side models.Side, quote, targetPrice decimal.Decimal) bool {
	if side == models.SideBuy {
		return quote.LessThanOrEqual(targetPrice)
	}
	return quote.GreaterThanOrEqual(targetPrice)
}
