// Package broker defines the two brokerage collaborators the monitor depends
// on, and the retrying layer the rest of the service calls through.
package broker

import (
	"context"

	"github.com/shopspring/decimal"

	"tradingplaces/internal/models"
)

// QuoteProvider returns the current price for a ticker. Calls may fail
// transiently and carry no latency bound.
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// TradeExecutor places a buy or sell and returns the realized financial value.
type TradeExecutor interface {
	Execute(ctx context.Context, side models.Side, ticker string, quantity int) (decimal.Decimal, error)
}
