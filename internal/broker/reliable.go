package broker

import (
	"context"

	"github.com/shopspring/decimal"

	"tradingplaces/internal/models"
	"tradingplaces/internal/retry"
	"tradingplaces/internal/strategy"
)

// Reliable wraps the raw providers with the bounded immediate-retry
// discipline. It knows nothing about strategy semantics beyond the id it
// stamps into execution failures.
type Reliable struct {
	Quotes   QuoteProvider
	Trades   TradeExecutor
	Attempts int
}

func (r *Reliable) attempts() int {
	if r.Attempts > 0 {
		return r.Attempts
	}
	return retry.DefaultAttempts
}

// Quote fetches the current price, retrying on failure. Results are rounded
// to 2 decimal places before being handed to callers.
func (r *Reliable) Quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	quote, err := retry.Do(ctx, r.attempts(), func(ctx context.Context) (decimal.Decimal, error) {
		return r.Quotes.Quote(ctx, ticker)
	})
	if err != nil {
		return decimal.Zero, &strategy.ProviderError{Op: strategy.OpQuote, Err: err}
	}
	return quote.Round(2), nil
}

// ExecuteStrategy places the trade for a triggered strategy, retrying on
// failure. Exhaustion surfaces as a ProviderError that names the strategy.
func (r *Reliable) ExecuteStrategy(ctx context.Context, st models.Strategy) (decimal.Decimal, error) {
	value, err := retry.Do(ctx, r.attempts(), func(ctx context.Context) (decimal.Decimal, error) {
		return r.Trades.Execute(ctx, st.Side, st.Ticker, st.Quantity)
	})
	if err != nil {
		return decimal.Zero, &strategy.ProviderError{Op: strategy.OpExecute, StrategyID: st.ID, Err: err}
	}
	return value, nil
}
