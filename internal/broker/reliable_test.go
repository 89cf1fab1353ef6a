package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"tradingplaces/internal/models"
	"tradingplaces/internal/strategy"
)

type flakyQuotes struct {
	failures int
	calls    int
	quote    decimal.Decimal
}

func (f *flakyQuotes) Quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	f.calls++
	if f.calls <= f.failures {
		return decimal.Zero, errors.New("feed unavailable")
	}
	return f.quote, nil
}

type flakyTrades struct {
	failures int
	calls    int
	value    decimal.Decimal
}

func (f *flakyTrades) Execute(ctx context.Context, side models.Side, ticker string, quantity int) (decimal.Decimal, error) {
	f.calls++
	if f.calls <= f.failures {
		return decimal.Zero, errors.New("order rejected")
	}
	return f.value, nil
}

func TestReliableQuote_RoundsToTwoPlaces(t *testing.T) {
	q := &flakyQuotes{quote: decimal.RequireFromString("100.129")}
	r := &Reliable{Quotes: q}
	got, err := r.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !got.Equal(decimal.RequireFromString("100.13")) {
		t.Fatalf("quote=%s want=100.13", got)
	}
	if q.calls != 1 {
		t.Fatalf("calls=%d want=1", q.calls)
	}
}

func TestReliableQuote_RetriesThenSucceeds(t *testing.T) {
	q := &flakyQuotes{failures: 4, quote: decimal.RequireFromString("55.5")}
	r := &Reliable{Quotes: q}
	got, err := r.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !got.Equal(decimal.RequireFromString("55.5")) {
		t.Fatalf("quote=%s want=55.5", got)
	}
	if q.calls != 5 {
		t.Fatalf("calls=%d want=5", q.calls)
	}
}

func TestReliableQuote_Exhaustion(t *testing.T) {
	q := &flakyQuotes{failures: 100}
	r := &Reliable{Quotes: q}
	_, err := r.Quote(context.Background(), "AAPL")
	if q.calls != 5 {
		t.Fatalf("calls=%d want=5", q.calls)
	}
	var perr *strategy.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err=%v want ProviderError", err)
	}
	if perr.Op != strategy.OpQuote {
		t.Fatalf("op=%q want=%q", perr.Op, strategy.OpQuote)
	}
}

func TestReliableExecute_ExhaustionNamesStrategy(t *testing.T) {
	tr := &flakyTrades{failures: 100}
	r := &Reliable{Trades: tr, Attempts: 3}
	st := models.Strategy{ID: "AB12CD34", Ticker: "AAPL", Side: models.SideBuy, Quantity: 5}
	_, err := r.ExecuteStrategy(context.Background(), st)
	if tr.calls != 3 {
		t.Fatalf("calls=%d want=3", tr.calls)
	}
	var perr *strategy.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err=%v want ProviderError", err)
	}
	if perr.Op != strategy.OpExecute || perr.StrategyID != "AB12CD34" {
		t.Fatalf("op=%q id=%q", perr.Op, perr.StrategyID)
	}
}
