package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tradingplaces/internal/models"
)

// stubQuotes serves fixed per-ticker prices and tracks call concurrency.
type stubQuotes struct {
	mu          sync.Mutex
	prices      map[string]decimal.Decimal
	failTickers map[string]bool
	delay       time.Duration

	calls       int
	inFlight    int
	maxInFlight int
}

func (q *stubQuotes) Quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	q.mu.Lock()
	q.calls++
	q.inFlight++
	if q.inFlight > q.maxInFlight {
		q.maxInFlight = q.inFlight
	}
	price, ok := q.prices[ticker]
	fail := q.failTickers[ticker]
	delay := q.delay
	q.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	q.mu.Lock()
	q.inFlight--
	q.mu.Unlock()

	if fail || !ok {
		return decimal.Zero, errors.New("quote feed unavailable")
	}
	return price, nil
}

func (q *stubQuotes) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

func (q *stubQuotes) peakConcurrency() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.maxInFlight
}

// stubTrades records executed trades and returns quantity*price as the
// realized value.
type stubTrades struct {
	mu     sync.Mutex
	price  decimal.Decimal
	fail   bool
	trades []string
}

func (t *stubTrades) Execute(ctx context.Context, side models.Side, ticker string, quantity int) (decimal.Decimal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return decimal.Zero, errors.New("order rejected")
	}
	t.trades = append(t.trades, ticker)
	return t.price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

func (t *stubTrades) executed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.trades...)
}
