package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradingplaces/internal/broker"
	"tradingplaces/internal/models"
	"tradingplaces/internal/repository"
	"tradingplaces/internal/strategy"
)

type RegisterStrategyRequest struct {
	Ticker               string
	Side                 models.Side
	PriceMovementPercent decimal.Decimal
	Quantity             int
}

// StrategyService owns the strategy lifecycle: admission from the API and
// removal on cancel or execution. One mutex serializes every find-then-mutate
// sequence against the store, so an API cancel and the monitor's
// execute-and-remove cannot interleave on the same record; whichever side
// loses the race sees NotFoundError.
type StrategyService struct {
	Repo   repository.StrategyRepository
	Broker *broker.Reliable
	Logger *zap.Logger

	mu sync.Mutex

	// newID overrides id generation in tests.
	newID func() string
}

// Register validates the request, prices it through the brokerage, and
// persists the fully-formed record. A failure at any step leaves no partial
// state behind.
func (s *StrategyService) Register(ctx context.Context, req RegisterStrategyRequest) (*models.Strategy, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if !req.Side.Valid() {
		return nil, &strategy.ValidationError{Reason: "side must be BUY or SELL"}
	}
	if !strategy.ValidTicker(ticker) {
		return nil, &strategy.ValidationError{Reason: "ticker must be 3-5 alphanumeric characters"}
	}
	if !strategy.ValidQuantity(req.Quantity) {
		return nil, &strategy.ValidationError{Reason: "quantity must be positive"}
	}
	if !strategy.ValidPriceMovement(req.Side, req.PriceMovementPercent) {
		if req.Side == models.SideBuy {
			return nil, &strategy.ValidationError{Reason: "buy price movement must be between 0 and 100 exclusive"}
		}
		return nil, &strategy.ValidationError{Reason: "sell price movement must be greater than 0"}
	}

	gen := s.newID
	if gen == nil {
		gen = newStrategyID
	}
	id := gen()

	startPrice, err := s.Broker.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	item := &models.Strategy{
		ID:                   id,
		Ticker:               ticker,
		Side:                 req.Side,
		PriceMovementPercent: req.PriceMovementPercent,
		Quantity:             req.Quantity,
		StartPrice:           startPrice,
		TargetPrice:          strategy.TargetPrice(req.Side, startPrice, req.PriceMovementPercent),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Generated ids are not regenerated on collision; the request is
		// rejected and the caller retries.
		return nil, &strategy.DuplicateError{ID: id}
	}
	if err := s.Repo.InsertStrategy(ctx, item); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy registered",
			zap.String("strategy_id", item.ID),
			zap.String("side", string(item.Side)),
			zap.Int("quantity", item.Quantity),
			zap.String("ticker", item.Ticker),
			zap.String("target_price", item.TargetPrice.String()),
			zap.String("start_price", item.StartPrice.String()),
		)
	}
	return item, nil
}

// Cancel removes a strategy by id. Unknown ids surface as NotFoundError.
func (s *StrategyService) Cancel(ctx context.Context, id string) error {
	id = strings.ToUpper(strings.TrimSpace(id))

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return &strategy.NotFoundError{ID: id}
	}
	if err := s.Repo.DeleteStrategy(ctx, id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy removed", zap.String("strategy_id", id))
	}
	return nil
}

// Release removes an executed strategy on behalf of the monitor. A record
// that already disappeared was cancelled mid-tick and is not an error.
func (s *StrategyService) Release(ctx context.Context, id string) error {
	err := s.Cancel(ctx, id)
	var nf *strategy.NotFoundError
	if errors.As(err, &nf) {
		return nil
	}
	return err
}

func newStrategyID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
