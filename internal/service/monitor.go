package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tradingplaces/internal/broker"
	"tradingplaces/internal/config"
	"tradingplaces/internal/models"
	"tradingplaces/internal/repository"
	"tradingplaces/internal/strategy"
)

// MonitorService drives the fixed-interval evaluation pass. Each tick
// snapshots the stored strategies and fans out one task per strategy under a
// bounded concurrency limit; the next tick cannot start until every task of
// the previous one has finished, so ticks never overlap even when one
// overruns the interval.
type MonitorService struct {
	Repo       repository.StrategyRepository
	Broker     *broker.Reliable
	Strategies *StrategyService
	Logger     *zap.Logger
	Config     config.MonitorConfig
}

func (m *MonitorService) Run(ctx context.Context) error {
	if m == nil || m.Repo == nil || m.Broker == nil || m.Strategies == nil {
		return nil
	}
	interval := m.Config.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.checkOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// checkOnce is one tick. Per-strategy failures are logged and isolated; they
// never abort the tick or sibling tasks.
func (m *MonitorService) checkOnce(ctx context.Context) {
	items, err := m.Repo.ListStrategies(ctx)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Warn("strategy list failed", zap.Error(err))
		}
		return
	}

	slots := m.Config.MaxParallelism
	if slots <= 0 {
		slots = 20
	}
	sem := make(chan struct{}, slots)
	var wg sync.WaitGroup
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(st models.Strategy) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := m.checkStrategy(ctx, st); err != nil && m.Logger != nil {
				m.Logger.Warn("strategy check failed",
					zap.String("strategy_id", st.ID),
					zap.String("ticker", st.Ticker),
					zap.Error(err),
				)
			}
		}(item)
	}
	wg.Wait()

	if m.Logger != nil {
		m.Logger.Debug("strategies checked", zap.Int("count", len(items)))
	}
}

func (m *MonitorService) checkStrategy(ctx context.Context, st models.Strategy) error {
	quote, err := m.Broker.Quote(ctx, st.Ticker)
	if err != nil {
		return err
	}

	if !strategy.Triggered(st.Side, quote, st.TargetPrice) {
		if m.Logger != nil {
			m.Logger.Debug("strategy checked",
				zap.String("strategy_id", st.ID),
				zap.String("side", string(st.Side)),
				zap.String("ticker", st.Ticker),
				zap.String("target_price", st.TargetPrice.String()),
				zap.String("current_price", quote.String()),
			)
		}
		return nil
	}

	value, err := m.Broker.ExecuteStrategy(ctx, st)
	if err != nil {
		return err
	}
	if err := m.Strategies.Release(ctx, st.ID); err != nil {
		// The trade is already done; a removal failure here leaves the row
		// for the next tick and must be visible in the logs.
		return err
	}
	m.recordExecution(ctx, st, quote, value)

	if m.Logger != nil {
		m.Logger.Info("strategy executed",
			zap.String("strategy_id", st.ID),
			zap.String("side", string(st.Side)),
			zap.Int("quantity", st.Quantity),
			zap.String("ticker", st.Ticker),
			zap.String("price", quote.String()),
			zap.String("realized_value", value.String()),
		)
	}
	return nil
}

// recordExecution writes the audit row for a completed trade. Best effort:
// the strategy is already executed and removed, so a write failure is logged
// rather than propagated.
func (m *MonitorService) recordExecution(ctx context.Context, st models.Strategy, quote, value decimal.Decimal) {
	snapshot, err := json.Marshal(st)
	if err != nil {
		snapshot = nil
	}
	item := &models.Execution{
		StrategyID:    st.ID,
		Ticker:        st.Ticker,
		Side:          st.Side,
		Quantity:      st.Quantity,
		Quote:         quote,
		RealizedValue: value,
		Snapshot:      datatypes.JSON(snapshot),
		ExecutedAt:    time.Now().UTC(),
	}
	if err := m.Repo.InsertExecution(ctx, item); err != nil && m.Logger != nil {
		m.Logger.Warn("execution record failed", zap.String("strategy_id", st.ID), zap.Error(err))
	}
}
