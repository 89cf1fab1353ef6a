package repository

import (
	"context"
	"time"

	"tradingplaces/internal/models"
)

type ListExecutionsParams struct {
	Ticker *string
	Side   *models.Side
	Limit  int
	Offset int
}

// StrategyRepository is the persistence boundary the lifecycle manager and
// the monitor share. Lookups return nil (not an error) when the id is absent;
// ListStrategies returns a point-in-time slice, safe to iterate while other
// goroutines mutate the store.
type StrategyRepository interface {
	GetStrategyByID(ctx context.Context, id string) (*models.Strategy, error)
	ListStrategies(ctx context.Context) ([]models.Strategy, error)
	CountStrategies(ctx context.Context) (int64, error)
	InsertStrategy(ctx context.Context, item *models.Strategy) error
	DeleteStrategy(ctx context.Context, id string) error

	InsertExecution(ctx context.Context, item *models.Execution) error
	ListExecutions(ctx context.Context, params ListExecutionsParams) ([]models.Execution, error)
	CountExecutions(ctx context.Context, params ListExecutionsParams) (int64, error)
	DeleteExecutionsBefore(ctx context.Context, before time.Time) (int64, error)
}
