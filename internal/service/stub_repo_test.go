package service

import (
	"context"
	"sync"
	"time"

	"tradingplaces/internal/models"
	"tradingplaces/internal/repository"
	"tradingplaces/internal/strategy"
)

// stubRepo is a test-only in-memory implementation of
// repository.StrategyRepository. Safe for concurrent use so monitor tests can
// exercise the fan-out for real.
type stubRepo struct {
	mu         sync.Mutex
	strategies map[string]models.Strategy
	executions []models.Execution

	insertErr error
	deleteErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{strategies: map[string]models.Strategy{}}
}

func (s *stubRepo) GetStrategyByID(ctx context.Context, id string) (*models.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.strategies[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *stubRepo) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Strategy, 0, len(s.strategies))
	for _, item := range s.strategies {
		items = append(items, item)
	}
	return items, nil
}

func (s *stubRepo) CountStrategies(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.strategies)), nil
}

func (s *stubRepo) InsertStrategy(ctx context.Context, item *models.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.strategies[item.ID] = *item
	return nil
}

func (s *stubRepo) DeleteStrategy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.strategies[id]; !ok {
		return &strategy.NotFoundError{ID: id}
	}
	delete(s.strategies, id)
	return nil
}

func (s *stubRepo) InsertExecution(ctx context.Context, item *models.Execution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions = append(s.executions, *item)
	return nil
}

func (s *stubRepo) ListExecutions(ctx context.Context, params repository.ListExecutionsParams) ([]models.Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Execution(nil), s.executions...), nil
}

func (s *stubRepo) CountExecutions(ctx context.Context, params repository.ListExecutionsParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.executions)), nil
}

func (s *stubRepo) DeleteExecutionsBefore(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.executions[:0]
	var removed int64
	for _, item := range s.executions {
		if item.ExecutedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.executions = kept
	return removed, nil
}
