package strategy

import "fmt"

// ValidationError rejects an admission request before any external call or
// persistence happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid strategy: " + e.Reason
}

// DuplicateError reports a generated id colliding with a stored strategy.
// Admission does not regenerate on collision; the caller just sees the reject.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("strategy id %s already exists", e.ID)
}

// NotFoundError reports a lookup or removal of an id that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("strategy %s not found", e.ID)
}

// Provider operation identifiers used in ProviderError.
const (
	OpQuote   = "quote"
	OpExecute = "execute"
)

// ProviderError means the brokerage exhausted its retry budget. Op is one of
// OpQuote/OpExecute; StrategyID is set only on the execute path.
type ProviderError struct {
	Op         string
	StrategyID string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StrategyID != "" {
		return fmt.Sprintf("brokerage %s failed for strategy %s: %v", e.Op, e.StrategyID, e.Err)
	}
	return fmt.Sprintf("brokerage %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StoreError wraps an underlying persistence failure on add/remove.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("strategy store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
