// Package ports defines the interfaces the library service depends on.
// Adapters implement them; the application layer only sees these contracts.
package ports

import (
	"context"

	"github.com/jsamuelsen/library-ledger/internal/domain"
)

// StatisticsExporter writes a statistics snapshot to a named destination.
type StatisticsExporter interface {
	// Export writes stats to path. An empty path selects the exporter's
	// default destination. I/O failures are returned to the caller.
	Export(ctx context.Context, stats domain.Statistics, path string) error
}

// LoanMetrics receives counters and gauges describing the library state.
// Implementations must be safe for concurrent use.
type LoanMetrics interface {
	// ObserveBorrow counts a borrow attempt and whether it succeeded.
	ObserveBorrow(ok bool)

	// ObserveReturn counts a return attempt and whether it succeeded.
	ObserveReturn(ok bool)

	// SetInventory publishes the current catalog and ledger sizes.
	SetInventory(inv Inventory)
}

// Inventory is a point-in-time view of catalog and ledger sizes.
type Inventory struct {
	Books     int
	Borrowed  int
	Records   int
	OpenLoans int
}

// NoopLoanMetrics discards everything.
type NoopLoanMetrics struct{}

func (NoopLoanMetrics) ObserveBorrow(bool) {}

func (NoopLoanMetrics) ObserveReturn(bool) {}

func (NoopLoanMetrics) SetInventory(Inventory) {}
