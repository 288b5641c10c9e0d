// Package app contains the library use cases. It coordinates the domain
// model with telemetry, metrics and the statistics exporter through ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/library-ledger/internal/domain"
	"github.com/jsamuelsen/library-ledger/internal/platform/telemetry"
	"github.com/jsamuelsen/library-ledger/internal/ports"
)

// ErrNoExporter is returned by ExportStatistics when no exporter is wired.
var ErrNoExporter = errors.New("no statistics exporter configured")

// LibraryService is the concurrency-safe entry point to a Library.
// Borrow and Return each run as one critical section over the catalog and
// the ledger; read-only operations share a read lock.
type LibraryService struct {
	mu      sync.RWMutex
	library *domain.Library

	now         func() time.Time
	exporter    ports.StatisticsExporter
	metrics     ports.LoanMetrics
	instruments *telemetry.Instruments
	logger      *slog.Logger
}

// LibraryServiceConfig holds the service dependencies. Every field is
// optional.
type LibraryServiceConfig struct {
	Exporter    ports.StatisticsExporter
	Metrics     ports.LoanMetrics
	Instruments *telemetry.Instruments
	Clock       func() time.Time
	Logger      *slog.Logger
}

// NewLibraryService creates a service over an empty library.
func NewLibraryService(cfg LibraryServiceConfig) *LibraryService {
	s := &LibraryService{
		library:     domain.NewLibrary(),
		now:         time.Now,
		exporter:    cfg.Exporter,
		metrics:     ports.NoopLoanMetrics{},
		instruments: cfg.Instruments,
		logger:      slog.Default(),
	}

	if cfg.Clock != nil {
		s.now = cfg.Clock
	}
	if cfg.Metrics != nil {
		s.metrics = cfg.Metrics
	}
	if s.instruments == nil {
		s.instruments = telemetry.NoopInstruments()
	}
	if cfg.Logger != nil {
		s.logger = cfg.Logger
	}

	s.logger = s.logger.With(slog.String("component", "app.LibraryService"))

	return s
}

// AddBook catalogues a new copy of title by authorName.
func (s *LibraryService) AddBook(ctx context.Context, title, authorName string) domain.Book {
	book := domain.NewBook(title, domain.Author{Name: authorName})

	s.mu.Lock()
	s.library.Catalog().Add(book)
	inv := s.inventoryLocked()
	s.mu.Unlock()

	s.metrics.SetInventory(inv)
	s.logger.InfoContext(ctx, "book added",
		slog.String("title", title),
		slog.String("author", authorName),
	)

	return book
}

// RemoveBook drops every copy of title from the catalog. Borrow history is
// kept. Removing an unknown title does nothing.
func (s *LibraryService) RemoveBook(ctx context.Context, title string) {
	s.mu.Lock()
	before := s.library.Catalog().Len()
	s.library.Catalog().Remove(title)
	removed := before - s.library.Catalog().Len()
	inv := s.inventoryLocked()
	s.mu.Unlock()

	s.metrics.SetInventory(inv)
	s.logger.InfoContext(ctx, "book removed",
		slog.String("title", title),
		slog.Int("copies", removed),
	)
}

// FindBooks returns the books whose title contains query, ignoring case.
func (s *LibraryService) FindBooks(ctx context.Context, query string) []domain.Book {
	s.mu.RLock()
	found := s.library.Catalog().Find(query)
	s.mu.RUnlock()

	s.logger.DebugContext(ctx, "catalog searched",
		slog.String("query", query),
		slog.Int("matches", len(found)),
	)

	return found
}

// Borrow lends the first available copy of title to borrower. It reports
// false when no copy is available.
func (s *LibraryService) Borrow(ctx context.Context, title, borrower string) bool {
	ctx, span := s.instruments.StartOperation(ctx, "borrow",
		attribute.String("library.title", title),
		attribute.String("library.borrower", borrower),
	)

	s.mu.Lock()
	rec, ok := s.library.Borrow(title, borrower, s.now())
	inv := s.inventoryLocked()
	s.mu.Unlock()

	s.instruments.EndOperation(ctx, span, "borrow", ok)
	s.metrics.ObserveBorrow(ok)
	s.metrics.SetInventory(inv)

	if !ok {
		s.logger.InfoContext(ctx, "borrow refused",
			slog.String("title", title),
			slog.String("borrower", borrower),
		)

		return false
	}

	s.logger.InfoContext(ctx, "book borrowed",
		slog.String("record_id", rec.ID),
		slog.String("title", title),
		slog.String("borrower", borrower),
	)

	return true
}

// Return closes borrower's open loan of title. It reports false when there
// is no such loan.
func (s *LibraryService) Return(ctx context.Context, title, borrower string) bool {
	ctx, span := s.instruments.StartOperation(ctx, "return",
		attribute.String("library.title", title),
		attribute.String("library.borrower", borrower),
	)

	s.mu.Lock()
	rec, ok := s.library.Return(title, borrower, s.now())
	inv := s.inventoryLocked()
	s.mu.Unlock()

	s.instruments.EndOperation(ctx, span, "return", ok)
	s.metrics.ObserveReturn(ok)
	s.metrics.SetInventory(inv)

	if !ok {
		s.logger.InfoContext(ctx, "return refused, no open loan",
			slog.String("title", title),
			slog.String("borrower", borrower),
		)

		return false
	}

	held, _ := rec.LoanDuration()
	s.instruments.RecordLoan(ctx, held)

	s.logger.InfoContext(ctx, "book returned",
		slog.String("record_id", rec.ID),
		slog.String("title", title),
		slog.String("borrower", borrower),
		slog.Duration("held", held),
	)

	return true
}

// Statistics summarises the borrow history.
func (s *LibraryService) Statistics(ctx context.Context) domain.Statistics {
	s.mu.RLock()
	stats := s.library.Statistics()
	s.mu.RUnlock()

	s.logger.DebugContext(ctx, "statistics computed",
		slog.Float64("return_rate", stats.ReturnRate),
		slog.Float64("average_read_time_hours", stats.AverageReadTimeHours),
	)

	return stats
}

// ExportStatistics computes the statistics and hands them to the exporter.
// An empty path selects the exporter's default file.
func (s *LibraryService) ExportStatistics(ctx context.Context, path string) (domain.Statistics, error) {
	ctx, span := s.instruments.StartOperation(ctx, "export", attribute.String("library.path", path))

	if s.exporter == nil {
		s.instruments.FailOperation(ctx, span, "export", ErrNoExporter)
		return domain.Statistics{}, ErrNoExporter
	}

	stats := s.Statistics(ctx)

	if err := s.exporter.Export(ctx, stats, path); err != nil {
		s.instruments.FailOperation(ctx, span, "export", err)
		s.logger.ErrorContext(ctx, "statistics export failed",
			slog.String("path", path),
			slog.Any("error", err),
		)

		return domain.Statistics{}, fmt.Errorf("exporting statistics: %w", err)
	}

	s.instruments.EndOperation(ctx, span, "export", true)
	s.logger.InfoContext(ctx, "statistics exported", slog.String("path", path))

	return stats, nil
}

// Books returns a snapshot of the catalog.
func (s *LibraryService) Books() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.library.Catalog().Books()
}

// Records returns a snapshot of the borrow history.
func (s *LibraryService) Records() []domain.BorrowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.library.Ledger().Records()
}

// Inventory returns the current catalog and ledger sizes.
func (s *LibraryService) Inventory() ports.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inventoryLocked()
}

func (s *LibraryService) inventoryLocked() ports.Inventory {
	return ports.Inventory{
		Books:     s.library.Catalog().Len(),
		Borrowed:  s.library.Catalog().BorrowedCount(),
		Records:   s.library.Ledger().Len(),
		OpenLoans: s.library.Ledger().OpenCount(),
	}
}
