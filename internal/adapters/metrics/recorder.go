// Package metrics publishes library counters and gauges in the Prometheus
// text format. A CLI run has no scrape endpoint, so the registry is written
// to a file for the node_exporter textfile collector.
package metrics

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/library-ledger/internal/platform/preflight"
	"github.com/jsamuelsen/library-ledger/internal/ports"
)

const namespace = "library"

// Recorder implements ports.LoanMetrics on a private registry.
type Recorder struct {
	registry     *prometheus.Registry
	textfilePath string

	borrows   *prometheus.CounterVec
	returns   *prometheus.CounterVec
	books     prometheus.Gauge
	borrowed  prometheus.Gauge
	records   prometheus.Gauge
	openLoans prometheus.Gauge
}

var (
	_ ports.LoanMetrics   = (*Recorder)(nil)
	_ ports.HealthChecker = (*Recorder)(nil)
)

// NewRecorder registers the library collectors, plus Go runtime collectors,
// on a fresh registry. textfilePath is where WriteTextfile writes.
func NewRecorder(textfilePath string) *Recorder {
	r := &Recorder{
		registry:     prometheus.NewRegistry(),
		textfilePath: textfilePath,
		borrows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "borrows_total",
			Help:      "Borrow attempts by result.",
		}, []string{"result"}),
		returns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "returns_total",
			Help:      "Return attempts by result.",
		}, []string{"result"}),
		books: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "books",
			Help:      "Books in the catalog, counting every copy.",
		}),
		borrowed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "books_borrowed",
			Help:      "Catalog copies flagged as borrowed.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "borrow_records",
			Help:      "Records in the borrow history.",
		}),
		openLoans: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_loans",
			Help:      "Borrow records without a return date.",
		}),
	}

	r.registry.MustRegister(
		r.borrows,
		r.returns,
		r.books,
		r.borrowed,
		r.records,
		r.openLoans,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveBorrow(ok bool) {
	r.borrows.WithLabelValues(resultLabel(ok)).Inc()
}

func (r *Recorder) ObserveReturn(ok bool) {
	r.returns.WithLabelValues(resultLabel(ok)).Inc()
}

func (r *Recorder) SetInventory(inv ports.Inventory) {
	r.books.Set(float64(inv.Books))
	r.borrowed.Set(float64(inv.Borrowed))
	r.records.Set(float64(inv.Records))
	r.openLoans.Set(float64(inv.OpenLoans))
}

// WriteTextfile writes every registered metric to the textfile path.
func (r *Recorder) WriteTextfile() error {
	if err := prometheus.WriteToTextfile(r.textfilePath, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", r.textfilePath, err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (r *Recorder) Name() string {
	return "metrics-textfile"
}

// Check verifies that the textfile directory accepts new files.
func (r *Recorder) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return preflight.WritableDir(filepath.Dir(r.textfilePath))
}

func resultLabel(ok bool) string {
	if ok {
		return "ok"
	}

	return "refused"
}
