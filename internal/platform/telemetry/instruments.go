package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/jsamuelsen/library-ledger/library"

// Instruments are the spans and OTel metrics emitted by library operations.
type Instruments struct {
	tracer       trace.Tracer
	operations   metric.Int64Counter
	loanDuration metric.Float64Histogram
}

// NewInstruments creates library instruments from the given providers.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(instrumentationName)

	operations, err := meter.Int64Counter(
		"library.operations",
		metric.WithDescription("Library operations by name and outcome"),
	)
	if err != nil {
		return nil, err
	}

	loanDuration, err := meter.Float64Histogram(
		"library.loan.duration",
		metric.WithDescription("Time between borrow and return"),
		metric.WithUnit("h"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{
		tracer:       tp.Tracer(instrumentationName),
		operations:   operations,
		loanDuration: loanDuration,
	}, nil
}

// NoopInstruments returns instruments that record nothing.
func NoopInstruments() *Instruments {
	inst, err := NewInstruments(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	if err != nil {
		panic(err) // noop providers never fail
	}

	return inst
}

// StartOperation opens a span named "library.<op>".
func (i *Instruments) StartOperation(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, "library."+op, trace.WithAttributes(attrs...))
}

// EndOperation records the outcome on the span and the operations counter,
// then ends the span. A refused borrow or return is not a span error.
func (i *Instruments) EndOperation(ctx context.Context, span trace.Span, op string, ok bool) {
	span.SetAttributes(attribute.Bool("library.ok", ok))
	span.SetStatus(codes.Ok, "")
	span.End()

	i.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("ok", ok),
	))
}

// FailOperation marks the span as failed with err and ends it.
func (i *Instruments) FailOperation(ctx context.Context, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()

	i.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("ok", false),
	))
}

// RecordLoan records the length of a closed loan in hours.
func (i *Instruments) RecordLoan(ctx context.Context, d time.Duration) {
	i.loanDuration.Record(ctx, d.Hours())
}
