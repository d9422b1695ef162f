package core

import (
	"context"
	"fmt"
	"time"

	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records server counters on the global OTel meter provider
// (no-op if none is configured).
type Metrics struct {
	ticks        metric.Int64Counter
	tickDuration metric.Float64Histogram
	conflicts    metric.Int64Counter
	dangling     metric.Int64Counter
	pilots       metric.Int64ObservableGauge
}

// NewMetrics creates the instruments. pilotCount is sampled on collection and
// may be nil.
func NewMetrics(pilotCount func() int) (*Metrics, error) {
	m := meter()
	out := &Metrics{}

	var err error
	out.ticks, err = m.Int64Counter(
		"thrustcraft.ticks",
		metric.WithDescription("Simulation ticks completed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	out.tickDuration, err = m.Float64Histogram(
		"thrustcraft.tick.duration",
		metric.WithDescription("Wall time spent in one tick"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick duration histogram: %w", err)
	}

	out.conflicts, err = m.Int64Counter(
		"thrustcraft.aggregator.conflicts",
		metric.WithDescription("Internal forces skipped because the parent accumulator is persistent"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conflicts counter: %w", err)
	}

	out.dangling, err = m.Int64Counter(
		"thrustcraft.aggregator.dangling",
		metric.WithDescription("Internal forces skipped because the parent is missing or not rigid"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dangling counter: %w", err)
	}

	if pilotCount != nil {
		out.pilots, err = m.Int64ObservableGauge(
			"thrustcraft.pilots",
			metric.WithDescription("Pilots currently flying"),
		)
		if err != nil {
			return nil, fmt.Errorf("creating pilots gauge: %w", err)
		}
		_, err = m.RegisterCallback(
			func(ctx context.Context, o metric.Observer) error {
				o.ObserveInt64(out.pilots, int64(pilotCount()))
				return nil
			},
			out.pilots,
		)
		if err != nil {
			return nil, fmt.Errorf("registering pilots callback: %w", err)
		}
	}

	return out, nil
}

// Diagnostic matches shipsim.Aggregator.OnDiagnostic.
func (m *Metrics) Diagnostic(kind shipsim.Diagnostic, _, _ shipsim.EntityID) {
	attrs := metric.WithAttributes(attribute.String("kind", kind.String()))
	if kind == shipsim.DiagPersistentConflict {
		m.conflicts.Add(context.Background(), 1, attrs)
		return
	}
	m.dangling.Add(context.Background(), 1, attrs)
}

// Tick records one completed tick.
func (m *Metrics) Tick(elapsed time.Duration) {
	ctx := context.Background()
	m.ticks.Add(ctx, 1)
	m.tickDuration.Record(ctx, float64(elapsed.Microseconds())/1000)
}
