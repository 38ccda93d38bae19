// Package telemetry provides OpenTelemetry metrics for the lifecycle core.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	transitions      metric.Int64Counter
	effectsEmitted   metric.Int64Counter
	dispatchFailures metric.Int64Counter
	unlocks          metric.Int64Counter

	dispatchDuration metric.Float64Histogram

	initOnce sync.Once
	initErr  error
}

var (
	global     *MetricsProvider
	globalOnce sync.Once
)

// Metrics returns the process-wide metrics provider.
func Metrics() *MetricsProvider {
	globalOnce.Do(func() {
		global = &MetricsProvider{
			meter: otel.GetMeterProvider().Meter("github.com/felixgeelhaar/launchpad"),
		}
	})
	return global
}

// init lazily creates the instruments.
func (m *MetricsProvider) init() error {
	m.initOnce.Do(func() {
		var err error
		if m.transitions, err = m.meter.Int64Counter(
			"launchpad.transitions",
			metric.WithDescription("Applied status transitions by entity kind and target status"),
		); err != nil {
			m.initErr = err
			return
		}
		if m.effectsEmitted, err = m.meter.Int64Counter(
			"launchpad.effects.emitted",
			metric.WithDescription("Effects handed to the dispatcher by kind"),
		); err != nil {
			m.initErr = err
			return
		}
		if m.dispatchFailures, err = m.meter.Int64Counter(
			"launchpad.dispatch.failures",
			metric.WithDescription("Effect deliveries that failed after retries"),
		); err != nil {
			m.initErr = err
			return
		}
		if m.unlocks, err = m.meter.Int64Counter(
			"launchpad.achievements.unlocked",
			metric.WithDescription("Achievement unlock transitions"),
		); err != nil {
			m.initErr = err
			return
		}
		m.dispatchDuration, m.initErr = m.meter.Float64Histogram(
			"launchpad.dispatch.duration",
			metric.WithDescription("Effect delivery duration in seconds"),
			metric.WithUnit("s"),
		)
	})
	return m.initErr
}

// RecordTransition counts an applied transition.
func (m *MetricsProvider) RecordTransition(ctx context.Context, kind, to string) {
	if m.init() != nil {
		return
	}
	m.transitions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", kind), attribute.String("to", to)))
}

// RecordEffect counts an effect handed to the dispatcher.
func (m *MetricsProvider) RecordEffect(ctx context.Context, kind string) {
	if m.init() != nil {
		return
	}
	m.effectsEmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordDispatchFailure counts a delivery that failed after retries.
func (m *MetricsProvider) RecordDispatchFailure(ctx context.Context, kind string) {
	if m.init() != nil {
		return
	}
	m.dispatchFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordUnlock counts an achievement unlock.
func (m *MetricsProvider) RecordUnlock(ctx context.Context) {
	if m.init() != nil {
		return
	}
	m.unlocks.Add(ctx, 1)
}

// RecordDispatchDuration records how long one delivery took.
func (m *MetricsProvider) RecordDispatchDuration(ctx context.Context, kind string, d time.Duration) {
	if m.init() != nil {
		return
	}
	m.dispatchDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(attribute.String("kind", kind)))
}
