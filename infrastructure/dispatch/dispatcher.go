// Package dispatch executes lifecycle effects against downstream services.
//
// The dispatcher is fire-and-forget: Dispatch returns before any network
// call is made, every delivery runs detached from the caller's request with
// its own bounded timeout, and failures are logged, never propagated. The
// state transition that produced an effect is successful regardless of what
// happens here.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/launchpad/domain/effect"
	"github.com/felixgeelhaar/launchpad/infrastructure/logging"
	"github.com/felixgeelhaar/launchpad/infrastructure/telemetry"
)

// Config configures the dispatcher.
type Config struct {
	// Timeout bounds each delivery attempt chain.
	Timeout time.Duration
	// Notifications receives notify effects.
	Notifications NotificationService
	// XP receives award_xp effects.
	XP XPService
	// Identity receives elevate_role effects.
	Identity IdentityService
	// Registry deduplicates exactly-once effects. Optional; when nil every
	// effect is delivered.
	Registry IdempotencyRegistry
}

// Dispatcher implements effect.Dispatcher.
type Dispatcher struct {
	config   Config
	wg       sync.WaitGroup
	closed   bool
	closedMu sync.RWMutex
}

// New creates a dispatcher.
func New(config Config) *Dispatcher {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &Dispatcher{config: config}
}

// Dispatch schedules each effect for independent delivery and returns
// immediately. The deliveries use a context detached from the caller's, so
// the triggering request finishing (or being cancelled) does not abort them.
func (d *Dispatcher) Dispatch(ctx context.Context, effects ...effect.Effect) {
	d.closedMu.RLock()
	defer d.closedMu.RUnlock()
	if d.closed {
		logging.Warn().Add(logging.ErrorField(ErrDispatcherClosed)).Msg("dropping effects")
		return
	}

	base := context.WithoutCancel(ctx)
	for _, e := range effects {
		telemetry.Metrics().RecordEffect(ctx, string(e.Kind))
		d.wg.Add(1)
		go func(e effect.Effect) {
			defer d.wg.Done()
			d.deliver(base, e)
		}(e)
	}
}

// Close waits for in-flight deliveries to drain.
func (d *Dispatcher) Close() error {
	d.closedMu.Lock()
	d.closed = true
	d.closedMu.Unlock()

	d.wg.Wait()
	return nil
}

// deliver routes one effect to its target service. Failures are logged and
// absorbed here; nothing escapes to the producer.
func (d *Dispatcher) deliver(ctx context.Context, e effect.Effect) {
	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	if key := e.IdempotencyKey(); key != "" && d.config.Registry != nil {
		first, err := d.config.Registry.Register(ctx, key)
		if err != nil {
			// Fail open: an unreachable registry must not silently drop the
			// effect, a duplicate delivery is the lesser harm.
			logging.Warn().
				Add(logging.EffectID(e.ID)).
				Add(logging.EffectKind(e.Kind)).
				Add(logging.ErrorField(err)).
				Msg("idempotency registry unavailable, delivering anyway")
		} else if !first {
			logging.Debug().
				Add(logging.EffectID(e.ID)).
				Add(logging.EffectKind(e.Kind)).
				Msg("duplicate effect suppressed")
			return
		}
	}

	start := time.Now()
	switch e.Kind {
	case effect.KindNotify:
		d.deliverNotify(ctx, e)
	case effect.KindAwardXP:
		if d.config.XP == nil || e.AwardXP == nil {
			return
		}
		d.deliverOne(ctx, e, "xp", func() error {
			return d.config.XP.AwardXP(ctx, *e.AwardXP)
		})
	case effect.KindElevateRole:
		if d.config.Identity == nil || e.ElevateRole == nil {
			return
		}
		d.deliverOne(ctx, e, "identity", func() error {
			return d.config.Identity.GrantRole(ctx, *e.ElevateRole)
		})
	default:
		logging.Error().
			Add(logging.EffectID(e.ID)).
			Add(logging.EffectKind(e.Kind)).
			Add(logging.ErrorField(ErrUnroutableEffect)).
			Msg("effect dropped")
		return
	}
	telemetry.Metrics().RecordDispatchDuration(ctx, string(e.Kind), time.Since(start))
}

// deliverNotify fans a notification out to each recipient independently, so
// one recipient's failure cannot block delivery to the others.
func (d *Dispatcher) deliverNotify(ctx context.Context, e effect.Effect) {
	if d.config.Notifications == nil || e.Notify == nil {
		return
	}

	var wg sync.WaitGroup
	for _, userID := range e.Notify.UserIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if err := d.config.Notifications.CreateNotification(ctx, userID, *e.Notify); err != nil {
				telemetry.Metrics().RecordDispatchFailure(ctx, string(e.Kind))
				logging.Error().
					Add(logging.EffectID(e.ID)).
					Add(logging.EffectKind(e.Kind)).
					Add(logging.Target("notifications")).
					Add(logging.UserID(userID)).
					Add(logging.ErrorField(err)).
					Msg("effect delivery failed")
			}
		}(userID)
	}
	wg.Wait()
}

// deliverOne executes a single-target delivery.
func (d *Dispatcher) deliverOne(ctx context.Context, e effect.Effect, target string, send func() error) {
	if err := send(); err != nil {
		telemetry.Metrics().RecordDispatchFailure(ctx, string(e.Kind))
		logging.Error().
			Add(logging.EffectID(e.ID)).
			Add(logging.EffectKind(e.Kind)).
			Add(logging.Target(target)).
			Add(logging.ErrorField(err)).
			Msg("effect delivery failed")
	}
}
