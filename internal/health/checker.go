// Package health tracks liveness of the engine's runtime dependencies. The
// service has exactly one today, the activation store, but the aggregate
// keeps a checker list so a second dependency slots in without touching the
// endpoint wiring.
package health

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthPinger is an optional fast path a store can expose. HealthPing must
// return nil when the component can serve requests.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// HealthChecker is a component-level checker that caches its own status;
// IsHealthy must never block on I/O.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceHealthChecker folds component checkers into the single flag served
// by the health endpoint. It starts unhealthy and flips only on evaluation,
// so startup gating sees a real probe result rather than a default.
type ServiceHealthChecker struct {
	up   atomic.Bool
	deps []HealthChecker
	log  zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy reports the cached aggregate without touching any dependency.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.up.Load() }

// Start re-evaluates the aggregate on every tick until ctx is cancelled.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		h.evaluate()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// evaluate recomputes the flag and logs transitions once, naming the
// dependencies that are down.
func (h *ServiceHealthChecker) evaluate() {
	var down []string
	for _, dep := range h.deps {
		if !dep.IsHealthy() {
			down = append(down, dep.Name())
		}
	}

	now := len(down) == 0
	if was := h.up.Swap(now); was == now {
		return
	}
	if now {
		h.log.Info().Msg("service healthy")
	} else {
		h.log.Error().Str("unhealthy", strings.Join(down, ",")).Msg("service unhealthy")
	}
}
