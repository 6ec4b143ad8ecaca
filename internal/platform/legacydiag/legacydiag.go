// Package legacydiag is the single signalling channel for uses of deprecated
// base58 codec paths. Call sites report through Warn; operators watch the
// counter to see legacy traffic drain during migration, and logs carry a
// throttled structured warning so a hot loop cannot flood them.
package legacydiag

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

// Event describes one use of a deprecated legacy codec path.
type Event struct {
	Op     string
	Detail string
}

var legacyCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "aster_legacy_codec_calls_total",
	Help: "Uses of deprecated base58 codec paths, by operation.",
}, []string{"op"})

var (
	mu       sync.RWMutex
	logger   *slog.Logger
	observer func(Event)
	enabled  = true

	throttle = rate.Sometimes{First: 1, Interval: 30 * time.Second}
)

// Warn reports one use of a deprecated path. It never fails and never blocks;
// deprecation is a diagnostic, not an error.
func Warn(op, detail string) {
	legacyCalls.WithLabelValues(op).Inc()

	mu.RLock()
	obs, log, on := observer, logger, enabled
	mu.RUnlock()

	if obs != nil {
		obs(Event{Op: op, Detail: detail})
	}
	if !on {
		return
	}
	if log == nil {
		log = slog.Default()
	}
	throttle.Do(func() {
		log.Warn("deprecated legacy codec path used", "op", op, "detail", detail)
	})
}

// SetLogger overrides the destination for throttled warnings. Passing nil
// restores slog.Default.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetObserver registers a hook that receives every event, unthrottled.
// Tests use this to assert that deprecated paths actually signal.
func SetObserver(fn func(Event)) {
	mu.Lock()
	defer mu.Unlock()
	observer = fn
}

// SetEnabled toggles log emission. The counter and observer stay active so
// migration tracking keeps working even when warnings are silenced.
func SetEnabled(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
}
