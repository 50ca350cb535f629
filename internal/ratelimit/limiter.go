package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/void-adarsh/Notes-App/internal/metrics"
)

const (
	DefaultWindow = 15 * time.Minute
	DefaultMax    = 100
)

// Config fixes the limiter's behavior for the life of the process.
type Config struct {
	Window time.Duration
	Max    int
	// MaxClients caps the number of tracked client windows. Zero means no cap.
	MaxClients int
}

// Decision is the outcome of one Admit call.
type Decision struct {
	Allowed   bool
	Count     int
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is the time left in the current window.
	RetryAfter time.Duration
}

type counter struct {
	count       int
	windowStart time.Time
}

// FixedWindow counts requests per client key in discrete windows. The
// counter keeps growing after the limit is hit, so a rejected client stays
// rejected until its window rolls over.
type FixedWindow struct {
	cfg      Config
	now      func() time.Time
	log      *zap.Logger
	mu       sync.Mutex
	counters map[string]*counter
}

// NewFixedWindow builds a limiter. A nil clock means time.Now.
func NewFixedWindow(cfg Config, now func() time.Time, log *zap.Logger) (*FixedWindow, error) {
	if cfg.Window <= 0 {
		return nil, errors.New("rate limit window must be positive")
	}
	if cfg.Max <= 0 {
		return nil, errors.New("rate limit max must be positive")
	}
	if cfg.MaxClients < 0 {
		return nil, errors.New("rate limit max clients must not be negative")
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FixedWindow{
		cfg:      cfg,
		now:      now,
		log:      log,
		counters: make(map[string]*counter),
	}, nil
}

// Admit records a request from key at the limiter's current time.
func (l *FixedWindow) Admit(_ context.Context, key string) (Decision, error) {
	return l.AdmitAt(key, l.now()), nil
}

// AdmitAt records a request from key at now.
func (l *FixedWindow) AdmitAt(key string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok {
		if l.cfg.MaxClients > 0 && len(l.counters) >= l.cfg.MaxClients {
			l.makeRoom(now)
		}
		c = &counter{windowStart: now}
		l.counters[key] = c
		metrics.RateLimitTrackedClients.Set(float64(len(l.counters)))
	}

	if now.Sub(c.windowStart) >= l.cfg.Window {
		c.count = 0
		c.windowStart = now
	}

	c.count++

	remaining := l.cfg.Max - c.count
	if remaining < 0 {
		remaining = 0
	}
	resetAt := c.windowStart.Add(l.cfg.Window)
	return Decision{
		Allowed:    c.count <= l.cfg.Max,
		Count:      c.count,
		Limit:      l.cfg.Max,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: resetAt.Sub(now),
	}
}

// makeRoom frees one slot. Expired windows go first; if none expired, the
// client with the oldest window is dropped. Caller holds l.mu.
func (l *FixedWindow) makeRoom(now time.Time) {
	if l.sweepLocked(now) > 0 {
		return
	}

	var (
		oldestKey string
		oldest    time.Time
	)
	for key, c := range l.counters {
		if oldestKey == "" || c.windowStart.Before(oldest) {
			oldestKey, oldest = key, c.windowStart
		}
	}
	if oldestKey != "" {
		delete(l.counters, oldestKey)
		metrics.RateLimitEvictionsTotal.WithLabelValues("capacity").Inc()
		l.log.Warn("rate limiter at capacity, evicted oldest client window",
			zap.String("client", oldestKey), zap.Int("max_clients", l.cfg.MaxClients))
	}
}

// Sweep drops every client whose window has expired at now. Such a client
// would start a fresh window on its next request anyway.
func (l *FixedWindow) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(now)
}

func (l *FixedWindow) sweepLocked(now time.Time) int {
	removed := 0
	for key, c := range l.counters {
		if now.Sub(c.windowStart) >= l.cfg.Window {
			delete(l.counters, key)
			removed++
		}
	}
	if removed > 0 {
		metrics.RateLimitEvictionsTotal.WithLabelValues("sweep").Add(float64(removed))
	}
	metrics.RateLimitTrackedClients.Set(float64(len(l.counters)))
	return removed
}

// Run sweeps expired windows every interval until ctx is cancelled.
func (l *FixedWindow) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = l.cfg.Window
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := l.Sweep(l.now()); n > 0 {
				l.log.Debug("swept expired rate limit windows", zap.Int("removed", n))
			}
		}
	}
}

// Len returns the number of tracked clients.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}
