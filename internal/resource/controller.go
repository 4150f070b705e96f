package resource

import (
	"errors"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// DefaultReleaseFraction is the budget share above which MaybeRelease reclaims.
const DefaultReleaseFraction = 0.2

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for reserved memory.
	// If 0, no hard limit is enforced (only tracking) and MaybeRelease never fires.
	MemoryLimitBytes int64

	// ReleaseFraction is the share of MemoryLimitBytes an estimated allocation
	// may reach before MaybeRelease reclaims memory.
	// If 0, defaults to DefaultReleaseFraction.
	ReleaseFraction float64

	// MinReleaseInterval rate-limits reclaim. If 0, every request reclaims.
	MinReleaseInterval time.Duration

	// OnRelease runs after the runtime reclaim, e.g. to flush a device cache.
	OnRelease func()
}

// Controller governs scratch memory of graph searches.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Reclaim
	limiter  *rate.Limiter // nil if unthrottled
	releases atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.ReleaseFraction <= 0 {
		cfg.ReleaseFraction = DefaultReleaseFraction
	}

	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.MinReleaseInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.MinReleaseInterval), 1)
	}

	return c
}

// AcquireMemory reserves bytes. If the reservation does not fit, memory is
// reclaimed once and the reservation retried; a second failure returns
// ErrMemoryLimitExceeded.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		c.Release()
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// Threshold returns the estimated size above which MaybeRelease reclaims
// (0 if unlimited).
func (c *Controller) Threshold() int64 {
	if c == nil || c.cfg.MemoryLimitBytes <= 0 {
		return 0
	}
	return int64(c.cfg.ReleaseFraction * float64(c.cfg.MemoryLimitBytes))
}

// MaybeRelease reclaims memory if estimatedBytes crosses the release
// threshold. It reports whether a reclaim ran.
func (c *Controller) MaybeRelease(estimatedBytes int64) bool {
	threshold := c.Threshold()
	if threshold <= 0 || estimatedBytes <= threshold {
		return false
	}
	return c.Release()
}

// Release reclaims unreachable scratch memory. It never fails; the result
// reports whether reclaim ran or was throttled.
func (c *Controller) Release() bool {
	if c == nil {
		return false
	}
	if c.limiter != nil && !c.limiter.Allow() {
		return false
	}

	runtime.GC()
	debug.FreeOSMemory()
	if c.cfg.OnRelease != nil {
		c.cfg.OnRelease()
	}

	c.releases.Add(1)
	return true
}

// Releases returns how many reclaims have run.
func (c *Controller) Releases() int64 {
	if c == nil {
		return 0
	}
	return c.releases.Load()
}
