// Package resource implements the memory governor shared by graph searches.
//
// The Controller provides two services:
//
//   - Reservations: AcquireMemory/ReleaseMemory track scratch buffers against
//     a hard budget (non-blocking, fail-fast). A reservation that does not fit
//     triggers one reclaim attempt before failing with ErrMemoryLimitExceeded.
//   - Reclaim: Release asks the runtime to collect unreachable scratch
//     allocations and return freed pages to the OS, then runs any registered
//     reclaim hooks (for example, a device allocator cache). MaybeRelease does
//     so only when an estimated footprint crosses ReleaseFraction of the budget.
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 16 << 30,
//	    ReleaseFraction:  0.2,
//	})
//
//	rc.MaybeRelease(estimatedBytes)
//	if err := rc.AcquireMemory(n); err != nil {
//	    // ErrMemoryLimitExceeded: shrink the exploration limits
//	}
//	defer rc.ReleaseMemory(n)
//
// # Throttling
//
// With MinReleaseInterval set, reclaim runs at most once per interval; a
// token-bucket limiter drops the surplus calls. Release is best effort and has
// no observable result beyond the Releases counter.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully: they become no-ops.
package resource
