package cayley

import (
	"log/slog"
	"time"

	"github.com/hupe1980/cayley/internal/apply"
	"github.com/hupe1980/cayley/internal/bitpack"
	"github.com/hupe1980/cayley/internal/hash"
	"github.com/hupe1980/cayley/internal/resource"
)

const (
	// DefaultBatchSize is the default number of states expanded per chunk.
	DefaultBatchSize = apply.DefaultBatchSize

	// DefaultHashChunkSize is the default number of rows hashed per chunk.
	DefaultHashChunkSize = hash.DefaultChunkSize

	// DefaultMemoryLimit is the default scratch memory budget (16 GiB).
	DefaultMemoryLimit int64 = 16 << 30

	// DefaultReleaseFraction is the default budget share that triggers a reclaim.
	DefaultReleaseFraction = resource.DefaultReleaseFraction

	// DefaultRandomSeed seeds the state hasher unless WithRandomSeed is given.
	DefaultRandomSeed int64 = 42
)

type encodingMode int

const (
	encodingAuto encodingMode = iota
	encodingExplicit
	encodingDisabled
)

type options struct {
	encoding           encodingMode
	bitWidth           int
	batchSize          int
	hashChunkSize      int
	memoryLimit        int64
	releaseFraction    float64
	minReleaseInterval time.Duration
	seed               int64
	parallelism        int
	collisionCheck     bool
	metricsCollector   MetricsCollector
	logger             *Logger
}

// Option configures a Graph.
type Option func(*options)

// WithBitEncodingWidth packs each state element into width bits (1-63).
//
// By default the width is the smallest one covering the central state and
// packing is disabled when the central state has negative values. Matrix
// graphs are never packed; requesting a width for them is a configuration
// error.
func WithBitEncodingWidth(width int) Option {
	return func(o *options) {
		o.encoding = encodingExplicit
		o.bitWidth = width
	}
}

// WithoutBitEncoding stores one word per state element.
func WithoutBitEncoding() Option {
	return func(o *options) {
		o.encoding = encodingDisabled
		o.bitWidth = 0
	}
}

// WithBatchSize sets how many states are expanded per chunk.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithHashChunkSize sets how many rows are hashed per chunk.
func WithHashChunkSize(n int) Option {
	return func(o *options) {
		o.hashChunkSize = n
	}
}

// WithMemoryLimit sets the scratch memory budget in bytes. 0 disables the
// limit and with it every reclaim triggered by large estimates.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithReleaseFraction sets the share of the memory budget an estimated
// allocation may reach before memory is reclaimed.
func WithReleaseFraction(f float64) Option {
	return func(o *options) {
		o.releaseFraction = f
	}
}

// WithMinReleaseInterval throttles memory reclaims to at most one per d.
func WithMinReleaseInterval(d time.Duration) Option {
	return func(o *options) {
		o.minReleaseInterval = d
	}
}

// WithRandomSeed sets the seed of the state hasher. Graphs built with the
// same seed produce the same hashes.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithParallelism bounds the goroutines used inside one batch operation.
// If n <= 0, GOMAXPROCS is used.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithCollisionCheck compares the full states of every group of equal hashes
// during deduplication and fails with ErrHashCollision when they differ.
// It has no effect when states fit a single word, since hashes are exact then.
func WithCollisionCheck() Option {
	return func(o *options) {
		o.collisionCheck = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring searches.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &cayley.BasicMetricsCollector{}
//	g, _ := cayley.New(def, cayley.WithMetricsCollector(metrics))
//	// ... run searches ...
//	stats := metrics.GetStats()
//	fmt.Printf("Layers: %d, Max layer: %d\n", stats.LayerCount, stats.MaxLayerSize)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for searches.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := cayley.NewJSONLogger(slog.LevelDebug)
//	g, _ := cayley.New(def, cayley.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		encoding:         encodingAuto,
		batchSize:        DefaultBatchSize,
		hashChunkSize:    DefaultHashChunkSize,
		memoryLimit:      DefaultMemoryLimit,
		releaseFraction:  DefaultReleaseFraction,
		seed:             DefaultRandomSeed,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o *options) validate() error {
	if o.encoding == encodingExplicit && (o.bitWidth < 1 || o.bitWidth > bitpack.MaxWidth) {
		return configErrorf("bit encoding width", bitpack.ErrInvalidWidth, "got %d, want 1-%d", o.bitWidth, bitpack.MaxWidth)
	}
	if o.batchSize <= 0 {
		return configErrorf("batch size", nil, "must be positive, got %d", o.batchSize)
	}
	if o.hashChunkSize <= 0 {
		return configErrorf("hash chunk size", nil, "must be positive, got %d", o.hashChunkSize)
	}
	if o.memoryLimit < 0 {
		return configErrorf("memory limit", nil, "must not be negative, got %d", o.memoryLimit)
	}
	if o.releaseFraction <= 0 || o.releaseFraction > 1 {
		return configErrorf("release fraction", nil, "must be in (0, 1], got %g", o.releaseFraction)
	}
	return nil
}
