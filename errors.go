package cayley

import (
	"errors"
	"fmt"

	"github.com/hupe1980/cayley/internal/dedup"
	"github.com/hupe1980/cayley/internal/resource"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrResourceExhausted is returned when a batch or layer does not fit the
	// memory budget even after reclaiming.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrNotInverseClosed is returned when the two-layer seen set is requested
	// for a generator set that is not closed under inversion.
	ErrNotInverseClosed = errors.New("generators are not inverse-closed")

	// ErrHashCollision is returned by searches with collision checking when
	// two distinct states share a hash.
	ErrHashCollision = dedup.ErrHashCollision
)

// ConfigError indicates an invalid graph definition or option.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Field  string
	Reason string
	cause  error
}

func (e *ConfigError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.cause)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

func configErrorf(field string, cause error, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...), cause: cause}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	}

	return err
}
