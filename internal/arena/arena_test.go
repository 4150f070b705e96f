package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcquirer struct {
	used  int64
	limit int64
}

var errFull = errors.New("full")

func (f *fakeAcquirer) AcquireMemory(bytes int64) error {
	if f.limit > 0 && f.used+bytes > f.limit {
		return errFull
	}
	f.used += bytes
	return nil
}

func (f *fakeAcquirer) ReleaseMemory(bytes int64) { f.used -= bytes }

func TestArena_ReservesAndFrees(t *testing.T) {
	acq := &fakeAcquirer{}
	a := New(acq)

	buf, err := a.Words(16)
	require.NoError(t, err)
	assert.Len(t, buf, 16)
	assert.Equal(t, int64(128), acq.used)

	_, err = a.Words(4)
	require.NoError(t, err)
	assert.Equal(t, int64(160), acq.used)

	stats := a.Stats()
	assert.Equal(t, int64(2), stats.Allocs)
	assert.Equal(t, int64(160), stats.PeakReserved)

	a.Free()
	assert.Zero(t, acq.used)
	assert.Zero(t, a.Stats().BytesReserved)

	_, err = a.Words(1)
	assert.ErrorIs(t, err, ErrFreed)
	a.Free() // idempotent
}

func TestArena_ReusesReturnedBuffers(t *testing.T) {
	acq := &fakeAcquirer{}
	a := New(acq)

	big, err := a.Words(32)
	require.NoError(t, err)
	small, err := a.Words(8)
	require.NoError(t, err)
	big[0] = 42
	a.Put(big)
	a.Put(small)

	// Smallest fitting buffer wins.
	got, err := a.Words(6)
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Equal(t, 8, cap(got))

	got, err = a.Words(20)
	require.NoError(t, err)
	assert.Zero(t, got[0], "reused buffers are cleared")

	stats := a.Stats()
	assert.Equal(t, int64(2), stats.Allocs)
	assert.Equal(t, int64(2), stats.Reuses)
	assert.Equal(t, int64(320), acq.used)
}

func TestArena_PropagatesLimit(t *testing.T) {
	a := New(&fakeAcquirer{limit: 64})

	_, err := a.Words(8)
	require.NoError(t, err)

	_, err = a.Words(1)
	assert.ErrorIs(t, err, errFull)
}

func TestArena_NilAcquirer(t *testing.T) {
	a := New(nil)
	buf, err := a.Words(3)
	require.NoError(t, err)
	assert.Len(t, buf, 3)
	a.Free()
}

func TestArena_DropsSmallerBuffersWhenGrowing(t *testing.T) {
	acq := &fakeAcquirer{}
	a := New(acq)

	small, err := a.Words(4)
	require.NoError(t, err)
	hashes, err := a.Words(2)
	require.NoError(t, err)
	a.Put(small)
	a.Put(hashes)
	assert.Equal(t, int64(48), acq.used)

	big, err := a.Words(8)
	require.NoError(t, err)
	assert.Len(t, big, 8)
	assert.Equal(t, int64(64), acq.used)

	stats := a.Stats()
	assert.Equal(t, int64(64), stats.BytesReserved)
	assert.Equal(t, int64(2), stats.Drops)

	a.Free()
	assert.Zero(t, acq.used)
}

func TestArena_GrowingRequestsStayWithinPeak(t *testing.T) {
	// Each request alone fits the limit; together they would not.
	a := New(&fakeAcquirer{limit: 100})

	for n := 1; n <= 12; n++ {
		buf, err := a.Words(n)
		require.NoError(t, err, "n=%d", n)
		a.Put(buf)
	}

	stats := a.Stats()
	assert.Equal(t, int64(96), stats.BytesReserved)
	assert.Equal(t, int64(96), stats.PeakReserved)
	a.Free()
}
