package external

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusyFlagAcquireRelease(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewBusyFlag(fs, "/app/printing.flag", time.Minute, time.Millisecond)

	release, err := b.Acquire(context.Background())
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, "/app/printing.flag")
	assert.True(t, exists)

	busy, err := b.Busy()
	require.NoError(t, err)
	assert.True(t, busy)

	release()
	exists, _ = afero.Exists(fs, "/app/printing.flag")
	assert.False(t, exists)
}

func TestBusyFlagStaleIsRemoved(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/printing.flag", nil, 0644))
	old := time.Now().Add(-10 * time.Minute)
	require.NoError(t, fs.Chtimes("/printing.flag", old, old))

	b := NewBusyFlag(fs, "/printing.flag", 5*time.Minute, time.Millisecond)
	busy, err := b.Busy()
	require.NoError(t, err)
	assert.False(t, busy)

	exists, _ := afero.Exists(fs, "/printing.flag")
	assert.False(t, exists)
}

func TestBusyFlagWaitsThenGivesUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/printing.flag", nil, 0644))

	b := NewBusyFlag(fs, "/printing.flag", time.Hour, time.Millisecond)
	// every clock read advances ten minutes
	base := time.Now()
	ticks := 0
	b.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * 10 * time.Minute)
	}

	release, err := b.Acquire(context.Background())
	require.NoError(t, err)
	defer release()
	assert.Greater(t, ticks, 2)
}

func TestBusyFlagCancelledWhileWaiting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/printing.flag", nil, 0644))

	b := NewBusyFlag(fs, "/printing.flag", time.Hour, 5*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := b.Acquire(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrinterBusy))
	assert.Equal(t, "/printing.flag", errors.GetErrorDetails(err)["flag"])
}

func TestBusyFlagDefaults(t *testing.T) {
	b := NewBusyFlag(afero.NewMemMapFs(), "/f", 0, 0)
	assert.Equal(t, DefaultStaleAfter, b.staleAfter)
	assert.Equal(t, DefaultPoll, b.poll)
	assert.Equal(t, "/f", b.Path())
}

func TestBusyFlagExistingFlagIsNotOverwritten(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/printing.flag", []byte("other run\n"), 0644))

	b := NewBusyFlag(fs, "/printing.flag", time.Hour, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := b.Acquire(ctx)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrinterBusy))

	data, err := afero.ReadFile(fs, "/printing.flag")
	require.NoError(t, err)
	assert.Equal(t, "other run\n", string(data))
}

func TestBusyFlagReleaseLeavesReplacedFlag(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewBusyFlag(fs, "/printing.flag", time.Minute, time.Millisecond)

	release, err := b.Acquire(context.Background())
	require.NoError(t, err)

	// another run took the flag over after treating ours as stale
	require.NoError(t, afero.WriteFile(fs, "/printing.flag", []byte("successor\n"), 0644))
	release()

	data, err := afero.ReadFile(fs, "/printing.flag")
	require.NoError(t, err)
	assert.Equal(t, "successor\n", string(data))
}

func TestBusyFlagSerialisesConcurrentRuns(t *testing.T) {
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "printing.flag")

	var holders, maxHolders atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := NewBusyFlag(fs, path, time.Hour, time.Millisecond)
			release, err := b.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			n := holders.Add(1)
			for {
				m := maxHolders.Load()
				if n <= m || maxHolders.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			holders.Add(-1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxHolders.Load())
	exists, _ := afero.Exists(fs, path)
	assert.False(t, exists)
}
