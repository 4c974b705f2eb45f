package external

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Busy flag defaults
const (
	DefaultStaleAfter = 5 * time.Minute
	DefaultPoll       = 100 * time.Millisecond
)

// flagSeq tells apart flags created by one process within one clock tick
var flagSeq atomic.Uint64

// BusyFlag serialises helper runs across processes with a marker file.
// While the file exists another invocation is printing. A file older than
// StaleAfter is treated as left behind by a crashed run and removed.
type BusyFlag struct {
	fs         afero.Fs
	path       string
	staleAfter time.Duration
	poll       time.Duration
	now        func() time.Time
	logger     zerolog.Logger
}

// NewBusyFlag creates a flag at path. Zero durations take the defaults.
func NewBusyFlag(fs afero.Fs, path string, staleAfter, poll time.Duration) *BusyFlag {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if poll <= 0 {
		poll = DefaultPoll
	}
	return &BusyFlag{
		fs:         fs,
		path:       path,
		staleAfter: staleAfter,
		poll:       poll,
		now:        time.Now,
		logger:     logging.GetLogger("external.busy"),
	}
}

// Path returns the flag file location
func (b *BusyFlag) Path() string {
	return b.path
}

// Busy reports whether a live flag exists. A stale flag is removed.
func (b *BusyFlag) Busy() (bool, error) {
	info, err := b.fs.Stat(b.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if age := b.now().Sub(info.ModTime()); age > b.staleAfter {
		b.logger.Warn().Str("flag", b.path).Dur("age", age).Msg("Removing stale busy flag")
		if err := b.remove(); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// Acquire creates the flag exclusively, waiting while a live flag held by
// another run exists. Waiting longer than StaleAfter removes that flag and
// tries again. Cancelling ctx while waiting fails with PRINTER_BUSY. The
// returned release removes the flag unless another run has replaced it.
func (b *BusyFlag) Acquire(ctx context.Context) (release func(), err error) {
	start := b.now()
	waited := false
	for {
		token, cerr := b.create()
		if cerr == nil {
			return b.releaser(token), nil
		}
		if !os.IsExist(cerr) {
			return nil, errors.Wrapf(cerr, errors.ErrPrinterBusy, "cannot create busy flag %s", b.path).
				WithDetail("flag", b.path)
		}

		busy, err := b.Busy()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPrinterBusy, "cannot inspect busy flag %s", b.path).
				WithDetail("flag", b.path)
		}
		if !busy {
			continue
		}
		if b.now().Sub(start) > b.staleAfter {
			b.logger.Warn().Str("flag", b.path).Msg("Gave up waiting for busy flag, removing it")
			if err := b.remove(); err != nil {
				return nil, errors.Wrapf(err, errors.ErrPrinterBusy, "cannot remove busy flag %s", b.path).
					WithDetail("flag", b.path)
			}
			continue
		}
		if !waited {
			b.logger.Info().Str("flag", b.path).Msg("Another print is in progress, waiting")
			waited = true
		}
		timer := time.NewTimer(b.poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Wrap(ctx.Err(), errors.ErrPrinterBusy, "gave up waiting for another print to finish").
				WithDetail("flag", b.path)
		case <-timer.C:
		}
	}
}

// create makes the flag only if it does not exist yet and stamps it with
// a token identifying this holder
func (b *BusyFlag) create() (string, error) {
	f, err := b.fs.OpenFile(b.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	token := fmt.Sprintf("%d %d %d\n", os.Getpid(), b.now().UnixNano(), flagSeq.Add(1))
	_, werr := f.WriteString(token)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = b.remove()
		return "", werr
	}
	return token, nil
}

func (b *BusyFlag) releaser(token string) func() {
	return func() {
		data, err := afero.ReadFile(b.fs, b.path)
		if os.IsNotExist(err) {
			return
		}
		if err != nil {
			b.logger.Warn().Err(err).Str("flag", b.path).Msg("Failed to read busy flag")
			return
		}
		if string(data) != token {
			b.logger.Warn().Str("flag", b.path).Msg("Busy flag now belongs to another run, leaving it")
			return
		}
		if err := b.remove(); err != nil {
			b.logger.Warn().Err(err).Str("flag", b.path).Msg("Failed to remove busy flag")
		}
	}
}

func (b *BusyFlag) remove() error {
	err := b.fs.Remove(b.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
