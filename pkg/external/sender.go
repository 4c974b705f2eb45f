package external

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/rs/zerolog"
)

// SenderOptions configures a Sender
type SenderOptions struct {
	// Timeout bounds the helper run; zero waits indefinitely
	Timeout time.Duration
	// CheckExitCode turns a non-zero helper exit into HELPER_FAILED
	CheckExitCode bool
	// Busy serialises helper runs when set
	Busy *BusyFlag
}

// Sender delivers documents through an ExternalPrinter
type Sender struct {
	printer ExternalPrinter
	opts    SenderOptions
	logger  zerolog.Logger
}

// NewSender creates a sender around printer
func NewSender(printer ExternalPrinter, opts SenderOptions) *Sender {
	return &Sender{
		printer: printer,
		opts:    opts,
		logger:  logging.GetLogger("external"),
	}
}

// SendViaExternal runs the helper for one file and maps its outcome onto
// the error taxonomy.
func (s *Sender) SendViaExternal(ctx context.Context, printerName, filePath string) error {
	if s.opts.Busy != nil {
		release, err := s.opts.Busy.Acquire(ctx)
		if err != nil {
			return err
		}
		defer release()
	}

	runCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	s.logger.Info().
		Str("printer", printerName).
		Str("file", filePath).
		Dur("timeout", s.opts.Timeout).
		Msg("Handing document to helper")

	status, err := s.printer.ConvertAndPrint(runCtx, filePath, printerName)
	if err != nil {
		var launchErr *LaunchError
		switch {
		case stderrors.As(err, &launchErr):
			return errors.Wrapf(err, errors.ErrProcessLaunchFailed, "failed to launch %s", launchErr.Helper).
				WithDetail("helper", launchErr.Helper)
		case stderrors.Is(err, context.DeadlineExceeded):
			return errors.Wrapf(err, errors.ErrHelperTimeout, "helper did not finish within %s", s.opts.Timeout).
				WithDetail("timeout", s.opts.Timeout.String())
		default:
			return errors.Wrap(err, errors.ErrHelperFailed, "helper did not complete").
				WithDetail(errors.DetailCode, status.Code)
		}
	}

	if !status.Success() {
		if s.opts.CheckExitCode {
			return errors.Newf(errors.ErrHelperFailed, "helper exited with code %d", status.Code).
				WithDetail(errors.DetailCode, status.Code).
				WithDetail("printer", printerName)
		}
		s.logger.Warn().Int("exitCode", status.Code).Msg("Helper exited non-zero, ignoring")
	}

	s.logger.Info().Dur("duration", status.Duration).Msg("Helper finished")
	return nil
}
