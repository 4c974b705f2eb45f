// Package external delivers documents through a helper program that
// converts and prints them, PDFtoPrinter by default.
//
// The helper receives the file path and printer name as separate argv
// entries, so embedded spaces and quote characters reach it intact. Its
// console window is hidden on Windows.
package external

import (
	"context"
	stderrors "errors"
	"os/exec"
	"time"

	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultHelper is the helper executable name
const DefaultHelper = "PDFtoPrinter.exe"

// ExitStatus is how the helper process ended
type ExitStatus struct {
	Code     int           `json:"code"`
	Duration time.Duration `json:"duration"`
}

// Success reports whether the helper exited with code zero
func (s ExitStatus) Success() bool {
	return s.Code == 0
}

// ExternalPrinter converts and prints a file in another process. A nil
// error means the process ran to completion; the exit status then tells
// whether it succeeded.
type ExternalPrinter interface {
	ConvertAndPrint(ctx context.Context, path, printer string) (ExitStatus, error)
}

// LaunchError means the helper could not be started
type LaunchError struct {
	Helper string
	Err    error
}

func (e *LaunchError) Error() string {
	return "cannot start " + e.Helper + ": " + e.Err.Error()
}

func (e *LaunchError) Unwrap() error { return e.Err }

// HelperPrinter runs a helper executable as `helper <path> <printer>`
type HelperPrinter struct {
	helper string
	logger zerolog.Logger
}

// NewHelperPrinter creates a printer backed by the executable at helper
func NewHelperPrinter(helper string) *HelperPrinter {
	return &HelperPrinter{
		helper: helper,
		logger: logging.GetLogger("external.helper"),
	}
}

// Helper returns the executable this printer runs
func (h *HelperPrinter) Helper() string {
	return h.helper
}

// ConvertAndPrint starts the helper and waits for it. Cancelling ctx
// kills the process and returns ctx's error.
func (h *HelperPrinter) ConvertAndPrint(ctx context.Context, path, printer string) (ExitStatus, error) {
	cmd := exec.CommandContext(ctx, h.helper, path, printer)
	hideWindow(cmd)

	h.logger.Debug().
		Str("helper", h.helper).
		Strs("args", cmd.Args[1:]).
		Msg("Starting helper")

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return ExitStatus{Code: -1}, &LaunchError{Helper: h.helper, Err: err}
	}

	err := cmd.Wait()
	status := ExitStatus{Duration: time.Since(start)}
	if cmd.ProcessState != nil {
		status.Code = cmd.ProcessState.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return status, ctxErr
	}

	var exitErr *exec.ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		return status, err
	}

	h.logger.Debug().
		Int("exitCode", status.Code).
		Dur("duration", status.Duration).
		Msg("Helper finished")
	return status, nil
}
