// Package spool sends a file to a printer's spool queue byte for byte.
//
// The print subsystem is reached through the API interface so the job
// protocol can be exercised without a real printer. Every failure unwinds
// whatever has been acquired so far: the page, the job and the printer
// handle, in reverse order.
package spool

import (
	"context"
	"fmt"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Defaults for the document info handed to the spooler
const (
	DefaultDocumentName = "Printing File"
	DefaultDatatype     = "RAW"
)

// DocInfo describes a spooled document
type DocInfo struct {
	Name     string
	Datatype string
}

// API opens printers on the host print subsystem
type API interface {
	Open(printerName string) (Handle, error)
}

// Handle is an open printer. Calls follow the spooler protocol:
// StartDoc, StartPage, Write, EndPage, EndDoc, Close.
type Handle interface {
	StartDoc(doc DocInfo) (uint32, error)
	StartPage() error
	Write(p []byte) (int, error)
	EndPage() error
	EndDoc() error
	Close() error
}

// OpError is a failed spooler call together with its platform error code
type OpError struct {
	Op   string
	Code int64
	Err  error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (code %d)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s failed (code %d)", e.Op, e.Code)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Sender implements raw delivery on top of an API
type Sender struct {
	api    API
	fs     afero.Fs
	doc    DocInfo
	logger zerolog.Logger
}

// NewSender creates a raw sender. A zero DocInfo field takes its default.
func NewSender(api API, fs afero.Fs, doc DocInfo) *Sender {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if doc.Name == "" {
		doc.Name = DefaultDocumentName
	}
	if doc.Datatype == "" {
		doc.Datatype = DefaultDatatype
	}
	return &Sender{
		api:    api,
		fs:     fs,
		doc:    doc,
		logger: logging.GetLogger("spool"),
	}
}

// SendRaw reads filePath fully, then spools its bytes to printerName as
// a single page of a single job. The file is read before the printer is
// touched, so an unreadable file never acquires a printer handle.
func (s *Sender) SendRaw(ctx context.Context, printerName, filePath string) (err error) {
	data, rerr := afero.ReadFile(s.fs, filePath)
	if rerr != nil {
		return errors.Wrapf(rerr, errors.ErrFileUnreadable, "cannot read %s", filePath).
			WithDetail("path", filePath)
	}
	if cerr := ctx.Err(); cerr != nil {
		return errors.Wrap(cerr, errors.ErrPrinterOpenFailed, "cancelled before opening printer").
			WithDetail("printer", printerName)
	}

	s.logger.Debug().
		Str("printer", printerName).
		Str("file", filePath).
		Int("bytes", len(data)).
		Msg("Opening printer")

	h, oerr := s.api.Open(printerName)
	if oerr != nil {
		return stageError(oerr, errors.ErrPrinterOpenFailed, "failed to open printer "+printerName).
			WithDetail("printer", printerName)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Str("printer", printerName).Msg("Failed to release printer handle")
		}
	}()

	jobID, serr := h.StartDoc(s.doc)
	if serr != nil {
		return stageError(serr, errors.ErrJobStartFailed, "failed to start the print job").
			WithDetail("printer", printerName)
	}
	docOpen := true
	defer func() {
		if docOpen {
			if eerr := h.EndDoc(); eerr != nil {
				s.logger.Warn().Err(eerr).Msg("Failed to end document while unwinding")
			}
		}
	}()
	s.logger.Debug().Uint32("job", jobID).Str("datatype", s.doc.Datatype).Msg("Print job started")

	if perr := h.StartPage(); perr != nil {
		return stageError(perr, errors.ErrPageStartFailed, "failed to start a new page").
			WithDetail("printer", printerName).
			WithDetail("job", jobID)
	}
	pageOpen := true
	defer func() {
		if pageOpen {
			if eerr := h.EndPage(); eerr != nil {
				s.logger.Warn().Err(eerr).Msg("Failed to end page while unwinding")
			}
		}
	}()

	if werr := writeAll(h, data); werr != nil {
		return werr.WithDetail("printer", printerName).WithDetail("job", jobID)
	}

	pageOpen = false
	if perr := h.EndPage(); perr != nil {
		return stageError(perr, errors.ErrPageEndFailed, "failed to end the page").
			WithDetail("printer", printerName).
			WithDetail("job", jobID)
	}

	docOpen = false
	if derr := h.EndDoc(); derr != nil {
		return stageError(derr, errors.ErrJobEndFailed, "failed to end the print job").
			WithDetail("printer", printerName).
			WithDetail("job", jobID)
	}

	s.logger.Info().
		Str("printer", printerName).
		Uint32("job", jobID).
		Int("bytes", len(data)).
		Msg("Print job sent")
	return nil
}

// writeAll keeps writing until the whole buffer is accepted. A call that
// makes no progress is a failure; a short write is retried from where it
// stopped.
func writeAll(h Handle, data []byte) *errors.PrintError {
	written := 0
	for written < len(data) {
		n, err := h.Write(data[written:])
		if err != nil {
			return stageError(err, errors.ErrWriteFailed, "failed to write to the printer").
				WithDetail("written", written).
				WithDetail("total", len(data))
		}
		if n <= 0 {
			return errors.Newf(errors.ErrWriteFailed, "printer accepted %d of %d bytes", written, len(data)).
				WithDetail("written", written).
				WithDetail("total", len(data))
		}
		written += n
	}
	return nil
}

// stageError wraps err under code and copies a platform code if present
func stageError(err error, code errors.ErrorCode, message string) *errors.PrintError {
	pe := errors.Wrap(err, code, message)
	if op, ok := err.(*OpError); ok {
		pe.WithDetail(errors.DetailCode, op.Code)
	}
	return pe
}
