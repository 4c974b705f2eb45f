//go:build !windows

package spool

import (
	"bytes"
	"os/exec"
	"strings"
)

// lpAPI drives CUPS through the lp and lpstat commands. A job is buffered
// while the page is open and handed to lp with -o raw when the document
// ends, so the printer sees the bytes unmodified.
type lpAPI struct {
	lp     string
	lpstat string
}

// NewPlatformAPI returns the CUPS backed API
func NewPlatformAPI() API {
	return lpAPI{lp: "lp", lpstat: "lpstat"}
}

func (a lpAPI) Open(printerName string) (Handle, error) {
	out, err := exec.Command(a.lpstat, "-p", printerName).CombinedOutput()
	if err != nil {
		return nil, &OpError{Op: "lpstat", Code: exitCode(err), Err: commandError(err, out)}
	}
	return &lpHandle{api: a, printer: printerName}, nil
}

type lpHandle struct {
	api     lpAPI
	printer string
	doc     DocInfo
	buf     bytes.Buffer
	started bool
	paged   bool
}

func (h *lpHandle) StartDoc(doc DocInfo) (uint32, error) {
	h.doc = doc
	h.started = true
	h.paged = false
	h.buf.Reset()
	return 1, nil
}

func (h *lpHandle) StartPage() error {
	return nil
}

func (h *lpHandle) Write(p []byte) (int, error) {
	return h.buf.Write(p)
}

func (h *lpHandle) EndPage() error {
	h.paged = true
	return nil
}

// EndDoc submits the buffered bytes as one raw job. A document ended
// without a completed page is dropped.
func (h *lpHandle) EndDoc() error {
	if !h.started || !h.paged {
		h.started = false
		return nil
	}
	h.started = false
	args := []string{"-d", h.printer, "-t", h.doc.Name}
	if strings.EqualFold(h.doc.Datatype, DefaultDatatype) {
		args = append(args, "-o", "raw")
	}
	args = append(args, "-")
	cmd := exec.Command(h.api.lp, args...)
	cmd.Stdin = bytes.NewReader(h.buf.Bytes())
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &OpError{Op: "lp", Code: exitCode(err), Err: commandError(err, out)}
	}
	return nil
}

func (h *lpHandle) Close() error {
	h.buf.Reset()
	return nil
}

func exitCode(err error) int64 {
	if ee, ok := err.(*exec.ExitError); ok {
		return int64(ee.ExitCode())
	}
	return -1
}

func commandError(err error, out []byte) error {
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		return err
	}
	return &cmdError{err: err, output: msg}
}

type cmdError struct {
	err    error
	output string
}

func (e *cmdError) Error() string { return e.err.Error() + ": " + e.output }
func (e *cmdError) Unwrap() error { return e.err }
