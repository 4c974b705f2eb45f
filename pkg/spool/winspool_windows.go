//go:build windows

package spool

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modwinspool = windows.NewLazySystemDLL("winspool.drv")

	procOpenPrinterW     = modwinspool.NewProc("OpenPrinterW")
	procClosePrinter     = modwinspool.NewProc("ClosePrinter")
	procStartDocPrinterW = modwinspool.NewProc("StartDocPrinterW")
	procEndDocPrinter    = modwinspool.NewProc("EndDocPrinter")
	procStartPagePrinter = modwinspool.NewProc("StartPagePrinter")
	procEndPagePrinter   = modwinspool.NewProc("EndPagePrinter")
	procWritePrinter     = modwinspool.NewProc("WritePrinter")
)

// docInfo1 mirrors DOC_INFO_1W
type docInfo1 struct {
	docName    *uint16
	outputFile *uint16
	datatype   *uint16
}

type winspoolAPI struct{}

// NewPlatformAPI returns the winspool backed API
func NewPlatformAPI() API {
	return winspoolAPI{}
}

func (winspoolAPI) Open(printerName string) (Handle, error) {
	name, err := windows.UTF16PtrFromString(printerName)
	if err != nil {
		return nil, &OpError{Op: "OpenPrinter", Code: int64(windows.ERROR_INVALID_PARAMETER), Err: err}
	}
	var h windows.Handle
	r, _, callErr := procOpenPrinterW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&h)),
		0,
	)
	if r == 0 {
		return nil, opError("OpenPrinter", callErr)
	}
	return &winspoolHandle{h: h}, nil
}

type winspoolHandle struct {
	h windows.Handle
}

func (w *winspoolHandle) StartDoc(doc DocInfo) (uint32, error) {
	name, err := windows.UTF16PtrFromString(doc.Name)
	if err != nil {
		return 0, &OpError{Op: "StartDocPrinter", Code: int64(windows.ERROR_INVALID_PARAMETER), Err: err}
	}
	datatype, err := windows.UTF16PtrFromString(doc.Datatype)
	if err != nil {
		return 0, &OpError{Op: "StartDocPrinter", Code: int64(windows.ERROR_INVALID_PARAMETER), Err: err}
	}
	info := docInfo1{docName: name, datatype: datatype}
	r, _, callErr := procStartDocPrinterW.Call(uintptr(w.h), 1, uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		return 0, opError("StartDocPrinter", callErr)
	}
	return uint32(r), nil
}

func (w *winspoolHandle) StartPage() error {
	return boolCall("StartPagePrinter", procStartPagePrinter, uintptr(w.h))
}

func (w *winspoolHandle) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var written uint32
	r, _, callErr := procWritePrinter.Call(
		uintptr(w.h),
		uintptr(unsafe.Pointer(&p[0])),
		uintptr(uint32(len(p))),
		uintptr(unsafe.Pointer(&written)),
	)
	if r == 0 {
		return int(written), opError("WritePrinter", callErr)
	}
	return int(written), nil
}

func (w *winspoolHandle) EndPage() error {
	return boolCall("EndPagePrinter", procEndPagePrinter, uintptr(w.h))
}

func (w *winspoolHandle) EndDoc() error {
	return boolCall("EndDocPrinter", procEndDocPrinter, uintptr(w.h))
}

func (w *winspoolHandle) Close() error {
	return boolCall("ClosePrinter", procClosePrinter, uintptr(w.h))
}

func boolCall(op string, proc *windows.LazyProc, args ...uintptr) error {
	r, _, callErr := proc.Call(args...)
	if r == 0 {
		return opError(op, callErr)
	}
	return nil
}

func opError(op string, callErr error) *OpError {
	e := &OpError{Op: op, Err: callErr}
	if errno, ok := callErr.(windows.Errno); ok {
		e.Code = int64(errno)
	}
	return e
}
