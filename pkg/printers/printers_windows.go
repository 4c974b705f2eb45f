//go:build windows

package printers

import (
	"context"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	printerEnumLocal       = 0x00000002
	printerEnumConnections = 0x00000004
)

var (
	modwinspool       = windows.NewLazySystemDLL("winspool.drv")
	procEnumPrintersW = modwinspool.NewProc("EnumPrintersW")
)

// printerInfo4 mirrors PRINTER_INFO_4W
type printerInfo4 struct {
	printerName *uint16
	serverName  *uint16
	attributes  uint32
}

type winspoolSource struct{}

// NewPlatformSource lists local and connected printers through winspool
func NewPlatformSource() Source {
	return winspoolSource{}
}

func (winspoolSource) Names(ctx context.Context) ([]string, error) {
	flags := uintptr(printerEnumLocal | printerEnumConnections)
	var needed, returned uint32

	procEnumPrintersW.Call(flags, 0, 4, 0, 0,
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&returned)))
	if needed == 0 {
		return []string{}, nil
	}

	buf := make([]byte, needed)
	r, _, callErr := procEnumPrintersW.Call(flags, 0, 4,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(needed),
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&returned)))
	if r == 0 {
		return nil, callErr
	}

	infos := unsafe.Slice((*printerInfo4)(unsafe.Pointer(&buf[0])), returned)
	names := make([]string, 0, returned)
	for _, info := range infos {
		names = append(names, windows.UTF16PtrToString(info.printerName))
	}
	return names, nil
}
