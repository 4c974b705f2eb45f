package errors

// Process exit statuses. Zero is success; every error code maps to its own
// non-zero value so scripts can tell the failed stage apart.
const (
	ExitOK      = 0
	ExitUnknown = 1
	ExitUsage   = 2
)

var exitCodes = map[ErrorCode]int{
	ErrUnknown:             ExitUnknown,
	ErrInternal:            ExitUnknown,
	ErrInvalidInput:        ExitUsage,
	ErrConfigUnavailable:   10,
	ErrInvalidPattern:      11,
	ErrSettingsInvalid:     12,
	ErrFileUnreadable:      20,
	ErrPrinterOpenFailed:   21,
	ErrJobStartFailed:      22,
	ErrPageStartFailed:     23,
	ErrWriteFailed:         24,
	ErrPageEndFailed:       25,
	ErrJobEndFailed:        26,
	ErrProcessLaunchFailed: 30,
	ErrHelperFailed:        31,
	ErrHelperTimeout:       32,
	ErrPrinterBusy:         33,
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return ExitUnknown
}

// ExitCodes returns a copy of the code to exit status table.
func ExitCodes() map[ErrorCode]int {
	out := make(map[ErrorCode]int, len(exitCodes))
	for k, v := range exitCodes {
		out[k] = v
	}
	return out
}
