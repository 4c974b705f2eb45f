// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, platform codes and exit codes

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_unavailable",
			code:    errors.ErrConfigUnavailable,
			message: "cannot open rule file",
			wantStr: "[CONFIG_UNAVAILABLE] cannot open rule file",
		},
		{
			name:    "printer_open_failed",
			code:    errors.ErrPrinterOpenFailed,
			message: "failed to open printer",
			wantStr: "[PRINTER_OPEN_FAILED] failed to open printer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidPattern, "line %d: pattern %q", 3, "(")
	assert.Equal(t, `line 3: pattern "("`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileUnreadable, "cannot read document")

		assert.Equal(t, errors.ErrFileUnreadable, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_UNREADABLE] cannot read document: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrWriteFailed, "error 1")
	err2 := errors.New(errors.ErrWriteFailed, "error 2")
	err3 := errors.New(errors.ErrJobStartFailed, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrPageStartFailed, "page"),
			code:     errors.ErrPageStartFailed,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrPageStartFailed, "page"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrProcessLaunchFailed, "launch"),
			code:     errors.ErrProcessLaunchFailed,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrUnknown,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrUnknown,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestPlatformCode(t *testing.T) {
	t.Run("uint32_detail", func(t *testing.T) {
		err := errors.New(errors.ErrPrinterOpenFailed, "open").
			WithDetail(errors.DetailCode, uint32(1801))
		code, ok := errors.PlatformCode(err)
		assert.True(t, ok)
		assert.Equal(t, int64(1801), code)
	})

	t.Run("missing_detail", func(t *testing.T) {
		_, ok := errors.PlatformCode(errors.New(errors.ErrWriteFailed, "write"))
		assert.False(t, ok)
	})

	t.Run("standard_error", func(t *testing.T) {
		_, ok := errors.PlatformCode(stderrors.New("plain"))
		assert.False(t, ok)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, errors.ExitOK, errors.ExitCode(nil))
	assert.Equal(t, errors.ExitUnknown, errors.ExitCode(stderrors.New("plain")))
	assert.Equal(t, 21, errors.ExitCode(errors.New(errors.ErrPrinterOpenFailed, "open")))

	t.Run("codes_are_distinct_for_taxonomy", func(t *testing.T) {
		taxonomy := []errors.ErrorCode{
			errors.ErrConfigUnavailable,
			errors.ErrInvalidPattern,
			errors.ErrFileUnreadable,
			errors.ErrPrinterOpenFailed,
			errors.ErrJobStartFailed,
			errors.ErrPageStartFailed,
			errors.ErrWriteFailed,
			errors.ErrProcessLaunchFailed,
		}
		seen := map[int]errors.ErrorCode{}
		for _, code := range taxonomy {
			exit := errors.ExitCode(errors.New(code, "x"))
			assert.NotZero(t, exit)
			prev, dup := seen[exit]
			assert.False(t, dup, "%s shares exit code %d with %s", code, exit, prev)
			seen[exit] = code
		}
	})
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileUnreadable, "cannot read file")
	outer := errors.Wrap(fileErr, errors.ErrInternal, "delivery failed")

	assert.True(t, errors.IsErrorCode(outer, errors.ErrInternal))

	var printErr *errors.PrintError
	if assert.True(t, stderrors.As(outer.Unwrap(), &printErr)) {
		assert.Equal(t, errors.ErrFileUnreadable, printErr.Code)
	}
	assert.True(t, stderrors.Is(outer, rootCause))
}
